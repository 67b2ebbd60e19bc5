package main

import (
	"fmt"
	"os"

	"hrview/internal/config"
	"hrview/internal/logger"
)

func main() {
	logger.Configure()
	if logFile, _, err := logger.SetupFile(logger.DefaultLogPath); err != nil {
		logger.Warnf("failed to initialize log file: %v", err)
	} else {
		defer logFile.Close()
	}
	if err := config.LoadDotEnv(config.DefaultDotEnvPath); err != nil {
		logger.Warnf("failed to load %s: %v", config.DefaultDotEnvPath, err)
	}
	if level := os.Getenv("HRVIEW_LOG_LEVEL"); level != "" {
		if err := logger.SetLevel(level); err != nil {
			logger.Warnf("ignoring HRVIEW_LOG_LEVEL=%q: %v", level, err)
		}
	}

	root, rest, err := parseRootArgs(os.Args[1:])
	if err != nil {
		logger.Fatalf("parse args: %v", err)
	}
	if len(rest) > 0 {
		switch rest[0] {
		case "once":
			exitOn("once", runOnce(root, rest[1:], os.Stdout))
			return
		case "serve":
			exitOn("serve", runServe(root, rest[1:], os.Stdout))
			return
		case "send":
			exitOn("send", runSend(root, rest[1:], os.Stdout))
			return
		case "chart":
			exitOn("chart", runChart(root, rest[1:], os.Stdout))
			return
		case "config":
			exitOn("config", runConfig(root, rest[1:], os.Stdout))
			return
		case "features":
			exitOn("features", runFeatures(root, rest[1:], os.Stdout))
			return
		case "completion":
			exitOn("completion", runCompletion(rest[1:], os.Stdout))
			return
		case "help":
			printUsage(os.Stdout)
			return
		}
	}

	exitOn("watch", runWatch(root, rest, os.Stdout))
}

// exitOn 同时写 stderr：日志已重定向到文件，终端上需要看到失败原因。
func exitOn(cmd string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "hrview %s: %v\n", cmd, err)
		logger.Fatalf("%s failed: %v", cmd, err)
	}
}
