package tui

import (
	"fmt"
	"strings"
	"time"
)

// fmtElapsedCompact 将秒数格式化为友好字符串。
func fmtElapsedCompact(elapsedSecs uint64) string {
	switch {
	case elapsedSecs < 60:
		return fmt.Sprintf("%ds", elapsedSecs)
	case elapsedSecs < 3600:
		minutes := elapsedSecs / 60
		seconds := elapsedSecs % 60
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		hours := elapsedSecs / 3600
		minutes := (elapsedSecs % 3600) / 60
		seconds := elapsedSecs % 60
		return fmt.Sprintf("%dh %02dm %02ds", hours, minutes, seconds)
	}
}

// statusInfo 是状态行需要的全部数据。抓取失败不会出现在这里。
type statusInfo struct {
	Spinner     string
	URL         string
	States      int
	HeartRates  int
	LastSuccess time.Time
	Now         time.Time
	Filter      string
	Notice      string
}

func statusText(s statusInfo) string {
	parts := []string{}
	head := s.URL
	if s.Spinner != "" {
		head = s.Spinner + " " + head
	}
	parts = append(parts, head)
	parts = append(parts, fmt.Sprintf("state %d • heart rate %d", s.States, s.HeartRates))
	if s.LastSuccess.IsZero() {
		parts = append(parts, "waiting for data")
	} else {
		elapsed := s.Now.Sub(s.LastSuccess)
		if elapsed < 0 {
			elapsed = 0
		}
		parts = append(parts, "updated "+fmtElapsedCompact(uint64(elapsed.Seconds()))+" ago")
	}
	if s.Filter != "" {
		parts = append(parts, fmt.Sprintf("filter %q", s.Filter))
	}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, " • ")
}
