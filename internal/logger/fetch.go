package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// FetchLogger 记录对 History Provider 的每一次轮询。
type FetchLogger interface {
	Request(requestID string, since int64)
	Response(requestID string, stateCount, heartRateCount int, took time.Duration)
	Error(requestID string, err error)
}

// StdFetchLogger 使用 logrus 输出轮询日志。
type StdFetchLogger struct {
	logger *logrus.Entry
}

// NewFetchLogger 构造默认的轮询日志记录器；l 为 nil 时使用全局 logger。
func NewFetchLogger(l *Logger) *StdFetchLogger {
	if l == nil {
		l = root()
	}
	return &StdFetchLogger{logger: logrus.NewEntry(l).WithField("component", "fetch")}
}

// Request 记录请求发出。
func (l *StdFetchLogger) Request(requestID string, since int64) {
	l.with(requestID).WithField("since", since).Debug("-> GET history")
}

// Response 记录成功的响应及新增条数。
func (l *StdFetchLogger) Response(requestID string, stateCount, heartRateCount int, took time.Duration) {
	entry := l.with(requestID).WithFields(logrus.Fields{
		"state":      stateCount,
		"heart_rate": heartRateCount,
		"took":       took.Round(time.Millisecond),
	})
	if stateCount == 0 && heartRateCount == 0 {
		entry.Debug("<- history")
		return
	}
	entry.Info("<- history")
}

// Error 记录失败；失败只写日志，不向界面传播。
func (l *StdFetchLogger) Error(requestID string, err error) {
	l.with(requestID).WithField("err", err).Warn("!! history fetch failed")
}

func (l *StdFetchLogger) with(requestID string) *logrus.Entry {
	if requestID == "" {
		return l.logger
	}
	return l.logger.WithField(RequestIDField, requestID)
}

// NoopFetchLogger 忽略所有日志输出。
type NoopFetchLogger struct{}

func (NoopFetchLogger) Request(string, int64)                    {}
func (NoopFetchLogger) Response(string, int, int, time.Duration) {}
func (NoopFetchLogger) Error(string, error)                      {}
