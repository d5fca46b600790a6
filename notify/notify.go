// Package notify delivers session notifications to users and logs.
package notify

import (
	"github.com/ZaguanLabs/framelai"
	"go.uber.org/zap"
)

// Notification is an alias to the main package type.
type Notification = framelai.Notification

// Multi fans a notification out to several sinks in order.
type Multi []framelai.Notifier

// Notify implements framelai.Notifier.
func (m Multi) Notify(n Notification) {
	for _, sink := range m {
		if sink != nil {
			sink.Notify(n)
		}
	}
}

// LogSink writes notifications to a zap logger.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink creates a sink that logs through l.
func NewLogSink(l *zap.Logger) *LogSink {
	return &LogSink{logger: l}
}

// Notify implements framelai.Notifier.
func (s *LogSink) Notify(n Notification) {
	fields := []zap.Field{
		zap.String("title", n.Title),
		zap.String("description", n.Description),
	}
	if n.Severity == framelai.SeverityError {
		s.logger.Warn("notification", fields...)
		return
	}
	s.logger.Info("notification", fields...)
}

var (
	_ framelai.Notifier = Multi(nil)
	_ framelai.Notifier = (*LogSink)(nil)
)
