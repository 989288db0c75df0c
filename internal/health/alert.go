// Package health implements the Structural Health Monitor (§4.11): the
// Selector Health Checker, Structural Fingerprint, and Yield Monitor, all
// funneling into a shared Alert Handler that never fails the crawl it's
// watching.
package health

import (
	"time"

	"go.uber.org/zap"
)

// Severity is one of the three alert levels §4.11 requires.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Alert is a single structural-health event.
type Alert struct {
	Severity  Severity
	Kind      string
	Message   string
	Context   map[string]interface{}
	CreatedAt time.Time
}

// Sink is the downstream destination for alerts. Emit must never block the
// crawl on a slow or failing sink.
type Sink interface {
	Emit(a Alert)
}

// ZapSink logs alerts with structured fields, severity mapped to log level.
type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Emit(a Alert) {
	fields := make([]zap.Field, 0, len(a.Context)+1)
	fields = append(fields, zap.String("kind", a.Kind))
	for k, v := range a.Context {
		fields = append(fields, zap.Any(k, v))
	}
	switch a.Severity {
	case SeverityCritical:
		s.logger.Error(a.Message, fields...)
	case SeverityWarning:
		s.logger.Warn(a.Message, fields...)
	default:
		s.logger.Info(a.Message, fields...)
	}
}

// Handler is the shared entry point the three checkers raise alerts through.
type Handler struct {
	sink Sink
}

func NewHandler(sink Sink) *Handler {
	return &Handler{sink: sink}
}

func (h *Handler) raise(severity Severity, kind, message string, ctx map[string]interface{}) {
	if h == nil || h.sink == nil {
		return
	}
	h.sink.Emit(Alert{
		Severity:  severity,
		Kind:      kind,
		Message:   message,
		Context:   ctx,
		CreatedAt: time.Now(),
	})
}
