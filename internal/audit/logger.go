package audit

import (
	"go.uber.org/zap"
)

// Logger writes audit entries to a dedicated zap logger so they can be
// routed apart from access logs.
type Logger struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Logger {
	return &Logger{log: log.Named("audit")}
}

func (l *Logger) Log(
	actor string,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) {

	fields := []zap.Field{
		zap.String("actor", actor),
		zap.String("action", action),
		zap.String("entity", entity),
	}
	if entityID != nil {
		fields = append(fields, zap.Uint("entity_id", *entityID))
	}
	if metadata != nil {
		fields = append(fields, zap.Any("metadata", metadata))
	}

	l.log.Info("audit", fields...)
}
