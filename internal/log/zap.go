package log

import "go.uber.org/zap"

// ZapLogger mirrors game events into a structured zap logger at debug level.
type ZapLogger struct {
	MemoryLogger
	z *zap.Logger
}

func NewZapLogger(z *zap.Logger) *ZapLogger {
	if z == nil {
		z = zap.NewNop()
	}
	return &ZapLogger{z: z}
}

func (l *ZapLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	e := l.LastEvent()
	fields := []zap.Field{
		zap.Int("seq", e.Seq),
		zap.Int("turn", e.Turn),
		zap.String("phase", e.Phase),
		zap.String("side", e.Side),
		zap.Stringer("type", e.Type),
	}
	if e.Card != "" {
		fields = append(fields, zap.String("card", e.Card))
	}
	l.z.Debug(e.Details, fields...)
}
