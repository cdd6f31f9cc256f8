package ecs

import "go.uber.org/zap"

// Logger is the minimal structured logging surface the world uses for
// its own diagnostics (component registration, replaced prefab
// templates, duplicate system registration, mutations on dead
// entities). Host applications can supply their own implementation.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}

// noopLogger discards everything; it's the default when no Logger is
// configured via WithLogger.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// zapLogger adapts a *zap.SugaredLogger to the Logger interface.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps z as a world Logger.
func NewZapLogger(z *zap.Logger) Logger {
	return &zapLogger{sugar: z.Sugar()}
}

func (l *zapLogger) Debug(msg string, kv ...any) { l.sugar.Debugw(msg, kv...) }
func (l *zapLogger) Info(msg string, kv ...any)  { l.sugar.Infow(msg, kv...) }
func (l *zapLogger) Warn(msg string, kv ...any)  { l.sugar.Warnw(msg, kv...) }
func (l *zapLogger) Error(msg string, kv ...any) { l.sugar.Errorw(msg, kv...) }

// defaultDebugLogger builds the production zap logger (stderr,
// production encoder) that WithDebug(true) wires in when the embedder
// hasn't supplied their own via WithLogger. Falls back to the no-op
// logger if zap's production config fails to build.
func defaultDebugLogger() Logger {
	z, err := zap.NewProduction()
	if err != nil {
		return noopLogger{}
	}
	return NewZapLogger(z)
}
