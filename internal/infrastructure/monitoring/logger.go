// Package monitoring holds the observability stack: zap logging, Prometheus
// metrics and OpenTelemetry tracing.
package monitoring

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/pkg/constants"
	"github.com/turtacn/acadmin/pkg/logger"
)

// ZapLogger adapts zap to logger.Logger. Request and trace IDs found in the
// context are added to every entry.
type ZapLogger struct {
	*zap.Logger
	level zap.AtomicLevel
}

var _ logger.Logger = (*ZapLogger)(nil)

// NewZapLogger builds a logger writing JSON (or console text when
// cfg.Format is "console") to cfg.OutputPath, stdout by default.
func NewZapLogger(cfg *config.LogConfig) (*ZapLogger, error) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zap.NewAtomicLevelAt(parseLevel(cfg.Level))

	output := cfg.OutputPath
	if output == "" {
		output = "stdout"
	}
	sink, _, err := zap.Open(output)
	if err != nil {
		return nil, err
	}

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "console") {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, sink, level)
	return &ZapLogger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel)),
		level:  level,
	}, nil
}

// NewZapLoggerFromCore wraps an existing core. Tests use it with zaptest/observer.
func NewZapLoggerFromCore(core zapcore.Core) *ZapLogger {
	return &ZapLogger{Logger: zap.New(core), level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

// SetLevel changes the minimum level at runtime. Unknown names mean info.
func (l *ZapLogger) SetLevel(level string) {
	l.level.SetLevel(parseLevel(level))
}

func (l *ZapLogger) Debug(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Debug(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Info(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Info(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Warn(ctx context.Context, msg string, fields ...logger.Fields) {
	l.Logger.Warn(msg, l.convertFields(ctx, fields...)...)
}

func (l *ZapLogger) Error(ctx context.Context, msg string, err error, fields ...logger.Fields) {
	zf := l.convertFields(ctx, fields...)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.Logger.Error(msg, zf...)
}

func (l *ZapLogger) Fatal(ctx context.Context, msg string, err error, fields ...logger.Fields) {
	zf := l.convertFields(ctx, fields...)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.Logger.Fatal(msg, zf...)
}

func (l *ZapLogger) WithFields(fields logger.Fields) logger.Logger {
	return &ZapLogger{Logger: l.Logger.With(l.convertFields(context.Background(), fields)...), level: l.level}
}

func (l *ZapLogger) WithComponent(component string) logger.Logger {
	return &ZapLogger{Logger: l.Logger.With(zap.String("component", component)), level: l.level}
}

func (l *ZapLogger) convertFields(ctx context.Context, fields ...logger.Fields) []zap.Field {
	zapFields := make([]zap.Field, 0, 2+len(fields))
	if ctx != nil {
		if requestID, ok := ctx.Value(constants.ContextKeyRequestID).(string); ok && requestID != "" {
			zapFields = append(zapFields, zap.String("request_id", requestID))
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			zapFields = append(zapFields, zap.String("trace_id", sc.TraceID().String()))
		}
	}
	for _, f := range fields {
		for k, v := range f {
			zapFields = append(zapFields, zap.Any(k, v))
		}
	}
	return zapFields
}

func parseLevel(s string) zapcore.Level {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
