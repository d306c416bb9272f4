package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/Gunvolt24/price_catalog/pkg/ctxmeta"
)

type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	isProd bool
}

func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	var (
		logger *zap.Logger
		err    error
	)

	if isProd {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, nil, err
	}

	loggerWrap := Wrap(logger)
	loggerWrap.isProd = isProd

	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// Wrap — обёртка над готовым *zap.Logger (например, из zaptest/observer).
func Wrap(base *zap.Logger) *ZapLogger {
	return &ZapLogger{base: base, sugar: base.Sugar()}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Infof(format, args...)
}
func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Warnf(format, args...)
}
func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.withMeta(ctx).Errorf(format, args...)
}

// withMeta — добавляет к записи request_id, операцию шлюза и trace_id, если они есть в контексте.
func (z *ZapLogger) withMeta(ctx context.Context) *zap.SugaredLogger {
	if ctx == nil {
		return z.sugar
	}
	fields := make([]any, 0, 6)
	if rid, ok := ctxmeta.RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", rid)
	}
	if op, ok := ctxmeta.OperationFromContext(ctx); ok {
		fields = append(fields, "operation", op)
	}
	if tid, ok := ctxmeta.TraceIDFromContext(ctx); ok {
		fields = append(fields, "trace_id", tid)
	}
	if len(fields) == 0 {
		return z.sugar
	}
	return z.sugar.With(fields...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
