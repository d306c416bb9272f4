package ports

import "context"

// Logger — контракт логгера для шлюза и адаптеров.
// Метаданные вызова (request_id, operation, trace_id) реализация берёт из ctx.
type Logger interface {
	Infof(ctx context.Context, format string, args ...any)
	Warnf(ctx context.Context, format string, args ...any)
	Errorf(ctx context.Context, format string, args ...any)
}
