// Пакет ctxmeta — метаданные вызова в context.Context: request_id из HTTP-слоя,
// имя операции шлюза каталога и (в сборке с тегом otel) trace/span.
// HTTP-слой, шлюз и логгер зависят от него, но не друг от друга.
package ctxmeta

import "context"

type ctxKey uint8

const (
	keyRequestID ctxKey = iota + 1
	keyOperation
)

// WithRequestID — кладёт request_id в контекст; пустой id или nil-контекст возвращаются как есть.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withString(ctx, keyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keyRequestID)
}

// WithOperation — имя операции шлюза (priceHistory, searchProducts, ...).
// Адаптеры хранилища и кэша получают его через логгер, не зная о шлюзе.
func WithOperation(ctx context.Context, op string) context.Context {
	return withString(ctx, keyOperation, op)
}

func OperationFromContext(ctx context.Context) (string, bool) {
	return stringFrom(ctx, keyOperation)
}

func withString(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

// stringFrom — пустое сохранённое значение считается отсутствующим.
func stringFrom(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
