package ports

import "context"

// OutcomeKey — ключ контекста замера с исходом операции (hit|miss|error).
const OutcomeKey = "outcome"

// LatencySample — замер одной операции чтения.
type LatencySample struct {
	Operation  string
	DurationMs int64
	Context    map[string]any
}

// MetricsSink — приёмник замеров задержки (best-effort).
// Record не должен блокировать вызывающего; ошибка только логируется.
type MetricsSink interface {
	Record(ctx context.Context, sample LatencySample) error
}
