//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"

	pgrepo "github.com/Gunvolt24/price_catalog/internal/repo/postgres"
)

const (
	postgresImage = "postgres:16-alpine"
	redisImage    = "redis:7-alpine"
	redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"

	startDeadline = 60 * time.Second
)

// tcLogger — логгер жизненного цикла контейнеров; TC_QUIET=1 глушит его.
var tcLogger = newTCLogger()

func newTCLogger() *log.Logger {
	if os.Getenv("TC_QUIET") != "" {
		return log.New(discard{}, "", 0)
	}
	return log.New(os.Stdout, "[tc] ", log.LstdFlags)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// stageHook — хук, который пишет одну строку на этап.
func stageHook(l *log.Logger, stage string) tc.ContainerHook {
	return func(_ context.Context, c tc.Container) error {
		l.Printf("%-11s id=%s", stage, shortID(c))
		return nil
	}
}

// lifecycle — хуки с логами всех этапов, общие для всех контейнеров стенда.
func lifecycle(l *log.Logger, image string) tc.ContainerLifecycleHooks {
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(context.Context, tc.ContainerRequest) error {
				l.Printf("%-11s image=%s", "creating", image)
				return nil
			},
		},
		PostCreates:    []tc.ContainerHook{stageHook(l, "created")},
		PostStarts:     []tc.ContainerHook{stageHook(l, "started")},
		PostReadies:    []tc.ContainerHook{stageHook(l, "ready")},
		PreTerminates:  []tc.ContainerHook{stageHook(l, "terminating")},
		PostTerminates: []tc.ContainerHook{stageHook(l, "terminated")},
	}
}

// abort — гасит контейнер, если стенд не собрался, и возвращает исходную ошибку.
func abort(c tc.Container, err error) error {
	_ = tc.TerminateContainer(c)
	return err
}

// PGContainer — Postgres каталога: пул собран тем же NewPool, что и в сервисе.
type PGContainer struct {
	Container *tcpostgres.PostgresContainer
	Pool      *pgxpool.Pool
	DSN       string
}

func StartPostgresTC(ctx context.Context) (*PGContainer, func(context.Context) error, error) {
	pg, err := tcpostgres.Run(
		ctx,
		postgresImage,
		tc.WithLifecycleHooks(lifecycle(tcLogger, postgresImage)),
		tc.WithExposedPorts("5432/tcp"),
		tcpostgres.WithDatabase("catalog"),
		tcpostgres.WithUsername("app"),
		tcpostgres.WithPassword("app"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(startDeadline),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, nil, abort(pg, fmt.Errorf("conn string: %w", err))
	}

	pool, err := pgrepo.NewPool(ctx, dsn, 5)
	if err != nil {
		return nil, nil, abort(pg, err)
	}

	stop := func(c context.Context) error {
		pool.Close()
		return pg.Terminate(c)
	}

	return &PGContainer{Container: pg, DSN: dsn, Pool: pool}, stop, nil
}

// RedisEnv — redis для кэша; Addr в формате host:port.
type RedisEnv struct {
	Container tc.Container
	Addr      string
}

func StartRedisTC(ctx context.Context) (*RedisEnv, func(context.Context) error, error) {
	rc, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          redisImage,
			ExposedPorts:   []string{"6379/tcp"},
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycle(tcLogger, redisImage)},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("6379/tcp"),
				wait.ForLog("Ready to accept connections"),
			).WithDeadline(startDeadline),
		},
		Started: true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("run redis: %w", err)
	}

	addr, err := rc.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		return nil, nil, abort(rc, fmt.Errorf("redis endpoint: %w", err))
	}

	stop := func(context.Context) error { return tc.TerminateContainer(rc) }
	return &RedisEnv{Container: rc, Addr: addr}, stop, nil
}

// KafkaEnv — redpanda для публикации замеров задержки.
// BaseTopic — основа имени топика; тесты добавляют к ней свой суффикс через LatencyTopic.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(
		ctx,
		redpandaImage,
		tc.WithLifecycleHooks(lifecycle(tcLogger, redpandaImage)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		return nil, nil, abort(rp, fmt.Errorf("seed broker: %w", err))
	}

	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}, stop, nil
}
