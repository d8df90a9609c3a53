package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/abhisek/mathblitz/internal/leaderboard"
)

func TestPostgresBoard(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	requireDocker(t)
	ctx := context.Background()

	dsn, cleanup := startPostgres(t, ctx)
	defer cleanup()

	var (
		p   *Postgres
		err error
	)
	// The port can accept connections before the server is ready.
	for i := 0; i < 20; i++ {
		p, err = OpenPostgres(ctx, dsn, leaderboard.MaxEntries)
		if err == nil {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	defer p.Close()

	runBoardSuite(t, p)
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "blitz", "POSTGRES_PASSWORD": "blitzpass", "POSTGRES_DB": "blitzdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://blitz:blitzpass@%s:%s/blitzdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
