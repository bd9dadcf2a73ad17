package postgres

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// testDB is nil when tests run with -short or Docker is unavailable
var testDB *sql.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:15.3-alpine",
		tcpostgres.WithDatabase("delver"),
		tcpostgres.WithUsername("delver"),
		tcpostgres.WithPassword("delver"),
		testcontainers.WithWaitStrategy(
			// The server restarts once after initdb, so wait for the second ready line
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		log.Printf("postgres container unavailable, skipping integration tests: %s", err)
		os.Exit(m.Run())
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		log.Fatalf("failed to obtain connection string: %s", err)
	}
	testDB, err = Open(ctx, dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}

	code := m.Run()

	if err := testDB.Close(); err != nil {
		log.Printf("failed to close database: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
	os.Exit(code)
}

// requireDB skips the test without a database and truncates tables otherwise
func requireDB(t *testing.T) *sql.DB {
	t.Helper()
	if testDB == nil {
		t.Skip("postgres not available")
	}
	if _, err := testDB.Exec(`TRUNCATE forum_posts, users`); err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
	return testDB
}
