package integration

import (
	"context"
	"testing"
	"time"

	"cereal-api/internal/database"
	"cereal-api/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, runs the schema
// migrations, and returns a ready connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	if err := database.Migrate(ctx, connStr); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedCereals inserts a small, known set of cereal records.
func SeedCereals(t *testing.T, pool *pgxpool.Pool) []model.Cereal {
	t.Helper()

	ctx := context.Background()

	cereals := []model.Cereal{
		{Name: "100% Bran", Mfr: "N", Type: "C", Calories: 70, Protein: 4, Fat: 1,
			Sodium: 130, Fiber: 10, Carbo: 5, Sugars: 6, Potass: 280, Vitamins: 25,
			Shelf: 3, Weight: 1, Cups: 0.33, Rating: 68402973},
		{Name: "Cheerios", Mfr: "G", Type: "C", Calories: 110, Protein: 6, Fat: 2,
			Sodium: 290, Fiber: 2, Carbo: 17, Sugars: 1, Potass: 105, Vitamins: 25,
			Shelf: 1, Weight: 1, Cups: 1.25, Rating: 50764999},
		{Name: "Corn Flakes", Mfr: "K", Type: "C", Calories: 100, Protein: 2, Fat: 0,
			Sodium: 290, Fiber: 1, Carbo: 21, Sugars: 2, Potass: 35, Vitamins: 25,
			Shelf: 1, Weight: 1, Cups: 1, Rating: 45863324},
		{Name: "Maypo", Mfr: "A", Type: "H", Calories: 100, Protein: 4, Fat: 1,
			Sodium: 0, Fiber: 0, Carbo: 16, Sugars: 3, Potass: 95, Vitamins: 25,
			Shelf: 2, Weight: 1, Cups: 1, Rating: 54850917},
	}

	for i := range cereals {
		err := pool.QueryRow(ctx,
			`INSERT INTO cereals
				(name, mfr, type, calories, protein, fat, sodium, fiber, carbo,
				 sugars, potass, vitamins, shelf, weight, cups, rating)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
			 RETURNING id`,
			cereals[i].Name, cereals[i].Mfr, cereals[i].Type, cereals[i].Calories,
			cereals[i].Protein, cereals[i].Fat, cereals[i].Sodium, cereals[i].Fiber,
			cereals[i].Carbo, cereals[i].Sugars, cereals[i].Potass, cereals[i].Vitamins,
			cereals[i].Shelf, cereals[i].Weight, cereals[i].Cups, cereals[i].Rating,
		).Scan(&cereals[i].ID)
		if err != nil {
			t.Fatalf("failed to seed cereal %s: %v", cereals[i].Name, err)
		}
	}

	return cereals
}

// CleanupDB removes all data from the test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	for _, table := range []string{"cereals", "users"} {
		if _, err := pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
