// Command dbcheck verifies database connectivity and reports the current
// cereal row count. Useful when wiring up a new environment.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cereal-api/internal/config"
	"cereal-api/internal/database"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM cereals").Scan(&count); err != nil {
		fmt.Fprintf(os.Stderr, "query: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("connected to %s:%d/%s, cereals: %d\n",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Database, count)
}
