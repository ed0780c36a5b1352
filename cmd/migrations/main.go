package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
	"github.com/vncsmyrnk/jobboard/internal/config"
)

// Usage:
//
//	migrations            applies every pending migration
//	migrations <name>     applies the migration whose file name ends in <name>
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := sqldb.Open(ctx, cfg.DatabaseDriver, cfg.DSN())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if len(os.Args) < 2 {
		applied, err := db.Migrate(ctx)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		if len(applied) == 0 {
			fmt.Println("Database is up to date.")
			return
		}
		for _, name := range applied {
			fmt.Printf("Applied %s\n", name)
		}
		return
	}

	name, err := db.MigrateOne(ctx, os.Args[1])
	if err != nil {
		log.Fatalf("Failed to execute migration: %v", err)
	}
	fmt.Printf("Migration %s executed successfully.\n", name)
}
