package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"word-jam/internal/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	dir := flag.String("dir", "db/migrations", "directory holding the SQL migrations")
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("skipping .env: %v", err)
	}
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+*dir, dsn)
	if err != nil {
		log.Fatalf("open migrations in %s: %v", *dir, err)
	}

	if *down {
		if err := m.Steps(-1); err != nil {
			log.Fatalf("roll back migration: %v", err)
		}
		log.Println("rolled back one migration")
		return
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("apply migrations: %v", err)
	}
	log.Println("schema is up to date")
}
