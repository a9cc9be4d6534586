package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"word-jam/internal/config"
	"word-jam/internal/db"
	"word-jam/internal/server"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}
	cfg := config.Load()

	conn, err := db.Open(db.Pool{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifetimeSeconds) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.DBConnMaxIdleTimeSeconds) * time.Second,
	})
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	addr := ":8080"
	if env := os.Getenv("PORT"); env != "" {
		addr = ":" + env
	}

	srv := server.New(conn, cfg)
	log.Printf("word-jam server listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
		log.Fatal(err)
	}
}
