package main

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"
)

var db *sql.DB

// Open the sqlite database and make sure the schema exists
func initDB(path string) error {
	var err error
	db, err = sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	// sqlite serialises writers anyway; one connection also keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,  -- Store hashed IP instead of raw IP
			user_agent TEXT,
			path TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS renders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			line_count INTEGER NOT NULL,
			band_height INTEGER NOT NULL,
			font_size INTEGER NOT NULL,
			source_format TEXT,
			downloaded INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	log.Info("Database ready", "path", path)
	return nil
}
