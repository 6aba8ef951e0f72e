// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides the local chat name cache.
//
// Renames are sent to the Gateway, but the Gateway's conversation list
// can lag behind a just-completed rename. The cache keeps the latest
// locally chosen name per chat so the sidebar shows renames immediately
// and across restarts.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var ErrDatabaseError = errors.New("database error")

const namesSchema = `
CREATE TABLE IF NOT EXISTS chat_names (
	chat_id TEXT PRIMARY KEY,
	chat_name TEXT NOT NULL
);
`

// =============================================================================
// NAME CACHE
// =============================================================================

// NameCache stores chat name overrides keyed by chat ID.
type NameCache struct {
	db *sql.DB
}

// OpenNameCache opens (or creates) the cache database at path.
func OpenNameCache(path string) (*NameCache, error) {
	dbDir := filepath.Dir(path)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(namesSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &NameCache{db: db}, nil
}

// Set records a name override for a chat.
func (c *NameCache) Set(chatID, name string) error {
	_, err := c.db.Exec(
		"INSERT INTO chat_names (chat_id, chat_name) VALUES (?, ?) ON CONFLICT(chat_id) DO UPDATE SET chat_name = excluded.chat_name",
		chatID, name,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Get returns the override for a chat, or "" when none exists.
func (c *NameCache) Get(chatID string) (string, error) {
	var name string
	err := c.db.QueryRow("SELECT chat_name FROM chat_names WHERE chat_id = ?", chatID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return name, nil
}

// All returns every override keyed by chat ID.
func (c *NameCache) All() (map[string]string, error) {
	rows, err := c.db.Query("SELECT chat_id, chat_name FROM chat_names")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return names, nil
}

// Delete removes the override for a chat. Missing rows are not an error.
func (c *NameCache) Delete(chatID string) error {
	_, err := c.db.Exec("DELETE FROM chat_names WHERE chat_id = ?", chatID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// Close releases the underlying database.
func (c *NameCache) Close() error {
	return c.db.Close()
}
