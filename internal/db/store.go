// Package db is the sqlite persistence layer: hand-written queries over
// database/sql for the worlds table, with per-query debug logging.
package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/charmbracelet/log"
)

// World is a persisted noise parameter set.
type World struct {
	ID         int64
	Name       string
	Seed       int64
	Octaves    int64
	Lacunarity float64
	Gain       float64
	Frequency  float64
	Normalize  bool
	Variant    string
	CreatedAt  time.Time
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) *Store {
	return &Store{db: database}
}

// logQuery records one query execution with its duration.
func logQuery(queryName string, start time.Time, err error, args ...interface{}) {
	duration := time.Since(start)

	if err != nil {
		log.Debug("Database query failed",
			"query", queryName,
			"duration", duration,
			"error", err,
			"args", args,
		)
	} else {
		log.Debug("Database query executed",
			"query", queryName,
			"duration", duration,
			"args", args,
		)
	}
}

const createWorldQuery = `
INSERT INTO worlds (name, seed, octaves, lacunarity, gain, frequency, normalize, variant)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

func (s *Store) CreateWorld(ctx context.Context, w World) (int64, error) {
	start := time.Now()
	log.Debug("Executing CreateWorld", "name", w.Name, "seed", w.Seed, "variant", w.Variant)

	normalize := 0
	if w.Normalize {
		normalize = 1
	}
	result, err := s.db.ExecContext(ctx, createWorldQuery,
		w.Name, w.Seed, w.Octaves, w.Lacunarity, w.Gain, w.Frequency, normalize, w.Variant)
	logQuery("CreateWorld", start, err, w.Name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

const getWorldQuery = `
SELECT id, name, seed, octaves, lacunarity, gain, frequency, normalize, variant, created_at
FROM worlds
WHERE id = ?
`

func (s *Store) GetWorld(ctx context.Context, id int64) (World, error) {
	start := time.Now()
	log.Debug("Executing GetWorld", "world_id", id)

	w, err := scanWorld(s.db.QueryRowContext(ctx, getWorldQuery, id))
	logQuery("GetWorld", start, err, id)
	return w, err
}

const listWorldsQuery = `
SELECT id, name, seed, octaves, lacunarity, gain, frequency, normalize, variant, created_at
FROM worlds
ORDER BY id
`

func (s *Store) ListWorlds(ctx context.Context) ([]World, error) {
	start := time.Now()
	log.Debug("Executing ListWorlds")

	rows, err := s.db.QueryContext(ctx, listWorldsQuery)
	if err != nil {
		logQuery("ListWorlds", start, err)
		return nil, err
	}
	defer rows.Close()

	var worlds []World
	for rows.Next() {
		w, err := scanWorld(rows)
		if err != nil {
			logQuery("ListWorlds", start, err)
			return nil, err
		}
		worlds = append(worlds, w)
	}
	err = rows.Err()
	logQuery("ListWorlds", start, err)

	if err == nil {
		log.Debug("ListWorlds result", "world_count", len(worlds))
	}
	return worlds, err
}

const deleteWorldQuery = `DELETE FROM worlds WHERE id = ?`

func (s *Store) DeleteWorld(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	log.Debug("Executing DeleteWorld", "world_id", id)

	result, err := s.db.ExecContext(ctx, deleteWorldQuery, id)
	logQuery("DeleteWorld", start, err, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorld(row rowScanner) (World, error) {
	var w World
	var normalize int64
	err := row.Scan(&w.ID, &w.Name, &w.Seed, &w.Octaves, &w.Lacunarity,
		&w.Gain, &w.Frequency, &normalize, &w.Variant, &w.CreatedAt)
	w.Normalize = normalize == 1
	return w, err
}
