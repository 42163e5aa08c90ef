// Package searchdb loads a built aggregate into a SQLite database so the
// published agents can be queried with SQL filters. The database is derived
// data: it is rebuilt from the aggregate on every load.
package searchdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/agentindex-labs/agentindex/internal/index"
)

// DB is a SQLite-backed search index over the built aggregate.
type DB struct {
	db *sql.DB
}

// Open opens (or creates) a search database at path. Use ":memory:" for a
// transient index.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Each in-memory connection is its own database, so the pool must never
	// grow past the connection the schema was created on.
	db.SetMaxOpenConns(1)
	return &DB{db: db}, nil
}

// Close releases the underlying database handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Load recreates the agents table from the aggregate.
func (d *DB) Load(ctx context.Context, agg *index.Aggregate) error {
	ddl := []string{
		`DROP TABLE IF EXISTS agents;`,
		`CREATE TABLE agents (
			developer TEXT NOT NULL,
			name TEXT NOT NULL,
			version TEXT NOT NULL,
			description TEXT NOT NULL,
			primary_function TEXT,
			readiness_level TEXT,
			tags TEXT NOT NULL,
			container_image TEXT,
			PRIMARY KEY (developer, name)
		);`,
		`CREATE INDEX idx_agents_readiness ON agents(readiness_level);`,
	}
	for _, q := range ddl {
		if _, err := d.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("init search schema: %w", err)
		}
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO agents
		(developer, name, version, description, primary_function, readiness_level, tags, container_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, dev := range agg.Developers {
		for _, agent := range dev.Agents {
			doc := agent.Latest
			_, err := stmt.ExecContext(ctx,
				doc.Developer,
				doc.Name,
				doc.Version,
				doc.Description,
				doc.PrimaryFunction,
				doc.ReadinessLevel,
				strings.Join(doc.Tags, ","),
				doc.ContainerImage,
			)
			if err != nil {
				return fmt.Errorf("insert agent %s: %w", doc.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit load: %w", err)
	}
	return nil
}

// Filter narrows a search. Zero fields match everything.
type Filter struct {
	Query     string // case-insensitive substring on name and description
	Developer string
	Tag       string
	Readiness string
}

// Row is one search hit.
type Row struct {
	Developer      string   `json:"developer"`
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Description    string   `json:"description"`
	ReadinessLevel string   `json:"readiness_level,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// Search returns the agents matching the filter, ordered by developer then
// agent name for stable output.
func (d *DB) Search(ctx context.Context, f Filter) ([]Row, error) {
	var conds []string
	var args []any

	if f.Query != "" {
		conds = append(conds, "(lower(name) LIKE ? OR lower(description) LIKE ?)")
		like := "%" + strings.ToLower(f.Query) + "%"
		args = append(args, like, like)
	}
	if f.Developer != "" {
		conds = append(conds, "developer = ?")
		args = append(args, f.Developer)
	}
	if f.Tag != "" {
		conds = append(conds, "(',' || tags || ',') LIKE ?")
		args = append(args, "%,"+f.Tag+",%")
	}
	if f.Readiness != "" {
		conds = append(conds, "readiness_level = ?")
		args = append(args, f.Readiness)
	}

	q := `SELECT developer, name, version, description, readiness_level, tags FROM agents`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY developer, name"

	rows, err := d.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query agents: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var r Row
		var tags string
		if err := rows.Scan(&r.Developer, &r.Name, &r.Version, &r.Description, &r.ReadinessLevel, &tags); err != nil {
			return nil, fmt.Errorf("scan agent row: %w", err)
		}
		if tags != "" {
			r.Tags = strings.Split(tags, ",")
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
