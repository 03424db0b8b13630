package records

import (
	"database/sql"
	"embed"
	"fmt"
	"log"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQL implements Store over database/sql. The same queries serve both
// drivers: they are written with $N placeholders and rebound to ? for
// SQLite.
type SQL struct {
	conn   *sql.DB
	driver string
}

// OpenPostgres connects to Postgres via lib/pq and applies migrations.
func OpenPostgres(dsn string) (*SQL, error) {
	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	s := &SQL{conn: conn, driver: "postgres"}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	log.Println("[DB] Connected to PostgreSQL")
	return s, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path and
// applies migrations. WAL mode keeps reads from blocking the writer.
func OpenSQLite(path string) (*SQL, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	s := &SQL{conn: conn, driver: "sqlite"}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	log.Printf("[DB] Opened SQLite database at %s\n", path)
	return s, nil
}

func (s *SQL) migrate() error {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations dir: %w", err)
	}
	for _, entry := range entries {
		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}
		if _, err := s.conn.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", entry.Name(), err)
		}
		log.Printf("[DB] Applied migration: %s\n", entry.Name())
	}
	return nil
}

// q rebinds $N placeholders to ? for the SQLite driver. Placeholders
// in our queries always appear in ascending order, so positional ?
// binding lines up.
func (s *SQL) q(query string) string {
	if s.driver != "sqlite" {
		return query
	}
	for n := 16; n >= 1; n-- {
		query = strings.ReplaceAll(query, "$"+strconv.Itoa(n), "?")
	}
	return query
}

func (s *SQL) Append(rec GameRecord) error {
	_, err := s.conn.Exec(s.q(`
		INSERT INTO game_records (id, score, accuracy, avg_reaction_ms, total_distance, cps, duration_sec, total_clicks, accurate_clicks, mode, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`), rec.ID, rec.Score, rec.Accuracy, rec.AvgReactionMs, rec.TotalDistance, rec.CPS,
		rec.DurationSec, rec.TotalClicks, rec.AccurateClicks, rec.Mode, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending record: %w", err)
	}
	return nil
}

func (s *SQL) AppendHits(events []HitEvent) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(s.q(`
		INSERT INTO hit_events (session_id, target_kind, reaction_ms, intense, hit_at)
		VALUES ($1, $2, $3, $4, $5)
	`))
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, ev := range events {
		intense := 0
		if ev.Intense {
			intense = 1
		}
		if _, err := stmt.Exec(ev.SessionID, ev.TargetKind, ev.ReactionMs, intense, ev.HitAt); err != nil {
			return fmt.Errorf("appending hit in batch: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQL) TopN(n int) ([]GameRecord, error) {
	rows, err := s.conn.Query(s.q(`
		SELECT id, score, accuracy, avg_reaction_ms, total_distance, cps, duration_sec, total_clicks, accurate_clicks, mode, created_at
		FROM game_records
		ORDER BY score DESC, created_at ASC
		LIMIT $1
	`), n)
	if err != nil {
		return nil, fmt.Errorf("querying top records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQL) All() ([]GameRecord, error) {
	rows, err := s.conn.Query(`
		SELECT id, score, accuracy, avg_reaction_ms, total_distance, cps, duration_sec, total_clicks, accurate_clicks, mode, created_at
		FROM game_records
		ORDER BY score DESC, created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]GameRecord, error) {
	var out []GameRecord
	for rows.Next() {
		var rec GameRecord
		if err := rows.Scan(&rec.ID, &rec.Score, &rec.Accuracy, &rec.AvgReactionMs, &rec.TotalDistance,
			&rec.CPS, &rec.DurationSec, &rec.TotalClicks, &rec.AccurateClicks, &rec.Mode, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQL) QueryRow(query string, args ...any) *sql.Row {
	return s.conn.QueryRow(s.q(query), args...)
}

func (s *SQL) Query(query string, args ...any) (*sql.Rows, error) {
	return s.conn.Query(s.q(query), args...)
}

func (s *SQL) Ping() error {
	return s.conn.Ping()
}

func (s *SQL) Close() error {
	return s.conn.Close()
}
