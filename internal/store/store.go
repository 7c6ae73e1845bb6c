// Package store publishes curriculum sets to the hosted Postgres backend and
// exposes the handful of read queries used for debugging the live table.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/mathtrail/currikit/internal/curriculum"
)

type Store struct {
	DB *sql.DB
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error { return s.DB.Close() }

// UploadResult counts per-row outcomes of a publish run.
type UploadResult struct {
	Success int
	Failed  int
}

// UploadCurriculum inserts every set as a published row. Rows are inserted
// one at a time, best effort: a failed row is logged and counted, the rest
// still go in. The hosted table generates its own UUID primary key, so the
// dataset's slug id is not written.
func (s *Store) UploadCurriculum(ctx context.Context, sets []*curriculum.Set, logger *log.Logger) (UploadResult, error) {
	var res UploadResult
	for _, set := range sets {
		questions, err := json.Marshal(set.Questions)
		if err != nil {
			logger.Printf("failed to upload %s: %v", set.Title, err)
			res.Failed++
			continue
		}

		topic := set.Topic
		if topic == "" {
			topic = "General"
		}
		difficulty := set.Difficulty
		if difficulty == "" {
			difficulty = "Medium"
		}
		description := fmt.Sprintf("%s | Topic: %s | Difficulty: %s", set.Description, topic, difficulty)

		_, err = s.DB.ExecContext(ctx, `
INSERT INTO curriculum_sets (title, description, grade, questions, status)
VALUES ($1,$2,$3,$4,'published');
`, set.Title, description, set.GradeLevel, questions)
		if err != nil {
			logger.Printf("failed to upload %s: %v", set.Title, err)
			res.Failed++
			continue
		}
		logger.Printf("uploaded: %s", set.Title)
		res.Success++
	}
	return res, nil
}

// SetRow is a published curriculum row as the debug queries see it.
type SetRow struct {
	ID        string
	Title     string
	Grade     int
	Questions int
	Status    string
	CreatedAt time.Time
}

// CountSets returns the total number of published rows.
func (s *Store) CountSets(ctx context.Context) (int, error) {
	var n int
	err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM curriculum_sets;`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sets: %w", err)
	}
	return n, nil
}

// RecentSets returns the newest rows with their question counts, for eyeballing
// whether an upload landed.
func (s *Store) RecentSets(ctx context.Context, limit int) ([]SetRow, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.DB.QueryContext(ctx, `
SELECT id, title, grade, jsonb_array_length(questions), status, created_at
FROM curriculum_sets
ORDER BY created_at DESC
LIMIT $1;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sets: %w", err)
	}
	defer rows.Close()

	var out []SetRow
	for rows.Next() {
		var r SetRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Grade, &r.Questions, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan set row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GradeCounts tallies published rows per grade label.
func (s *Store) GradeCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.QueryContext(ctx, `
SELECT grade, COUNT(*)
FROM curriculum_sets
GROUP BY grade
ORDER BY grade;
`)
	if err != nil {
		return nil, fmt.Errorf("grade counts: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var grade, n int
		if err := rows.Scan(&grade, &n); err != nil {
			return nil, fmt.Errorf("scan grade count: %w", err)
		}
		out[curriculum.GradeLabel(grade)] = n
	}
	return out, rows.Err()
}

// BuildDSN assembles a postgres URL from discrete settings when a full URL is
// not configured.
func BuildDSN(url, host, port, user, password, dbname, sslmode string) (string, error) {
	if strings.TrimSpace(url) != "" {
		return url, nil
	}
	if host == "" || dbname == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	if port == "" {
		port = "5432"
	}
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", user, password, host, port, dbname, sslmode), nil
}
