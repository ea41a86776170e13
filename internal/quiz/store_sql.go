package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
)

// SQLStore keeps one row per quiz with questions and metadata as JSON.
// The schema is created by db.Open.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Put(ctx context.Context, q Quiz) error {
	qj, err := json.Marshal(q.Questions)
	if err != nil {
		return err
	}
	mj, err := json.Marshal(q.Metadata)
	if err != nil {
		return err
	}
	if q.CreatedAt == 0 {
		q.CreatedAt = time.Now().Unix()
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO quizzes (id,title,questions_json,metadata_json,question_count,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		q.ID, q.Title, string(qj), string(mj), len(q.Questions), q.CreatedAt)
	return err
}

func (s *SQLStore) Get(ctx context.Context, id string) (Quiz, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,questions_json,metadata_json,created_at FROM quizzes WHERE id=$1`, id)
	var (
		q            Quiz
		qjson, mjson string
	)
	if err := row.Scan(&q.ID, &q.Title, &qjson, &mjson, &q.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Quiz{}, apperr.ErrNotFound
		}
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &q.Questions); err != nil {
		return Quiz{}, err
	}
	if err := json.Unmarshal([]byte(mjson), &q.Metadata); err != nil {
		q.Metadata = map[string]any{}
	}
	return q, nil
}

func (s *SQLStore) List(ctx context.Context, opts ListOpts) ([]Summary, error) {
	opts = opts.normalize()
	rows, err := s.db.QueryContext(ctx, `SELECT id,title,question_count,created_at FROM quizzes
		ORDER BY created_at DESC, id ASC LIMIT $1 OFFSET $2`, opts.Limit, opts.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Summary{}
	for rows.Next() {
		var sm Summary
		if err := rows.Scan(&sm.ID, &sm.Title, &sm.QuestionCount, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
