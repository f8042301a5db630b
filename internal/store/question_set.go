package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/geoquiz/internal/questionbank"
	"github.com/abhisek/geoquiz/internal/quiz"
)

// setRepo implements SetRepo on the question_sets and questions tables.
type setRepo struct {
	db *sql.DB
}

func (r *setRepo) Save(ctx context.Context, set *questionbank.Set) error {
	if err := questionbank.Validate(set); err != nil {
		return fmt.Errorf("validate set: %w", err)
	}
	id, createdAt := set.ID, set.CreatedAt
	if id == "" {
		id = uuid.New().String()
	}
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM question_sets WHERE name = ?`, set.Name).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check set name: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%q: %w", set.Name, ErrSetExists)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO question_sets (id, name, description, source, created_at) VALUES (?, ?, ?, ?, ?)`,
		id, set.Name, set.Description, set.Source, createdAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert set: %w", err)
	}

	for i, q := range set.Questions {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO questions (set_id, position, text, answer) VALUES (?, ?, ?, ?)`,
			id, i, q.Text, q.Answer)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	set.ID, set.CreatedAt = id, createdAt
	return nil
}

func (r *setRepo) Get(ctx context.Context, name string) (*questionbank.Set, error) {
	var (
		set     questionbank.Set
		created string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, source, created_at FROM question_sets WHERE name = ?`, name,
	).Scan(&set.ID, &set.Name, &set.Description, &set.Source, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrSetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get set: %w", err)
	}
	if set.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT text, answer FROM questions WHERE set_id = ? ORDER BY position`, set.ID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q quiz.Question
		if err := rows.Scan(&q.Text, &q.Answer); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		set.Questions = append(set.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return &set, nil
}

func (r *setRepo) List(ctx context.Context) ([]SetInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT s.id, s.name, s.description, s.source, s.created_at, COUNT(q.position)
FROM question_sets s
LEFT JOIN questions q ON q.set_id = s.id
GROUP BY s.id
ORDER BY s.name`)
	if err != nil {
		return nil, fmt.Errorf("list sets: %w", err)
	}
	defer rows.Close()

	var infos []SetInfo
	for rows.Next() {
		var (
			info    SetInfo
			created string
		)
		if err := rows.Scan(&info.ID, &info.Name, &info.Description, &info.Source, &created, &info.QuestionCount); err != nil {
			return nil, fmt.Errorf("scan set: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sets: %w", err)
	}
	return infos, nil
}

func (r *setRepo) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM question_sets WHERE name = ?`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%q: %w", name, ErrSetNotFound)
	}
	if err != nil {
		return fmt.Errorf("find set: %w", err)
	}

	// foreign_keys is a per-connection pragma, so don't rely on the cascade.
	if _, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE set_id = ?`, id); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM question_sets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return tx.Commit()
}
