// internal/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/quizdeck/backend/internal/domain/pack"
)

const schema = `
CREATE TABLE IF NOT EXISTS packs (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    write_timer_sec INTEGER NOT NULL DEFAULT 180,
    question_timer_sec INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS rounds (
    id TEXT PRIMARY KEY,
    pack_id TEXT NOT NULL,
    title TEXT NOT NULL,
    round_order INTEGER NOT NULL,
    default_timer_sec INTEGER NOT NULL DEFAULT 30,
    recap_enabled INTEGER NOT NULL DEFAULT 1,
    intro_media_path TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (pack_id) REFERENCES packs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    round_id TEXT NOT NULL,
    question_order INTEGER NOT NULL,
    qtype TEXT NOT NULL,
    text TEXT NOT NULL,
    answer TEXT NOT NULL DEFAULT '',
    options TEXT NOT NULL DEFAULT '[]',
    timer_sec INTEGER NOT NULL DEFAULT 0,
    media_path TEXT NOT NULL DEFAULT '',
    answer_media_path TEXT NOT NULL DEFAULT '',
    FOREIGN KEY (round_id) REFERENCES rounds(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS teams (
    id TEXT PRIMARY KEY,
    pack_id TEXT NOT NULL,
    name TEXT NOT NULL,
    FOREIGN KEY (pack_id) REFERENCES packs(id) ON DELETE CASCADE
);
`

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Packs
// ============================================================================

func (s *SQLiteStore) SavePack(ctx context.Context, p *pack.Pack) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO packs (id, title, write_timer_sec, question_timer_sec) VALUES (?, ?, ?, ?)",
		p.ID, p.Title, p.WriteTimerSec, p.QuestionTimerSec,
	)
	return err
}

// GetPack loads a pack with its rounds and questions fully nested, ordered
// by round_order and question_order.
func (s *SQLiteStore) GetPack(ctx context.Context, id string) (*pack.Pack, error) {
	var p pack.Pack
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, write_timer_sec, question_timer_sec FROM packs WHERE id = ?", id,
	).Scan(&p.ID, &p.Title, &p.WriteTimerSec, &p.QuestionTimerSec)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, pack_id, title, round_order, default_timer_sec, recap_enabled, intro_media_path FROM rounds WHERE pack_id = ? ORDER BY round_order",
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r pack.Round
		if err := rows.Scan(&r.ID, &r.PackID, &r.Title, &r.Order, &r.DefaultTimerSec, &r.RecapEnabled, &r.IntroMediaPath); err != nil {
			return nil, err
		}
		p.Rounds = append(p.Rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range p.Rounds {
		questions, err := s.roundQuestions(ctx, p.Rounds[i].ID)
		if err != nil {
			return nil, err
		}
		p.Rounds[i].Questions = questions
	}

	return &p, nil
}

func (s *SQLiteStore) ListPacks(ctx context.Context) ([]*pack.Pack, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, write_timer_sec, question_timer_sec FROM packs ORDER BY title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packs []*pack.Pack
	for rows.Next() {
		var p pack.Pack
		if err := rows.Scan(&p.ID, &p.Title, &p.WriteTimerSec, &p.QuestionTimerSec); err != nil {
			return nil, err
		}
		packs = append(packs, &p)
	}
	return packs, rows.Err()
}

func (s *SQLiteStore) UpdatePackSettings(ctx context.Context, p *pack.Pack) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE packs SET title = ?, write_timer_sec = ?, question_timer_sec = ? WHERE id = ?",
		p.Title, p.WriteTimerSec, p.QuestionTimerSec, p.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (s *SQLiteStore) DeletePack(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM questions
		WHERE round_id IN (SELECT id FROM rounds WHERE pack_id = ?)
	`, id)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM rounds WHERE pack_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM teams WHERE pack_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM packs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRows(result); err != nil {
		return err
	}

	return tx.Commit()
}

// ============================================================================
// Rounds
// ============================================================================

func (s *SQLiteStore) SaveRound(ctx context.Context, r *pack.Round) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO rounds (id, pack_id, title, round_order, default_timer_sec, recap_enabled, intro_media_path) VALUES (?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.PackID, r.Title, r.Order, r.DefaultTimerSec, r.RecapEnabled, r.IntroMediaPath,
	)
	return err
}

func (s *SQLiteStore) GetRound(ctx context.Context, id string) (*pack.Round, error) {
	var r pack.Round
	err := s.db.QueryRowContext(ctx,
		"SELECT id, pack_id, title, round_order, default_timer_sec, recap_enabled, intro_media_path FROM rounds WHERE id = ?", id,
	).Scan(&r.ID, &r.PackID, &r.Title, &r.Order, &r.DefaultTimerSec, &r.RecapEnabled, &r.IntroMediaPath)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	questions, err := s.roundQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Questions = questions
	return &r, nil
}

func (s *SQLiteStore) UpdateRound(ctx context.Context, r *pack.Round) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE rounds SET title = ?, round_order = ?, default_timer_sec = ?, recap_enabled = ?, intro_media_path = ? WHERE id = ?",
		r.Title, r.Order, r.DefaultTimerSec, r.RecapEnabled, r.IntroMediaPath, r.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (s *SQLiteStore) DeleteRound(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM questions WHERE round_id = ?", id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM rounds WHERE id = ?", id)
	if err != nil {
		return err
	}
	if err := requireRows(result); err != nil {
		return err
	}

	return tx.Commit()
}

// ============================================================================
// Questions
// ============================================================================

func (s *SQLiteStore) SaveQuestion(ctx context.Context, q *pack.Question) error {
	optionsJSON, _ := json.Marshal(q.Options)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO questions (id, round_id, question_order, qtype, text, answer, options, timer_sec, media_path, answer_media_path) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		q.ID, q.RoundID, q.Order, string(q.Type), q.Text, q.Answer, string(optionsJSON), q.TimerSec, q.MediaPath, q.AnswerMediaPath,
	)
	return err
}

func (s *SQLiteStore) GetQuestion(ctx context.Context, id string) (*pack.Question, error) {
	var q pack.Question
	var optionsJSON string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, round_id, question_order, qtype, text, answer, options, timer_sec, media_path, answer_media_path FROM questions WHERE id = ?", id,
	).Scan(&q.ID, &q.RoundID, &q.Order, &q.Type, &q.Text, &q.Answer, &optionsJSON, &q.TimerSec, &q.MediaPath, &q.AnswerMediaPath)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	json.Unmarshal([]byte(optionsJSON), &q.Options)
	return &q, nil
}

func (s *SQLiteStore) UpdateQuestion(ctx context.Context, q *pack.Question) error {
	optionsJSON, _ := json.Marshal(q.Options)
	result, err := s.db.ExecContext(ctx,
		"UPDATE questions SET question_order = ?, qtype = ?, text = ?, answer = ?, options = ?, timer_sec = ?, media_path = ?, answer_media_path = ? WHERE id = ?",
		q.Order, string(q.Type), q.Text, q.Answer, string(optionsJSON), q.TimerSec, q.MediaPath, q.AnswerMediaPath, q.ID,
	)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (s *SQLiteStore) DeleteQuestion(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRows(result)
}

func (s *SQLiteStore) roundQuestions(ctx context.Context, roundID string) ([]pack.Question, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, round_id, question_order, qtype, text, answer, options, timer_sec, media_path, answer_media_path FROM questions WHERE round_id = ? ORDER BY question_order",
		roundID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []pack.Question
	for rows.Next() {
		var q pack.Question
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.RoundID, &q.Order, &q.Type, &q.Text, &q.Answer, &optionsJSON, &q.TimerSec, &q.MediaPath, &q.AnswerMediaPath); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(optionsJSON), &q.Options)
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func requireRows(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
