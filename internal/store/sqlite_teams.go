package store

import (
	"context"
	"database/sql"

	"github.com/quizdeck/backend/internal/domain/team"
)

func (s *SQLiteStore) SaveTeam(ctx context.Context, t *team.Team) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO teams (id, pack_id, name) VALUES (?, ?, ?)",
		t.ID, t.PackID, t.Name,
	)
	return err
}

func (s *SQLiteStore) GetTeam(ctx context.Context, id string) (*team.Team, error) {
	var t team.Team
	err := s.db.QueryRowContext(ctx,
		"SELECT id, pack_id, name FROM teams WHERE id = ?", id,
	).Scan(&t.ID, &t.PackID, &t.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *SQLiteStore) ListTeams(ctx context.Context, packID string) ([]*team.Team, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, pack_id, name FROM teams WHERE pack_id = ? ORDER BY name", packID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []*team.Team
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.PackID, &t.Name); err != nil {
			return nil, err
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}

func (s *SQLiteStore) DeleteTeam(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM teams WHERE id = ?", id)
	if err != nil {
		return err
	}
	return requireRows(result)
}
