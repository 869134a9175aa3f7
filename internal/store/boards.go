package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vboard/internal/models"
)

// EnsureBoard inserts a board if absent. Creating the same slug twice is a
// no-op, so startup seeding is idempotent.
func (s *Store) EnsureBoard(ctx context.Context, board models.Board) error {
	slug := strings.TrimSpace(board.Slug)
	if slug == "" {
		return fmt.Errorf("board slug is required")
	}
	if len(slug) > models.MaxSlugLen {
		return fmt.Errorf("board slug must be at most %d characters", models.MaxSlugLen)
	}
	name := strings.TrimSpace(board.Name)
	if name == "" {
		return fmt.Errorf("board name is required")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO boards (slug, name) VALUES (?, ?)", slug, name)
	return err
}

// ListBoards returns all boards ordered by slug.
func (s *Store) ListBoards(ctx context.Context) ([]models.Board, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slug, name FROM boards ORDER BY slug ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	boards := []models.Board{}
	for rows.Next() {
		var board models.Board
		if err := rows.Scan(&board.Slug, &board.Name); err != nil {
			return nil, err
		}
		boards = append(boards, board)
	}
	return boards, rows.Err()
}

// BoardExists checks whether a board exists by slug.
func (s *Store) BoardExists(ctx context.Context, slug string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM boards WHERE slug = ? LIMIT 1", slug).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
