package server

import (
	"context"
	"fmt"

	"vboard/internal/api"
	"vboard/internal/models"
	"vboard/internal/store"
)

// BoardService lists and seeds boards.
type BoardService struct {
	store store.BoardStore
}

// NewBoardService constructs a BoardService.
func NewBoardService(st store.BoardStore) *BoardService {
	return &BoardService{store: st}
}

// List returns all boards.
func (s *BoardService) List(ctx context.Context) ([]api.Board, error) {
	if s == nil || s.store == nil {
		return nil, internalError(fmt.Errorf("board service is not configured"))
	}
	boards, err := s.store.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]api.Board, 0, len(boards))
	for _, board := range boards {
		out = append(out, api.Board{Slug: board.Slug, Name: board.Name})
	}
	return out, nil
}

// Ensure creates a board if absent. Ensuring an existing slug is a no-op.
func (s *BoardService) Ensure(ctx context.Context, board models.Board) error {
	if s == nil || s.store == nil {
		return internalError(fmt.Errorf("board service is not configured"))
	}
	return s.store.EnsureBoard(ctx, board)
}
