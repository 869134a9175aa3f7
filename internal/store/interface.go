package store

import (
	"context"
	"time"

	"vboard/internal/models"
)

// BoardStore is the persistence surface for boards.
type BoardStore interface {
	EnsureBoard(ctx context.Context, board models.Board) error
	ListBoards(ctx context.Context) ([]models.Board, error)
	BoardExists(ctx context.Context, slug string) (bool, error)
}

// ThreadStore is the persistence surface for thread writes and the nested
// thread/post/media reads.
type ThreadStore interface {
	CreateThread(ctx context.Context, board, text string, media []models.MediaFile, now time.Time) (int64, error)
	ListThreads(ctx context.Context, board string, postLimit int) ([]models.Thread, error)
	GetThread(ctx context.Context, board string, id int64) (*models.Thread, error)
}

// PostStore is the persistence surface for post writes. The thread-existence
// check happens inside CreatePost's transaction, not as a separate call.
type PostStore interface {
	CreatePost(ctx context.Context, threadID int64, voiceKey string, media []models.MediaFile, now time.Time) (int64, error)
}

var (
	_ BoardStore  = (*Store)(nil)
	_ ThreadStore = (*Store)(nil)
	_ PostStore   = (*Store)(nil)
)
