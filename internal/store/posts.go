package store

import (
	"context"
	"database/sql"
	"time"

	"vboard/internal/models"
)

// CreatePost inserts the post row and its media rows and bumps the parent
// thread's last_update, all in one transaction. A missing thread returns
// models.ErrThreadNotExists with nothing persisted.
func (s *Store) CreatePost(ctx context.Context, threadID int64, voiceKey string, media []models.MediaFile, now time.Time) (_ int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM threads WHERE id = ? LIMIT 1", threadID).Scan(&exists)
	if err == sql.ErrNoRows {
		err = models.ErrThreadNotExists
		return 0, err
	}
	if err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO posts (thread, voice_message) VALUES (?, ?) RETURNING id",
		threadID, voiceKey).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err = insertMediaRowsTx(ctx, tx, "post_media_files", "post", id, media); err != nil {
		return 0, err
	}

	if _, err = tx.ExecContext(ctx,
		"UPDATE threads SET last_update = ? WHERE id = ?", formatTime(now), threadID); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}
