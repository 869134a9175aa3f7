package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"vboard/internal/models"
)

// CreateThread inserts the thread row and its media rows in one transaction
// and returns the new thread id. The board-existence check runs inside the
// same transaction; a missing board returns models.ErrBoardNotExists with
// nothing persisted.
func (s *Store) CreateThread(ctx context.Context, board, text string, media []models.MediaFile, now time.Time) (_ int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = boardExistsTx(ctx, tx, board); err != nil {
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO threads (text, board, last_update) VALUES (?, ?, ?) RETURNING id",
		text, board, formatTime(now)).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err = insertMediaRowsTx(ctx, tx, "thread_media_files", "thread", id, media); err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListThreads returns a board's threads ordered most-recently-active first.
// Each thread carries its full media list and at most postLimit posts: the
// newest postLimit by id, presented in ascending id order. postLimit <= 0
// means no cap.
func (s *Store) ListThreads(ctx context.Context, board string, postLimit int) ([]models.Thread, error) {
	return s.queryThreads(ctx, board, nil, postLimit)
}

// GetThread returns one thread on a board with full post history. The board
// check runs first, so a bad slug surfaces as models.ErrBoardNotExists even
// when the thread id would match elsewhere.
func (s *Store) GetThread(ctx context.Context, board string, id int64) (*models.Thread, error) {
	threads, err := s.queryThreads(ctx, board, &id, 0)
	if err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, models.ErrThreadNotExists
	}
	return &threads[0], nil
}

// queryThreads is the shared nested read: threads first, then batched media
// and post fetches joined in memory. This keeps the projection at four
// queries total regardless of thread count.
func (s *Store) queryThreads(ctx context.Context, board string, threadID *int64, postLimit int) ([]models.Thread, error) {
	exists, err := s.BoardExists(ctx, board)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrBoardNotExists
	}

	query := "SELECT id, text, board, last_update FROM threads WHERE board = ?"
	args := []any{board}
	if threadID != nil {
		query += " AND id = ?"
		args = append(args, *threadID)
	}
	query += " ORDER BY last_update DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	threads := []models.Thread{}
	for rows.Next() {
		var thread models.Thread
		var lastUpdate string
		if err := rows.Scan(&thread.ID, &thread.Text, &thread.Board, &lastUpdate); err != nil {
			return nil, err
		}
		if thread.LastUpdate, err = parseTime(lastUpdate); err != nil {
			return nil, err
		}
		thread.Media = []models.MediaFile{}
		thread.Posts = []models.Post{}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return threads, nil
	}

	byID := make(map[int64]*models.Thread, len(threads))
	ids := make([]int64, 0, len(threads))
	for i := range threads {
		byID[threads[i].ID] = &threads[i]
		ids = append(ids, threads[i].ID)
	}

	if err := s.attachThreadMedia(ctx, byID, ids); err != nil {
		return nil, err
	}
	if err := s.attachPosts(ctx, byID, ids, postLimit); err != nil {
		return nil, err
	}

	return threads, nil
}

func (s *Store) attachThreadMedia(ctx context.Context, byID map[int64]*models.Thread, ids []int64) error {
	query := "SELECT thread, filename, storage_key FROM thread_media_files WHERE thread IN (" +
		placeholders(len(ids)) + ") ORDER BY rowid ASC"
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var threadID int64
		var media models.MediaFile
		if err := rows.Scan(&threadID, &media.Filename, &media.StorageKey); err != nil {
			return err
		}
		if thread := byID[threadID]; thread != nil {
			thread.Media = append(thread.Media, media)
		}
	}
	return rows.Err()
}

func (s *Store) attachPosts(ctx context.Context, byID map[int64]*models.Thread, ids []int64, postLimit int) error {
	var query string
	args := int64Args(ids)
	if postLimit > 0 {
		// Keep the newest postLimit posts per thread; present them oldest first.
		query = `
SELECT id, thread, voice_message FROM (
  SELECT id, thread, voice_message,
         ROW_NUMBER() OVER (PARTITION BY thread ORDER BY id DESC) AS recency
  FROM posts WHERE thread IN (` + placeholders(len(ids)) + `)
) WHERE recency <= ? ORDER BY id ASC`
		args = append(args, postLimit)
	} else {
		query = "SELECT id, thread, voice_message FROM posts WHERE thread IN (" +
			placeholders(len(ids)) + ") ORDER BY id ASC"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var post models.Post
		if err := rows.Scan(&post.ID, &post.ThreadID, &post.VoiceMessage); err != nil {
			return err
		}
		post.Media = []models.MediaFile{}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil
	}

	postByID := make(map[int64]*models.Post, len(posts))
	postIDs := make([]int64, 0, len(posts))
	for i := range posts {
		postByID[posts[i].ID] = &posts[i]
		postIDs = append(postIDs, posts[i].ID)
	}
	if err := s.attachPostMedia(ctx, postByID, postIDs); err != nil {
		return err
	}

	for i := range posts {
		if thread := byID[posts[i].ThreadID]; thread != nil {
			thread.Posts = append(thread.Posts, posts[i])
		}
	}
	return nil
}

func (s *Store) attachPostMedia(ctx context.Context, byID map[int64]*models.Post, ids []int64) error {
	query := "SELECT post, filename, storage_key FROM post_media_files WHERE post IN (" +
		placeholders(len(ids)) + ") ORDER BY rowid ASC"
	rows, err := s.db.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var media models.MediaFile
		if err := rows.Scan(&postID, &media.Filename, &media.StorageKey); err != nil {
			return err
		}
		if post := byID[postID]; post != nil {
			post.Media = append(post.Media, media)
		}
	}
	return rows.Err()
}

func boardExistsTx(ctx context.Context, tx *sql.Tx, slug string) error {
	var exists int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM boards WHERE slug = ? LIMIT 1", slug).Scan(&exists)
	if err == sql.ErrNoRows {
		return models.ErrBoardNotExists
	}
	return err
}

func insertMediaRowsTx(ctx context.Context, tx *sql.Tx, table, ownerColumn string, ownerID int64, media []models.MediaFile) error {
	for _, m := range media {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO "+table+" ("+ownerColumn+", filename, storage_key) VALUES (?, ?, ?)",
			ownerID, m.Filename, m.StorageKey); err != nil {
			return err
		}
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
