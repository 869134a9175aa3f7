package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vboard/internal/api"
	"vboard/internal/models"
	"vboard/internal/store"
)

// ThreadService orchestrates thread creation and the nested board reads.
type ThreadService struct {
	store        store.ThreadStore
	pipeline     *mediaPipeline
	previewLimit int
	now          func() time.Time
}

// NewThreadService constructs a ThreadService. previewLimit caps the posts
// returned per thread in the board listing.
func NewThreadService(st store.ThreadStore, pipeline *mediaPipeline, previewLimit int) *ThreadService {
	return &ThreadService{store: st, pipeline: pipeline, previewLimit: previewLimit, now: time.Now}
}

// Create uploads the image attachments, then persists the thread row and its
// media rows in one transaction. Blobs uploaded before a failed board check
// stay in place.
func (s *ThreadService) Create(ctx context.Context, board, text string, files []Upload) error {
	if s == nil || s.store == nil || s.pipeline == nil {
		return internalError(fmt.Errorf("thread service is not configured"))
	}
	board, err := normalizeBoardSlug(board)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return badRequestCode(fmt.Errorf("text is required"), ErrCodeMissingRequired)
	}

	media, err := s.pipeline.uploadAll(ctx, files, classImage)
	if err != nil {
		return domainError(err)
	}
	if _, err := s.store.CreateThread(ctx, board, text, media, s.now()); err != nil {
		return domainError(err)
	}
	return nil
}

// List returns the board's threads, most recently active first, each with
// its media and a capped post preview.
func (s *ThreadService) List(ctx context.Context, board string) ([]api.Thread, error) {
	if s == nil || s.store == nil {
		return nil, internalError(fmt.Errorf("thread service is not configured"))
	}
	board, err := normalizeBoardSlug(board)
	if err != nil {
		return nil, err
	}

	threads, err := s.store.ListThreads(ctx, board, s.previewLimit)
	if err != nil {
		return nil, domainError(err)
	}
	out := make([]api.Thread, 0, len(threads))
	for i := range threads {
		out = append(out, toAPIThread(&threads[i]))
	}
	return out, nil
}

// Get returns one thread with full post history.
func (s *ThreadService) Get(ctx context.Context, board string, id int64) (api.Thread, error) {
	var zero api.Thread
	if s == nil || s.store == nil {
		return zero, internalError(fmt.Errorf("thread service is not configured"))
	}
	board, err := normalizeBoardSlug(board)
	if err != nil {
		return zero, err
	}
	if id <= 0 {
		return zero, badRequestCode(fmt.Errorf("invalid thread id"), ErrCodeInvalidID)
	}

	thread, err := s.store.GetThread(ctx, board, id)
	if err != nil {
		return zero, domainError(err)
	}
	return toAPIThread(thread), nil
}

func normalizeBoardSlug(board string) (string, error) {
	board = strings.TrimSpace(board)
	if board == "" || len(board) > models.MaxSlugLen {
		return "", badRequestCode(fmt.Errorf("invalid board slug"), ErrCodeInvalidID)
	}
	return board, nil
}

func toAPIThread(thread *models.Thread) api.Thread {
	posts := make([]api.Post, 0, len(thread.Posts))
	for i := range thread.Posts {
		post := &thread.Posts[i]
		posts = append(posts, api.Post{
			ID:           post.ID,
			VoiceMessage: post.VoiceMessage,
			Media:        toAPIMedia(post.Media),
		})
	}
	return api.Thread{
		ID:    thread.ID,
		Text:  thread.Text,
		Media: toAPIMedia(thread.Media),
		Posts: posts,
	}
}

func toAPIMedia(media []models.MediaFile) []api.Media {
	out := make([]api.Media, 0, len(media))
	for _, m := range media {
		out = append(out, api.Media{FileID: m.StorageKey, Filename: m.Filename})
	}
	return out
}
