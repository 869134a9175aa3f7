package server

import (
	"context"
	"fmt"
	"time"

	"vboard/internal/store"
)

// PostService orchestrates post creation: the voice recording uploads first,
// then the image attachments, then the transactional write that also bumps
// the parent thread's activity timestamp.
type PostService struct {
	store    store.PostStore
	pipeline *mediaPipeline
	now      func() time.Time
}

// NewPostService constructs a PostService.
func NewPostService(st store.PostStore, pipeline *mediaPipeline) *PostService {
	return &PostService{store: st, pipeline: pipeline, now: time.Now}
}

// Create validates and uploads the voice attachment and image attachments,
// then persists the post. Any validation failure aborts before database work
// starts; blobs already uploaded stay in place.
func (s *PostService) Create(ctx context.Context, threadID int64, files []Upload, voice Upload) error {
	if s == nil || s.store == nil || s.pipeline == nil {
		return internalError(fmt.Errorf("post service is not configured"))
	}
	if threadID <= 0 {
		return badRequestCode(fmt.Errorf("invalid thread id"), ErrCodeInvalidID)
	}

	voiceMedia, err := s.pipeline.uploadAll(ctx, []Upload{voice}, classVoice)
	if err != nil {
		return domainError(err)
	}
	images, err := s.pipeline.uploadAll(ctx, files, classImage)
	if err != nil {
		return domainError(err)
	}

	if _, err := s.store.CreatePost(ctx, threadID, voiceMedia[0].StorageKey, images, s.now()); err != nil {
		return domainError(err)
	}
	return nil
}
