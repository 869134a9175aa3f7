package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"vboard/internal/models"
)

func TestCreatePost(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	threadID, err := st.CreateThread(ctx, "b", "thread", nil, now)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	media := []models.MediaFile{{Filename: "pic.jpeg", StorageKey: "ccc.jpeg"}}
	postID, err := st.CreatePost(ctx, threadID, "ddd.mp3", media, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	if postID <= 0 {
		t.Fatalf("expected positive post id, got %d", postID)
	}

	thread, err := st.GetThread(ctx, "b", threadID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if len(thread.Posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(thread.Posts))
	}
	post := thread.Posts[0]
	if post.VoiceMessage != "ddd.mp3" {
		t.Fatalf("expected voice key ddd.mp3, got %q", post.VoiceMessage)
	}
	if len(post.Media) != 1 || post.Media[0].StorageKey != "ccc.jpeg" {
		t.Fatalf("unexpected post media: %#v", post.Media)
	}
}

func TestCreatePostBumpsLastUpdate(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	threadID, err := st.CreateThread(ctx, "b", "thread", nil, created)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	bumped := created.Add(time.Hour)
	if _, err := st.CreatePost(ctx, threadID, "voice.mp3", nil, bumped); err != nil {
		t.Fatalf("create post: %v", err)
	}

	thread, err := st.GetThread(ctx, "b", threadID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if !thread.LastUpdate.Equal(bumped) {
		t.Fatalf("expected last_update %v, got %v", bumped, thread.LastUpdate)
	}
}

func TestCreatePostUnknownThread(t *testing.T) {
	st := testStore(t)

	_, err := st.CreatePost(context.Background(), 999, "voice.mp3", nil, time.Now())
	if !errors.Is(err, models.ErrThreadNotExists) {
		t.Fatalf("expected ErrThreadNotExists, got %v", err)
	}
}
