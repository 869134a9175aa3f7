package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"vboard/internal/models"
)

func seedBoard(t *testing.T, st *Store, slug, name string) {
	t.Helper()
	if err := st.EnsureBoard(context.Background(), models.Board{Slug: slug, Name: name}); err != nil {
		t.Fatalf("seed board %s: %v", slug, err)
	}
}

func TestCreateAndGetThread(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	media := []models.MediaFile{
		{Filename: "cat.png", StorageKey: "aaa.png"},
		{Filename: "dog.jpg", StorageKey: "bbb.jpg"},
	}
	id, err := st.CreateThread(ctx, "b", "first thread", media, time.Now())
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}
	if id <= 0 {
		t.Fatalf("expected positive thread id, got %d", id)
	}

	thread, err := st.GetThread(ctx, "b", id)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if thread.Text != "first thread" {
		t.Fatalf("expected text 'first thread', got %q", thread.Text)
	}
	if len(thread.Media) != 2 {
		t.Fatalf("expected 2 media files, got %d", len(thread.Media))
	}
	if thread.Media[0].Filename != "cat.png" || thread.Media[0].StorageKey != "aaa.png" {
		t.Fatalf("unexpected first media: %#v", thread.Media[0])
	}
	if len(thread.Posts) != 0 {
		t.Fatalf("expected no posts, got %d", len(thread.Posts))
	}
}

func TestCreateThreadUnknownBoard(t *testing.T) {
	st := testStore(t)

	_, err := st.CreateThread(context.Background(), "nope", "text", nil, time.Now())
	if !errors.Is(err, models.ErrBoardNotExists) {
		t.Fatalf("expected ErrBoardNotExists, got %v", err)
	}
}

func TestListThreadsOrderedByActivity(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	first, err := st.CreateThread(ctx, "b", "older", nil, base)
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := st.CreateThread(ctx, "b", "newer", nil, base.Add(time.Minute))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	threads, err := st.ListThreads(ctx, "b", 3)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if len(threads) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(threads))
	}
	if threads[0].ID != second || threads[1].ID != first {
		t.Fatalf("expected order [%d %d], got [%d %d]", second, first, threads[0].ID, threads[1].ID)
	}

	// A post on the older thread moves it to the front.
	if _, err := st.CreatePost(ctx, first, "voice.mp3", nil, base.Add(2*time.Minute)); err != nil {
		t.Fatalf("create post: %v", err)
	}
	threads, err = st.ListThreads(ctx, "b", 3)
	if err != nil {
		t.Fatalf("list threads after post: %v", err)
	}
	if threads[0].ID != first {
		t.Fatalf("expected thread %d first after reply, got %d", first, threads[0].ID)
	}
}

func TestListThreadsPostPreviewCap(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	threadID, err := st.CreateThread(ctx, "b", "busy thread", nil, now)
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	postIDs := make([]int64, 0, 5)
	for i := 0; i < 5; i++ {
		id, err := st.CreatePost(ctx, threadID, fmt.Sprintf("voice-%d.mp3", i), nil, now.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
		postIDs = append(postIDs, id)
	}

	threads, err := st.ListThreads(ctx, "b", 3)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if len(threads) != 1 {
		t.Fatalf("expected 1 thread, got %d", len(threads))
	}
	posts := threads[0].Posts
	if len(posts) != 3 {
		t.Fatalf("expected 3 preview posts, got %d", len(posts))
	}
	// The newest three, oldest of them first.
	for i, want := range postIDs[2:] {
		if posts[i].ID != want {
			t.Fatalf("expected post id %d at %d, got %d", want, i, posts[i].ID)
		}
	}

	// The single-thread view has no cap.
	thread, err := st.GetThread(ctx, "b", threadID)
	if err != nil {
		t.Fatalf("get thread: %v", err)
	}
	if len(thread.Posts) != 5 {
		t.Fatalf("expected full post history of 5, got %d", len(thread.Posts))
	}
	for i, want := range postIDs {
		if thread.Posts[i].ID != want {
			t.Fatalf("expected post id %d at %d, got %d", want, i, thread.Posts[i].ID)
		}
	}
}

func TestListThreadsUnknownBoard(t *testing.T) {
	st := testStore(t)

	_, err := st.ListThreads(context.Background(), "nope", 3)
	if !errors.Is(err, models.ErrBoardNotExists) {
		t.Fatalf("expected ErrBoardNotExists, got %v", err)
	}
}

func TestGetThreadNotFound(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	_, err := st.GetThread(ctx, "b", 42)
	if !errors.Is(err, models.ErrThreadNotExists) {
		t.Fatalf("expected ErrThreadNotExists, got %v", err)
	}
}

func TestGetThreadScopedToBoard(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")
	seedBoard(t, st, "mu", "Music")

	id, err := st.CreateThread(ctx, "b", "on b", nil, time.Now())
	if err != nil {
		t.Fatalf("create thread: %v", err)
	}

	// The thread exists, but not on this board.
	_, err = st.GetThread(ctx, "mu", id)
	if !errors.Is(err, models.ErrThreadNotExists) {
		t.Fatalf("expected ErrThreadNotExists, got %v", err)
	}
}

func TestListThreadsEmptyBoard(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	seedBoard(t, st, "b", "Random")

	threads, err := st.ListThreads(ctx, "b", 3)
	if err != nil {
		t.Fatalf("list threads: %v", err)
	}
	if threads == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(threads) != 0 {
		t.Fatalf("expected no threads, got %d", len(threads))
	}
}
