package server

import (
	"errors"
	"net/http"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /health", s.handleHealth)

	// Boards.
	mux.HandleFunc("GET /api/v0/board", s.handleListBoards)

	// Threads on a board. The thread listing cannot register as
	// GET /api/v0/{board}/thread: that pattern and the file download
	// pattern both match /api/v0/file/thread with neither more specific,
	// which ServeMux rejects at registration. The listing therefore takes
	// a generic tail and dispatches on it; the literal "file" prefix below
	// is more specific than {board} and takes precedence for downloads.
	mux.HandleFunc("POST /api/v0/{board}/thread", s.handleCreateThread)
	mux.HandleFunc("GET /api/v0/{board}/{op}", s.handleBoardOp)
	mux.HandleFunc("GET /api/v0/{board}/thread/{thread_id}", s.handleGetThread)

	// Posts in a thread.
	mux.HandleFunc("POST /api/v0/{thread_id}/post", s.handleCreatePost)

	// Media download.
	mux.HandleFunc("GET /api/v0/file/{file_id}", s.handleDownloadFile)

	return s.withRequestLogging(mux)
}

func (s *Server) handleBoardOp(w http.ResponseWriter, r *http.Request) {
	if r.PathValue("op") != "thread" {
		s.writeErrorReq(w, r, http.StatusNotFound, errors.New("not found"))
		return
	}
	s.handleListThreads(w, r)
}
