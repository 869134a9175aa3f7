package server

import (
	"fmt"
	"net/http"
	"strconv"
)

func (s *Server) handleCreateThread(w http.ResponseWriter, r *http.Request) {
	board := r.PathValue("board")

	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBody)
	if err := r.ParseMultipartForm(s.multipartMaxMemory); err != nil {
		s.writeServiceError(w, r, classifyMultipartError(err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	text := r.FormValue("text")
	files, closeFiles, err := formUploads(r.MultipartForm, "files")
	if err != nil {
		s.writeServiceError(w, r, internalError(err))
		return
	}
	defer closeFiles()

	if err := s.threads.Create(r.Context(), board, text, files); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

func (s *Server) handleListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := s.threads.List(r.Context(), r.PathValue("board"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, threads)
}

func (s *Server) handleGetThread(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseID(r.PathValue("thread_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	thread, err := s.threads.Get(r.Context(), r.PathValue("board"), threadID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, thread)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequestCode(fmt.Errorf("invalid thread id %q", raw), ErrCodeInvalidID)
	}
	return id, nil
}
