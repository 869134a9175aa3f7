package server

import (
	"fmt"
	"net/http"
)

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	threadID, err := parseID(r.PathValue("thread_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.uploadMaxBody)
	if err := r.ParseMultipartForm(s.multipartMaxMemory); err != nil {
		s.writeServiceError(w, r, classifyMultipartError(err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	voiceFile, voiceHeader, err := r.FormFile("voice")
	if err != nil {
		s.writeServiceError(w, r, badRequestCode(fmt.Errorf("voice attachment is required"), ErrCodeMissingRequired))
		return
	}
	defer func() {
		_ = voiceFile.Close()
	}()
	voice := Upload{Filename: voiceHeader.Filename, Content: voiceFile}

	files, closeFiles, err := formUploads(r.MultipartForm, "files")
	if err != nil {
		s.writeServiceError(w, r, internalError(err))
		return
	}
	defer closeFiles()

	if err := s.posts.Create(r.Context(), threadID, files, voice); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}
