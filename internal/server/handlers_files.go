package server

import (
	"io"
	"net/http"
)

func (s *Server) handleDownloadFile(w http.ResponseWriter, r *http.Request) {
	content, err := s.files.Open(r.Context(), r.PathValue("file_id"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	defer func() {
		_ = content.Reader.Close()
	}()

	w.Header().Set("Content-Type", content.MediaType)
	if _, err := io.Copy(w, content.Reader); err != nil {
		// Headers are already sent; all we can do is log the broken stream.
		s.log().Error("stream file", "file_id", r.PathValue("file_id"), "error", err)
	}
}
