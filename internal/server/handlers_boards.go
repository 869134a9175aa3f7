package server

import "net/http"

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	boards, err := s.boards.List(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, boards)
}
