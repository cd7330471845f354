package httpapi

import "net/http"

type recordListenRequest struct {
	SongID int64 `json:"song_id"`
}

func (s *Server) handleRecordListen(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req recordListenRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	listen, err := s.history.Record(r.Context(), actor.UserID, req.SongID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, listen)
}

func (s *Server) handleListListens(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	page, pageSize := pageParams(r)
	result, err := s.history.List(r.Context(), actor.UserID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
