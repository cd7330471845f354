package httpapi

import "net/http"

type addFavoriteRequest struct {
	SongID int64 `json:"song_id"`
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	page, pageSize := pageParams(r)
	result, err := s.favorites.List(r.Context(), actor.UserID, page, pageSize)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req addFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.favorites.Add(r.Context(), actor.UserID, req.SongID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "songID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.favorites.Remove(r.Context(), actor.UserID, songID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
