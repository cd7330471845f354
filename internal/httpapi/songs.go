package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

type songRequest struct {
	Title       string     `json:"title"`
	Duration    *int       `json:"duration"`
	MediaURL    string     `json:"media_url"`
	ReleaseDate *time.Time `json:"release_date"`
}

func (req songRequest) toModel() *models.Song {
	return &models.Song{
		Title:       req.Title,
		Duration:    req.Duration,
		MediaURL:    req.MediaURL,
		ReleaseDate: req.ReleaseDate,
	}
}

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req songRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.songs.Create(r.Context(), actor, req.toModel())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	song, err := s.songs.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, song)
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.SongFilter{Title: query.Get("title")}

	for param, dst := range map[string]*int64{
		"owner":  &filter.OwnerUserID,
		"artist": &filter.ArtistID,
		"genre":  &filter.GenreID,
	} {
		raw := query.Get(param)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + param + " parameter"})
			return
		}
		*dst = value
	}
	page, pageSize := pageParams(r)
	if pageSize > 0 {
		filter.Limit = pageSize
		if page > 1 {
			filter.Offset = (page - 1) * pageSize
		}
	}

	songs, err := s.songs.List(r.Context(), filter)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []models.SongSummary `json:"songs"`
	}{Songs: songs})
}

func (s *Server) handleUpdateSong(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req songRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	updated, err := s.songs.Update(r.Context(), actor, id, req.toModel())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.songs.Delete(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
