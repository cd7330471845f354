package httpapi

import (
	"net/http"
	"time"

	"tunecrate/internal/models"
)

type artistRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

type genreRequest struct {
	Name string `json:"name"`
}

type albumRequest struct {
	Title       string     `json:"title"`
	ReleaseDate *time.Time `json:"release_date"`
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req artistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.catalog.CreateArtist(r.Context(), actor, &models.Artist{Name: req.Name, Bio: req.Bio})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetArtist(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	artist, err := s.catalog.GetArtist(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleListArtists(w http.ResponseWriter, r *http.Request) {
	artists, err := s.catalog.ListArtists(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Artists []models.Artist `json:"artists"`
	}{Artists: artists})
}

func (s *Server) handleUpdateArtist(w http.ResponseWriter, r *http.Request) {
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

	var req artistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.catalog.UpdateArtist(r.Context(), actor, id, &models.Artist{Name: req.Name, Bio: req.Bio}); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteArtist(w http.ResponseWriter, r *http.Request) {
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

	if err := s.catalog.DeleteArtist(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateGenre(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req genreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.catalog.CreateGenre(r.Context(), actor, &models.Genre{Name: req.Name})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetGenre(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	genre, err := s.catalog.GetGenre(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, genre)
}

func (s *Server) handleListGenres(w http.ResponseWriter, r *http.Request) {
	genres, err := s.catalog.ListGenres(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Genres []models.Genre `json:"genres"`
	}{Genres: genres})
}

func (s *Server) handleDeleteGenre(w http.ResponseWriter, r *http.Request) {
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

	if err := s.catalog.DeleteGenre(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateAlbum(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}

	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	created, err := s.catalog.CreateAlbum(r.Context(), actor, &models.Album{Title: req.Title, ReleaseDate: req.ReleaseDate})
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetAlbum(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	album, err := s.catalog.GetAlbum(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, album)
}

func (s *Server) handleListAlbums(w http.ResponseWriter, r *http.Request) {
	albums, err := s.catalog.ListAlbums(r.Context(), r.URL.Query().Get("title"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Albums []models.Album `json:"albums"`
	}{Albums: albums})
}

func (s *Server) handleUpdateAlbum(w http.ResponseWriter, r *http.Request) {
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

	var req albumRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.catalog.UpdateAlbum(r.Context(), actor, id, &models.Album{Title: req.Title, ReleaseDate: req.ReleaseDate}); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAlbum(w http.ResponseWriter, r *http.Request) {
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

	if err := s.catalog.DeleteAlbum(r.Context(), actor, id); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
