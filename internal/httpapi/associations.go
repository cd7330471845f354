package httpapi

import "net/http"

type assignAlbumRequest struct {
	AlbumID     int64 `json:"album_id"`
	TrackNumber *int  `json:"track_number"`
}

type addArtistRequest struct {
	ArtistID int64  `json:"artist_id"`
	Role     string `json:"role"`
}

type addGenreRequest struct {
	GenreID int64 `json:"genre_id"`
}

// handleAssignAlbum sets the song's album slot; a second assignment replaces
// the first, so PUT is the natural verb.
func (s *Server) handleAssignAlbum(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req assignAlbumRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.AssignAlbum(r.Context(), actor, songID, req.AlbumID, req.TrackNumber); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnassignAlbum(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.UnassignAlbum(r.Context(), actor, songID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSongArtist(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req addArtistRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.AddArtist(r.Context(), actor, songID, req.ArtistID, req.Role); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveSongArtist(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	artistID, err := pathID(r, "artistID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.RemoveArtist(r.Context(), actor, songID, artistID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddSongGenre(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}

	var req addGenreRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.AddGenre(r.Context(), actor, songID, req.GenreID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveSongGenre(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(r)
	if !ok {
		http.Error(w, "authorization required", http.StatusUnauthorized)
		return
	}
	songID, err := pathID(r, "id")
	if err != nil {
		respondError(w, r, err)
		return
	}
	genreID, err := pathID(r, "genreID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.associations.RemoveGenre(r.Context(), actor, songID, genreID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
