// Package httpapi wires the HTTP surface to the underlying services. Routing
// uses method patterns on the standard mux; authenticated routes sit behind
// the token middleware, which guarantees an identity in the request context.
package httpapi

import (
	"context"
	"net/http"

	"tunecrate/internal/app/favorites"
	"tunecrate/internal/app/history"
	"tunecrate/internal/auth"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

// UserService captures the account operations needed by the HTTP handlers.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
}

// SongService coordinates track-level operations.
type SongService interface {
	Create(ctx context.Context, actor auth.Identity, song *models.Song) (*models.Song, error)
	Get(ctx context.Context, id int64) (*models.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]models.SongSummary, error)
	Update(ctx context.Context, actor auth.Identity, id int64, song *models.Song) (*models.Song, error)
	Delete(ctx context.Context, actor auth.Identity, id int64) error
}

// CatalogService coordinates the artist, genre, and album aggregates.
type CatalogService interface {
	CreateArtist(ctx context.Context, actor auth.Identity, artist *models.Artist) (*models.Artist, error)
	GetArtist(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context, name string) ([]models.Artist, error)
	UpdateArtist(ctx context.Context, actor auth.Identity, id int64, artist *models.Artist) error
	DeleteArtist(ctx context.Context, actor auth.Identity, id int64) error

	CreateGenre(ctx context.Context, actor auth.Identity, genre *models.Genre) (*models.Genre, error)
	GetGenre(ctx context.Context, id int64) (*models.Genre, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	DeleteGenre(ctx context.Context, actor auth.Identity, id int64) error

	CreateAlbum(ctx context.Context, actor auth.Identity, album *models.Album) (*models.Album, error)
	GetAlbum(ctx context.Context, id int64) (*models.Album, error)
	ListAlbums(ctx context.Context, title string) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, actor auth.Identity, id int64, album *models.Album) error
	DeleteAlbum(ctx context.Context, actor auth.Identity, id int64) error
}

// AssociationService mutates the song's album slot and its artist and genre
// links.
type AssociationService interface {
	AssignAlbum(ctx context.Context, actor auth.Identity, songID, albumID int64, trackNumber *int) error
	UnassignAlbum(ctx context.Context, actor auth.Identity, songID int64) error
	AddArtist(ctx context.Context, actor auth.Identity, songID, artistID int64, role string) error
	RemoveArtist(ctx context.Context, actor auth.Identity, songID, artistID int64) error
	AddGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error
	RemoveGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error
}

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Create(ctx context.Context, actor auth.Identity, name string) (*models.Playlist, error)
	Get(ctx context.Context, actor auth.Identity, id int64) (*models.Playlist, error)
	List(ctx context.Context, actor auth.Identity) ([]*models.Playlist, error)
	Rename(ctx context.Context, actor auth.Identity, id int64, name string) error
	Delete(ctx context.Context, actor auth.Identity, id int64) error
	AddSong(ctx context.Context, actor auth.Identity, playlistID, songID int64, position *int) error
	RemoveSong(ctx context.Context, actor auth.Identity, playlistID, songID int64) error
	Reorder(ctx context.Context, actor auth.Identity, playlistID int64, items []models.PositionUpdate) error
}

// FavoritesService coordinates the actor's favorites collection.
type FavoritesService interface {
	Add(ctx context.Context, userID, songID int64) error
	Remove(ctx context.Context, userID, songID int64) error
	List(ctx context.Context, userID int64, page, pageSize int) (*favorites.Page, error)
}

// HistoryService records and lists listening history.
type HistoryService interface {
	Record(ctx context.Context, userID, songID int64) (*models.Listen, error)
	List(ctx context.Context, userID int64, page, pageSize int) (*history.Page, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users        UserService
	songs        SongService
	catalog      CatalogService
	associations AssociationService
	playlists    PlaylistService
	favorites    FavoritesService
	history      HistoryService
	authn        func(http.Handler) http.Handler
}

// New configures a Server with the given services. authn is the middleware
// that resolves bearer tokens into identities; every mutating route and every
// per-user route runs behind it.
func New(
	users UserService,
	songs SongService,
	catalog CatalogService,
	associations AssociationService,
	playlists PlaylistService,
	favorites FavoritesService,
	history HistoryService,
	authn func(http.Handler) http.Handler,
) *Server {
	return &Server{
		users:        users,
		songs:        songs,
		catalog:      catalog,
		associations: associations,
		playlists:    playlists,
		favorites:    favorites,
		history:      history,
		authn:        authn,
	}
}

// Routes exposes the full HTTP surface.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)

	// The catalog is publicly readable.
	mux.HandleFunc("GET /api/v1/songs", s.handleListSongs)
	mux.HandleFunc("GET /api/v1/songs/{id}", s.handleGetSong)
	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("GET /api/v1/genres", s.handleListGenres)
	mux.HandleFunc("GET /api/v1/genres/{id}", s.handleGetGenre)
	mux.HandleFunc("GET /api/v1/albums", s.handleListAlbums)
	mux.HandleFunc("GET /api/v1/albums/{id}", s.handleGetAlbum)

	// Song CRUD and association links.
	s.protect(mux, "POST /api/v1/songs", s.handleCreateSong)
	s.protect(mux, "PUT /api/v1/songs/{id}", s.handleUpdateSong)
	s.protect(mux, "DELETE /api/v1/songs/{id}", s.handleDeleteSong)
	s.protect(mux, "PUT /api/v1/songs/{id}/album", s.handleAssignAlbum)
	s.protect(mux, "DELETE /api/v1/songs/{id}/album", s.handleUnassignAlbum)
	s.protect(mux, "POST /api/v1/songs/{id}/artists", s.handleAddSongArtist)
	s.protect(mux, "DELETE /api/v1/songs/{id}/artists/{artistID}", s.handleRemoveSongArtist)
	s.protect(mux, "POST /api/v1/songs/{id}/genres", s.handleAddSongGenre)
	s.protect(mux, "DELETE /api/v1/songs/{id}/genres/{genreID}", s.handleRemoveSongGenre)

	// Catalog aggregate mutation.
	s.protect(mux, "POST /api/v1/artists", s.handleCreateArtist)
	s.protect(mux, "PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	s.protect(mux, "DELETE /api/v1/artists/{id}", s.handleDeleteArtist)
	s.protect(mux, "POST /api/v1/genres", s.handleCreateGenre)
	s.protect(mux, "DELETE /api/v1/genres/{id}", s.handleDeleteGenre)
	s.protect(mux, "POST /api/v1/albums", s.handleCreateAlbum)
	s.protect(mux, "PUT /api/v1/albums/{id}", s.handleUpdateAlbum)
	s.protect(mux, "DELETE /api/v1/albums/{id}", s.handleDeleteAlbum)

	// Playlists.
	s.protect(mux, "GET /api/v1/playlists", s.handleListPlaylists)
	s.protect(mux, "POST /api/v1/playlists", s.handleCreatePlaylist)
	s.protect(mux, "GET /api/v1/playlists/{id}", s.handleGetPlaylist)
	s.protect(mux, "PUT /api/v1/playlists/{id}", s.handleRenamePlaylist)
	s.protect(mux, "DELETE /api/v1/playlists/{id}", s.handleDeletePlaylist)
	s.protect(mux, "POST /api/v1/playlists/{id}/songs", s.handleAddPlaylistSong)
	s.protect(mux, "DELETE /api/v1/playlists/{id}/songs/{songID}", s.handleRemovePlaylistSong)
	s.protect(mux, "PUT /api/v1/playlists/{id}/order", s.handleReorderPlaylist)

	// Per-user resources.
	s.protect(mux, "GET /api/v1/me/favorites", s.handleListFavorites)
	s.protect(mux, "POST /api/v1/me/favorites", s.handleAddFavorite)
	s.protect(mux, "DELETE /api/v1/me/favorites/{songID}", s.handleRemoveFavorite)
	s.protect(mux, "GET /api/v1/me/listens", s.handleListListens)
	s.protect(mux, "POST /api/v1/me/listens", s.handleRecordListen)

	return mux
}

func (s *Server) protect(mux *http.ServeMux, pattern string, h http.HandlerFunc) {
	mux.Handle(pattern, s.authn(h))
}
