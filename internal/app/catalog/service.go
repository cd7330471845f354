// Package catalog coordinates the artist, genre, and album aggregates. They
// have independent lifecycles: any authenticated user may create them, while
// update and delete are reserved to admins since nothing owns them.
package catalog

import (
	"context"
	"errors"
	"strings"

	"tunecrate/internal/apperr"
	"tunecrate/internal/auth"
	"tunecrate/internal/authz"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

// Store captures the persistence needs for catalog workflows.
type Store interface {
	CreateArtist(ctx context.Context, artist *models.Artist) (*models.Artist, error)
	ArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	ListArtists(ctx context.Context, name string) ([]models.Artist, error)
	UpdateArtist(ctx context.Context, id int64, artist *models.Artist) error
	DeleteArtist(ctx context.Context, id int64) error

	CreateGenre(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	GenreByID(ctx context.Context, id int64) (*models.Genre, error)
	ListGenres(ctx context.Context) ([]models.Genre, error)
	DeleteGenre(ctx context.Context, id int64) error

	CreateAlbum(ctx context.Context, album *models.Album) (*models.Album, error)
	AlbumByID(ctx context.Context, id int64) (*models.Album, error)
	ListAlbums(ctx context.Context, title string) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id int64, album *models.Album) error
	DeleteAlbum(ctx context.Context, id int64) error
}

// Service exposes catalog aggregate operations.
type Service interface {
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

type service struct {
	store Store
}

// New constructs a catalog Service backed by the provided Store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) CreateArtist(ctx context.Context, actor auth.Identity, artist *models.Artist) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if artist == nil || strings.TrimSpace(artist.Name) == "" {
		return nil, apperr.Validationf("artist name is required")
	}
	return s.store.CreateArtist(ctx, artist)
}

func (s *service) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artist, err := s.store.ArtistByID(ctx, id)
	if errors.Is(err, store.ErrArtistNotFound) {
		return nil, apperr.NotFound("artist", id)
	}
	return artist, err
}

func (s *service) ListArtists(ctx context.Context, name string) ([]models.Artist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListArtists(ctx, name)
}

func (s *service) UpdateArtist(ctx context.Context, actor auth.Identity, id int64, artist *models.Artist) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if artist == nil || strings.TrimSpace(artist.Name) == "" {
		return apperr.Validationf("artist name is required")
	}
	if err := adminGate(actor, "artist", id); err != nil {
		return err
	}

	err := s.store.UpdateArtist(ctx, id, artist)
	if errors.Is(err, store.ErrArtistNotFound) {
		return apperr.NotFound("artist", id)
	}
	return err
}

func (s *service) DeleteArtist(ctx context.Context, actor auth.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := adminGate(actor, "artist", id); err != nil {
		return err
	}

	err := s.store.DeleteArtist(ctx, id)
	if errors.Is(err, store.ErrArtistNotFound) {
		return apperr.NotFound("artist", id)
	}
	return err
}

func (s *service) CreateGenre(ctx context.Context, actor auth.Identity, genre *models.Genre) (*models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if genre == nil || strings.TrimSpace(genre.Name) == "" {
		return nil, apperr.Validationf("genre name is required")
	}

	created, err := s.store.CreateGenre(ctx, genre)
	if errors.Is(err, store.ErrGenreExists) {
		return nil, apperr.Conflict("genre", 0, "genre name already exists")
	}
	return created, err
}

func (s *service) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	genre, err := s.store.GenreByID(ctx, id)
	if errors.Is(err, store.ErrGenreNotFound) {
		return nil, apperr.NotFound("genre", id)
	}
	return genre, err
}

func (s *service) ListGenres(ctx context.Context) ([]models.Genre, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListGenres(ctx)
}

func (s *service) DeleteGenre(ctx context.Context, actor auth.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := adminGate(actor, "genre", id); err != nil {
		return err
	}

	err := s.store.DeleteGenre(ctx, id)
	if errors.Is(err, store.ErrGenreNotFound) {
		return apperr.NotFound("genre", id)
	}
	return err
}

func (s *service) CreateAlbum(ctx context.Context, actor auth.Identity, album *models.Album) (*models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if album == nil || strings.TrimSpace(album.Title) == "" {
		return nil, apperr.Validationf("album title is required")
	}
	return s.store.CreateAlbum(ctx, album)
}

func (s *service) GetAlbum(ctx context.Context, id int64) (*models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	album, err := s.store.AlbumByID(ctx, id)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return nil, apperr.NotFound("album", id)
	}
	return album, err
}

func (s *service) ListAlbums(ctx context.Context, title string) ([]models.Album, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListAlbums(ctx, title)
}

func (s *service) UpdateAlbum(ctx context.Context, actor auth.Identity, id int64, album *models.Album) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if album == nil || strings.TrimSpace(album.Title) == "" {
		return apperr.Validationf("album title is required")
	}
	if err := adminGate(actor, "album", id); err != nil {
		return err
	}

	err := s.store.UpdateAlbum(ctx, id, album)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return apperr.NotFound("album", id)
	}
	return err
}

func (s *service) DeleteAlbum(ctx context.Context, actor auth.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := adminGate(actor, "album", id); err != nil {
		return err
	}

	err := s.store.DeleteAlbum(ctx, id)
	if errors.Is(err, store.ErrAlbumNotFound) {
		return apperr.NotFound("album", id)
	}
	return err
}

func adminGate(actor auth.Identity, resource string, id int64) error {
	if authz.CanMutate(actor, 0, authz.VisibilityPublic) != authz.Allow {
		return apperr.Forbidden(resource, id)
	}
	return nil
}
