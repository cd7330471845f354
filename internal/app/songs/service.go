// Package songs coordinates song CRUD. Songs are publicly readable; only the
// uploading owner may update or delete them.
package songs

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

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song *models.Song) (*models.Song, error)
	SongByID(ctx context.Context, id int64) (*models.Song, error)
	SongOwner(ctx context.Context, id int64) (int64, error)
	ListSongs(ctx context.Context, filter store.SongFilter) ([]models.SongSummary, error)
	UpdateSong(ctx context.Context, id int64, song *models.Song) error
	DeleteSong(ctx context.Context, id int64) error
}

// Service exposes song-centric operations.
type Service interface {
	Create(ctx context.Context, actor auth.Identity, song *models.Song) (*models.Song, error)
	Get(ctx context.Context, id int64) (*models.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]models.SongSummary, error)
	Update(ctx context.Context, actor auth.Identity, id int64, song *models.Song) (*models.Song, error)
	Delete(ctx context.Context, actor auth.Identity, id int64) error
}

type service struct {
	store Store
}

// New constructs a song Service backed by the provided Store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, song *models.Song) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSong(song); err != nil {
		return nil, err
	}

	song.OwnerUserID = actor.UserID
	return s.store.CreateSong(ctx, song)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	song, err := s.store.SongByID(ctx, id)
	if errors.Is(err, store.ErrSongNotFound) {
		return nil, apperr.NotFound("song", id)
	}
	return song, err
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]models.SongSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListSongs(ctx, filter)
}

func (s *service) Update(ctx context.Context, actor auth.Identity, id int64, song *models.Song) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateSong(song); err != nil {
		return nil, err
	}
	if err := s.gate(ctx, actor, id); err != nil {
		return nil, err
	}

	if err := s.store.UpdateSong(ctx, id, song); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return nil, apperr.NotFound("song", id)
		}
		return nil, err
	}
	return s.store.SongByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gate(ctx, actor, id); err != nil {
		return err
	}

	err := s.store.DeleteSong(ctx, id)
	if errors.Is(err, store.ErrSongNotFound) {
		return apperr.NotFound("song", id)
	}
	return err
}

func (s *service) gate(ctx context.Context, actor auth.Identity, id int64) error {
	owner, err := s.store.SongOwner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return apperr.NotFound("song", id)
		}
		return err
	}
	if authz.CanMutate(actor, owner, authz.VisibilityPublic) != authz.Allow {
		return apperr.Forbidden("song", id)
	}
	return nil
}

func validateSong(song *models.Song) error {
	if song == nil {
		return apperr.Validationf("song is required")
	}
	if strings.TrimSpace(song.Title) == "" {
		return apperr.Validationf("song title is required")
	}
	if strings.TrimSpace(song.MediaURL) == "" {
		return apperr.Validationf("media url is required")
	}
	if song.Duration != nil && *song.Duration <= 0 {
		return apperr.Validationf("duration must be positive")
	}
	return nil
}
