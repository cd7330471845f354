// Package associations coordinates the song↔album, song↔artist, and
// song↔genre relations. The album slot is exclusive (assignment overwrites),
// while artist and genre links are set-membership (duplicates are conflicts);
// the store encodes the distinction and this service keeps it visible.
package associations

import (
	"context"
	"errors"
	"fmt"

	"tunecrate/internal/apperr"
	"tunecrate/internal/auth"
	"tunecrate/internal/authz"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

// Store captures the persistence needs for association workflows.
type Store interface {
	SongOwner(ctx context.Context, songID int64) (int64, error)
	AlbumExists(ctx context.Context, albumID int64) (bool, error)
	ArtistByID(ctx context.Context, id int64) (*models.Artist, error)
	GenreByID(ctx context.Context, id int64) (*models.Genre, error)

	AssignSongAlbum(ctx context.Context, songID, albumID int64, trackNumber *int) error
	UnassignSongAlbum(ctx context.Context, songID int64) error
	AddSongArtist(ctx context.Context, songID, artistID int64, role string) error
	RemoveSongArtist(ctx context.Context, songID, artistID int64) error
	AddSongGenre(ctx context.Context, songID, genreID int64) error
	RemoveSongGenre(ctx context.Context, songID, genreID int64) error
}

// Service exposes association mutations, all gated on song ownership.
type Service interface {
	AssignAlbum(ctx context.Context, actor auth.Identity, songID, albumID int64, trackNumber *int) error
	UnassignAlbum(ctx context.Context, actor auth.Identity, songID int64) error
	AddArtist(ctx context.Context, actor auth.Identity, songID, artistID int64, role string) error
	RemoveArtist(ctx context.Context, actor auth.Identity, songID, artistID int64) error
	AddGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error
	RemoveGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error
}

type service struct {
	store Store
}

// New constructs an association Service backed by the provided Store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) AssignAlbum(ctx context.Context, actor auth.Identity, songID, albumID int64, trackNumber *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if trackNumber != nil && *trackNumber <= 0 {
		return apperr.Validationf("track number must be positive")
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	exists, err := s.store.AlbumExists(ctx, albumID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("album", albumID)
	}

	return s.store.AssignSongAlbum(ctx, songID, albumID, trackNumber)
}

func (s *service) UnassignAlbum(ctx context.Context, actor auth.Identity, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	err := s.store.UnassignSongAlbum(ctx, songID)
	if errors.Is(err, store.ErrAlbumLinkNotFound) {
		return &apperr.Error{Kind: apperr.KindNotFound, Resource: "album assignment", ID: songID,
			Message: fmt.Sprintf("song %d has no album assignment", songID)}
	}
	return err
}

func (s *service) AddArtist(ctx context.Context, actor auth.Identity, songID, artistID int64, role string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	if _, err := s.store.ArtistByID(ctx, artistID); err != nil {
		if errors.Is(err, store.ErrArtistNotFound) {
			return apperr.NotFound("artist", artistID)
		}
		return err
	}

	err := s.store.AddSongArtist(ctx, songID, artistID, role)
	if store.IsConflict(err, "") {
		return apperr.Conflict("song artist", artistID,
			fmt.Sprintf("artist %d is already credited on song %d", artistID, songID))
	}
	return err
}

func (s *service) RemoveArtist(ctx context.Context, actor auth.Identity, songID, artistID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	err := s.store.RemoveSongArtist(ctx, songID, artistID)
	if errors.Is(err, store.ErrArtistLinkNotFound) {
		return apperr.NotFound("song artist", artistID)
	}
	return err
}

func (s *service) AddGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	if _, err := s.store.GenreByID(ctx, genreID); err != nil {
		if errors.Is(err, store.ErrGenreNotFound) {
			return apperr.NotFound("genre", genreID)
		}
		return err
	}

	err := s.store.AddSongGenre(ctx, songID, genreID)
	if store.IsConflict(err, "") {
		return apperr.Conflict("song genre", genreID,
			fmt.Sprintf("genre %d is already linked to song %d", genreID, songID))
	}
	return err
}

func (s *service) RemoveGenre(ctx context.Context, actor auth.Identity, songID, genreID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.gateSong(ctx, actor, songID); err != nil {
		return err
	}

	err := s.store.RemoveSongGenre(ctx, songID, genreID)
	if errors.Is(err, store.ErrGenreLinkNotFound) {
		return apperr.NotFound("song genre", genreID)
	}
	return err
}

// gateSong resolves the song's owner and applies the ownership policy.
func (s *service) gateSong(ctx context.Context, actor auth.Identity, songID int64) error {
	owner, err := s.store.SongOwner(ctx, songID)
	if err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return apperr.NotFound("song", songID)
		}
		return err
	}
	if authz.CanMutate(actor, owner, authz.VisibilityPublic) != authz.Allow {
		return apperr.Forbidden("song", songID)
	}
	return nil
}
