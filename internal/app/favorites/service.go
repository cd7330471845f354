// Package favorites coordinates the lazily provisioned favorites collection
// and its membership. Every operation resolves the actor's own list; there
// is no cross-user access to favorites.
package favorites

import (
	"context"
	"errors"

	"tunecrate/internal/apperr"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Store defines persistence operations required for favorites workflows.
type Store interface {
	FavoritesListForUser(ctx context.Context, userID int64) (*models.FavoritesList, error)
	AddFavorite(ctx context.Context, listID, songID int64) error
	RemoveFavorite(ctx context.Context, listID, songID int64) error
	ListFavorites(ctx context.Context, listID int64, limit, offset int) ([]models.FavoriteSong, int, error)
	SongOwner(ctx context.Context, songID int64) (int64, error)
}

// Page is one page of favorites plus the total membership count.
type Page struct {
	Songs []models.FavoriteSong `json:"songs"`
	Total int                   `json:"total"`
}

// Service describes high level favorites operations used by HTTP handlers.
type Service interface {
	Add(ctx context.Context, userID, songID int64) error
	Remove(ctx context.Context, userID, songID int64) error
	List(ctx context.Context, userID int64, page, pageSize int) (*Page, error)
}

type service struct {
	store Store
}

// New constructs a favorites Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Add(ctx context.Context, userID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.store.SongOwner(ctx, songID); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return apperr.NotFound("song", songID)
		}
		return err
	}

	list, err := s.store.FavoritesListForUser(ctx, userID)
	if err != nil {
		return err
	}

	err = s.store.AddFavorite(ctx, list.ID, songID)
	if store.IsConflict(err, "") {
		return apperr.Conflict("favorite", songID, "song is already a favorite")
	}
	return err
}

func (s *service) Remove(ctx context.Context, userID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	list, err := s.store.FavoritesListForUser(ctx, userID)
	if err != nil {
		return err
	}

	err = s.store.RemoveFavorite(ctx, list.ID, songID)
	if errors.Is(err, store.ErrFavoriteNotFound) {
		return apperr.NotFound("favorite", songID)
	}
	return err
}

func (s *service) List(ctx context.Context, userID int64, page, pageSize int) (*Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	list, err := s.store.FavoritesListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	songs, total, err := s.store.ListFavorites(ctx, list.ID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Songs: songs, Total: total}, nil
}
