// Package history records and lists listening-history entries.
package history

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

// Store captures the persistence needs for history workflows.
type Store interface {
	RecordListen(ctx context.Context, userID, songID int64) (*models.Listen, error)
	ListListens(ctx context.Context, userID int64, limit, offset int) ([]models.Listen, int, error)
	SongOwner(ctx context.Context, songID int64) (int64, error)
}

// Page is one page of history plus the total entry count.
type Page struct {
	Listens []models.Listen `json:"listens"`
	Total   int             `json:"total"`
}

// Service exposes listening-history operations.
type Service interface {
	Record(ctx context.Context, userID, songID int64) (*models.Listen, error)
	List(ctx context.Context, userID int64, page, pageSize int) (*Page, error)
}

type service struct {
	store Store
}

// New constructs a history Service backed by the provided Store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Record(ctx context.Context, userID, songID int64) (*models.Listen, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.store.SongOwner(ctx, songID); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return nil, apperr.NotFound("song", songID)
		}
		return nil, err
	}

	return s.store.RecordListen(ctx, userID, songID)
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

	listens, total, err := s.store.ListListens(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Listens: listens, Total: total}, nil
}
