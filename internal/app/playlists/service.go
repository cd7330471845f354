// Package playlists coordinates playlist CRUD, membership mutation, and the
// atomic reorder transaction, applying the ownership policy before any write.
// Non-owner access to a user playlist reports not-found rather than
// forbidden, so nothing about the playlist's existence leaks.
package playlists

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

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, name, kind string, ownerUserID *int64) (*models.Playlist, error)
	PlaylistByID(ctx context.Context, id int64) (*models.Playlist, error)
	PlaylistMeta(ctx context.Context, id int64) (*models.Playlist, error)
	ListPlaylists(ctx context.Context, userID int64) ([]*models.Playlist, error)
	RenamePlaylist(ctx context.Context, id int64, name string) error
	DeletePlaylist(ctx context.Context, id int64) error
	AddPlaylistSong(ctx context.Context, playlistID, songID int64, position *int) error
	RemovePlaylistSong(ctx context.Context, playlistID, songID int64) error
	ReorderPlaylistSongs(ctx context.Context, playlistID int64, items []models.PositionUpdate) error
	SongOwner(ctx context.Context, songID int64) (int64, error)
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, actor auth.Identity, name string) (*models.Playlist, error)
	Get(ctx context.Context, actor auth.Identity, id int64) (*models.Playlist, error)
	List(ctx context.Context, actor auth.Identity) ([]*models.Playlist, error)
	Rename(ctx context.Context, actor auth.Identity, id int64, name string) error
	Delete(ctx context.Context, actor auth.Identity, id int64) error
	AddSong(ctx context.Context, actor auth.Identity, playlistID, songID int64, position *int) error
	RemoveSong(ctx context.Context, actor auth.Identity, playlistID, songID int64) error
	Reorder(ctx context.Context, actor auth.Identity, playlistID int64, items []models.PositionUpdate) error
}

type service struct {
	store Store
}

// New constructs a playlist Service backed by the provided Store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Create(ctx context.Context, actor auth.Identity, name string) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validationf("playlist name is required")
	}

	owner := actor.UserID
	playlist, err := s.store.CreatePlaylist(ctx, name, models.PlaylistKindUser, &owner)
	if store.IsConflict(err, "") {
		return nil, apperr.Conflict("playlist", 0, "a playlist with that name already exists")
	}
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *service) Get(ctx context.Context, actor auth.Identity, id int64) (*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := s.readGate(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.store.PlaylistByID(ctx, id)
}

func (s *service) List(ctx context.Context, actor auth.Identity) ([]*models.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListPlaylists(ctx, actor.UserID)
}

func (s *service) Rename(ctx context.Context, actor auth.Identity, id int64, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperr.Validationf("playlist name is required")
	}
	if err := s.mutateGate(ctx, actor, id); err != nil {
		return err
	}

	err := s.store.RenamePlaylist(ctx, id, name)
	if store.IsConflict(err, "") {
		return apperr.Conflict("playlist", id, "a playlist with that name already exists")
	}
	if errors.Is(err, store.ErrPlaylistNotFound) {
		return apperr.NotFound("playlist", id)
	}
	return err
}

func (s *service) Delete(ctx context.Context, actor auth.Identity, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.mutateGate(ctx, actor, id); err != nil {
		return err
	}

	err := s.store.DeletePlaylist(ctx, id)
	if errors.Is(err, store.ErrPlaylistNotFound) {
		return apperr.NotFound("playlist", id)
	}
	return err
}

func (s *service) AddSong(ctx context.Context, actor auth.Identity, playlistID, songID int64, position *int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.mutateGate(ctx, actor, playlistID); err != nil {
		return err
	}

	if _, err := s.store.SongOwner(ctx, songID); err != nil {
		if errors.Is(err, store.ErrSongNotFound) {
			return apperr.NotFound("song", songID)
		}
		return err
	}

	err := s.store.AddPlaylistSong(ctx, playlistID, songID, position)
	if store.IsConflict(err, "") {
		return apperr.Conflict("playlist song", songID, "song is already in the playlist")
	}
	return err
}

func (s *service) RemoveSong(ctx context.Context, actor auth.Identity, playlistID, songID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.mutateGate(ctx, actor, playlistID); err != nil {
		return err
	}

	err := s.store.RemovePlaylistSong(ctx, playlistID, songID)
	if errors.Is(err, store.ErrPlaylistSongNotFound) {
		return apperr.NotFound("playlist song", songID)
	}
	return err
}

// Reorder repositions existing members only, as a single atomic unit. The
// batch must be non-empty and free of duplicate song ids; an unknown member
// fails the whole call and leaves every position untouched.
func (s *service) Reorder(ctx context.Context, actor auth.Identity, playlistID int64, items []models.PositionUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(items) == 0 {
		return apperr.Validationf("reorder batch is empty")
	}
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.SongID]; dup {
			return apperr.Validationf("duplicate song %d in reorder batch", item.SongID)
		}
		seen[item.SongID] = struct{}{}
	}

	if err := s.mutateGate(ctx, actor, playlistID); err != nil {
		return err
	}

	err := s.store.ReorderPlaylistSongs(ctx, playlistID, items)
	var unknown *store.UnknownMemberError
	if errors.As(err, &unknown) {
		return apperr.NotFound("playlist song", unknown.SongID)
	}
	return err
}

// readGate checks existence then visibility: a user playlist someone else
// owns reports not-found, so "exists but hidden" is indistinguishable from
// "does not exist".
func (s *service) readGate(ctx context.Context, actor auth.Identity, id int64) (*models.Playlist, error) {
	meta, err := s.meta(ctx, id)
	if err != nil {
		return nil, err
	}
	if authz.CanRead(actor, ownerOf(meta), visibilityOf(meta)) != authz.Allow {
		return nil, apperr.NotFound("playlist", id)
	}
	return meta, nil
}

func (s *service) mutateGate(ctx context.Context, actor auth.Identity, id int64) error {
	meta, err := s.meta(ctx, id)
	if err != nil {
		return err
	}
	switch authz.CanMutate(actor, ownerOf(meta), visibilityOf(meta)) {
	case authz.Allow:
		return nil
	case authz.Hide:
		return apperr.NotFound("playlist", id)
	default:
		return apperr.Forbidden("playlist", id)
	}
}

func (s *service) meta(ctx context.Context, id int64) (*models.Playlist, error) {
	meta, err := s.store.PlaylistMeta(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrPlaylistNotFound) {
			return nil, apperr.NotFound("playlist", id)
		}
		return nil, err
	}
	return meta, nil
}

func ownerOf(p *models.Playlist) int64 {
	if p.OwnerUserID == nil {
		return 0
	}
	return *p.OwnerUserID
}

func visibilityOf(p *models.Playlist) authz.Visibility {
	if p.Kind == models.PlaylistKindUser {
		return authz.VisibilityOwner
	}
	return authz.VisibilityPublic
}
