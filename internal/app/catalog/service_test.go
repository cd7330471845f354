package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunecrate/internal/apperr"
	"tunecrate/internal/auth"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

type fakeStore struct {
	nextID  int64
	artists map[int64]*models.Artist
	genres  map[int64]*models.Genre
	albums  map[int64]*models.Album
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		artists: make(map[int64]*models.Artist),
		genres:  make(map[int64]*models.Genre),
		albums:  make(map[int64]*models.Album),
	}
}

func (f *fakeStore) CreateArtist(_ context.Context, artist *models.Artist) (*models.Artist, error) {
	f.nextID++
	artist.ID = f.nextID
	f.artists[artist.ID] = artist
	return artist, nil
}

func (f *fakeStore) ArtistByID(_ context.Context, id int64) (*models.Artist, error) {
	artist, ok := f.artists[id]
	if !ok {
		return nil, store.ErrArtistNotFound
	}
	return artist, nil
}

func (f *fakeStore) ListArtists(context.Context, string) ([]models.Artist, error) {
	return nil, nil
}

func (f *fakeStore) UpdateArtist(_ context.Context, id int64, artist *models.Artist) error {
	existing, ok := f.artists[id]
	if !ok {
		return store.ErrArtistNotFound
	}
	existing.Name = artist.Name
	existing.Bio = artist.Bio
	return nil
}

func (f *fakeStore) DeleteArtist(_ context.Context, id int64) error {
	if _, ok := f.artists[id]; !ok {
		return store.ErrArtistNotFound
	}
	delete(f.artists, id)
	return nil
}

// CreateGenre mirrors the genres_name_key unique index: names collide
// case-insensitively.
func (f *fakeStore) CreateGenre(_ context.Context, genre *models.Genre) (*models.Genre, error) {
	for _, existing := range f.genres {
		if strings.EqualFold(existing.Name, genre.Name) {
			return nil, store.ErrGenreExists
		}
	}
	f.nextID++
	genre.ID = f.nextID
	f.genres[genre.ID] = genre
	return genre, nil
}

func (f *fakeStore) GenreByID(_ context.Context, id int64) (*models.Genre, error) {
	genre, ok := f.genres[id]
	if !ok {
		return nil, store.ErrGenreNotFound
	}
	return genre, nil
}

func (f *fakeStore) ListGenres(context.Context) ([]models.Genre, error) {
	return nil, nil
}

func (f *fakeStore) DeleteGenre(_ context.Context, id int64) error {
	if _, ok := f.genres[id]; !ok {
		return store.ErrGenreNotFound
	}
	delete(f.genres, id)
	return nil
}

func (f *fakeStore) CreateAlbum(_ context.Context, album *models.Album) (*models.Album, error) {
	f.nextID++
	album.ID = f.nextID
	f.albums[album.ID] = album
	return album, nil
}

func (f *fakeStore) AlbumByID(_ context.Context, id int64) (*models.Album, error) {
	album, ok := f.albums[id]
	if !ok {
		return nil, store.ErrAlbumNotFound
	}
	return album, nil
}

func (f *fakeStore) ListAlbums(context.Context, string) ([]models.Album, error) {
	return nil, nil
}

func (f *fakeStore) UpdateAlbum(_ context.Context, id int64, album *models.Album) error {
	existing, ok := f.albums[id]
	if !ok {
		return store.ErrAlbumNotFound
	}
	existing.Title = album.Title
	return nil
}

func (f *fakeStore) DeleteAlbum(_ context.Context, id int64) error {
	if _, ok := f.albums[id]; !ok {
		return store.ErrAlbumNotFound
	}
	delete(f.albums, id)
	return nil
}

var (
	member = auth.Identity{UserID: 1}
	admin  = auth.Identity{UserID: 9, Role: auth.RoleAdmin}
)

func TestCreateGenreDuplicateNameConflicts(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	_, err := svc.CreateGenre(ctx, member, &models.Genre{Name: "Shoegaze"})
	require.NoError(t, err)

	_, err = svc.CreateGenre(ctx, member, &models.Genre{Name: "shoegaze"})
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateGenreValidation(t *testing.T) {
	svc := New(newFakeStore())

	_, err := svc.CreateGenre(context.Background(), member, &models.Genre{Name: "  "})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestArtistMutationsAreAdminOnly(t *testing.T) {
	fs := newFakeStore()
	artist, err := fs.CreateArtist(context.Background(), &models.Artist{Name: "Nico"})
	require.NoError(t, err)

	svc := New(fs)
	ctx := context.Background()

	err = svc.UpdateArtist(ctx, member, artist.ID, &models.Artist{Name: "Nico", Bio: "updated"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	err = svc.DeleteArtist(ctx, member, artist.ID)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.UpdateArtist(ctx, admin, artist.ID, &models.Artist{Name: "Nico", Bio: "updated"}))
	require.NoError(t, svc.DeleteArtist(ctx, admin, artist.ID))
}

func TestDeleteGenreMissing(t *testing.T) {
	svc := New(newFakeStore())

	err := svc.DeleteGenre(context.Background(), admin, 404)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAlbumLifecycle(t *testing.T) {
	svc := New(newFakeStore())
	ctx := context.Background()

	album, err := svc.CreateAlbum(ctx, member, &models.Album{Title: "Chelsea Girl"})
	require.NoError(t, err)

	err = svc.UpdateAlbum(ctx, member, album.ID, &models.Album{Title: "Renamed"})
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))

	require.NoError(t, svc.UpdateAlbum(ctx, admin, album.ID, &models.Album{Title: "Renamed"}))

	got, err := svc.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
}
