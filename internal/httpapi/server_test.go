package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"tunecrate/internal/apperr"
	"tunecrate/internal/app/favorites"
	"tunecrate/internal/app/history"
	"tunecrate/internal/auth"
	"tunecrate/internal/http/middleware"
	"tunecrate/internal/models"
	"tunecrate/internal/store"
)

type stubVerifier struct{}

func (stubVerifier) Verify(token string) (auth.Identity, error) {
	switch token {
	case "user-token":
		return auth.Identity{UserID: 1}, nil
	case "admin-token":
		return auth.Identity{UserID: 99, Role: auth.RoleAdmin}, nil
	default:
		return auth.Identity{}, errors.New("bad token")
	}
}

type stubUserService struct {
	signupErr error
	loginErr  error
}

func (s *stubUserService) Signup(_ context.Context, username, _ string) (*models.User, error) {
	if s.signupErr != nil {
		return nil, s.signupErr
	}
	return &models.User{ID: 1, Username: username}, nil
}

func (s *stubUserService) Login(context.Context, string, string) (string, *models.User, error) {
	if s.loginErr != nil {
		return "", nil, s.loginErr
	}
	return "user-token", &models.User{ID: 1}, nil
}

type stubPlaylistService struct {
	createResponse *models.Playlist
	createErr      error
	getResponse    *models.Playlist
	getErr         error
	reorderErr     error
	addSongErr     error

	lastReorder []models.PositionUpdate
}

func (s *stubPlaylistService) Create(context.Context, auth.Identity, string) (*models.Playlist, error) {
	return s.createResponse, s.createErr
}

func (s *stubPlaylistService) Get(context.Context, auth.Identity, int64) (*models.Playlist, error) {
	return s.getResponse, s.getErr
}

func (s *stubPlaylistService) List(context.Context, auth.Identity) ([]*models.Playlist, error) {
	return nil, nil
}

func (s *stubPlaylistService) Rename(context.Context, auth.Identity, int64, string) error {
	return nil
}

func (s *stubPlaylistService) Delete(context.Context, auth.Identity, int64) error {
	return nil
}

func (s *stubPlaylistService) AddSong(context.Context, auth.Identity, int64, int64, *int) error {
	return s.addSongErr
}

func (s *stubPlaylistService) RemoveSong(context.Context, auth.Identity, int64, int64) error {
	return nil
}

func (s *stubPlaylistService) Reorder(_ context.Context, _ auth.Identity, _ int64, items []models.PositionUpdate) error {
	s.lastReorder = items
	return s.reorderErr
}

type stubAssociationService struct {
	assignErr    error
	addArtistErr error

	lastAlbumID int64
	lastTrack   *int
}

func (s *stubAssociationService) AssignAlbum(_ context.Context, _ auth.Identity, _, albumID int64, trackNumber *int) error {
	s.lastAlbumID = albumID
	s.lastTrack = trackNumber
	return s.assignErr
}

func (s *stubAssociationService) UnassignAlbum(context.Context, auth.Identity, int64) error {
	return nil
}

func (s *stubAssociationService) AddArtist(context.Context, auth.Identity, int64, int64, string) error {
	return s.addArtistErr
}

func (s *stubAssociationService) RemoveArtist(context.Context, auth.Identity, int64, int64) error {
	return nil
}

func (s *stubAssociationService) AddGenre(context.Context, auth.Identity, int64, int64) error {
	return nil
}

func (s *stubAssociationService) RemoveGenre(context.Context, auth.Identity, int64, int64) error {
	return nil
}

type stubFavoritesService struct {
	addErr error
}

func (s *stubFavoritesService) Add(context.Context, int64, int64) error {
	return s.addErr
}

func (s *stubFavoritesService) Remove(context.Context, int64, int64) error {
	return nil
}

func (s *stubFavoritesService) List(context.Context, int64, int, int) (*favorites.Page, error) {
	return &favorites.Page{}, nil
}

type stubHistoryService struct{}

func (stubHistoryService) Record(context.Context, int64, int64) (*models.Listen, error) {
	return &models.Listen{ID: 1}, nil
}

func (stubHistoryService) List(context.Context, int64, int, int) (*history.Page, error) {
	return &history.Page{}, nil
}

type serverStubs struct {
	users        *stubUserService
	playlists    *stubPlaylistService
	associations *stubAssociationService
	favorites    *stubFavoritesService
}

func newTestServer() (*Server, *serverStubs) {
	stubs := &serverStubs{
		users:        &stubUserService{},
		playlists:    &stubPlaylistService{},
		associations: &stubAssociationService{},
		favorites:    &stubFavoritesService{},
	}
	srv := New(
		stubs.users,
		nil, // songs: not exercised here
		nil, // catalog
		stubs.associations,
		stubs.playlists,
		stubs.favorites,
		stubHistoryService{},
		middleware.Authenticate(stubVerifier{}),
	)
	return srv, stubs
}

func doJSON(t *testing.T, handler http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer()
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodGet, "/api/v1/playlists", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = doJSON(t, routes, http.MethodGet, "/api/v1/playlists", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}
}

func TestCreatePlaylist(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.playlists.createResponse = &models.Playlist{ID: 5, Name: "Road Trip", Kind: models.PlaylistKindUser}
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/playlists", "user-token",
		map[string]string{"name": "Road Trip"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Playlist
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != 5 || got.Name != "Road Trip" {
		t.Fatalf("unexpected playlist: %+v", got)
	}
}

func TestCreatePlaylistDuplicateName(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.playlists.createErr = apperr.Conflict("playlist", 0, "a playlist with that name already exists")
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/playlists", "user-token",
		map[string]string{"name": "Road Trip"})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetPlaylistHiddenFromStrangers(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.playlists.getErr = apperr.NotFound("playlist", 5)
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodGet, "/api/v1/playlists/5", "user-token", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReorderPlaylist(t *testing.T) {
	srv, stubs := newTestServer()
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPut, "/api/v1/playlists/5/order", "user-token",
		map[string]any{"items": []map[string]int64{
			{"song_id": 10, "position": 2},
			{"song_id": 11, "position": 1},
		}})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stubs.playlists.lastReorder) != 2 {
		t.Fatalf("expected 2 reorder items, got %d", len(stubs.playlists.lastReorder))
	}
}

func TestReorderPlaylistUnknownMember(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.playlists.reorderErr = apperr.NotFound("playlist song", 99)
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPut, "/api/v1/playlists/5/order", "user-token",
		map[string]any{"items": []map[string]int64{{"song_id": 99, "position": 1}}})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == "" {
		t.Fatal("expected error detail in response body")
	}
}

func TestReorderPlaylistEmptyBatch(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.playlists.reorderErr = apperr.Validationf("reorder batch is empty")
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPut, "/api/v1/playlists/5/order", "user-token",
		map[string]any{"items": []map[string]int64{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAssignAlbum(t *testing.T) {
	srv, stubs := newTestServer()
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPut, "/api/v1/songs/7/album", "user-token",
		map[string]any{"album_id": 4, "track_number": 3})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if stubs.associations.lastAlbumID != 4 {
		t.Fatalf("expected album 4, got %d", stubs.associations.lastAlbumID)
	}
	if stubs.associations.lastTrack == nil || *stubs.associations.lastTrack != 3 {
		t.Fatalf("unexpected track number: %v", stubs.associations.lastTrack)
	}
}

func TestAddSongArtistDuplicate(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.associations.addArtistErr = apperr.Conflict("song artist", 2, "artist 2 is already credited on song 7")
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/songs/7/artists", "user-token",
		map[string]any{"artist_id": 2})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAddFavoriteForbiddenKindsMap(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.favorites.addErr = apperr.NotFound("song", 404)
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/me/favorites", "user-token",
		map[string]any{"song_id": 404})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.loginErr = store.ErrInvalidCredentials
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"username": "alice", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestSignupValidation(t *testing.T) {
	srv, stubs := newTestServer()
	stubs.users.signupErr = apperr.Validationf("password must be at least 8 characters")
	routes := srv.Routes()

	rec := doJSON(t, routes, http.MethodPost, "/api/v1/auth/signup", "",
		map[string]string{"username": "alice", "password": "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
