package main

import (
	"net/http"

	"tunecrate/internal/app/associations"
	"tunecrate/internal/app/catalog"
	"tunecrate/internal/app/favorites"
	"tunecrate/internal/app/history"
	"tunecrate/internal/app/playlists"
	"tunecrate/internal/app/songs"
	"tunecrate/internal/app/users"
	"tunecrate/internal/auth"
	"tunecrate/internal/http/middleware"
	"tunecrate/internal/httpapi"
	"tunecrate/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, tokens *auth.Manager) http.Handler {
	userSvc := users.New(dataStore, tokens)
	songSvc := songs.New(dataStore)
	catalogSvc := catalog.New(dataStore)
	associationSvc := associations.New(dataStore)
	playlistSvc := playlists.New(dataStore)
	favoritesSvc := favorites.New(dataStore)
	historySvc := history.New(dataStore)

	api := httpapi.New(
		userSvc,
		songSvc,
		catalogSvc,
		associationSvc,
		playlistSvc,
		favoritesSvc,
		historySvc,
		middleware.Authenticate(tokens),
	)

	handler := api.Routes()
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)
	return handler
}
