package models

import "time"

// FavoritesList is a user's favorites collection. Exactly one exists per
// user, created lazily on first use.
type FavoritesList struct {
	ID          int64     `json:"id" db:"id"`
	OwnerUserID int64     `json:"owner_user_id" db:"owner_user_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// FavoriteSong is a song's membership in a favorites list.
type FavoriteSong struct {
	SongID  int64     `json:"song_id" db:"song_id"`
	Title   string    `json:"title" db:"title"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}
