package models

import "time"

// User is an account. The password hash never leaves the store layer.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Role      string    `json:"role,omitempty" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Listen is one listening-history entry.
type Listen struct {
	ID         int64     `json:"id" db:"id"`
	SongID     int64     `json:"song_id" db:"song_id"`
	Title      string    `json:"title" db:"title"`
	ListenedAt time.Time `json:"listened_at" db:"listened_at"`
}
