package store

import (
	"context"
	"fmt"
	"time"

	"tunecrate/internal/models"
)

// RecordListen appends a listening-history entry.
func (s *Store) RecordListen(ctx context.Context, userID, songID int64) (*models.Listen, error) {
	var listen models.Listen
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO listens (user_id, song_id, listened_at)
		VALUES ($1, $2, $3)
		RETURNING id, song_id, listened_at
	`, userID, songID, time.Now().UTC()).Scan(&listen.ID, &listen.SongID, &listen.ListenedAt)
	if err != nil {
		return nil, fmt.Errorf("insert listen: %w", err)
	}
	return &listen, nil
}

// ListListens returns a page of the user's history, most recent first, plus
// the total entry count.
func (s *Store) ListListens(ctx context.Context, userID int64, limit, offset int) ([]models.Listen, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM listens
		WHERE user_id = $1
	`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count listens: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT l.id, l.song_id, s.title, l.listened_at
		FROM listens l
		JOIN songs s ON s.id = l.song_id
		WHERE l.user_id = $1
		ORDER BY l.listened_at DESC, l.id DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list listens: %w", err)
	}
	defer rows.Close()

	listens := make([]models.Listen, 0)
	for rows.Next() {
		var listen models.Listen
		if err := rows.Scan(&listen.ID, &listen.SongID, &listen.Title, &listen.ListenedAt); err != nil {
			return nil, 0, fmt.Errorf("scan listen: %w", err)
		}
		listens = append(listens, listen)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate listens: %w", err)
	}
	return listens, total, nil
}
