package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutor_desk/internal/repository/base"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DigestRepository какие срочные запросы уже попали в рассылку учителю
type DigestRepository struct {
	*base.Repository
}

func NewDigestRepository(pool *pgxpool.Pool) *DigestRepository {
	return &DigestRepository{Repository: base.NewRepository(pool)}
}

// Seen возвращает подмножество requestIDs, о которых учитель уже знает
func (r *DigestRepository) Seen(ctx context.Context, tutorID string, requestIDs []string) (map[string]bool, error) {
	seen := make(map[string]bool, len(requestIDs))
	if len(requestIDs) == 0 {
		return seen, nil
	}

	query := `
		SELECT request_id
		FROM digest_notifications
		WHERE tutor_id = $1 AND request_id = ANY($2)
	`

	rows, err := r.Query(ctx, query, tutorID, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("query digest notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan digest notification: %w", err)
		}
		seen[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate digest notifications: %w", err)
	}

	return seen, nil
}

// Mark запоминает отправленные запросы; повторная отметка ничего не меняет
func (r *DigestRepository) Mark(ctx context.Context, tutorID string, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO digest_notifications (tutor_id, request_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (tutor_id, request_id) DO NOTHING
	`

	if _, err := r.ExecAffected(ctx, query, tutorID, requestIDs); err != nil {
		return fmt.Errorf("mark digest notifications: %w", err)
	}
	return nil
}

// Prune удаляет отметки старше before, возвращает сколько удалено
func (r *DigestRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM digest_notifications WHERE notified_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("prune digest notifications: %w", err)
	}
	return affected, nil
}
