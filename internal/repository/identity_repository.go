package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutor_desk/internal/model"
	"github.com/Freeeeeet/tutor_desk/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IdentityRepository хранит привязки Telegram-аккаунтов к учителям маркетплейса
type IdentityRepository struct {
	*base.Repository
}

func NewIdentityRepository(pool *pgxpool.Pool) *IdentityRepository {
	return &IdentityRepository{Repository: base.NewRepository(pool)}
}

const identityColumns = `id, telegram_id, chat_id, tutor_id, display_name, api_token, signed_in_at`

func scanIdentity(row pgx.Row) (*model.Identity, error) {
	var identity model.Identity
	err := row.Scan(
		&identity.ID,
		&identity.TelegramID,
		&identity.ChatID,
		&identity.TutorID,
		&identity.DisplayName,
		&identity.APIToken,
		&identity.SignedInAt,
	)
	if err != nil {
		return nil, err
	}
	return &identity, nil
}

// Save создаёт или перезаписывает привязку для telegram_id
func (r *IdentityRepository) Save(ctx context.Context, identity *model.Identity) error {
	query := `
		INSERT INTO tutor_identities (telegram_id, chat_id, tutor_id, display_name, api_token)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET chat_id = EXCLUDED.chat_id,
		    tutor_id = EXCLUDED.tutor_id,
		    display_name = EXCLUDED.display_name,
		    api_token = EXCLUDED.api_token,
		    signed_in_at = NOW()
		RETURNING id, signed_in_at
	`

	err := r.QueryRow(
		ctx, query,
		identity.TelegramID,
		identity.ChatID,
		identity.TutorID,
		identity.DisplayName,
		identity.APIToken,
	).Scan(&identity.ID, &identity.SignedInAt)

	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}

	return nil
}

// GetByTelegramID возвращает nil, nil если учитель не входил
func (r *IdentityRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM tutor_identities WHERE telegram_id = $1`

	identity, err := scanIdentity(r.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity by telegram id: %w", err)
	}

	return identity, nil
}

// ListAll все вошедшие учителя (для фоновой рассылки)
func (r *IdentityRepository) ListAll(ctx context.Context) ([]*model.Identity, error) {
	query := `SELECT ` + identityColumns + ` FROM tutor_identities ORDER BY signed_in_at`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var identities []*model.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		identities = append(identities, identity)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate identities: %w", err)
	}

	return identities, nil
}

// Delete удаляет привязку (выход из аккаунта); отсутствие привязки не ошибка
func (r *IdentityRepository) Delete(ctx context.Context, telegramID int64) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM tutor_identities WHERE telegram_id = $1`, telegramID); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}
