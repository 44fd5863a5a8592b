package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
)

// CreateIdentity persists a fresh identity row for the auth gateway.
func (s *GormStore) CreateIdentity(ctx context.Context, acc *model.Account) error {
	now := time.Now()
	acc.Active = true
	acc.CreatedAt = now
	acc.UpdatedAt = now

	if err := s.db.WithContext(ctx).Create(acc).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return store.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (s *GormStore) FindAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	var acc model.Account
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error; err != nil {
		return nil, translate(err)
	}
	return &acc, nil
}

func (s *GormStore) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	result := s.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *GormStore) CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error {
	token.CreatedAt = time.Now()
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *GormStore) FindResetToken(ctx context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	if err := s.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&token).Error; err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (s *GormStore) RevokeResetToken(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

func (s *GormStore) RevokeResetTokensForAccount(ctx context.Context, accountID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&model.PasswordResetToken{}).
		Where("account_id = ? AND revoked = ?", accountID, false).
		Update("revoked", true).Error
}

var _ store.IdentityStore = (*GormStore)(nil)
