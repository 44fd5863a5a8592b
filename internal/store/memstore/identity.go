package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ethiowork-backend/internal/model"
	"ethiowork-backend/internal/store"
)

// CreateIdentity persists a fresh identity record.
func (s *MemStore) CreateIdentity(_ context.Context, acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == acc.Email {
			return store.ErrDuplicateEmail
		}
	}

	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	now := time.Now()
	acc.Active = true
	acc.CreatedAt = now
	acc.UpdatedAt = now

	cp := *acc
	s.accounts[acc.ID] = &cp
	return nil
}

func (s *MemStore) FindAccountByEmail(_ context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.Email == email {
			cp := *acc
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *MemStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return store.ErrNotFound
	}
	acc.PasswordHash = passwordHash
	acc.UpdatedAt = time.Now()
	return nil
}

func (s *MemStore) CreateResetToken(_ context.Context, token *model.PasswordResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextResetTokenID++
	token.ID = s.nextResetTokenID
	token.CreatedAt = time.Now()
	s.resetTokens[token.TokenHash] = *token
	return nil
}

func (s *MemStore) FindResetToken(_ context.Context, tokenHash string) (*model.PasswordResetToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, ok := s.resetTokens[tokenHash]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &token, nil
}

func (s *MemStore) RevokeResetToken(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, token := range s.resetTokens {
		if token.ID == id {
			token.Revoked = true
			s.resetTokens[hash] = token
		}
	}
	return nil
}

func (s *MemStore) RevokeResetTokensForAccount(_ context.Context, accountID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, token := range s.resetTokens {
		if token.AccountID == accountID {
			token.Revoked = true
			s.resetTokens[hash] = token
		}
	}
	return nil
}

var _ store.IdentityStore = (*MemStore)(nil)
