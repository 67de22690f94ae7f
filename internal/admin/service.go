package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/sparcsup/auth-service/internal/entry"
)

// ErrInvalidInput is returned when a request fails boundary validation.
var ErrInvalidInput = errors.New("invalid admin input")

// Service translates admin-shaped requests into versioned entry operations.
type Service struct {
	repo entry.Repository
}

// NewService creates a new Service.
func NewService(repo entry.Repository) *Service {
	return &Service{repo: repo}
}

// CreateAdmin stores a new admin record keyed by the provider subject id.
func (s *Service) CreateAdmin(ctx context.Context, sub string, in CreateInput, actor string) (*Admin, error) {
	if sub == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: subject id and email are required", ErrInvalidInput)
	}

	e, err := s.repo.Create(ctx, EntityType, sub, in.data(), actor)
	if err != nil {
		return nil, err
	}
	return fromEntry(e), nil
}

// GetAdmin retrieves one admin record by entry id.
func (s *Service) GetAdmin(ctx context.Context, entryID string) (*Admin, error) {
	e, err := s.repo.Get(ctx, EntityType, entryID)
	if err != nil {
		return nil, err
	}
	return fromEntry(e), nil
}

// ListAdmins retrieves all active admin records.
func (s *Service) ListAdmins(ctx context.Context) ([]*Admin, error) {
	entries, err := s.repo.List(ctx, EntityType)
	if err != nil {
		return nil, err
	}
	admins := make([]*Admin, len(entries))
	for i, e := range entries {
		admins[i] = fromEntry(e)
	}
	return admins, nil
}

// UpdateAdmin applies a partial update to an admin record. A patch that
// changes nothing returns the current record without writing.
func (s *Service) UpdateAdmin(ctx context.Context, entryID string, patch Patch, actor string) (*Admin, error) {
	e, err := s.repo.Get(ctx, EntityType, entryID)
	if err != nil {
		return nil, err
	}

	updated, _, err := s.repo.Update(ctx, e, patch.data(), actor)
	if err != nil {
		return nil, err
	}
	return fromEntry(updated), nil
}

// DeleteAdmin soft-deletes an admin record, preserving the audit trail.
func (s *Service) DeleteAdmin(ctx context.Context, entryID, actor string) error {
	e, err := s.repo.Get(ctx, EntityType, entryID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, e, actor)
}
