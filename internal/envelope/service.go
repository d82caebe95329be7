// Package envelope enforces the allocation invariant that raw storage does
// not: an envelope's balance always equals allocatedAmount - spentAmount.
package envelope

import (
	"context"
	"fmt"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/service"
)

// Service maintains envelope balances on every mutation. All envelope writes
// should go through it rather than the repository directly.
type Service struct {
	storage service.Storage
}

// NewService creates an envelope service backed by the given repository.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// Create persists a new envelope with its balance derived from the allocated
// and spent amounts. Any caller-supplied balance is discarded.
func (s *Service) Create(ctx context.Context, data model.Envelope) (*model.Envelope, error) {
	data.Balance = data.AllocatedAmount - data.SpentAmount
	return s.storage.CreateEnvelope(ctx, data)
}

// GetAll returns every envelope.
func (s *Service) GetAll(ctx context.Context) ([]model.Envelope, error) {
	return s.storage.GetAllEnvelopes(ctx)
}

// GetByID returns an envelope, or nil if the id is unknown.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Envelope, error) {
	return s.storage.GetEnvelopeByID(ctx, id)
}

// Update merges the patch onto the stored envelope and recomputes the balance
// from the merged allocated/spent values. Balance is always derived, never
// trusted from input.
func (s *Service) Update(ctx context.Context, id string, patch model.EnvelopePatch) (*model.Envelope, error) {
	existing, err := s.storage.GetEnvelopeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("envelope %s: %w", id, common.ErrNotFound)
	}

	allocated := existing.AllocatedAmount
	if patch.AllocatedAmount != nil {
		allocated = *patch.AllocatedAmount
	}
	spent := existing.SpentAmount
	if patch.SpentAmount != nil {
		spent = *patch.SpentAmount
	}

	balance := allocated - spent
	patch.Balance = &balance

	return s.storage.UpdateEnvelope(ctx, id, patch)
}

// Delete removes an envelope. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteEnvelope(ctx, id)
}

// Allocate adds amount to the envelope's allocated funds. The amount may be
// any sign; no floor is enforced here, so a negative allocation can drive the
// balance below zero.
func (s *Service) Allocate(ctx context.Context, id string, amount float64) (*model.Envelope, error) {
	env, err := s.storage.GetEnvelopeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("envelope %s: %w", id, common.ErrNotFound)
	}

	allocated := env.AllocatedAmount + amount
	return s.Update(ctx, id, model.EnvelopePatch{AllocatedAmount: &allocated})
}

// Spend adds amount to the envelope's spent funds. The pre-mutation balance
// is checked first: spending more than the current balance fails with
// common.ErrInsufficientBalance and leaves the envelope untouched.
func (s *Service) Spend(ctx context.Context, id string, amount float64) (*model.Envelope, error) {
	env, err := s.storage.GetEnvelopeByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, fmt.Errorf("envelope %s: %w", id, common.ErrNotFound)
	}

	if env.Balance < amount {
		return nil, fmt.Errorf("envelope %s: %w: balance %.2f, requested %.2f",
			id, common.ErrInsufficientBalance, env.Balance, amount)
	}

	spent := env.SpentAmount + amount
	return s.Update(ctx, id, model.EnvelopePatch{SpentAmount: &spent})
}
