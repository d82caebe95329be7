// Package bills wraps bill operations with payment bookkeeping.
package bills

import (
	"context"
	"fmt"
	"time"

	"github.com/chk2chk/chk2chk/internal/common"
	"github.com/chk2chk/chk2chk/internal/model"
	"github.com/chk2chk/chk2chk/internal/service"
)

// Service provides bill operations on top of the repository.
type Service struct {
	storage service.Storage
}

// NewService creates a bill service backed by the given repository.
func NewService(storage service.Storage) *Service {
	return &Service{storage: storage}
}

// Create persists a new bill.
func (s *Service) Create(ctx context.Context, data model.Bill) (*model.Bill, error) {
	return s.storage.CreateBill(ctx, data)
}

// GetAll returns every bill.
func (s *Service) GetAll(ctx context.Context) ([]model.Bill, error) {
	return s.storage.GetAllBills(ctx)
}

// GetByID returns a bill, or nil if the id is unknown.
func (s *Service) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	return s.storage.GetBillByID(ctx, id)
}

// Update merges the patch onto the stored bill.
func (s *Service) Update(ctx context.Context, id string, patch model.BillPatch) (*model.Bill, error) {
	return s.storage.UpdateBill(ctx, id, patch)
}

// Delete removes a bill. A missing id is not an error.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.storage.DeleteBill(ctx, id)
}

// MarkPaid records a payment: isPaid becomes true and lastPaidDate is set to
// the current instant.
func (s *Service) MarkPaid(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.storage.GetBillByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, fmt.Errorf("bill %s: %w", id, common.ErrNotFound)
	}

	paid := true
	paidDate := time.Now().UTC().Format(time.RFC3339)
	return s.storage.UpdateBill(ctx, id, model.BillPatch{
		IsPaid:       &paid,
		LastPaidDate: &paidDate,
	})
}
