// Package services holds the use-case layer between HTTP handlers and
// the store.
package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

var dateRe = regexp.MustCompile(`^\d{8}$`)

// EntryService orchestrates diary-entry use cases.
type EntryService struct {
	store store.Store
}

func NewEntryService(s store.Store) *EntryService {
	return &EntryService{store: s}
}

func validateDate(date string) error {
	if !dateRe.MatchString(date) {
		return fmt.Errorf("%w: date must be yyyyMMdd, got %q", model.ErrValidation, date)
	}
	return nil
}

func (s *EntryService) Create(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error) {
	if err := validateDate(e.Date); err != nil {
		return nil, err
	}
	return s.store.Entries().Create(ctx, e)
}

// List returns all entries, newest date first.
func (s *EntryService) List(ctx context.Context) ([]*model.DiaryEntry, error) {
	return s.store.Entries().List(ctx)
}

func (s *EntryService) Get(ctx context.Context, entryID string) (*model.DiaryEntry, error) {
	return s.store.Entries().GetByID(ctx, entryID)
}

func (s *EntryService) Update(ctx context.Context, e *model.DiaryEntry) (*model.DiaryEntry, error) {
	if err := validateDate(e.Date); err != nil {
		return nil, err
	}
	return s.store.Entries().Update(ctx, e)
}

func (s *EntryService) Delete(ctx context.Context, entryID string) error {
	return s.store.Entries().Delete(ctx, entryID)
}
