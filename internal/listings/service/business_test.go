package service

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	listingserrors "tourism/internal/listings/errors"
	"tourism/internal/listings/validator"
	"tourism/pkg/model"
)

type mockBusinessRepository struct {
	businesses map[string]*model.Business
}

func (m *mockBusinessRepository) Create(ctx context.Context, b *model.Business) error {
	b.ID = fmt.Sprintf("%024x", len(m.businesses)+100)
	m.businesses[b.ID] = b
	return nil
}

func (m *mockBusinessRepository) FindByID(ctx context.Context, id string) (*model.Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, listingserrors.ErrBusinessNotFound
	}
	copied := *b
	return &copied, nil
}

func (m *mockBusinessRepository) FindAll(ctx context.Context, filter model.ListingFilter, limit int, offset int64) ([]*model.Business, error) {
	out := []*model.Business{}
	for _, b := range m.businesses {
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBusinessRepository) Count(ctx context.Context, filter model.ListingFilter) (int64, error) {
	return int64(len(m.businesses)), nil
}

func (m *mockBusinessRepository) Update(ctx context.Context, id string, b *model.Business) error {
	m.businesses[id] = b
	return nil
}

func TestBusinessCreate(t *testing.T) {
	cfg := testConfig()
	repo := &mockBusinessRepository{businesses: map[string]*model.Business{}}
	svc := NewBusinessService(repo, validator.NewListingValidator(cfg.Log), cfg)

	base := model.Business{Name: "Riad Dar", Category: "Riad", City: "Fes", AverageRating: 5}

	b := base
	if err := svc.Create(context.Background(), model.Actor{ID: "c1", Role: model.RoleCustomer}, &b); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}

	b = base
	if err := svc.Create(context.Background(), model.Actor{ID: "o1", Role: model.RoleBusinessOwner}, &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.OwnerID != "o1" || b.Category != "riad" || b.AverageRating != 0 {
		t.Errorf("unexpected business after create: %+v", b)
	}
}

func TestBusinessUpdate_OwnerOrAdmin(t *testing.T) {
	cfg := testConfig()
	repo := &mockBusinessRepository{businesses: map[string]*model.Business{
		testBusinessID: {ID: testBusinessID, OwnerID: "o1", Name: "Riad Dar", Category: "riad", City: "Fes"},
	}}
	svc := NewBusinessService(repo, validator.NewListingValidator(cfg.Log), cfg)
	city := "Rabat"

	if _, err := svc.Update(context.Background(), model.Actor{ID: "o2", Role: model.RoleBusinessOwner}, testBusinessID, &model.BusinessUpdate{City: &city}); statusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
	updated, err := svc.Update(context.Background(), model.Actor{ID: "a", Role: model.RoleAdmin}, testBusinessID, &model.BusinessUpdate{City: &city})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.City != "Rabat" {
		t.Errorf("expected city Rabat, got %q", updated.City)
	}
	if _, err := svc.GetByID(context.Background(), "missing"); statusOf(err) != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
