package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/job-seeker-api/internal/domain"
)

type mockAccountService struct {
	SignUpFn func(ctx context.Context, username, email, password string) (*domain.User, string, error)
	SignInFn func(ctx context.Context, username, password string) (string, error)
}

func (m *mockAccountService) SignUp(
	ctx context.Context,
	username, email, password string,
) (*domain.User, string, error) {
	return m.SignUpFn(ctx, username, email, password)
}

func (m *mockAccountService) SignIn(ctx context.Context, username, password string) (string, error) {
	return m.SignInFn(ctx, username, password)
}

type mockCompanyService struct {
	CreateFn        func(ctx context.Context, claimed domain.Ancestry, c *domain.Company) (*domain.Company, error)
	GetFn           func(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Company, error)
	ListByProfileFn func(ctx context.Context, claimed domain.Ancestry) ([]*domain.Company, error)
	UpdateFn        func(ctx context.Context, claimed domain.Ancestry, id uuid.UUID, patch domain.CompanyPatch) (*domain.Company, error)
	DeleteFn        func(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error
}

func (m *mockCompanyService) Create(
	ctx context.Context,
	claimed domain.Ancestry,
	c *domain.Company,
) (*domain.Company, error) {
	return m.CreateFn(ctx, claimed, c)
}

func (m *mockCompanyService) Get(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) (*domain.Company, error) {
	return m.GetFn(ctx, claimed, id)
}

func (m *mockCompanyService) ListByProfile(ctx context.Context, claimed domain.Ancestry) ([]*domain.Company, error) {
	return m.ListByProfileFn(ctx, claimed)
}

func (m *mockCompanyService) Update(
	ctx context.Context,
	claimed domain.Ancestry,
	id uuid.UUID,
	patch domain.CompanyPatch,
) (*domain.Company, error) {
	return m.UpdateFn(ctx, claimed, id, patch)
}

func (m *mockCompanyService) Delete(ctx context.Context, claimed domain.Ancestry, id uuid.UUID) error {
	return m.DeleteFn(ctx, claimed, id)
}
