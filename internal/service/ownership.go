package service

import (
	"context"

	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// ancestorGuard confirms that the ancestors named in a claimed chain exist
// and belong to the caller before records are listed under them.
type ancestorGuard struct {
	profiles  store.ProfileStore
	companies store.CompanyStore
}

// requireProfile checks the user and profile links of claimed.
func (g ancestorGuard) requireProfile(ctx context.Context, claimed domain.Ancestry) error {
	p, err := g.profiles.GetByID(ctx, claimed.ProfileID)
	if err != nil {
		return err
	}
	return domain.VerifyOwnership(
		domain.Ancestry{UserID: claimed.UserID, ProfileID: claimed.ProfileID},
		p.Lineage(),
	)
}

// requireCompany checks every link of claimed against the company's lineage.
func (g ancestorGuard) requireCompany(ctx context.Context, claimed domain.Ancestry) error {
	c, err := g.companies.GetByID(ctx, claimed.CompanyID)
	if err != nil {
		return err
	}
	return domain.VerifyOwnership(claimed, c.Lineage())
}
