package testutils

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

type memBackRefStore struct{ m *MemStore }

func (s memBackRefStore) WithTx(*sqlx.Tx) store.BackRefStore { return s }

func (s memBackRefStore) LockParent(
	_ context.Context,
	list store.RefList,
	parentID uuid.UUID,
) (domain.Ancestry, []uuid.UUID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if list == store.ProfileCompanies {
		p, ok := s.m.t.profiles[parentID]
		if !ok {
			return domain.Ancestry{}, nil, list.NotFound()
		}
		return p.Lineage(), append([]uuid.UUID{}, p.Companies...), nil
	}

	c, ok := s.m.t.companies[parentID]
	if !ok {
		return domain.Ancestry{}, nil, list.NotFound()
	}
	ids, err := companyRefs(c, list)
	if err != nil {
		return domain.Ancestry{}, nil, err
	}
	return c.Lineage(), append([]uuid.UUID{}, ids...), nil
}

func companyRefs(c *domain.Company, list store.RefList) ([]uuid.UUID, error) {
	switch list {
	case store.CompanyContacts:
		return c.Contacts, nil
	case store.CompanyJobs:
		return c.JobPosting, nil
	case store.CompanyEvents:
		return c.Events, nil
	}
	return nil, fmt.Errorf("unknown list %q", string(list))
}

func (s memBackRefStore) SaveRefs(_ context.Context, list store.RefList, parentID uuid.UUID, ids []uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	ids = append([]uuid.UUID{}, ids...)
	now := time.Now().UTC()

	if list == store.ProfileCompanies {
		p, ok := s.m.t.profiles[parentID]
		if !ok {
			return list.NotFound()
		}
		next := cloneProfile(p)
		next.Companies = ids
		next.UpdatedAt = now
		s.m.t.profiles[parentID] = next
		return nil
	}

	c, ok := s.m.t.companies[parentID]
	if !ok {
		return list.NotFound()
	}
	next := cloneCompany(c)
	switch list {
	case store.CompanyContacts:
		next.Contacts = ids
	case store.CompanyJobs:
		next.JobPosting = ids
	case store.CompanyEvents:
		next.Events = ids
	default:
		return fmt.Errorf("unknown list %q", string(list))
	}
	next.UpdatedAt = now
	s.m.t.companies[parentID] = next
	return nil
}

func (s memBackRefStore) ListParents(_ context.Context, list store.RefList) ([]uuid.UUID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var ids []uuid.UUID
	if list == store.ProfileCompanies {
		for id := range s.m.t.profiles {
			ids = append(ids, id)
		}
	} else {
		for id := range s.m.t.companies {
			ids = append(ids, id)
		}
	}
	sortByOrder(s.m, ids, func(id uuid.UUID) uuid.UUID { return id })
	return ids, nil
}

func (s memBackRefStore) ListChildIDs(_ context.Context, list store.RefList, parentID uuid.UUID) ([]uuid.UUID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var ids []uuid.UUID
	switch list {
	case store.ProfileCompanies:
		for id, c := range s.m.t.companies {
			if c.ProfileID == parentID {
				ids = append(ids, id)
			}
		}
	case store.CompanyContacts:
		for id, c := range s.m.t.contacts {
			if c.CompanyID == parentID {
				ids = append(ids, id)
			}
		}
	case store.CompanyJobs:
		for id, j := range s.m.t.jobs {
			if j.CompanyID == parentID {
				ids = append(ids, id)
			}
		}
	case store.CompanyEvents:
		for id, e := range s.m.t.events {
			if e.CompanyID == parentID {
				ids = append(ids, id)
			}
		}
	default:
		return nil, fmt.Errorf("unknown list %q", string(list))
	}
	sortByOrder(s.m, ids, func(id uuid.UUID) uuid.UUID { return id })
	return ids, nil
}
