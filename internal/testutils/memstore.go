package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/job-seeker-api/internal/domain"
	"github.com/phrazzld/job-seeker-api/internal/store"
)

// MemStore is an in-memory database backing every store interface. It
// mirrors the PostgreSQL schema closely enough for service and API tests:
// unique usernames, emails and job links are enforced, deletes cascade from
// profiles to companies to their children, and a failed transaction is
// rolled back.
//
// Transactions are serialised; the nil *sqlx.Tx handed to TxFn is accepted
// by every WithTx method, which returns the same store.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex
	seq  int64
	t    tables
}

type tables struct {
	users     map[uuid.UUID]*domain.User
	profiles  map[uuid.UUID]*domain.Profile
	companies map[uuid.UUID]*domain.Company
	contacts  map[uuid.UUID]*domain.Contact
	jobs      map[uuid.UUID]*domain.Job
	events    map[uuid.UUID]*domain.Event
	order     map[uuid.UUID]int64
}

func newTables() tables {
	return tables{
		users:     map[uuid.UUID]*domain.User{},
		profiles:  map[uuid.UUID]*domain.Profile{},
		companies: map[uuid.UUID]*domain.Company{},
		contacts:  map[uuid.UUID]*domain.Contact{},
		jobs:      map[uuid.UUID]*domain.Job{},
		events:    map[uuid.UUID]*domain.Event{},
		order:     map[uuid.UUID]int64{},
	}
}

// Stored values are never mutated in place, so copying the maps is a
// complete snapshot.
func (t tables) snapshot() tables {
	return tables{
		users:     copyMap(t.users),
		profiles:  copyMap(t.profiles),
		companies: copyMap(t.companies),
		contacts:  copyMap(t.contacts),
		jobs:      copyMap(t.jobs),
		events:    copyMap(t.events),
		order:     copyMap(t.order),
	}
}

func copyMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{t: newTables()}
}

// Stores bundles the store views of a MemStore.
type Stores struct {
	Transactor store.Transactor
	Users      store.UserStore
	Profiles   store.ProfileStore
	Companies  store.CompanyStore
	Contacts   store.ContactStore
	Jobs       store.JobStore
	Events     store.EventStore
	Refs       store.BackRefStore
}

// Stores returns every store view over m.
func (m *MemStore) Stores() Stores {
	return Stores{
		Transactor: memTransactor{m},
		Users:      memUserStore{m},
		Profiles:   memProfileStore{m},
		Companies:  memCompanyStore{m},
		Contacts:   memContactStore{m},
		Jobs:       memJobStore{m},
		Events:     memEventStore{m},
		Refs:       memBackRefStore{m},
	}
}

func (m *MemStore) insertOrder(id uuid.UUID) {
	m.seq++
	m.t.order[id] = m.seq
}

func sortByOrder[T any](m *MemStore, items []T, id func(T) uuid.UUID) {
	sort.SliceStable(items, func(i, j int) bool {
		return m.t.order[id(items[i])] < m.t.order[id(items[j])]
	})
}

// Counts reports how many rows each table holds.
func (m *MemStore) Counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		"users":     len(m.t.users),
		"profiles":  len(m.t.profiles),
		"companies": len(m.t.companies),
		"contacts":  len(m.t.contacts),
		"jobs":      len(m.t.jobs),
		"events":    len(m.t.events),
	}
}

type memTransactor struct{ m *MemStore }

// RunInTransaction runs fn with a nil tx and restores the previous state if
// fn fails or panics.
func (t memTransactor) RunInTransaction(ctx context.Context, fn store.TxFn) (err error) {
	t.m.txMu.Lock()
	defer t.m.txMu.Unlock()

	t.m.mu.Lock()
	saved := t.m.t.snapshot()
	seq := t.m.seq
	t.m.mu.Unlock()

	rollback := func() {
		t.m.mu.Lock()
		t.m.t = saved
		t.m.seq = seq
		t.m.mu.Unlock()
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err = fn(ctx, nil); err != nil {
		rollback()
	}
	return err
}

type memUserStore struct{ m *MemStore }

func (s memUserStore) WithTx(*sqlx.Tx) store.UserStore { return s }

func (s memUserStore) Create(_ context.Context, u *domain.User) error {
	if u.HashedPassword == "" {
		return domain.ErrEmptyPassword
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, existing := range s.m.t.users {
		if existing.Username == u.Username {
			return store.ErrUsernameExists
		}
		if u.Email != "" && existing.Email == u.Email {
			return store.ErrEmailExists
		}
	}
	cp := *u
	s.m.t.users[u.ID] = &cp
	s.m.insertOrder(u.ID)
	return nil
}

func (s memUserStore) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.t.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.t.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func cloneProfile(p *domain.Profile) *domain.Profile {
	cp := *p
	cp.Companies = append([]uuid.UUID{}, p.Companies...)
	return &cp
}

type memProfileStore struct{ m *MemStore }

func (s memProfileStore) WithTx(*sqlx.Tx) store.ProfileStore { return s }

func (s memProfileStore) Create(_ context.Context, p *domain.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.t.users[p.UserID]; !ok {
		return store.ErrInvalidEntity
	}
	s.m.t.profiles[p.ID] = cloneProfile(p)
	s.m.insertOrder(p.ID)
	return nil
}

func (s memProfileStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.t.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return cloneProfile(p), nil
}

func (s memProfileStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Profile{}
	for _, p := range s.m.t.profiles {
		if p.UserID == userID {
			out = append(out, cloneProfile(p))
		}
	}
	sortByOrder(s.m, out, func(p *domain.Profile) uuid.UUID { return p.ID })
	return out, nil
}

func (s memProfileStore) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	profiles, err := s.ListByUser(ctx, userID)
	return len(profiles), err
}

func (s memProfileStore) Update(
	_ context.Context,
	id uuid.UUID,
	patch domain.ProfilePatch,
) (*domain.Profile, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	p, ok := s.m.t.profiles[id]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	next := cloneProfile(p)
	patch.Apply(next)
	s.m.t.profiles[id] = next
	return cloneProfile(next), nil
}

func (s memProfileStore) Delete(_ context.Context, id uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.t.profiles[id]; !ok {
		return store.ErrProfileNotFound
	}
	delete(s.m.t.profiles, id)
	for cid, c := range s.m.t.companies {
		if c.ProfileID == id {
			s.m.deleteCompanyLocked(cid)
		}
	}
	return nil
}

func (m *MemStore) deleteCompanyLocked(id uuid.UUID) {
	delete(m.t.companies, id)
	for k, v := range m.t.contacts {
		if v.CompanyID == id {
			delete(m.t.contacts, k)
		}
	}
	for k, v := range m.t.jobs {
		if v.CompanyID == id {
			delete(m.t.jobs, k)
		}
	}
	for k, v := range m.t.events {
		if v.CompanyID == id {
			delete(m.t.events, k)
		}
	}
}

func cloneCompany(c *domain.Company) *domain.Company {
	cp := *c
	cp.Contacts = append([]uuid.UUID{}, c.Contacts...)
	cp.JobPosting = append([]uuid.UUID{}, c.JobPosting...)
	cp.Events = append([]uuid.UUID{}, c.Events...)
	return &cp
}

type memCompanyStore struct{ m *MemStore }

func (s memCompanyStore) WithTx(*sqlx.Tx) store.CompanyStore { return s }

func (s memCompanyStore) Create(_ context.Context, c *domain.Company) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.t.profiles[c.ProfileID]; !ok {
		return store.ErrInvalidEntity
	}
	s.m.t.companies[c.ID] = cloneCompany(c)
	s.m.insertOrder(c.ID)
	return nil
}

func (s memCompanyStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Company, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.t.companies[id]
	if !ok {
		return nil, store.ErrCompanyNotFound
	}
	return cloneCompany(c), nil
}

func (s memCompanyStore) ListByProfile(_ context.Context, userID, profileID uuid.UUID) ([]*domain.Company, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := []*domain.Company{}
	for _, c := range s.m.t.companies {
		if c.UserID == userID && c.ProfileID == profileID {
			out = append(out, cloneCompany(c))
		}
	}
	sortByOrder(s.m, out, func(c *domain.Company) uuid.UUID { return c.ID })
	return out, nil
}

func (s memCompanyStore) Update(
	_ context.Context,
	id uuid.UUID,
	patch domain.CompanyPatch,
) (*domain.Company, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.t.companies[id]
	if !ok {
		return nil, store.ErrCompanyNotFound
	}
	next := cloneCompany(c)
	patch.Apply(next)
	s.m.t.companies[id] = next
	return cloneCompany(next), nil
}

func (s memCompanyStore) Delete(_ context.Context, id, profileID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c, ok := s.m.t.companies[id]; ok && c.ProfileID == profileID {
		s.m.deleteCompanyLocked(id)
	}
	return nil
}

func listChildren[T any](
	m *MemStore,
	table func(*tables) map[uuid.UUID]T,
	keep func(T) bool,
	id func(T) uuid.UUID,
	clone func(T) T,
) []T {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, v := range table(&m.t) {
		if keep(v) {
			out = append(out, clone(v))
		}
	}
	sortByOrder(m, out, id)
	return out
}

func contactsTable(t *tables) map[uuid.UUID]*domain.Contact { return t.contacts }
func jobsTable(t *tables) map[uuid.UUID]*domain.Job         { return t.jobs }
func eventsTable(t *tables) map[uuid.UUID]*domain.Event     { return t.events }

func (m *MemStore) companyExistsLocked(id uuid.UUID) bool {
	_, ok := m.t.companies[id]
	return ok
}

type memContactStore struct{ m *MemStore }

func cloneContact(c *domain.Contact) *domain.Contact {
	cp := *c
	return &cp
}

func (s memContactStore) WithTx(*sqlx.Tx) store.ContactStore { return s }

func (s memContactStore) Create(_ context.Context, c *domain.Contact) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if !s.m.companyExistsLocked(c.CompanyID) {
		return store.ErrInvalidEntity
	}
	s.m.t.contacts[c.ID] = cloneContact(c)
	s.m.insertOrder(c.ID)
	return nil
}

func (s memContactStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Contact, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.t.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	return cloneContact(c), nil
}

func (s memContactStore) ListByProfile(_ context.Context, userID, profileID uuid.UUID) ([]*domain.Contact, error) {
	return listChildren(s.m, contactsTable,
		func(c *domain.Contact) bool { return c.UserID == userID && c.ProfileID == profileID },
		func(c *domain.Contact) uuid.UUID { return c.ID }, cloneContact), nil
}

func (s memContactStore) ListByCompany(_ context.Context, userID, companyID uuid.UUID) ([]*domain.Contact, error) {
	return listChildren(s.m, contactsTable,
		func(c *domain.Contact) bool { return c.UserID == userID && c.CompanyID == companyID },
		func(c *domain.Contact) uuid.UUID { return c.ID }, cloneContact), nil
}

func (s memContactStore) Update(
	_ context.Context,
	id uuid.UUID,
	patch domain.ContactPatch,
) (*domain.Contact, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	c, ok := s.m.t.contacts[id]
	if !ok {
		return nil, store.ErrContactNotFound
	}
	next := cloneContact(c)
	patch.Apply(next)
	s.m.t.contacts[id] = next
	return cloneContact(next), nil
}

func (s memContactStore) Delete(_ context.Context, id, companyID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if c, ok := s.m.t.contacts[id]; ok && c.CompanyID == companyID {
		delete(s.m.t.contacts, id)
	}
	return nil
}

type memJobStore struct{ m *MemStore }

func cloneJob(j *domain.Job) *domain.Job {
	cp := *j
	cp.Tags = append([]string{}, j.Tags...)
	return &cp
}

func (s memJobStore) WithTx(*sqlx.Tx) store.JobStore { return s }

func (s memJobStore) linkTakenLocked(link string, except uuid.UUID) bool {
	for id, j := range s.m.t.jobs {
		if id != except && j.Link == link {
			return true
		}
	}
	return false
}

func (s memJobStore) Create(_ context.Context, j *domain.Job) error {
	if err := j.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if !s.m.companyExistsLocked(j.CompanyID) {
		return store.ErrInvalidEntity
	}
	if s.linkTakenLocked(j.Link, uuid.Nil) {
		return store.ErrJobLinkExists
	}
	s.m.t.jobs[j.ID] = cloneJob(j)
	s.m.insertOrder(j.ID)
	return nil
}

func (s memJobStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Job, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	j, ok := s.m.t.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	return cloneJob(j), nil
}

func (s memJobStore) ListByProfile(_ context.Context, userID, profileID uuid.UUID) ([]*domain.Job, error) {
	return listChildren(s.m, jobsTable,
		func(j *domain.Job) bool { return j.UserID == userID && j.ProfileID == profileID },
		func(j *domain.Job) uuid.UUID { return j.ID }, cloneJob), nil
}

func (s memJobStore) ListByCompany(_ context.Context, userID, companyID uuid.UUID) ([]*domain.Job, error) {
	return listChildren(s.m, jobsTable,
		func(j *domain.Job) bool { return j.UserID == userID && j.CompanyID == companyID },
		func(j *domain.Job) uuid.UUID { return j.ID }, cloneJob), nil
}

func (s memJobStore) Update(_ context.Context, id uuid.UUID, patch domain.JobPatch) (*domain.Job, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	j, ok := s.m.t.jobs[id]
	if !ok {
		return nil, store.ErrJobNotFound
	}
	if patch.Link != nil && s.linkTakenLocked(*patch.Link, id) {
		return nil, store.ErrJobLinkExists
	}
	next := cloneJob(j)
	patch.Apply(next)
	s.m.t.jobs[id] = next
	return cloneJob(next), nil
}

func (s memJobStore) Delete(_ context.Context, id, companyID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if j, ok := s.m.t.jobs[id]; ok && j.CompanyID == companyID {
		delete(s.m.t.jobs, id)
	}
	return nil
}

type memEventStore struct{ m *MemStore }

func cloneEvent(e *domain.Event) *domain.Event {
	cp := *e
	return &cp
}

func (s memEventStore) WithTx(*sqlx.Tx) store.EventStore { return s }

func (s memEventStore) Create(_ context.Context, e *domain.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if !s.m.companyExistsLocked(e.CompanyID) {
		return store.ErrInvalidEntity
	}
	s.m.t.events[e.ID] = cloneEvent(e)
	s.m.insertOrder(e.ID)
	return nil
}

func (s memEventStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Event, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	e, ok := s.m.t.events[id]
	if !ok {
		return nil, store.ErrEventNotFound
	}
	return cloneEvent(e), nil
}

// Events are listed by date, matching the PostgreSQL store.
func (s memEventStore) sorted(events []*domain.Event) []*domain.Event {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].EventDate.Before(events[j].EventDate)
	})
	return events
}

func (s memEventStore) ListByProfile(_ context.Context, userID, profileID uuid.UUID) ([]*domain.Event, error) {
	return s.sorted(listChildren(s.m, eventsTable,
		func(e *domain.Event) bool { return e.UserID == userID && e.ProfileID == profileID },
		func(e *domain.Event) uuid.UUID { return e.ID }, cloneEvent)), nil
}

func (s memEventStore) ListByCompany(_ context.Context, userID, companyID uuid.UUID) ([]*domain.Event, error) {
	return s.sorted(listChildren(s.m, eventsTable,
		func(e *domain.Event) bool { return e.UserID == userID && e.CompanyID == companyID },
		func(e *domain.Event) uuid.UUID { return e.ID }, cloneEvent)), nil
}

func (s memEventStore) Update(_ context.Context, id uuid.UUID, patch domain.EventPatch) (*domain.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	e, ok := s.m.t.events[id]
	if !ok {
		return nil, store.ErrEventNotFound
	}
	next := cloneEvent(e)
	patch.Apply(next)
	s.m.t.events[id] = next
	return cloneEvent(next), nil
}

func (s memEventStore) Delete(_ context.Context, id, companyID uuid.UUID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if e, ok := s.m.t.events[id]; ok && e.CompanyID == companyID {
		delete(s.m.t.events, id)
	}
	return nil
}
