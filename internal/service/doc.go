// Package service contains the application use cases of the job search
// tracker. It orchestrates domain objects and the persistence contracts in
// internal/store to fulfill API operations.
//
// Key components:
//
//   - CascadeManager keeps parent back-reference lists in step with child
//     creation and deletion, inside one transaction with the parent row locked.
//   - ProfileService, CompanyService, ContactService, JobService and
//     EventService verify the caller's ownership chain before reading or
//     writing a record.
//   - AccountService handles sign-up and sign-in and creates the first
//     profile of a new user.
//   - Reconciler repairs back-reference lists that drifted from the child
//     tables.
//
// The service layer depends on domain entities and store interfaces, never on
// specific infrastructure implementations.
package service
