// Package domain contains the job-search tracking entities (users, profiles,
// companies, contacts, job postings and events), their validation rules and
// the ownership chain that ties every record back to the user who owns it.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
