// Package api handles incoming HTTP requests for the job tracking API.
// Handlers build the ownership chain a request claims from the
// authenticated user and the path IDs, call the services, and map errors to
// the plain-text error names clients see. Records owned by someone else are
// always reported as NotFoundError.
package api
