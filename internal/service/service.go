// Package service contains the business logic.
//
// It sits between the handler and repository layers: handlers pass in
// validated data, services perform the business operation (ownership
// checks, persistence, job enqueueing), and repositories do the actual
// data access.
package service
