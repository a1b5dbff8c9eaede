// Package repository handles all interactions with the database.
//
// It contains the raw SQL queries and methods to fetch, persist, or update
// data, abstracting SQL away from the service layer. Repositories return
// driver errors unconverted; the sqlerr package maps them to client-safe
// errors at the boundary.
package repository
