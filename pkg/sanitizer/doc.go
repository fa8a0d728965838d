// Package sanitizer normalizes user-supplied listing, slot and review text
// before validation and storage.
//
// All functions are idempotent. Invalid input is returned in a form the
// validators will reject rather than as an error.
package sanitizer
