// Package service holds the business logic layer. Services sit between
// the HTTP handlers and the repositories: they enforce domain rules
// (email uniqueness, side effects like welcome emails) and never touch
// Echo or HTTP types.
package service
