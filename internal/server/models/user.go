// Package models defines server-side data models persisted in the database.
package models

import "time"

// User roles. Role is attacker-controlled input on update payloads and must
// never be settable by the row's own owner; the policy hooks enforce that.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Clone returns a shallow copy of the user. Policy hooks operate on copies so
// the caller's snapshot is never mutated in place.
func (u *User) Clone() *User {
	c := *u
	return &c
}
