// Package domain provides defenitions of all entities.
package domain

import (
	"errors"
	"time"
)

var (
	// ErrUserNotFound indicates that the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailAlreadyExists indicates that the user with the given email already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")
	// ErrIdentityNumberAlreadyExists indicates that the profile with the given identity number already exists.
	ErrIdentityNumberAlreadyExists = errors.New("identity number already exists")
	// ErrUserHasAccounts indicates that the user still owns accounts and cannot be deleted.
	ErrUserHasAccounts = errors.New("user still owns accounts")
	// ErrInvalidIdentityType indicates an unsupported identity document type.
	ErrInvalidIdentityType = errors.New("invalid identity type")
)

// IdentityTypes lists the accepted identity document types.
var IdentityTypes = []string{"KTP", "SIM", "PASSPORT"}

// User holds registered user data.
type User struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile holds the identity document attached to a user.
type Profile struct {
	ID             int32  `json:"id"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber int64  `json:"identity_number"`
	UserID         int32  `json:"user_id"`
}

// UserWithProfile is a user joined with its profile.
type UserWithProfile struct {
	User
	Profile Profile `json:"profile"`
}

// CreateUserParams is the input data to create a user with its profile.
type CreateUserParams struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber int64  `json:"identity_number"`
}

// UpdateUserParams is the input data to update a user and its profile.
type UpdateUserParams struct {
	ID             int32  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	IdentityType   string `json:"identity_type"`
	IdentityNumber int64  `json:"identity_number"`
}

// UserSummary is the owner data attached to enriched account views.
type UserSummary struct {
	ID    int32  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
