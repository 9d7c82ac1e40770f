// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

package users

import (
	"context"
	"fmt"

	"github.com/ngocmai/camellia/internal/platform/apperr"
	"github.com/ngocmai/camellia/internal/platform/sec"
	"github.com/ngocmai/camellia/pkg/uuidv7"
)

// # Service

// Service implements account use cases: registration and credential checks.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing or login
// logic must be reviewed before merging.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new customer.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Enrolls a new customer, handling password hashing and relying on
the storage layer's unique email index for conflict detection.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email is taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("users_service_hash_failed: %w", err)
	}

	// Time-sortable ID, consistent with every other collection.
	user := &User{
		ID:           uuidv7.New(),
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
	}

	// Persist; the unique index surfaces duplicates as apperr.Conflict.
	if err := service.repository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

/*
Authenticate verifies an email/password pair.

Description: Performs the lookup and a constant-time bcrypt comparison. Both
"unknown email" and "wrong password" return the same generic error to prevent
account enumeration.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: The authenticated account
  - error: Unauthorized or internal failures
*/
func (service *Service) Authenticate(context context.Context, email, password string) (*User, error) {
	user, err := service.repository.FindByEmail(context, email)

	// Generic message regardless of which check failed.
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, fmt.Errorf("users_service_authenticate_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return user, nil
}
