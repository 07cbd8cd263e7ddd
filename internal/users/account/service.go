// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/internal/policy"
	"github.com/taibuivan/yamdb/pkg/pagination"
	"github.com/taibuivan/yamdb/pkg/pointer"
	"github.com/taibuivan/yamdb/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for user accounts.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{accountRepository: accountRepo, logger: logger}
}

// # Inputs

// CreateInput holds the fields an administrator sets on a new account.
type CreateInput struct {
	Username  string
	Email     string
	Role      string
	FirstName string
	LastName  string
	Bio       string

	// Superuser is only set by the admin CLI.
	Superuser bool
}

// UpdateInput is a partial update; nil fields are left untouched.
type UpdateInput struct {
	Username  *string
	Email     *string
	Role      *string
	FirstName *string
	LastName  *string
	Bio       *string
}

// # Administration

/*
List returns one page of accounts, optionally filtered by a username substring.

Parameters:
  - context: context.Context
  - filter: Filter
  - page: pagination.Params

Returns:
  - []*User: The page
  - int: Total number of matches
  - error: Storage failures
*/
func (service *Service) List(context context.Context, filter Filter, page pagination.Params) ([]*User, int, error) {
	users, total, err := service.accountRepository.List(context, filter, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}
	return users, total, nil
}

// Get retrieves an account by username.
func (service *Service) Get(context context.Context, username string) (*User, error) {
	return service.accountRepository.FindByUsername(context, username)
}

/*
Create registers an account on behalf of an administrator.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *User: The persisted account
  - error: ReservedIdentifier, VALIDATION_ERROR, ErrAccountTaken or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	if policy.IsReservedUsername(username) {
		return nil, policy.ErrReservedIdentifier
	}

	role := policy.DefaultRole
	if input.Role != "" {
		parsed, err := parseRole(input.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}

	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     strings.TrimSpace(input.Email),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Bio:       input.Bio,
		Role:      role,
		Superuser: input.Superuser,
	}

	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.Bool("superuser", user.Superuser),
	)

	return user, nil
}

/*
Update applies an administrator's partial update, role included.

Parameters:
  - context: context.Context
  - username: string (current username)
  - input: UpdateInput

Returns:
  - *User: The updated account
  - error: NotFound, ReservedIdentifier, ErrAccountTaken or storage failures
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*User, error) {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return nil, err
	}

	if err := apply(user, input); err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, err := parseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		if role != user.Role {
			service.logger.InfoContext(context, "account_role_changed",
				slog.String("user_id", user.ID),
				slog.String("from", string(user.Role)),
				slog.String("to", string(role)),
			)
		}
		user.Role = role
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes an account by username.
func (service *Service) Delete(context context.Context, username string) error {
	user, err := service.accountRepository.FindByUsername(context, username)
	if err != nil {
		return err
	}

	if err := service.accountRepository.Delete(context, user.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "account_deleted", slog.String("user_id", user.ID))
	return nil
}

// # Self Service

// ResolveIdentity reloads the account behind an access token, so role changes
// and deletions apply to tokens that were issued earlier.
func (service *Service) ResolveIdentity(context context.Context, userID string) (*sec.TokenSubject, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return &sec.TokenSubject{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		Superuser: user.Superuser,
	}, nil
}

// Me returns the caller's own profile.
func (service *Service) Me(context context.Context, actor policy.Actor) (*User, error) {
	if !actor.IsAuthenticated() {
		return nil, policy.ErrUnauthenticated
	}
	return service.accountRepository.FindByID(context, actor.ID)
}

/*
UpdateMe applies a partial update to the caller's own profile.

Description: Any role in the input is discarded and the role read from storage
is written back, so the update can neither raise nor lower privileges.

Parameters:
  - context: context.Context
  - actor: policy.Actor
  - input: UpdateInput

Returns:
  - *User: The updated profile
  - error: Unauthenticated, ReservedIdentifier, ErrAccountTaken or storage failures
*/
func (service *Service) UpdateMe(context context.Context, actor policy.Actor, input UpdateInput) (*User, error) {
	if !actor.IsAuthenticated() {
		return nil, policy.ErrUnauthenticated
	}

	user, err := service.accountRepository.FindByID(context, actor.ID)
	if err != nil {
		return nil, err
	}

	previousRole := user.Role
	input.Role = nil

	if err := apply(user, input); err != nil {
		return nil, err
	}
	user.Role = previousRole

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_profile_updated", slog.String("user_id", user.ID))
	return user, nil
}

// # Helpers

// apply copies the non-role fields of input onto user.
func apply(user *User, input UpdateInput) error {
	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if policy.IsReservedUsername(username) {
			return policy.ErrReservedIdentifier
		}
		user.Username = username
	}
	if input.Email != nil {
		user.Email = strings.TrimSpace(*input.Email)
	}
	user.FirstName = pointer.Fallback(input.FirstName, user.FirstName)
	user.LastName = pointer.Fallback(input.LastName, user.LastName)
	user.Bio = pointer.Fallback(input.Bio, user.Bio)
	return nil
}

// parseRole maps an unknown role to a field-level validation error.
func parseRole(raw string) (policy.Role, error) {
	role, err := policy.ParseRole(raw)
	if err != nil {
		return "", validate.Invalid("role", "Must be one of: user, moderator, admin")
	}
	return role, nil
}
