// Package services contains application services for the MedXScan client:
// mock authentication over the local store, the analysis data sources
// (mock and remote), and chat.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/medxscan/internal/common"
	"github.com/dmitrijs2005/medxscan/internal/models"
	"github.com/dmitrijs2005/medxscan/internal/repositories/session"
	"github.com/dmitrijs2005/medxscan/internal/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService defines the mock authentication operations the CLI depends on.
//
// Everything works against the two local collections (users, session); there
// is no server verification and no session expiry. Application-level
// failures (duplicate email, bad credentials) are returned as sentinel
// errors from the common package, never panicked.
type AuthService interface {
	Register(ctx context.Context, email string, password []byte, name string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)
}

type authService struct {
	users   users.Repository
	session session.Repository
}

// NewAuthService constructs an AuthService over the local repositories.
func NewAuthService(users users.Repository, session session.Repository) AuthService {
	return &authService{users: users, session: session}
}

// Register creates a new local account and logs it in. It fails with
// common.ErrEmailExists when the email is already taken, leaving the users
// collection unchanged.
func (a *authService) Register(ctx context.Context, email string, password []byte, name string) (*models.User, error) {
	_, err := a.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailExists
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
	}
	if err := a.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	if err := a.session.Set(ctx, session.CurrentUserKey, u.ID); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return u, nil
}

// Login verifies email+password against the local users collection. On any
// mismatch it returns common.ErrInvalidCredentials and leaves the session
// untouched.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), password); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	if err := a.session.Set(ctx, session.CurrentUserKey, u.ID); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return u, nil
}

// Logout clears the current-user key only; the users collection stays.
func (a *authService) Logout(ctx context.Context) error {
	return a.session.Delete(ctx, session.CurrentUserKey)
}

// CurrentUser resolves the session to a user, or common.ErrNotLoggedIn.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	id, err := a.session.Get(ctx, session.CurrentUserKey)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if id == "" {
		return nil, common.ErrNotLoggedIn
	}

	u, err := a.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// stale session pointing at a removed database
			return nil, common.ErrNotLoggedIn
		}
		return nil, err
	}
	return u, nil
}

// UpdateProfile rewrites the user's mutable profile fields in place.
// Nil fields in upd keep their current values.
func (a *authService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = *upd.Age
	}
	if upd.Gender != nil {
		u.Gender = *upd.Gender
	}

	if err := a.users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}
	return u, nil
}
