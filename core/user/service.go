package user

import (
	"context"
	"errors"
	"time"

	"github.com/shulehq/shule/core"
)

var (
	// errors
	ErrNotFound       = errors.New("user not found")
	ErrUsernameExists = errors.New("a user with this username already exists")
	// ErrAdminProtected guards admin accounts against the user-management
	// delete path.
	ErrAdminProtected = errors.New("admin users cannot be deleted")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username string, excludedUsers ...User) error
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		// GetUserByUsername does an exact, case-sensitive match.
		GetUserByUsername(ctx context.Context, username string) (User, error)
		// UpdateUser merges set fields into the stored record.
		UpdateUser(ctx context.Context, usr User) (User, error)
		// DeleteUser removes the user and cascades removal of all grades
		// referencing them as a student.
		DeleteUser(ctx context.Context, id string) error
	}

	Service struct {
		repo     Repository
		verifier Verifier
	}
)

func NewService(repo Repository, verifier Verifier) *Service {
	return &Service{repo: repo, verifier: verifier}
}

func (svc *Service) CheckUniqueness(uname string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(context.Background(), uname, exclUsers...); err != nil {
		if err == ErrUsernameExists {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, nu NewUser) (User, error) {
	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Username:  nu.Username,
		Role:      nu.Role,
		Major:     nu.Major,
		ClassYear: nu.ClassYear,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if nu.Password != "" {
		if err := usr.SetPassword(nu.Password); err != nil {
			return User{}, err
		}
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (User, error) {
	return svc.repo.GetUserByUsername(ctx, uname)
}

// Authenticate resolves a username to a User and checks the supplied password
// with the configured Verifier. The default AcceptAnyVerifier accepts any
// password once the username resolves; see Verifier.
func (svc *Service) Authenticate(ctx context.Context, uname, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(ctx, uname)
	if err != nil {
		return User{}, err
	}
	if err = svc.verifier.Verify(usr, pwd); err != nil {
		return User{}, err
	}
	return usr, nil
}

// UpdateProfile merges the set Profile fields into the user's record.
func (svc *Service) UpdateProfile(ctx context.Context, id string, p Profile) (User, error) {
	p.Clean()
	usr := User{
		ID:        id,
		Name:      p.Name,
		Major:     p.Major,
		ClassYear: p.ClassYear,
		UpdatedAt: time.Now().UTC(),
	}
	return svc.repo.UpdateUser(ctx, usr)
}

// Delete removes a user. Admin accounts are never deletable through this
// path.
func (svc *Service) Delete(ctx context.Context, id string) error {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	if usr.IsAdmin() {
		return ErrAdminProtected
	}
	return svc.repo.DeleteUser(ctx, id)
}
