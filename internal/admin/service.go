package admin

import (
	"context"
	"errors"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin/entity"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

var (
	ErrAlreadyAdmin   = errors.New("user is already an admin")
	ErrNotAnAdmin     = errors.New("admin not found")
	ErrSelfRevocation = errors.New("cannot remove your own admin privileges")
	ErrUserNotFound   = errors.New("user not found")
)

// UserExister is the slice of the credential store the registry needs.
type UserExister interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Registry is the persistent set of administrator user ids.
type Registry struct {
	repo  *repo.AdminRepo
	users UserExister
}

func NewRegistry(r *repo.AdminRepo, users UserExister) *Registry {
	return &Registry{repo: r, users: users}
}

// IsAdmin is a plain membership check.
func (s *Registry) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.repo.Exists(ctx, userID)
}

// Grant makes userID an admin. Fails with ErrAlreadyAdmin if a grant exists.
func (s *Registry) Grant(ctx context.Context, userID int64) error {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	if _, err := s.repo.Insert(ctx, userID, entity.RoleAdmin); err != nil {
		if database.IsUniqueViolation(err) {
			return ErrAlreadyAdmin
		}
		return err
	}
	return nil
}

// Revoke removes the grant of userID on behalf of actorID.
func (s *Registry) Revoke(ctx context.Context, actorID, userID int64) error {
	if actorID == userID {
		return ErrSelfRevocation
	}
	n, err := s.repo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotAnAdmin
	}
	return nil
}

// List returns all grants.
func (s *Registry) List(ctx context.Context) ([]entity.Grant, error) {
	return s.repo.List(ctx)
}

// Stats returns the dashboard summary.
func (s *Registry) Stats(ctx context.Context) (*entity.Stats, error) {
	return s.repo.Stats(ctx)
}
