package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	MaxPasswordBytes = 72
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
	NeedsRehash(hash string) bool
}

// BcryptHasher implementation.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) cost() int {
	// bcrypt itself substitutes DefaultCost below MinCost
	if b.Cost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return b.Cost
}

func (b BcryptHasher) Hash(pw string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(pw), b.cost())
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// NeedsRehash reports whether hash was produced with a different cost.
func (b BcryptHasher) NeedsRehash(hash string) bool {
	c, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		return false
	}
	return c != b.cost()
}

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfDeletion       = errors.New("cannot delete your own account")
	ErrNoChanges          = errors.New("no profile fields provided")
	ErrValidation         = errors.New("invalid profile")
)

// UserService is the credential store: registration, password verification
// and profile maintenance.
type UserService struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
	// hash compared against when the email is unknown, so both failure
	// paths cost one bcrypt comparison
	dummyHash string
}

func NewUserService(r *userrepo.UserRepo, hasher PasswordHasher) (*UserService, error) {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 10}
	}
	dummy, err := hasher.Hash("not-a-real-password")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &UserService{repo: r, hasher: hasher, dummyHash: dummy}, nil
}

// RegisterInput is the profile captured at signup.
type RegisterInput struct {
	FirstName  string
	LastName   string
	Email      string
	Password   string
	Phone      *string
	Address    *string
	City       *string
	ZipCode    *string
	Newsletter bool
}

// NormalizeEmail trims and lower-cases an address before storage or lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register hashes the password and stores a new user, returning its id.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" {
		return 0, fmt.Errorf("%w: firstName is required", ErrValidation)
	}
	if last == "" {
		return 0, fmt.Errorf("%w: lastName is required", ErrValidation)
	}
	if utf8.RuneCountInString(in.Password) < MinPasswordLength {
		return 0, ErrWeakPassword
	}
	if len(in.Password) > MaxPasswordBytes {
		return 0, ErrPasswordTooLong
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return 0, err
	}
	u := &entity.User{
		FirstName:    first,
		LastName:     last,
		Email:        NormalizeEmail(in.Email),
		PasswordHash: hash,
		Phone:        in.Phone,
		Address:      in.Address,
		City:         in.City,
		ZipCode:      in.ZipCode,
		Newsletter:   in.Newsletter,
	}
	id, err := s.repo.Create(ctx, u)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, err
	}
	return id, nil
}

// Authenticate checks email and password. An unknown email and a wrong
// password both yield ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.hasher.Verify(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	// upgrade hashes made with an older cost; failure here is not fatal
	if s.hasher.NeedsRehash(u.PasswordHash) {
		if newHash, hErr := s.hasher.Hash(password); hErr == nil {
			if uErr := s.repo.UpdatePassword(ctx, u.ID, newHash); uErr == nil {
				u.PasswordHash = newHash
			}
		}
	}
	return u, nil
}

// Get returns the profile of user id.
func (s *UserService) Get(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// FindByEmail looks a user up by normalized email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.repo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// Exists reports whether user id is present.
func (s *UserService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}

// List returns every user, newest first.
func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies a partial profile update.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, p entity.ProfileUpdate) error {
	if p.Empty() {
		return ErrNoChanges
	}
	if err := trimName("firstName", p.FirstName); err != nil {
		return err
	}
	if err := trimName("lastName", p.LastName); err != nil {
		return err
	}
	n, err := s.repo.UpdateProfile(ctx, id, p)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// trimName trims an optional name in place and rejects a blank result.
func trimName(field string, name *string) error {
	if name == nil {
		return nil
	}
	*name = strings.TrimSpace(*name)
	if *name == "" {
		return fmt.Errorf("%w: %s cannot be blank", ErrValidation, field)
	}
	return nil
}

// Delete removes user id on behalf of actorID. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDeletion
	}
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
