package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/testutil"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-shop-go/internal/user/repo"
)

func newService(t *testing.T) (*UserService, *userrepo.UserRepo) {
	t.Helper()
	r := userrepo.NewUserRepo(testutil.NewDB(t))
	s, err := NewUserService(r, BcryptHasher{Cost: bcrypt.MinCost})
	require.NoError(t, err)
	return s, r
}

func registerA(t *testing.T, s *UserService) int64 {
	t.Helper()
	id, err := s.Register(context.Background(), RegisterInput{
		FirstName: "Ada", LastName: "Lovelace", Email: "a@x.com", Password: "longenough1",
	})
	require.NoError(t, err)
	return id
}

func TestRegisterStoresHashNotPassword(t *testing.T) {
	s, r := newService(t)
	id := registerA(t, s)

	u, err := r.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotEqual(t, "longenough1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("longenough1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s, _ := newService(t)
	registerA(t, s)

	_, err := s.Register(context.Background(), RegisterInput{
		FirstName: "Other", LastName: "Person", Email: "  A@X.com ", Password: "completely-different",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestRegisterPasswordBounds(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{FirstName: "a", LastName: "b", Email: "short@x.com", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	long := make([]byte, MaxPasswordBytes+1)
	for i := range long {
		long[i] = 'p'
	}
	_, err = s.Register(ctx, RegisterInput{FirstName: "a", LastName: "b", Email: "long@x.com", Password: string(long)})
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestRegisterRejectsBlankNames(t *testing.T) {
	s, _ := newService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterInput{FirstName: "   ", LastName: "b", Email: "a@x.com", Password: "longenough1"})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Register(ctx, RegisterInput{FirstName: "a", LastName: "\t", Email: "a@x.com", Password: "longenough1"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.FindByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)

	id, err := s.Register(ctx, RegisterInput{FirstName: " Ada ", LastName: "Lovelace", Email: "a@x.com", Password: "longenough1"})
	require.NoError(t, err)
	u, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.FirstName)
}

func TestNewUserServiceHashError(t *testing.T) {
	r := userrepo.NewUserRepo(testutil.NewDB(t))
	_, err := NewUserService(r, BcryptHasher{Cost: bcrypt.MaxCost + 1})
	assert.Error(t, err)
}

func TestBcryptCostBelowMinimum(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost - 1}
	hash, err := BcryptHasher{Cost: bcrypt.DefaultCost}.Hash("longenough1")
	require.NoError(t, err)
	assert.False(t, h.NeedsRehash(hash))
}

func TestAuthenticate(t *testing.T) {
	s, _ := newService(t)
	id := registerA(t, s)
	ctx := context.Background()

	u, err := s.Authenticate(ctx, "A@x.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = s.Authenticate(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody@x.com", "longenough1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateRehashesOldCost(t *testing.T) {
	s, r := newService(t)
	id := registerA(t, s)
	ctx := context.Background()

	stronger, err := NewUserService(r, BcryptHasher{Cost: bcrypt.MinCost + 1})
	require.NoError(t, err)
	_, err = stronger.Authenticate(ctx, "a@x.com", "longenough1")
	require.NoError(t, err)

	u, err := r.GetByID(ctx, id)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(u.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestUpdateProfile(t *testing.T) {
	s, _ := newService(t)
	id := registerA(t, s)
	ctx := context.Background()

	city := "London"
	news := true
	require.NoError(t, s.UpdateProfile(ctx, id, entity.ProfileUpdate{City: &city, Newsletter: &news}))

	u, err := s.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, u.City)
	assert.Equal(t, "London", *u.City)
	assert.True(t, u.Newsletter)
	assert.Equal(t, "Ada", u.FirstName)

	assert.ErrorIs(t, s.UpdateProfile(ctx, id, entity.ProfileUpdate{}), ErrNoChanges)

	blank := "  "
	assert.ErrorIs(t, s.UpdateProfile(ctx, id, entity.ProfileUpdate{FirstName: &blank}), ErrValidation)
	assert.ErrorIs(t, s.UpdateProfile(ctx, id, entity.ProfileUpdate{LastName: &blank}), ErrValidation)
	padded := " Grace "
	require.NoError(t, s.UpdateProfile(ctx, id, entity.ProfileUpdate{FirstName: &padded}))
	u, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", u.FirstName)
	assert.Equal(t, "Lovelace", u.LastName)
	assert.ErrorIs(t, s.UpdateProfile(ctx, id+100, entity.ProfileUpdate{City: &city}), ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	s, _ := newService(t)
	id := registerA(t, s)
	ctx := context.Background()

	assert.ErrorIs(t, s.Delete(ctx, id, id), ErrSelfDeletion)
	require.NoError(t, s.Delete(ctx, id+1, id))
	assert.ErrorIs(t, s.Delete(ctx, id+1, id), ErrUserNotFound)

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFindByEmail(t *testing.T) {
	s, _ := newService(t)
	id := registerA(t, s)

	u, err := s.FindByEmail(context.Background(), " A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = s.FindByEmail(context.Background(), "none@x.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
