package service

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadieom/BiblioMatch/internal/models"
)

// memUsers implementa UserStore en memoria.
type memUsers struct {
	byID map[int]*models.UserDoc
}

func newMemUsers() *memUsers { return &memUsers{byID: map[int]*models.UserDoc{}} }

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.UserDoc, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) FindByID(_ context.Context, id int) (*models.UserDoc, error) {
	return m.byID[id], nil
}

func (m *memUsers) GetNextUserID(context.Context) (int, error) {
	next := 1
	for id := range m.byID {
		if id >= next {
			next = id + 1
		}
	}
	return next, nil
}

func (m *memUsers) Insert(_ context.Context, u *models.UserDoc) error {
	m.byID[u.UserID] = u
	return nil
}

func (m *memUsers) AddToShelf(_ context.Context, id int, item models.ShelfItem) (bool, error) {
	u := m.byID[id]
	if u == nil {
		return false, nil
	}
	for _, it := range u.Bookshelf {
		if it.Title == item.Title {
			return false, nil
		}
	}
	u.Bookshelf = append(u.Bookshelf, item)
	return true, nil
}

func (m *memUsers) RemoveFromShelf(_ context.Context, id int, title string) (bool, error) {
	u := m.byID[id]
	if u == nil {
		return false, nil
	}
	for i, it := range u.Bookshelf {
		if it.Title == title {
			u.Bookshelf = append(u.Bookshelf[:i], u.Bookshelf[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestRegisterAndLogin(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, "test-secret", nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, RegisterUserData{Email: " Ana@Example.com ", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, 1, u.UserID)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "user", u.Role)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.NotNil(t, u.Bookshelf)

	token, logged, err := svc.Login(ctx, "ana@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, u.UserID, logged.UserID)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) { return []byte("test-secret"), nil })
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(1), claims["sub"])
	assert.Equal(t, "user", claims["role"])
}

func TestRegisterErrors(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, "s", nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterUserData{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterUserData{Email: "A@B.C", Password: "secret1"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterAdminEmails(t *testing.T) {
	svc := NewAuthService(newMemUsers(), "s", []string{" Root@Example.com "})
	ctx := context.Background()

	admin, err := svc.Register(ctx, RegisterUserData{Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Role)

	u, err := svc.Register(ctx, RegisterUserData{Email: "ana@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "user", u.Role)
}

func TestLoginInvalid(t *testing.T) {
	users := newMemUsers()
	svc := NewAuthService(users, "s", nil)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterUserData{Email: "a@b.c", Password: "secret1"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@b.c", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByID(t *testing.T) {
	svc := NewAuthService(newMemUsers(), "s", nil)
	_, err := svc.GetUserByID(context.Background(), 7)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
