package service

import (
	"context"
	"strings"
	"time"

	"github.com/sadieom/BiblioMatch/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// UserStore lo que auth y el estante necesitan de la colección users.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.UserDoc, error)
	FindByID(ctx context.Context, userID int) (*models.UserDoc, error)
	GetNextUserID(ctx context.Context) (int, error)
	Insert(ctx context.Context, u *models.UserDoc) error
	AddToShelf(ctx context.Context, userID int, item models.ShelfItem) (bool, error)
	RemoveFromShelf(ctx context.Context, userID int, title string) (bool, error)
}

type AuthService struct {
	users     UserStore
	jwtSecret []byte
	admins    map[string]struct{}
}

type RegisterUserData struct {
	Email    string
	Password string
	Username string
}

// NewAuthService adminEmails son los emails que se registran con role admin;
// el resto siempre queda como user.
func NewAuthService(users UserStore, secret string, adminEmails []string) *AuthService {
	admins := make(map[string]struct{}, len(adminEmails))
	for _, e := range adminEmails {
		admins[normalizeEmail(e)] = struct{}{}
	}
	return &AuthService{users: users, jwtSecret: []byte(secret), admins: admins}
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register crea un usuario nuevo con role user, o admin si el email está en
// la lista de administradores.
func (s *AuthService) Register(ctx context.Context, data RegisterUserData) (*models.UserDoc, error) {
	email := normalizeEmail(data.Email)

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	role := "user"
	if _, ok := s.admins[email]; ok {
		role = "admin"
	}

	nextID, err := s.users.GetNextUserID(ctx)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	u := &models.UserDoc{
		UserID:       nextID,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Username:     data.Username,
		Bookshelf:    []models.ShelfItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.UserDoc, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.UserID,
		"role": u.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	})
	sToken, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}
	return sToken, u, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, userID int) (*models.UserDoc, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
