package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Role     string   `json:"role" validate:"omitempty,oneof=user admin"`
	Books    []string `json:"books" validate:"max=3"`
}

func TestStructOK(t *testing.T) {
	assert.NoError(t, Struct(&signup{Email: "ana@example.com", Password: "secreto"}))
}

func TestStructReportsJSONNames(t *testing.T) {
	err := Struct(&signup{Email: "no-es-mail", Password: "123", Role: "root", Books: []string{"a", "b", "c", "d"}})
	require.Error(t, err)

	var ve *Error
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("email"))
	assert.True(t, ve.Has("password"))
	assert.True(t, ve.Has("role"))
	assert.True(t, ve.Has("books"))
	assert.False(t, ve.Has("Email"))
	assert.Contains(t, ve.Error(), "email must be a valid email address")
	assert.Contains(t, ve.Error(), "role must be one of: user admin")
}

func TestStructRequired(t *testing.T) {
	err := Struct(&signup{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email is required")
	assert.Contains(t, err.Error(), "password is required")
}

func TestGetIsSingleton(t *testing.T) {
	assert.Same(t, Get(), Get())
}
