package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister_HashesPassword(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	svc := NewService(repo)

	created, err := svc.Register(User{Email: "a@mail.com", Password: "secreto", Nombre: "A", Avatar: "a.png"})
	require.NoError(t, err)

	assert.NotEqual(t, "secreto", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secreto")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := NewInMemoryRepository([]User{{ID: 1, Email: "a@mail.com"}})
	svc := NewService(repo)

	_, err := svc.Register(User{Email: "a@mail.com", Password: "x"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("secreto"), bcrypt.MinCost)
	require.NoError(t, err)
	repo := NewInMemoryRepository([]User{{ID: 1, Email: "a@mail.com", Password: string(hashed)}})
	svc := NewService(repo)

	u, err := svc.Authenticate("a@mail.com", "secreto")
	require.NoError(t, err)
	assert.Equal(t, 1, u.ID)

	_, err = svc.Authenticate("a@mail.com", "otra")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("ghost@mail.com", "secreto")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
