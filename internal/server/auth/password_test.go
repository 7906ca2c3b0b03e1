package auth

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/bucketlist/internal/common"
	"github.com/dmitrijs2005/bucketlist/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore() *CredentialStore {
	return NewCredentialStore(bcrypt.MinCost)
}

func TestCreateAndVerify(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	pairs := []struct{ email, password string }{
		{"alice@example.com", "correct horse battery staple"},
		{"bob@example.com", "p"},
		{"  carol@example.com ", "пароль-с-юникодом"},
	}

	for _, p := range pairs {
		u, err := s.Create(p.email, p.password)
		require.NoError(t, err)
		assert.Equal(t, strings.TrimSpace(p.email), u.Email)
		assert.Zero(t, u.ID, "Create must not persist")

		assert.True(t, s.Verify(u, p.password))
		assert.False(t, s.Verify(u, p.password+"x"))
		assert.False(t, s.Verify(u, ""))
	}
}

func TestCreate_HashNeverStoresPlaintext(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	a, err := s.Create("a@example.com", "same-password")
	require.NoError(t, err)
	b, err := s.Create("b@example.com", "same-password")
	require.NoError(t, err)

	assert.NotEqual(t, "same-password", a.PasswordHash)
	assert.NotContains(t, a.PasswordHash, "same-password")
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash, "hashes must be salted")

	cost, err := bcrypt.Cost([]byte(a.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestCreate_Validation(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	_, err := s.Create("", "pw")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Create("   ", "pw")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Create("a@example.com", "")
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = s.Create("a@example.com", " \t ")
	require.ErrorIs(t, err, common.ErrValidation, "whitespace-only password")

	u, err := s.Create("a@example.com", " padded ")
	require.NoError(t, err)
	assert.True(t, s.Verify(u, " padded "), "surrounding spaces are part of the password")
	assert.False(t, s.Verify(u, "padded"))

	_, err = s.Create("a@example.com", strings.Repeat("x", 73))
	require.ErrorIs(t, err, common.ErrValidation, "bcrypt rejects passwords over 72 bytes")
}

func TestVerify_Degenerate(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	assert.False(t, s.Verify(nil, "pw"))
	assert.False(t, s.Verify(&models.User{}, "pw"))
	assert.False(t, s.Verify(&models.User{PasswordHash: "not-a-bcrypt-hash"}, "pw"))
}

func TestVerifyAbsent_AlwaysFalse(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	assert.False(t, s.VerifyAbsent("absent-account"))
	assert.False(t, s.VerifyAbsent("anything"))
}

func TestNewCredentialStore_DefaultCost(t *testing.T) {
	t.Parallel()
	assert.Equal(t, bcrypt.DefaultCost, NewCredentialStore(0).cost)
}
