package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	password := "5f4dcc3b5aa765d61d8327deb882cf99"

	hash, err := HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)
	assert.True(t, isBcryptHash(hash))

	t.Run("Correct Password", func(t *testing.T) {
		ok, legacy := CheckPassword(password, hash)
		assert.True(t, ok)
		assert.False(t, legacy)
	})

	t.Run("Incorrect Password", func(t *testing.T) {
		ok, legacy := CheckPassword("wrong", hash)
		assert.False(t, ok)
		assert.False(t, legacy)
	})

	t.Run("Legacy digest", func(t *testing.T) {
		ok, legacy := CheckPassword(password, password)
		assert.True(t, ok)
		assert.True(t, legacy)
	})

	t.Run("Legacy mismatch", func(t *testing.T) {
		ok, legacy := CheckPassword("other", password)
		assert.False(t, ok)
		assert.False(t, legacy)
	})
}

func TestToProfile(t *testing.T) {
	u := &User{Email: "a@b.com", Username: "a", Password: "secret", Role: RoleUser}

	p := u.ToProfile()
	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, RoleUser, p.Role)
	assert.Equal(t, u.ID.Hex(), p.ID)
}
