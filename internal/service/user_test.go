package service

import (
	"context"
	"fmt"
	"testing"

	"sprint2/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	tests := map[string]string{
		"admin":                 model.RoleAdmin,
		"utilisateur":           model.RoleUser,
		"autre_role_par_defaut": model.RoleDefault,
		" admin ":               model.RoleAdmin,
		"hacker":                model.RoleUser,
		"":                      model.RoleUser,
		"ADMIN":                 model.RoleUser,
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeRole(in), "role %q", in)
	}
}

func TestUserServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid role falls back to default", func(t *testing.T) {
		f := newFixture(t, false)
		user, err := f.users.Create(ctx, model.CreateUserRequest{
			Username: "bob", Password: "pw", Email: "bob@x.com", Role: "hacker",
		})
		require.NoError(t, err)

		got, err := f.users.Get(ctx, user.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, got.Role)
		assert.Equal(t, "bob", got.Username)
		assert.Equal(t, "pw", got.Password)
		assert.Equal(t, "bob@x.com", got.Email)
	})

	t.Run("duplicate username is rejected without writing", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.users.Create(ctx, model.CreateUserRequest{Username: "bob", Password: "pw", Email: "bob@x.com"})
		require.NoError(t, err)

		_, err = f.users.Create(ctx, model.CreateUserRequest{Username: "bob", Password: "other", Email: "b2@x.com", Role: "admin"})
		assert.ErrorIs(t, err, ErrDuplicate)

		users, err := f.users.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("registration number unique when present", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.users.Create(ctx, model.CreateUserRequest{Username: "a", Password: "pw", Email: "a@x.com", NumInscrit: "42"})
		require.NoError(t, err)
		_, err = f.users.Create(ctx, model.CreateUserRequest{Username: "b", Password: "pw", Email: "b@x.com"})
		require.NoError(t, err)
		_, err = f.users.Create(ctx, model.CreateUserRequest{Username: "c", Password: "pw", Email: "c@x.com"})
		require.NoError(t, err, "absent registration numbers never collide")

		_, err = f.users.Create(ctx, model.CreateUserRequest{Username: "d", Password: "pw", Email: "d@x.com", NumInscrit: "42"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("email only needs to be present", func(t *testing.T) {
		f := newFixture(t, false)
		for i, email := range []string{"admin@localhost", "élève@école.fr", "a@b"} {
			_, err := f.users.Create(ctx, model.CreateUserRequest{
				Username: fmt.Sprintf("user%d", i), Password: "pw", Email: email,
			})
			assert.NoError(t, err, email)
		}
	})

	t.Run("missing required field", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.users.Create(ctx, model.CreateUserRequest{Username: "bob", Email: "bob@x.com"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "password")
	})
}

func TestUserServiceUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	bob, err := f.users.Create(ctx, model.CreateUserRequest{
		Username: "bob", Password: "pw", Email: "bob@x.com", Role: "admin", UserClass: "6A",
	})
	require.NoError(t, err)
	_, err = f.users.Create(ctx, model.CreateUserRequest{Username: "carol", Password: "pw", Email: "c@x.com", NumInscrit: "7"})
	require.NoError(t, err)

	t.Run("only supplied fields change", func(t *testing.T) {
		_, err := f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{Email: model.Some("new@x.com")})
		require.NoError(t, err)

		got, err := f.users.Get(ctx, bob.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "new@x.com", got.Email)
		assert.Equal(t, "bob", got.Username)
		assert.Equal(t, "pw", got.Password)
		assert.Equal(t, model.RoleAdmin, got.Role)
		assert.Equal(t, "6A", got.UserClass)
		assert.True(t, bob.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("role is normalised", func(t *testing.T) {
		got, err := f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{Role: model.Some("root")})
		require.NoError(t, err)
		assert.Equal(t, model.RoleUser, got.Role)
	})

	t.Run("taken username or registration number", func(t *testing.T) {
		_, err := f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{Username: model.Some("carol")})
		assert.ErrorIs(t, err, ErrDuplicate)
		_, err = f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{NumInscrit: model.Some("7")})
		assert.ErrorIs(t, err, ErrDuplicate)

		got, err := f.users.Get(ctx, bob.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "bob", got.Username)
		assert.Empty(t, got.NumInscrit)
	})

	t.Run("keeping own username is fine", func(t *testing.T) {
		_, err := f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{Username: model.Some("bob")})
		assert.NoError(t, err)
	})

	t.Run("empty required field", func(t *testing.T) {
		_, err := f.users.Update(ctx, bob.ID.Hex(), model.UpdateUserRequest{Username: model.Some("  ")})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := f.users.Update(ctx, newID(), model.UpdateUserRequest{Email: model.Some("x@x.com")})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, err := f.users.Update(ctx, "zzz", model.UpdateUserRequest{})
		assert.ErrorIs(t, err, ErrInvalidID)
	})
}

func TestUserServiceDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	bob, err := f.users.Create(ctx, model.CreateUserRequest{Username: "bob", Password: "pw", Email: "bob@x.com"})
	require.NoError(t, err)

	assert.ErrorIs(t, f.users.Delete(ctx, newID()), ErrNotFound)
	require.NoError(t, f.users.Delete(ctx, bob.ID.Hex()))
	assert.ErrorIs(t, f.users.Delete(ctx, bob.ID.Hex()), ErrNotFound)

	_, err = f.users.Get(ctx, bob.ID.Hex())
	assert.ErrorIs(t, err, ErrNotFound)
}
