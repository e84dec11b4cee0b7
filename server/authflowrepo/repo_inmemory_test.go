package authflowrepo_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nelindogu/userdir/server/authflowrepo"
)

func TestInMemoryRepo(t *testing.T) {
	t.Run("round trip returns a copy", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		stored := &authflowrepo.LoginState{
			CodeVerifier: "verifier",
			Nonce:        "nonce",
			ReturnPath:   "/",
			CreatedAt:    time.Now(),
		}
		require.NoError(t, repo.Upsert("state-1", stored))

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, stored.Nonce, got.Nonce)

		got.Nonce = "mutated"
		again, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "nonce", again.Nonce)
	})

	t.Run("empty state is rejected", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.Error(t, repo.Upsert("", &authflowrepo.LoginState{}))
		_, err := repo.Get("")
		require.Error(t, err)
		require.Error(t, repo.Delete(""))
	})

	t.Run("unknown state is not found", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		_, err := repo.Get("missing")
		require.Error(t, err)
	})

	t.Run("delete removes the pending login", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("state-1", &authflowrepo.LoginState{CreatedAt: time.Now()}))
		require.NoError(t, repo.Delete("state-1"))
		_, err := repo.Get("state-1")
		require.Error(t, err)
	})

	t.Run("stale entries expire", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("old", &authflowrepo.LoginState{
			CreatedAt: time.Now().Add(-time.Hour),
		}))
		_, err := repo.Get("old")
		require.Error(t, err)
	})
}
