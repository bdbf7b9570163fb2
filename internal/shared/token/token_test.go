package token_test

import (
	"testing"
	"time"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/shared/token"

	"github.com/stretchr/testify/assert"
)

func TestIssueAndParse(t *testing.T) {
	p := domain.Principal{UserID: "u-1", Role: domain.RoleParent, StudentID: "s-1", Class: "10B"}

	t.Run("round trip", func(t *testing.T) {
		raw, err := token.Issue("secret", p, time.Hour, time.Now())
		assert.NoError(t, err)

		got, err := token.Parse("secret", raw)

		assert.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("negative wrong secret", func(t *testing.T) {
		raw, _ := token.Issue("secret", p, time.Hour, time.Now())

		_, err := token.Parse("other", raw)

		assert.ErrorIs(t, err, token.ErrInvalid)
	})

	t.Run("negative expired", func(t *testing.T) {
		raw, _ := token.Issue("secret", p, time.Minute, time.Now().Add(-time.Hour))

		_, err := token.Parse("secret", raw)

		assert.ErrorIs(t, err, token.ErrExpired)
	})

	t.Run("negative student token without student id", func(t *testing.T) {
		raw, _ := token.Issue("secret", domain.Principal{UserID: "u-2", Role: domain.RoleStudent}, time.Hour, time.Now())

		_, err := token.Parse("secret", raw)

		assert.ErrorIs(t, err, token.ErrInvalid)
	})
}
