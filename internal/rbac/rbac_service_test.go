package rbac_test

import (
	"testing"

	"github.com/andreicionca/motivare-absente/internal/domain"
	"github.com/andreicionca/motivare-absente/internal/rbac"
	"github.com/andreicionca/motivare-absente/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := infra.NewEnforcer()
	assert.NoError(t, err)
	svc, err := rbac.NewService(e, rbac.DefaultPolicy())
	assert.NoError(t, err)
	return svc
}

func TestService_Enforce(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     domain.Role
		resource string
		action   string
		want     bool
	}{
		{"student submits excuse", domain.RoleStudent, rbac.ResourceExcuse, rbac.ActionSubmit, true},
		{"parent submits short leave", domain.RoleParent, rbac.ResourceShortLeave, rbac.ActionSubmit, true},
		{"parent reviews", domain.RoleParent, rbac.ResourceRequest, rbac.ActionReview, true},
		{"student cannot review", domain.RoleStudent, rbac.ResourceRequest, rbac.ActionReview, false},
		{"student cannot finalize", domain.RoleStudent, rbac.ResourceRequest, rbac.ActionFinalize, false},
		{"teacher finalizes", domain.RoleTeacher, rbac.ResourceRequest, rbac.ActionFinalize, true},
		{"teacher does not submit", domain.RoleTeacher, rbac.ResourceExcuse, rbac.ActionSubmit, false},
		{"unknown role", domain.Role("admin"), rbac.ResourceRequest, rbac.ActionFinalize, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Subject:  "user-1",
				Role:     string(tc.role),
				Resource: tc.resource,
				Action:   tc.action,
			})

			assert.NoError(t, err)
			assert.Equal(t, tc.want, allowed)
		})
	}
}

func TestService_Permissions(t *testing.T) {
	svc := newService(t)

	perms, err := svc.Permissions(string(domain.RoleTeacher))

	assert.NoError(t, err)
	assert.Contains(t, perms, "request:finalize")
	assert.NotContains(t, perms, "excuse:submit")
}
