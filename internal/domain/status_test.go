package domain_test

import (
	"testing"

	"github.com/andreicionca/motivare-absente/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		name     string
		kind     domain.RequestKind
		label    string
		guardian bool
		want     domain.Stage
	}{
		{"excuse pending", domain.KindExcuse, domain.ExcusePending, false, domain.StageSubmitted},
		{"excuse approved", domain.KindExcuse, domain.ExcuseApproved, false, domain.StageApproved},
		{"excuse finalized", domain.KindExcuse, domain.ExcuseFinalized, false, domain.StageFinalized},
		{"student short leave waits for guardian", domain.KindShortLeave, domain.ShortLeaveSubmitted, false, domain.StageAwaitingGuardian},
		{"parent short leave goes to teacher", domain.KindShortLeave, domain.ShortLeaveSubmitted, true, domain.StageAwaitingTeacher},
		{"parent approved", domain.KindShortLeave, domain.ShortLeaveParentApproved, true, domain.StageAwaitingTeacher},
		{"teacher accepted", domain.KindShortLeave, domain.ShortLeaveTeacherAccepted, true, domain.StageApproved},
		{"short leave rejected", domain.KindShortLeave, domain.ShortLeaveRejected, false, domain.StageRejected},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st, ok := domain.ParseStatus(tc.kind, tc.label, tc.guardian)

			assert.True(t, ok)
			assert.Equal(t, tc.want, st.Stage)
			assert.Equal(t, tc.kind, st.Kind)
			assert.Equal(t, tc.label, st.Label)
		})
	}

	t.Run("negative label of the other kind", func(t *testing.T) {
		_, ok := domain.ParseStatus(domain.KindExcuse, domain.ShortLeaveTeacherAccepted, false)
		assert.False(t, ok)
	})
}

func TestLabelFor_RoundTripsStages(t *testing.T) {
	assert.Equal(t, domain.ExcuseApproved, domain.LabelFor(domain.KindExcuse, domain.StageApproved))
	assert.Equal(t, domain.ShortLeaveTeacherAccepted, domain.LabelFor(domain.KindShortLeave, domain.StageApproved))
	assert.Equal(t, domain.ShortLeaveParentApproved, domain.LabelFor(domain.KindShortLeave, domain.StageAwaitingTeacher))
	assert.Equal(t, "", domain.LabelFor(domain.KindExcuse, domain.StageAwaitingGuardian))
}

func TestCanTransition(t *testing.T) {
	t.Run("teacher approves pending excuse", func(t *testing.T) {
		assert.True(t, domain.CanTransition(domain.KindExcuse, domain.StageSubmitted, domain.StageApproved, domain.RoleTeacher))
	})

	t.Run("teacher accepts short leave with or without guardian approval", func(t *testing.T) {
		assert.True(t, domain.CanTransition(domain.KindShortLeave, domain.StageAwaitingGuardian, domain.StageApproved, domain.RoleTeacher))
		assert.True(t, domain.CanTransition(domain.KindShortLeave, domain.StageAwaitingTeacher, domain.StageApproved, domain.RoleTeacher))
		assert.False(t, domain.CanTransition(domain.KindShortLeave, domain.StageApproved, domain.StageApproved, domain.RoleTeacher))
	})

	t.Run("teacher may reject short leave at any point before finalize", func(t *testing.T) {
		assert.True(t, domain.CanTransition(domain.KindShortLeave, domain.StageAwaitingGuardian, domain.StageRejected, domain.RoleTeacher))
		assert.True(t, domain.CanTransition(domain.KindShortLeave, domain.StageApproved, domain.StageRejected, domain.RoleTeacher))
		assert.False(t, domain.CanTransition(domain.KindShortLeave, domain.StageFinalized, domain.StageRejected, domain.RoleTeacher))
	})

	t.Run("approved excuse cannot be rejected", func(t *testing.T) {
		assert.False(t, domain.CanTransition(domain.KindExcuse, domain.StageApproved, domain.StageRejected, domain.RoleTeacher))
	})

	t.Run("parent approves only student short leave", func(t *testing.T) {
		assert.True(t, domain.CanTransition(domain.KindShortLeave, domain.StageAwaitingGuardian, domain.StageAwaitingTeacher, domain.RoleParent))
		assert.False(t, domain.CanTransition(domain.KindExcuse, domain.StageSubmitted, domain.StageApproved, domain.RoleParent))
	})

	t.Run("finalize is never a review step", func(t *testing.T) {
		assert.False(t, domain.CanTransition(domain.KindExcuse, domain.StageApproved, domain.StageFinalized, domain.RoleTeacher))
	})

	t.Run("students never review", func(t *testing.T) {
		assert.False(t, domain.CanTransition(domain.KindShortLeave, domain.StageAwaitingGuardian, domain.StageAwaitingTeacher, domain.RoleStudent))
	})
}

func TestRequestStatus_IsWithdrawable(t *testing.T) {
	parse := func(kind domain.RequestKind, label string, guardian bool) domain.RequestStatus {
		st, ok := domain.ParseStatus(kind, label, guardian)
		if !ok {
			t.Fatalf("unknown label %q", label)
		}
		return st
	}

	assert.True(t, parse(domain.KindExcuse, domain.ExcusePending, false).IsWithdrawable())
	assert.True(t, parse(domain.KindShortLeave, domain.ShortLeaveSubmitted, false).IsWithdrawable())

	parentSubmitted := parse(domain.KindShortLeave, domain.ShortLeaveSubmitted, true)
	assert.Equal(t, domain.StageAwaitingTeacher, parentSubmitted.Stage)
	assert.True(t, parentSubmitted.IsWithdrawable())

	assert.False(t, parse(domain.KindShortLeave, domain.ShortLeaveParentApproved, true).IsWithdrawable())
	assert.False(t, parse(domain.KindShortLeave, domain.ShortLeaveTeacherAccepted, true).IsWithdrawable())
	assert.False(t, parse(domain.KindExcuse, domain.ExcuseApproved, false).IsWithdrawable())
	assert.False(t, parse(domain.KindExcuse, domain.ExcuseFinalized, false).IsWithdrawable())
}
