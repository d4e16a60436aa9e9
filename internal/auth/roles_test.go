package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk/internal/domain"
)

func TestPolicyCanUpdateStatus(t *testing.T) {
	policy, err := NewPolicy()
	require.NoError(t, err)

	const owner int64 = 7
	cases := []struct {
		name     string
		identity domain.Identity
		allowed  bool
		reason   string
	}{
		{"owner with user role", domain.Identity{UserID: owner, Role: domain.RoleUser}, true, ReasonOwner},
		{"other user", domain.Identity{UserID: 8, Role: domain.RoleUser}, false, ReasonNotOwner},
		{"agent on foreign ticket", domain.Identity{UserID: 8, Role: domain.RoleAgent}, true, ReasonPrivilegedRole},
		{"admin on foreign ticket", domain.Identity{UserID: 9, Role: domain.RoleAdmin}, true, ReasonPrivilegedRole},
		{"agent who owns it", domain.Identity{UserID: owner, Role: domain.RoleAgent}, true, ReasonPrivilegedRole},
		{"unknown role", domain.Identity{UserID: 8, Role: "root"}, false, ReasonNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := policy.CanUpdateStatus(tc.identity, owner)
			assert.Equal(t, tc.allowed, decision.Allowed)
			assert.Equal(t, tc.reason, decision.Reason)
		})
	}
}
