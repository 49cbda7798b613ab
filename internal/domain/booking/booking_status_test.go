package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-rentals/service-rental/internal/auth"
	"github.com/nimbus-rentals/service-rental/internal/domain"
)

func TestParseStatus(t *testing.T) {
	for _, valid := range []string{"PENDING", "CONFIRMED", "REJECTED", "CANCELLED"} {
		status, err := ParseStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseStatus("pending")
	assert.Error(t, err, "statuses are uppercase only")
	_, err = ParseStatus("APPROVED")
	assert.Error(t, err)
}

func TestStatusProperties(t *testing.T) {
	assert.True(t, StatusPending.IsLive())
	assert.True(t, StatusConfirmed.IsLive())
	assert.False(t, StatusRejected.IsLive())
	assert.False(t, StatusCancelled.IsLive())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestAuthorizeTransition(t *testing.T) {
	staffRoles := []auth.Role{auth.RoleAdmin, auth.RoleCarManager, auth.RoleMotorbikeManager}

	tests := []struct {
		name     string
		role     auth.Role
		current  Status
		target   Status
		wantKind domain.ErrorKind // empty means allowed
	}{
		{"customer cancels pending", auth.RoleCustomer, StatusPending, StatusCancelled, ""},
		{"customer cancels confirmed", auth.RoleCustomer, StatusConfirmed, StatusCancelled, ""},
		{"customer cancels rejected", auth.RoleCustomer, StatusRejected, StatusCancelled, domain.KindForbidden},
		{"customer cancels cancelled", auth.RoleCustomer, StatusCancelled, StatusCancelled, domain.KindForbidden},
		{"customer confirms", auth.RoleCustomer, StatusPending, StatusConfirmed, domain.KindForbidden},
		{"customer rejects", auth.RoleCustomer, StatusPending, StatusRejected, domain.KindForbidden},

		{"staff confirms pending", auth.RoleAdmin, StatusPending, StatusConfirmed, ""},
		{"staff rejects pending", auth.RoleAdmin, StatusPending, StatusRejected, ""},
		{"staff rejects confirmed", auth.RoleAdmin, StatusConfirmed, StatusRejected, ""},
		{"staff re-confirms confirmed", auth.RoleAdmin, StatusConfirmed, StatusConfirmed, domain.KindBadRequest},
		{"staff cancels", auth.RoleAdmin, StatusPending, StatusCancelled, domain.KindForbidden},
		{"staff reverts to pending", auth.RoleAdmin, StatusConfirmed, StatusPending, domain.KindForbidden},
		{"staff modifies rejected", auth.RoleAdmin, StatusRejected, StatusConfirmed, domain.KindBadRequest},
		{"staff modifies cancelled", auth.RoleAdmin, StatusCancelled, StatusRejected, domain.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeTransition(tt.role, tt.current, tt.target)
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
			}
		})
	}

	// Staff gating does not depend on which staff role asks.
	for _, role := range staffRoles {
		assert.NoError(t, AuthorizeTransition(role, StatusPending, StatusConfirmed), role)
		err := AuthorizeTransition(role, StatusPending, StatusCancelled)
		require.Error(t, err, role)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err), role)
	}
}

func TestAuthorizeTransitionMessages(t *testing.T) {
	err := AuthorizeTransition(auth.RoleAdmin, StatusPending, StatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only customers can cancel bookings")

	err = AuthorizeTransition(auth.RoleCarManager, StatusConfirmed, StatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot change status back to pending")

	err = AuthorizeTransition(auth.RoleCustomer, StatusRejected, StatusCancelled)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending or confirmed")
}
