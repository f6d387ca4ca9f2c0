// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/av3hub/avhub/internal/platform/sec"
)

/*
TestDeriveRole verifies the privilege tier evaluation order.
*/
func TestDeriveRole(t *testing.T) {
	tests := []struct {
		name     string
		username string
		isAdmin  bool
		want     sec.Role
	}{
		{"owner_username", "AV3", false, sec.RoleOwner},
		{"owner_username_with_admin_flag", "AV3", true, sec.RoleOwner},
		{"admin_flag", "x", true, sec.RoleAdmin},
		{"regular", "x", false, sec.RoleRegular},
		{"lowercase_owner_is_not_owner", "av3", false, sec.RoleRegular},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.DeriveRole(tt.username, tt.isAdmin))
		})
	}
}

/*
TestDeriveRole_Deterministic verifies repeated evaluation never drifts.
*/
func TestDeriveRole_Deterministic(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.Equal(t, sec.RoleOwner, sec.DeriveRole("AV3", false))
	}
}

/*
TestRole_AtLeast covers the tier hierarchy comparisons.
*/
func TestRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleOwner.AtLeast(sec.RoleAdmin))
	assert.True(t, sec.RoleOwner.AtLeast(sec.RoleRegular))
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleRegular))
	assert.False(t, sec.RoleRegular.AtLeast(sec.RoleAdmin))
	assert.False(t, sec.RoleAdmin.AtLeast(sec.RoleOwner))

	// An unknown tier never satisfies any requirement.
	assert.False(t, sec.Role("").AtLeast(sec.RoleRegular))
}

/*
TestAuthClaims_Role verifies that claims re-derive their role from identity fields.
*/
func TestAuthClaims_Role(t *testing.T) {
	claims := &sec.AuthClaims{Username: "AV3", IsAdmin: false}
	assert.Equal(t, sec.RoleOwner, claims.Role())

	claims.Username = "someone"
	assert.Equal(t, sec.RoleRegular, claims.Role())
}
