// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package sec

import "github.com/av3hub/avhub/internal/platform/constants"

// # Privilege Tiers

// Role represents the privilege tier derived from a user's identity.
//
// Anonymous and guest sessions carry no Role at all; callers model those as
// the absence of claims, not as a fourth tier.
type Role string

const (
	// Singleton top tier, bound to the reserved owner username
	RoleOwner Role = "owner"

	// Can verify and delete community scripts
	RoleAdmin Role = "admin"

	// Default tier for standard registered users
	RoleRegular Role = "regular"
)

// # Role Derivation

// DeriveRole computes the privilege tier from profile fields.
//
// Evaluation order: the reserved owner username wins over the admin flag,
// then the admin flag, then regular. The function is pure and deterministic;
// it is consulted on every permission check and must never be cached across
// an identity change.
func DeriveRole(username string, isAdmin bool) Role {
	if username == constants.OwnerUsername {
		return RoleOwner
	}
	if isAdmin {
		return RoleAdmin
	}
	return RoleRegular
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate tiers
	switch r {
	case RoleOwner:
		return 30
	case RoleAdmin:
		return 20
	case RoleRegular:
		return 10
	default:
		return 0
	}
}
