// Copyright (c) 2026 AV3 Hub. All rights reserved.
// Author: sircats42@gmail.com

package view

import (
	"github.com/av3hub/avhub/internal/platform/sec"
)

// Tab identifies a dashboard section.
type Tab string

const (
	TabBrowse     Tab = "browse"
	TabUpload     Tab = "upload"
	TabSettings   Tab = "settings"
	TabOwnerPosts Tab = "owner-posts"
	TabUsers      Tab = "users"
)

/*
AllowedTabs computes the role-filtered dashboard tab set.

Guests and anonymous visitors (nil claims) can only browse. Registered
members add upload and settings; the owner additionally manages the
owner posts and the user directory. Admins share the member set — their
extra powers are verification actions inside browse, not extra tabs.

Parameters:
  - claims: *sec.AuthClaims (nil for guest/anonymous sessions)

Returns:
  - []Tab: Allowed tabs, browse first
*/
func AllowedTabs(claims *sec.AuthClaims) []Tab {
	if claims == nil {
		return []Tab{TabBrowse}
	}
	tabs := []Tab{TabBrowse, TabUpload, TabSettings}
	if claims.Role() == sec.RoleOwner {
		tabs = append(tabs, TabOwnerPosts, TabUsers)
	}
	return tabs
}

// DashboardTabs tracks the active dashboard section against the
// role-filtered allowed set. Selecting a tab outside the set is a
// silent no-op, and an identity change that removes the active tab
// falls back to browse.
type DashboardTabs struct {
	allowed []Tab
	active  Tab
}

func NewDashboardTabs(claims *sec.AuthClaims) *DashboardTabs {
	return &DashboardTabs{
		allowed: AllowedTabs(claims),
		active:  TabBrowse,
	}
}

// Active returns the currently selected tab.
func (d *DashboardTabs) Active() Tab {
	return d.active
}

// Allowed returns the tabs the current identity may select.
func (d *DashboardTabs) Allowed() []Tab {
	return d.allowed
}

// Select activates a tab. It reports whether the selection was honored;
// a tab outside the allowed set leaves the active tab unchanged.
func (d *DashboardTabs) Select(tab Tab) bool {
	if !d.isAllowed(tab) {
		return false
	}
	d.active = tab
	return true
}

// SetIdentity recomputes the allowed set after a login, logout, or role
// change. If the active tab is no longer allowed it resets to browse.
func (d *DashboardTabs) SetIdentity(claims *sec.AuthClaims) {
	d.allowed = AllowedTabs(claims)
	if !d.isAllowed(d.active) {
		d.active = TabBrowse
	}
}

func (d *DashboardTabs) isAllowed(tab Tab) bool {
	for _, allowed := range d.allowed {
		if allowed == tab {
			return true
		}
	}
	return false
}
