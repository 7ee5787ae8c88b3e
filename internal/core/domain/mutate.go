package domain

import "errors"

var (
	// ErrVisibilityRequired signals an attempt to grant usability to a user
	// who does not hold visibility. The set is left unchanged.
	ErrVisibilityRequired = errors.New("user must have visibility before usability")
	// ErrRoleVisibilityRequired signals an attempt to grant usability to a
	// role whose visibility is not active. The set is left unchanged.
	ErrRoleVisibilityRequired = errors.New("role must have visibility before usability")
)

// ToggleUserVisibility adds the client to the visibility grants, or removes it
// and cascade-removes its usability: a user cannot retain usability once
// visibility is revoked.
func (ps *PermissionSet) ToggleUserVisibility(c Client) {
	key := c.GrantKey()
	if key == "" {
		return
	}

	if containsGrant(ps.Visibility, key) {
		removed := map[string]struct{}{key: {}}
		ps.Visibility = removeGrants(ps.Visibility, removed)
		ps.Usability = removeGrants(ps.Usability, removed)
		return
	}

	ps.Visibility = append(ps.Visibility, PermissionGrant{
		ID:       key,
		UserID:   key,
		Email:    c.Email,
		FullName: c.FullName,
	})
}

// ToggleUserUsability toggles the client's membership in the usability grants.
// The client must already hold visibility; the prerequisite is checked at
// toggle time only.
func (ps *PermissionSet) ToggleUserUsability(c Client) error {
	key := c.GrantKey()
	if key == "" {
		return nil
	}

	if !containsGrant(ps.Visibility, key) {
		return ErrVisibilityRequired
	}

	if containsGrant(ps.Usability, key) {
		ps.Usability = removeGrants(ps.Usability, map[string]struct{}{key: {}})
		return nil
	}

	ps.Usability = append(ps.Usability, PermissionGrant{
		ID:       key,
		UserID:   key,
		Email:    c.Email,
		FullName: c.FullName,
	})
	return nil
}

// ToggleRoleVisibility activates or deactivates a role's visibility.
//
// Activation materializes the role's current members into the individual
// visibility grants. Deactivation removes the role from both role lists and
// removes every member of the role from both individual grant lists, leaving
// grants of non-members untouched even if they were added while the role was
// active.
func (ps *PermissionSet) ToggleRoleVisibility(code Role, roster []Client) {
	if containsRole(ps.VisibilityRoles, code) {
		ps.VisibilityRoles = removeRole(ps.VisibilityRoles, code)
		ps.UsabilityRoles = removeRole(ps.UsabilityRoles, code)

		members := make(map[string]struct{})
		for _, id := range ResolveRoleMembers(code, roster) {
			members[id] = struct{}{}
		}
		ps.Visibility = removeGrants(ps.Visibility, members)
		ps.Usability = removeGrants(ps.Usability, members)
		return
	}

	ps.VisibilityRoles = append(ps.VisibilityRoles, code)

	index := clientsByKey(roster)
	for _, id := range ResolveRoleMembers(code, roster) {
		ps.addGrantForKey(id, index, capabilityVisibility)
	}
}

// ToggleRoleUsability toggles a role's usability. The role must already have
// visibility active; like the user-level toggle, the prerequisite is checked
// at toggle time only.
func (ps *PermissionSet) ToggleRoleUsability(code Role, roster []Client) error {
	if !containsRole(ps.VisibilityRoles, code) {
		return ErrRoleVisibilityRequired
	}

	index := clientsByKey(roster)

	if containsRole(ps.UsabilityRoles, code) {
		ps.UsabilityRoles = removeRole(ps.UsabilityRoles, code)
		members := make(map[string]struct{})
		for _, id := range ResolveRoleMembers(code, roster) {
			members[id] = struct{}{}
		}
		ps.Usability = removeGrants(ps.Usability, members)
		return nil
	}

	ps.UsabilityRoles = append(ps.UsabilityRoles, code)
	for _, id := range ResolveRoleMembers(code, roster) {
		ps.addGrantForKey(id, index, capabilityUsability)
	}
	return nil
}

// TogglePublic flips the public flag. Turning public on clears every role and
// individual grant; turning it off restores nothing.
func (ps *PermissionSet) TogglePublic() {
	ps.Public = !ps.Public
	if ps.Public {
		ps.VisibilityRoles = []Role{}
		ps.UsabilityRoles = []Role{}
		ps.Visibility = []PermissionGrant{}
		ps.Usability = []PermissionGrant{}
	}
}
