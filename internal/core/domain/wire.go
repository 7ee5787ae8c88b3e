package domain

// ExpandedWire is the serialization consumed by the update endpoint: role
// grants resolved to their member user ids and unioned with explicit grants.
type ExpandedWire struct {
	IsPublic   bool     `json:"is_public"`
	Visibility []string `json:"visibility"`
	Usability  []string `json:"usability"`
}

// CompactCapability carries one capability's grants with roles kept symbolic.
type CompactCapability struct {
	Roles   []Role   `json:"roles"`
	UserIDs []string `json:"user_ids"`
}

// CompactWire is the serialization consumed by the create endpoint.
type CompactWire struct {
	IsPublic   bool              `json:"is_public"`
	Visibility CompactCapability `json:"visibility"`
	Usability  CompactCapability `json:"usability"`
}

// WireExpanded resolves role grants against the roster, unions them with the
// explicit grant ids, and deduplicates. A public set collapses to empty lists.
func (ps *PermissionSet) WireExpanded(roster []Client) ExpandedWire {
	if ps.Public {
		return ExpandedWire{IsPublic: true, Visibility: []string{}, Usability: []string{}}
	}

	return ExpandedWire{
		Visibility: expandCapability(ps.VisibilityRoles, ps.Visibility, roster),
		Usability:  expandCapability(ps.UsabilityRoles, ps.Usability, roster),
	}
}

func expandCapability(codes []Role, grants []PermissionGrant, roster []Client) []string {
	ids := make([]string, 0, len(grants))
	seen := make(map[string]struct{})

	for _, code := range codes {
		for _, id := range ResolveRoleMembers(code, roster) {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	for _, grant := range grants {
		if grant.UserID == "" {
			continue
		}
		if _, ok := seen[grant.UserID]; !ok {
			seen[grant.UserID] = struct{}{}
			ids = append(ids, grant.UserID)
		}
	}

	return ids
}

// WireCompact keeps role grants symbolic alongside the explicit grant ids.
// A public set collapses to empty lists.
func (ps *PermissionSet) WireCompact() CompactWire {
	if ps.Public {
		return CompactWire{
			IsPublic:   true,
			Visibility: CompactCapability{Roles: []Role{}, UserIDs: []string{}},
			Usability:  CompactCapability{Roles: []Role{}, UserIDs: []string{}},
		}
	}

	return CompactWire{
		Visibility: CompactCapability{
			Roles:   append([]Role{}, ps.VisibilityRoles...),
			UserIDs: grantIDs(ps.Visibility),
		},
		Usability: CompactCapability{
			Roles:   append([]Role{}, ps.UsabilityRoles...),
			UserIDs: grantIDs(ps.Usability),
		},
	}
}

func grantIDs(grants []PermissionGrant) []string {
	ids := make([]string, 0, len(grants))
	seen := make(map[string]struct{}, len(grants))
	for _, grant := range grants {
		if grant.UserID == "" {
			continue
		}
		if _, ok := seen[grant.UserID]; ok {
			continue
		}
		seen[grant.UserID] = struct{}{}
		ids = append(ids, grant.UserID)
	}
	return ids
}
