package domain

// Client is a roster entry available for permission assignment. The roster is
// supplied in full by the external store; the engine only reads it.
type Client struct {
	ID       string
	UserID   string
	Email    string
	FullName string
	Role     Role
}

// GrantKey returns the identifier grants are keyed by: the linked user id when
// present, the roster entry id otherwise.
func (c Client) GrantKey() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.ID
}

// ResolveRoleMembers expands a role code into the deduplicated set of user ids
// currently holding that role. An unknown code yields an empty set; roster
// entries without a usable id are skipped.
func ResolveRoleMembers(code Role, roster []Client) []string {
	members := make([]string, 0)
	seen := make(map[string]struct{}, len(roster))

	for _, client := range roster {
		if client.Role != code {
			continue
		}
		key := client.GrantKey()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		members = append(members, key)
	}

	return members
}

// roleMemberSet resolves every role in codes and returns the union of their
// members keyed for O(1) membership checks.
func roleMemberSet(codes []Role, roster []Client) map[string]struct{} {
	set := make(map[string]struct{})
	for _, code := range codes {
		for _, id := range ResolveRoleMembers(code, roster) {
			set[id] = struct{}{}
		}
	}
	return set
}

// clientsByKey indexes a roster by grant key for cascade materialization.
func clientsByKey(roster []Client) map[string]Client {
	index := make(map[string]Client, len(roster))
	for _, client := range roster {
		key := client.GrantKey()
		if key == "" {
			continue
		}
		if _, ok := index[key]; !ok {
			index[key] = client
		}
	}
	return index
}
