package domain

// PermissionRecord is a raw individual permission entry as delivered by the
// permissions endpoint. Records missing any field are dropped at construction.
type PermissionRecord struct {
	UserID   string
	Email    string
	FullName string
}

// ActiveRoles lists the role codes currently granted per capability.
type ActiveRoles struct {
	VisibilityRoles []Role
	UsabilityRoles  []Role
}

// PermissionPayload mirrors the wire shape returned by the load-permissions
// endpoint.
type PermissionPayload struct {
	IsPublic    bool
	ActiveRoles ActiveRoles
	Visibility  []PermissionRecord
	Usability   []PermissionRecord
}

// PermissionGrant is an individual grant materialized in a PermissionSet.
// ID mirrors UserID.
type PermissionGrant struct {
	ID       string
	UserID   string
	Email    string
	FullName string
}

// PermissionSet is the authoritative in-memory representation of who may view
// and who may use (fill/sign) a document. Role-derived members are materialized
// into the individual grant lists at construction and mutation time, so
// membership queries never re-run the role cascade.
type PermissionSet struct {
	Public          bool
	VisibilityRoles []Role
	UsabilityRoles  []Role
	Visibility      []PermissionGrant
	Usability       []PermissionGrant
}

// NewPermissionSet builds a PermissionSet from a server payload and the current
// roster. Malformed individual records are silently dropped, as are records for
// users an active role already covers: role membership is re-resolved from the
// roster so stale payload copies would make later role revocation leave
// dangling grants. Current members of active roles are then materialized back
// into the individual lists from the roster.
func NewPermissionSet(payload PermissionPayload, roster []Client) *PermissionSet {
	set := &PermissionSet{
		Visibility: make([]PermissionGrant, 0, len(payload.Visibility)),
		Usability:  make([]PermissionGrant, 0, len(payload.Usability)),
	}

	if payload.IsPublic {
		set.Public = true
		set.VisibilityRoles = []Role{}
		set.UsabilityRoles = []Role{}
		return set
	}

	set.VisibilityRoles = append([]Role{}, payload.ActiveRoles.VisibilityRoles...)
	set.UsabilityRoles = append([]Role{}, payload.ActiveRoles.UsabilityRoles...)

	covered := roleMemberSet(set.VisibilityRoles, roster)
	for id := range roleMemberSet(set.UsabilityRoles, roster) {
		covered[id] = struct{}{}
	}

	for _, record := range payload.Visibility {
		if grant, ok := normalizeRecord(record, covered); ok {
			set.Visibility = append(set.Visibility, grant)
		}
	}
	for _, record := range payload.Usability {
		if grant, ok := normalizeRecord(record, covered); ok {
			set.Usability = append(set.Usability, grant)
		}
	}

	index := clientsByKey(roster)
	set.materializeRoleMembers(set.VisibilityRoles, roster, index, capabilityVisibility)
	set.materializeRoleMembers(set.UsabilityRoles, roster, index, capabilityUsability)

	return set
}

func normalizeRecord(record PermissionRecord, covered map[string]struct{}) (PermissionGrant, bool) {
	if record.UserID == "" || record.Email == "" || record.FullName == "" {
		return PermissionGrant{}, false
	}
	if _, ok := covered[record.UserID]; ok {
		return PermissionGrant{}, false
	}
	return PermissionGrant{
		ID:       record.UserID,
		UserID:   record.UserID,
		Email:    record.Email,
		FullName: record.FullName,
	}, true
}

type capability int

const (
	capabilityVisibility capability = iota
	capabilityUsability
)

func (ps *PermissionSet) grants(cap capability) *[]PermissionGrant {
	if cap == capabilityUsability {
		return &ps.Usability
	}
	return &ps.Visibility
}

func (ps *PermissionSet) materializeRoleMembers(codes []Role, roster []Client, index map[string]Client, cap capability) {
	for _, code := range codes {
		for _, id := range ResolveRoleMembers(code, roster) {
			ps.addGrantForKey(id, index, cap)
		}
	}
}

func (ps *PermissionSet) addGrantForKey(key string, index map[string]Client, cap capability) {
	list := ps.grants(cap)
	if containsGrant(*list, key) {
		return
	}
	client, ok := index[key]
	if !ok {
		return
	}
	*list = append(*list, PermissionGrant{
		ID:       key,
		UserID:   key,
		Email:    client.Email,
		FullName: client.FullName,
	})
}

func containsGrant(list []PermissionGrant, key string) bool {
	for _, grant := range list {
		if grant.UserID == key || grant.ID == key {
			return true
		}
	}
	return false
}

func removeGrants(list []PermissionGrant, keys map[string]struct{}) []PermissionGrant {
	kept := list[:0]
	for _, grant := range list {
		if _, ok := keys[grant.UserID]; ok {
			continue
		}
		if _, ok := keys[grant.ID]; ok {
			continue
		}
		kept = append(kept, grant)
	}
	return kept
}

// HasVisibility reports whether the user may see the document.
func (ps *PermissionSet) HasVisibility(u User) bool {
	if ps.Public {
		return true
	}
	return containsGrant(ps.Visibility, u.ID)
}

// HasUsability reports whether the user may fill or act on the document.
func (ps *PermissionSet) HasUsability(u User) bool {
	if ps.Public {
		return true
	}
	return containsGrant(ps.Usability, u.ID)
}

// HasRoleVisibility reports whether the role code is active for visibility.
func (ps *PermissionSet) HasRoleVisibility(code Role) bool {
	return containsRole(ps.VisibilityRoles, code)
}

// HasRoleUsability reports whether the role code is active for usability.
func (ps *PermissionSet) HasRoleUsability(code Role) bool {
	return containsRole(ps.UsabilityRoles, code)
}

func containsRole(list []Role, code Role) bool {
	for _, role := range list {
		if role == code {
			return true
		}
	}
	return false
}

func removeRole(list []Role, code Role) []Role {
	kept := list[:0]
	for _, role := range list {
		if role != code {
			kept = append(kept, role)
		}
	}
	return kept
}
