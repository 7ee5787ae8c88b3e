package domain

import "testing"

func TestResolveRoleMembers_MatchesRoleCode(t *testing.T) {
	roster := []Client{
		{ID: "c1", UserID: "u1", Email: "a@x.com", FullName: "Ana", Role: RoleClient},
		{ID: "c2", UserID: "u2", Email: "b@x.com", FullName: "Bruno", Role: RoleClient},
		{ID: "c3", UserID: "u3", Email: "l@x.com", FullName: "Laura", Role: RoleLawyer},
	}

	members := ResolveRoleMembers(RoleClient, roster)
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	if members[0] != "u1" || members[1] != "u2" {
		t.Errorf("expected [u1 u2], got %v", members)
	}
}

func TestResolveRoleMembers_FallsBackToEntryID(t *testing.T) {
	roster := []Client{
		{ID: "c1", Email: "a@x.com", FullName: "Ana", Role: RoleClient},
	}

	members := ResolveRoleMembers(RoleClient, roster)
	if len(members) != 1 || members[0] != "c1" {
		t.Fatalf("expected [c1], got %v", members)
	}
}

func TestResolveRoleMembers_DropsEmptyIDs(t *testing.T) {
	roster := []Client{
		{Email: "ghost@x.com", FullName: "Ghost", Role: RoleClient},
		{ID: "c2", UserID: "u2", Role: RoleClient},
	}

	members := ResolveRoleMembers(RoleClient, roster)
	if len(members) != 1 || members[0] != "u2" {
		t.Fatalf("expected [u2], got %v", members)
	}
}

func TestResolveRoleMembers_Deduplicates(t *testing.T) {
	roster := []Client{
		{ID: "c1", UserID: "u1", Role: RoleClient},
		{ID: "c9", UserID: "u1", Role: RoleClient},
	}

	members := ResolveRoleMembers(RoleClient, roster)
	if len(members) != 1 {
		t.Fatalf("expected deduplicated single member, got %v", members)
	}
}

func TestResolveRoleMembers_UnknownRoleYieldsEmptySet(t *testing.T) {
	roster := []Client{
		{ID: "c1", UserID: "u1", Role: RoleClient},
	}

	members := ResolveRoleMembers(Role("auditor"), roster)
	if len(members) != 0 {
		t.Fatalf("expected empty set for unknown role, got %v", members)
	}
}
