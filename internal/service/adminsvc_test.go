package service

import (
	"context"
	"strings"
	"testing"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

func TestInviteAdminReturnsTempPasswordOnce(t *testing.T) {
	var storedHash string
	admins := &stubAdminsStore{
		t: t,
		createAdminFunc: func(_ context.Context, email, name string, role domain.AdminRole, passwordHash string) (domain.Admin, error) {
			if email != "invitee@example.com" || name != "Invitee" {
				t.Fatalf("unexpected identity: %s %s", email, name)
			}
			if role != domain.RoleAdmin {
				t.Fatalf("unexpected role: %s", role)
			}
			storedHash = passwordHash
			return domain.Admin{ID: "admin-2", Email: email, Name: name, Role: role}, nil
		},
	}

	svc := &AdminsService{Admins: admins}
	admin, tempPassword, err := svc.InviteAdmin(context.Background(), " invitee@example.com ", " Invitee ", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if admin.ID != "admin-2" {
		t.Fatalf("unexpected admin: %#v", admin)
	}
	if len(tempPassword) != 14 {
		t.Fatalf("unexpected temp password length: %d", len(tempPassword))
	}
	if strings.ContainsAny(tempPassword, "0O1lI") {
		t.Fatalf("temp password contains ambiguous characters: %q", tempPassword)
	}
	if storedHash == tempPassword {
		t.Fatalf("temp password stored without hashing")
	}
	ok, err := auth.VerifyPassword(storedHash, tempPassword)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: ok=%v err=%v", ok, err)
	}
}

func TestInviteAdminPropagatesEmailTaken(t *testing.T) {
	admins := &stubAdminsStore{
		t: t,
		createAdminFunc: func(_ context.Context, _, _ string, _ domain.AdminRole, _ string) (domain.Admin, error) {
			return domain.Admin{}, domain.ErrEmailTaken
		},
	}

	svc := &AdminsService{Admins: admins}
	_, _, err := svc.InviteAdmin(context.Background(), "dupe@example.com", "Dupe", domain.RoleAdmin)
	if err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
