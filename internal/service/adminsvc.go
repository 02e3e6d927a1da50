package service

import (
	"context"
	"strings"

	"primehavenwebserver/internal/auth"
	"primehavenwebserver/internal/domain"
)

type AdminsService struct {
	Admins AdminsStore
}

func (s *AdminsService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.Admins.ListAdmins(ctx)
}

// InviteAdmin creates an account with a generated temporary password and
// returns that password in plaintext exactly once, for out-of-band
// delivery. Only its hash is stored.
func (s *AdminsService) InviteAdmin(ctx context.Context, email, name string, role domain.AdminRole) (domain.Admin, string, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	tempPassword, err := auth.NewTempPassword()
	if err != nil {
		return domain.Admin{}, "", err
	}

	passwordHash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return domain.Admin{}, "", err
	}

	a, err := s.Admins.CreateAdmin(ctx, email, name, role, passwordHash)
	if err != nil {
		return domain.Admin{}, "", err
	}

	return a, tempPassword, nil
}

func (s *AdminsService) UpdateRole(ctx context.Context, adminID string, role domain.AdminRole) error {
	return s.Admins.SetAdminRole(ctx, adminID, role)
}

// RemoveAdmin deletes the account. Sessions referencing it are left in
// place; identity resolution fails gracefully for them afterwards.
func (s *AdminsService) RemoveAdmin(ctx context.Context, adminID string) error {
	return s.Admins.DeleteAdmin(ctx, adminID)
}
