package httpapi

import (
	"net/http"
	"strings"

	"primehavenwebserver/internal/domain"
)

func (a *api) handleAdminsList(w http.ResponseWriter, r *http.Request) {
	admins, err := a.adminsSvc.ListAdmins(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]adminResponse, 0, len(admins))
	for _, ad := range admins {
		out = append(out, toAdminResponse(ad))
	}
	WriteJSON(w, http.StatusOK, out)
}

type inviteAdminRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type inviteAdminResponse struct {
	Admin adminResponse `json:"admin"`
	// TempPassword is returned exactly once; it is never stored in
	// cleartext and cannot be recovered later.
	TempPassword string `json:"tempPassword"`
}

func (a *api) handleAdminInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteAdminRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if !validEmail(req.Email) {
		fields["email"] = "must be a valid email"
	}
	if req.Name == "" {
		fields["name"] = "required"
	}
	role := domain.AdminRole(req.Role)
	if req.Role == "" {
		role = domain.RoleAdmin
	} else if !role.Valid() {
		fields["role"] = "must be admin or super_admin"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	admin, tempPassword, err := a.adminsSvc.InviteAdmin(r.Context(), req.Email, req.Name, role)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	if a.emailSvc != nil && a.emailSvc.Enabled() {
		if err := a.emailSvc.SendInvite(r.Context(), admin.Email, admin.Name, tempPassword); err != nil {
			a.logger.Error("send invite email failed", "err", err, "admin_id", admin.ID)
		}
	}

	WriteJSON(w, http.StatusCreated, inviteAdminResponse{Admin: toAdminResponse(admin), TempPassword: tempPassword})
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (a *api) handleAdminUpdateRole(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateRoleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	role := domain.AdminRole(req.Role)
	if !role.Valid() {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"role": "must be admin or super_admin"}))
		return
	}

	// A super_admin cannot demote itself; that would risk locking the
	// last privileged account out of account management.
	if caller, ok := CurrentAdmin(r.Context()); ok && caller.ID == id && role != domain.RoleSuperAdmin {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"role": "cannot change your own role"}))
		return
	}

	if err := a.adminsSvc.UpdateRole(r.Context(), id, role); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleAdminRemove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if caller, ok := CurrentAdmin(r.Context()); ok && caller.ID == id {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"id": "cannot remove your own account"}))
		return
	}

	if err := a.adminsSvc.RemoveAdmin(r.Context(), id); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
