package httpapi

import (
	"net/http"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type representativeResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone"`
	Photo        string    `json:"photo,omitempty"`
	Email        string    `json:"email,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

func toRepresentativeResponse(rep domain.Representative) representativeResponse {
	return representativeResponse{
		ID:           rep.ID,
		Name:         rep.Name,
		Role:         rep.Role,
		Phone:        rep.Phone,
		Photo:        rep.Photo,
		Email:        rep.Email,
		DisplayOrder: rep.DisplayOrder,
		CreatedAt:    rep.CreatedAt,
	}
}

func (a *api) handleRepresentativesList(w http.ResponseWriter, r *http.Request) {
	reps, err := a.repsSvc.List(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]representativeResponse, 0, len(reps))
	for _, rep := range reps {
		out = append(out, toRepresentativeResponse(rep))
	}
	WriteJSON(w, http.StatusOK, out)
}

type representativeRequest struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	Phone        string `json:"phone"`
	Photo        string `json:"photo"`
	Email        string `json:"email"`
	DisplayOrder int    `json:"displayOrder"`
}

func (a *api) handleRepresentativeCreate(w http.ResponseWriter, r *http.Request) {
	var req representativeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	req.Name = strings.TrimSpace(req.Name)
	req.Role = strings.TrimSpace(req.Role)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Email = normalizeEmail(req.Email)
	if req.Name == "" {
		fields["name"] = "required"
	}
	if req.Role == "" {
		fields["role"] = "required"
	}
	if req.Phone == "" {
		fields["phone"] = "required"
	}
	if req.Email != "" && !validEmail(req.Email) {
		fields["email"] = "must be a valid email"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	rep, err := a.repsSvc.Create(r.Context(), domain.Representative{
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Photo:        strings.TrimSpace(req.Photo),
		Email:        req.Email,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toRepresentativeResponse(rep))
}

type representativePatchRequest struct {
	Name         *string `json:"name"`
	Role         *string `json:"role"`
	Phone        *string `json:"phone"`
	Photo        *string `json:"photo"`
	Email        *string `json:"email"`
	DisplayOrder *int    `json:"displayOrder"`
}

func (a *api) handleRepresentativeUpdate(w http.ResponseWriter, r *http.Request) {
	var req representativePatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		fields["name"] = "must not be empty"
	}
	if req.Email != nil && *req.Email != "" && !validEmail(normalizeEmail(*req.Email)) {
		fields["email"] = "must be a valid email"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	rep, err := a.repsSvc.Update(r.Context(), r.PathValue("id"), domain.RepresentativeUpdate{
		Name:         req.Name,
		Role:         req.Role,
		Phone:        req.Phone,
		Photo:        req.Photo,
		Email:        req.Email,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, toRepresentativeResponse(rep))
}

func (a *api) handleRepresentativeDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.repsSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
