package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type contactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Replied   bool      `json:"replied"`
	CreatedAt time.Time `json:"createdAt"`
}

func toContactResponse(c domain.ContactSubmission) contactResponse {
	return contactResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Message:   c.Message,
		Read:      c.Read,
		Replied:   c.Replied,
		CreatedAt: c.CreatedAt,
	}
}

type contactSubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (a *api) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactSubmitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	fields := map[string]string{}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normalizeEmail(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" {
		fields["name"] = "required"
	}
	if !validEmail(req.Email) {
		fields["email"] = "must be a valid email"
	}
	if req.Message == "" {
		fields["message"] = "required"
	}
	if len(fields) > 0 {
		WriteDomainError(w, domain.NewValidationError(fields))
		return
	}

	c, err := a.contactSvc.Submit(r.Context(), req.Name, req.Email, strings.TrimSpace(req.Phone), req.Message)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, toContactResponse(c))
}

func (a *api) handleContactsList(w http.ResponseWriter, r *http.Request) {
	unreadOnly := false
	if v := r.URL.Query().Get("unread"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteDomainError(w, domain.NewValidationError(map[string]string{"unread": "must be true or false"}))
			return
		}
		unreadOnly = b
	}

	subs, err := a.contactSvc.List(r.Context(), unreadOnly)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]contactResponse, 0, len(subs))
	for _, c := range subs {
		out = append(out, toContactResponse(c))
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handleContactMarkRead(w http.ResponseWriter, r *http.Request) {
	if err := a.contactSvc.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleContactMarkReplied(w http.ResponseWriter, r *http.Request) {
	if err := a.contactSvc.MarkReplied(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) handleContactDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.contactSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
