package httpapi

import (
	"net/http"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type contentResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
}

func (a *api) handleContentGetAll(w http.ResponseWriter, r *http.Request) {
	content, err := a.contentSvc.GetAll(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, content)
}

func (a *api) handleContentGet(w http.ResponseWriter, r *http.Request) {
	c, err := a.contentSvc.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contentResponse{
		Key:       c.Key,
		Value:     c.Value,
		UpdatedAt: c.UpdatedAt,
		UpdatedBy: c.UpdatedBy,
	})
}

type contentSetRequest struct {
	Value string `json:"value"`
}

// handleContentSet upserts a content entry and records which admin
// wrote it.
func (a *api) handleContentSet(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(r.PathValue("key"))
	if key == "" {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"key": "required"}))
		return
	}

	var req contentSetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	admin, ok := CurrentAdmin(r.Context())
	if !ok {
		WriteDomainError(w, domain.ErrUnauthorized)
		return
	}

	c, err := a.contentSvc.Set(r.Context(), key, req.Value, admin.ID)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, contentResponse{
		Key:       c.Key,
		Value:     c.Value,
		UpdatedAt: c.UpdatedAt,
		UpdatedBy: c.UpdatedBy,
	})
}
