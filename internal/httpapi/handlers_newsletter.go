package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"primehavenwebserver/internal/domain"
)

type newsletterEmailRequest struct {
	Email string `json:"email"`
}

type newsletterActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a *api) handleNewsletterSubscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "must be a valid email"}))
		return
	}

	_, msg, err := a.newsletterSvc.Subscribe(r.Context(), email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, newsletterActionResponse{Success: true, Message: msg})
}

func (a *api) handleNewsletterUnsubscribe(w http.ResponseWriter, r *http.Request) {
	var req newsletterEmailRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_json", "invalid json")
		return
	}

	email := normalizeEmail(req.Email)
	if !validEmail(email) {
		WriteDomainError(w, domain.NewValidationError(map[string]string{"email": "must be a valid email"}))
		return
	}

	ok, msg, err := a.newsletterSvc.Unsubscribe(r.Context(), email)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, newsletterActionResponse{Success: ok, Message: msg})
}

type subscriptionResponse struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Subscribed     bool       `json:"subscribed"`
	CreatedAt      time.Time  `json:"createdAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

func (a *api) handleNewsletterList(w http.ResponseWriter, r *http.Request) {
	var subscribed *bool
	if v := r.URL.Query().Get("subscribed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			WriteDomainError(w, domain.NewValidationError(map[string]string{"subscribed": "must be true or false"}))
			return
		}
		subscribed = &b
	}

	subs, err := a.newsletterSvc.List(r.Context(), subscribed)
	if err != nil {
		WriteDomainError(w, err)
		return
	}

	out := make([]subscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, subscriptionResponse{
			ID:             s.ID,
			Email:          s.Email,
			Subscribed:     s.Subscribed,
			CreatedAt:      s.CreatedAt,
			UnsubscribedAt: s.UnsubscribedAt,
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (a *api) handleNewsletterStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.newsletterSvc.Stats(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{
		"total":        stats.Total,
		"subscribed":   stats.Subscribed,
		"unsubscribed": stats.Unsubscribed,
	})
}

func (a *api) handleNewsletterDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.newsletterSvc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
