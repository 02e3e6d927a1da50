package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"primehavenwebserver/internal/domain"
	"primehavenwebserver/internal/service"
)

type stubNewsletterStore struct {
	t *testing.T

	getByEmailFunc    func(context.Context, string) (domain.NewsletterSubscription, error)
	createFunc        func(context.Context, string) (domain.NewsletterSubscription, error)
	setSubscribedFunc func(context.Context, string, bool, time.Time) (domain.NewsletterSubscription, error)
	listFunc          func(context.Context, *bool) ([]domain.NewsletterSubscription, error)
	statsFunc         func(context.Context) (domain.NewsletterStats, error)
	deleteFunc        func(context.Context, string) error
}

func (s *stubNewsletterStore) GetSubscriptionByEmail(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	if s.getByEmailFunc != nil {
		return s.getByEmailFunc(ctx, email)
	}
	s.t.Fatalf("GetSubscriptionByEmail called unexpectedly")
	return domain.NewsletterSubscription{}, errors.New("unexpected call")
}

func (s *stubNewsletterStore) CreateSubscription(ctx context.Context, email string) (domain.NewsletterSubscription, error) {
	if s.createFunc != nil {
		return s.createFunc(ctx, email)
	}
	s.t.Fatalf("CreateSubscription called unexpectedly")
	return domain.NewsletterSubscription{}, errors.New("unexpected call")
}

func (s *stubNewsletterStore) SetSubscribed(ctx context.Context, email string, subscribed bool, when time.Time) (domain.NewsletterSubscription, error) {
	if s.setSubscribedFunc != nil {
		return s.setSubscribedFunc(ctx, email, subscribed, when)
	}
	s.t.Fatalf("SetSubscribed called unexpectedly")
	return domain.NewsletterSubscription{}, errors.New("unexpected call")
}

func (s *stubNewsletterStore) ListSubscriptions(ctx context.Context, subscribed *bool) ([]domain.NewsletterSubscription, error) {
	if s.listFunc != nil {
		return s.listFunc(ctx, subscribed)
	}
	s.t.Fatalf("ListSubscriptions called unexpectedly")
	return nil, errors.New("unexpected call")
}

func (s *stubNewsletterStore) GetNewsletterStats(ctx context.Context) (domain.NewsletterStats, error) {
	if s.statsFunc != nil {
		return s.statsFunc(ctx)
	}
	s.t.Fatalf("GetNewsletterStats called unexpectedly")
	return domain.NewsletterStats{}, errors.New("unexpected call")
}

func (s *stubNewsletterStore) DeleteSubscription(ctx context.Context, id string) error {
	if s.deleteFunc != nil {
		return s.deleteFunc(ctx, id)
	}
	s.t.Fatalf("DeleteSubscription called unexpectedly")
	return errors.New("unexpected call")
}

func TestNewsletterSubscribeNewEmail(t *testing.T) {
	api := &api{
		newsletterSvc: &service.NewsletterService{
			Store: &stubNewsletterStore{
				t: t,
				getByEmailFunc: func(_ context.Context, _ string) (domain.NewsletterSubscription, error) {
					return domain.NewsletterSubscription{}, domain.ErrNotFound
				},
				createFunc: func(_ context.Context, email string) (domain.NewsletterSubscription, error) {
					return domain.NewsletterSubscription{ID: "sub-1", Email: email, Subscribed: true}, nil
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/newsletter/subscribe", strings.NewReader(`{"email":"Reader@Example.com"}`))
	rr := httptest.NewRecorder()
	api.handleNewsletterSubscribe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", rr.Code, rr.Body)
	}
	var got newsletterActionResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !got.Success || got.Message != "Successfully subscribed!" {
		t.Fatalf("unexpected payload: %#v", got)
	}
}

func TestNewsletterSubscribeRejectsBadEmail(t *testing.T) {
	api := &api{}

	req := httptest.NewRequest(http.MethodPost, "/v1/newsletter/subscribe", strings.NewReader(`{"email":"not-an-email"}`))
	rr := httptest.NewRecorder()
	api.handleNewsletterSubscribe(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
}

func TestNewsletterUnsubscribeUnknownEmail(t *testing.T) {
	api := &api{
		newsletterSvc: &service.NewsletterService{
			Store: &stubNewsletterStore{
				t: t,
				getByEmailFunc: func(_ context.Context, _ string) (domain.NewsletterSubscription, error) {
					return domain.NewsletterSubscription{}, domain.ErrNotFound
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/v1/newsletter/unsubscribe", strings.NewReader(`{"email":"nobody@example.com"}`))
	rr := httptest.NewRecorder()
	api.handleNewsletterUnsubscribe(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var got newsletterActionResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Success || got.Message != "Email not found or already unsubscribed." {
		t.Fatalf("unexpected payload: %#v", got)
	}
}

func TestNewsletterStats(t *testing.T) {
	api := &api{
		newsletterSvc: &service.NewsletterService{
			Store: &stubNewsletterStore{
				t: t,
				statsFunc: func(_ context.Context) (domain.NewsletterStats, error) {
					return domain.NewsletterStats{Total: 5, Subscribed: 3, Unsubscribed: 2}, nil
				},
			},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/newsletter/stats", nil)
	rr := httptest.NewRecorder()
	api.handleNewsletterStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	var got map[string]int
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["total"] != 5 || got["subscribed"] != 3 || got["unsubscribed"] != 2 {
		t.Fatalf("unexpected stats: %#v", got)
	}
}
