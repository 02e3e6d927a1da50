package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"primehavenwebserver/internal/domain"
)

type NewsletterStore interface {
	GetSubscriptionByEmail(ctx context.Context, email string) (domain.NewsletterSubscription, error)
	CreateSubscription(ctx context.Context, email string) (domain.NewsletterSubscription, error)
	SetSubscribed(ctx context.Context, email string, subscribed bool, when time.Time) (domain.NewsletterSubscription, error)
	ListSubscriptions(ctx context.Context, subscribed *bool) ([]domain.NewsletterSubscription, error)
	GetNewsletterStats(ctx context.Context) (domain.NewsletterStats, error)
	DeleteSubscription(ctx context.Context, id string) error
}

type NewsletterService struct {
	Store NewsletterStore
	Now   func() time.Time
}

func (s *NewsletterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

const (
	msgSubscribed        = "Successfully subscribed!"
	msgResubscribed      = "Successfully resubscribed!"
	msgAlreadySubscribed = "You're already subscribed!"
	msgUnsubscribed      = "Successfully unsubscribed!"
	msgNotSubscribed     = "Email not found or already unsubscribed."
)

// Subscribe upserts keyed on email: a brand-new address gets a row, a
// lapsed one is flipped back on with unsubscribed_at cleared, and an
// already-active one is left untouched. At most one row per email ever
// exists.
func (s *NewsletterService) Subscribe(ctx context.Context, email string) (domain.NewsletterSubscription, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.Store.GetSubscriptionByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			sub, err := s.Store.CreateSubscription(ctx, email)
			if err != nil {
				return domain.NewsletterSubscription{}, "", err
			}
			return sub, msgSubscribed, nil
		}
		return domain.NewsletterSubscription{}, "", err
	}

	if existing.Subscribed {
		return existing, msgAlreadySubscribed, nil
	}

	sub, err := s.Store.SetSubscribed(ctx, email, true, s.now())
	if err != nil {
		return domain.NewsletterSubscription{}, "", err
	}
	return sub, msgResubscribed, nil
}

// Unsubscribe flips an active subscription off and stamps when. Unknown
// or already-inactive addresses report a friendly failure rather than an
// error.
func (s *NewsletterService) Unsubscribe(ctx context.Context, email string) (bool, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	existing, err := s.Store.GetSubscriptionByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, msgNotSubscribed, nil
		}
		return false, "", err
	}
	if !existing.Subscribed {
		return false, msgNotSubscribed, nil
	}

	if _, err := s.Store.SetSubscribed(ctx, email, false, s.now()); err != nil {
		return false, "", err
	}
	return true, msgUnsubscribed, nil
}

func (s *NewsletterService) List(ctx context.Context, subscribed *bool) ([]domain.NewsletterSubscription, error) {
	return s.Store.ListSubscriptions(ctx, subscribed)
}

func (s *NewsletterService) Stats(ctx context.Context) (domain.NewsletterStats, error) {
	return s.Store.GetNewsletterStats(ctx)
}

func (s *NewsletterService) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteSubscription(ctx, id)
}
