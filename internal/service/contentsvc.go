package service

import (
	"context"
	"time"

	"primehavenwebserver/internal/domain"
)

type SiteContentStore interface {
	GetContent(ctx context.Context, key string) (domain.SiteContent, error)
	ListContent(ctx context.Context) (map[string]string, error)
	SetContent(ctx context.Context, key, value, updatedBy string, when time.Time) (domain.SiteContent, error)
}

type SiteContentService struct {
	Store SiteContentStore
	Now   func() time.Time
}

func (s *SiteContentService) Get(ctx context.Context, key string) (domain.SiteContent, error) {
	return s.Store.GetContent(ctx, key)
}

func (s *SiteContentService) GetAll(ctx context.Context) (map[string]string, error) {
	return s.Store.ListContent(ctx)
}

// Set upserts one site copy entry and records which admin wrote it.
func (s *SiteContentService) Set(ctx context.Context, key, value, updatedBy string) (domain.SiteContent, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return s.Store.SetContent(ctx, key, value, updatedBy, now())
}
