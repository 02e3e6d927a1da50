package service

import (
	"context"

	"primehavenwebserver/internal/domain"
)

type PropertiesStore interface {
	ListProperties(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error)
	GetPropertyByID(ctx context.Context, id string) (domain.Property, error)
	CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error)
	UpdateProperty(ctx context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error)
	DeleteProperty(ctx context.Context, id string) error
	GetPropertyStats(ctx context.Context) (domain.PropertyStats, error)
}

type PropertiesService struct {
	Store PropertiesStore
}

func (s *PropertiesService) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, error) {
	return s.Store.ListProperties(ctx, filter)
}

func (s *PropertiesService) Get(ctx context.Context, id string) (domain.Property, error) {
	return s.Store.GetPropertyByID(ctx, id)
}

func (s *PropertiesService) Create(ctx context.Context, p domain.Property) (domain.Property, error) {
	return s.Store.CreateProperty(ctx, p)
}

func (s *PropertiesService) Update(ctx context.Context, id string, upd domain.PropertyUpdate) (domain.Property, error) {
	return s.Store.UpdateProperty(ctx, id, upd)
}

func (s *PropertiesService) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteProperty(ctx, id)
}

func (s *PropertiesService) Stats(ctx context.Context) (domain.PropertyStats, error) {
	return s.Store.GetPropertyStats(ctx)
}
