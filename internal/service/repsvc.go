package service

import (
	"context"

	"primehavenwebserver/internal/domain"
)

type RepresentativesStore interface {
	ListRepresentatives(ctx context.Context) ([]domain.Representative, error)
	GetRepresentativeByID(ctx context.Context, id string) (domain.Representative, error)
	CreateRepresentative(ctx context.Context, rep domain.Representative) (domain.Representative, error)
	UpdateRepresentative(ctx context.Context, id string, upd domain.RepresentativeUpdate) (domain.Representative, error)
	DeleteRepresentative(ctx context.Context, id string) error
}

type RepresentativesService struct {
	Store RepresentativesStore
}

func (s *RepresentativesService) List(ctx context.Context) ([]domain.Representative, error) {
	return s.Store.ListRepresentatives(ctx)
}

func (s *RepresentativesService) Get(ctx context.Context, id string) (domain.Representative, error) {
	return s.Store.GetRepresentativeByID(ctx, id)
}

func (s *RepresentativesService) Create(ctx context.Context, rep domain.Representative) (domain.Representative, error) {
	return s.Store.CreateRepresentative(ctx, rep)
}

func (s *RepresentativesService) Update(ctx context.Context, id string, upd domain.RepresentativeUpdate) (domain.Representative, error) {
	return s.Store.UpdateRepresentative(ctx, id, upd)
}

func (s *RepresentativesService) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteRepresentative(ctx, id)
}
