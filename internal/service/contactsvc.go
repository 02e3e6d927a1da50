package service

import (
	"context"

	"primehavenwebserver/internal/domain"
)

type ContactsStore interface {
	CreateSubmission(ctx context.Context, name, email, phone, message string) (domain.ContactSubmission, error)
	ListSubmissions(ctx context.Context, unreadOnly bool) ([]domain.ContactSubmission, error)
	MarkRead(ctx context.Context, id string) error
	MarkReplied(ctx context.Context, id string) error
	DeleteSubmission(ctx context.Context, id string) error
}

type ContactService struct {
	Store ContactsStore
}

func (s *ContactService) Submit(ctx context.Context, name, email, phone, message string) (domain.ContactSubmission, error) {
	return s.Store.CreateSubmission(ctx, name, email, phone, message)
}

func (s *ContactService) List(ctx context.Context, unreadOnly bool) ([]domain.ContactSubmission, error) {
	return s.Store.ListSubmissions(ctx, unreadOnly)
}

func (s *ContactService) MarkRead(ctx context.Context, id string) error {
	return s.Store.MarkRead(ctx, id)
}

func (s *ContactService) MarkReplied(ctx context.Context, id string) error {
	return s.Store.MarkReplied(ctx, id)
}

func (s *ContactService) Delete(ctx context.Context, id string) error {
	return s.Store.DeleteSubmission(ctx, id)
}
