package services

import (
	"context"
	"errors"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
)

const (
	maxMessageLen = 5000
	// maxContactPage keeps (page-1)*limit far from overflowing.
	maxContactPage = 100000
)

type ContactStore interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	List(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	CountUnread(ctx context.Context) (int64, error)
}

type ContactService struct {
	Messages ContactStore
}

func NewContactService(m ContactStore) *ContactService {
	return &ContactService{Messages: m}
}

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}
	email := strings.TrimSpace(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	body := strings.TrimSpace(in.Message)
	if body == "" {
		return nil, invalid("message", "message is required")
	}
	if len(body) > maxMessageLen {
		return nil, invalid("message", "message is too long")
	}

	m := &model.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   optional(in.Phone),
		Subject: optional(in.Subject),
		Message: body,
	}
	if err := s.Messages.Create(ctx, m); err != nil {
		return nil, err
	}
	logger.Info().Str("message_id", m.MessageID.String()).Msg("contact message received")
	return m, nil
}

type ContactPage struct {
	Messages []model.ContactMessage
	Total    int64
	Page     int
	Limit    int
}

// List pages through messages newest first. page is 1-based.
func (s *ContactService) List(ctx context.Context, page, limit int, unreadOnly bool) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	if page > maxContactPage {
		return nil, invalid("page", "page out of range")
	}
	limit = clampLimit(limit, DefaultPageSize)
	msgs, total, err := s.Messages.List(ctx, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	return &ContactPage{Messages: msgs, Total: total, Page: page, Limit: limit}, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	err := s.Messages.MarkRead(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMessageNotFound
	}
	return err
}
