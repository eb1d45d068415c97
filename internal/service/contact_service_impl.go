package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yhteys/backend/internal/model"
	"github.com/yhteys/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo repository.ContactRepository

	// mu serializes stamping and appending so ids are assigned and
	// timestamps grow in append order.
	mu    sync.Mutex
	now   func() time.Time
	newID func() string
}

// NewContactService creates a ContactService backed by the given repository.
func NewContactService(repo repository.ContactRepository) ContactService {
	return &contactServiceImpl{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Submit appends a new record. Accepted is always true and the honeypot is
// always stored empty.
func (s *contactServiceImpl) Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := &model.ContactMessage{
		ID:        s.newID(),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		Type:      in.Type,
		Accepted:  true,
		Company:   "",
	}
	if err := s.repo.Append(ctx, msg); err != nil {
		return nil, fmt.Errorf("append contact message: %w", err)
	}
	return msg, nil
}

// List returns stored messages, never nil.
func (s *contactServiceImpl) List(ctx context.Context) ([]*model.ContactMessage, error) {
	messages, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contact messages: %w", err)
	}
	if messages == nil {
		messages = []*model.ContactMessage{}
	}
	return messages, nil
}
