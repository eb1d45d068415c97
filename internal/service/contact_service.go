package service

import (
	"context"

	"github.com/yhteys/backend/internal/model"
)

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit stores a message built from an input that already passed the
	// server-side checks. The ID and CreatedAt are assigned here.
	Submit(ctx context.Context, in model.ContactInput) (*model.ContactMessage, error)

	// List returns every stored message in creation order.
	List(ctx context.Context) ([]*model.ContactMessage, error)
}
