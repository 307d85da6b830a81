package domain

import (
	"context"
	"time"
)

// Contact represents a stored visitor inquiry submitted through the public
// form. ID and CreatedAt are store-assigned; Read is mutated only by the
// admin surface.
type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	IPAddress string    `json:"ipAddress,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// ContactSubmission is the raw, untrusted form payload. Fields are trimmed
// before validation; the validate tags carry the length and character-set
// constraints.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required,min=2,max=100,person_name"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=10,max=1000"`
}

// ContactRepository defines persistence for contact records
type ContactRepository interface {
	Create(ctx context.Context, contact *Contact) error
	List(ctx context.Context, page, pageSize int) ([]Contact, int64, error)
	GetByID(ctx context.Context, id string) (*Contact, error)
	SetRead(ctx context.Context, id string, read bool) error
	Delete(ctx context.Context, id string) error
	CountAll(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]Contact, error)
}

// ContactUsecase defines the public contact-form intake operations
type ContactUsecase interface {
	// Submit validates and persists a visitor submission, returning the
	// stored record with its assigned id.
	Submit(ctx context.Context, sub *ContactSubmission, clientIP string) (*Contact, error)
}
