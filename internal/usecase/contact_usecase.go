package usecase

import (
	"context"
	"net"
	"strings"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/email"
	"go-portfolio-backend/pkg/logger"
	"go-portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	contacts domain.ContactRepository
	validate *validator.Validate
	notifier *email.Service
}

// NewContactUsecase creates the contact intake usecase. The notifier may be
// unconfigured; submissions are stored regardless.
func NewContactUsecase(contacts domain.ContactRepository, validate *validator.Validate, notifier *email.Service) domain.ContactUsecase {
	return &contactUsecase{
		contacts: contacts,
		validate: validate,
		notifier: notifier,
	}
}

// Submit validates the submission, persists it, and notifies the site owner.
// Validation reports every failing field. The email notification is
// best-effort: a delivery failure is logged and never surfaced to the
// visitor.
func (uc *contactUsecase) Submit(ctx context.Context, sub *domain.ContactSubmission, clientIP string) (*domain.Contact, error) {
	normalized := domain.ContactSubmission{
		Name:    strings.TrimSpace(sub.Name),
		Email:   strings.TrimSpace(sub.Email),
		Message: strings.TrimSpace(sub.Message),
	}

	if err := uc.validate.Struct(&normalized); err != nil {
		return nil, validation.Expand(err)
	}

	contact := &domain.Contact{
		Name:      normalized.Name,
		Email:     normalized.Email,
		Message:   normalized.Message,
		IPAddress: clientIPv4(clientIP),
	}
	if err := uc.contacts.Create(ctx, contact); err != nil {
		return nil, err
	}

	if uc.notifier != nil && uc.notifier.IsConfigured() {
		go func(c domain.Contact) {
			err := uc.notifier.SendContactNotification(email.ContactNotification{
				Name:      c.Name,
				Email:     c.Email,
				Message:   c.Message,
				IPAddress: c.IPAddress,
			})
			if err != nil {
				logger.Log.Error("contact notification failed", "error", err, "contact_id", c.ID)
			}
		}(*contact)
	}

	return contact, nil
}

// clientIPv4 reduces the caller address to dotted-quad form. Stored
// addresses are IPv4 only; IPv4-mapped IPv6 is unwrapped, anything else
// (including plain IPv6) is dropped rather than stored.
func clientIPv4(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ""
	}
	v4 := parsed.To4()
	if v4 == nil {
		return ""
	}
	return v4.String()
}
