package usecase

import (
	"context"

	"go-portfolio-backend/internal/domain"
)

type adminUsecase struct {
	contacts   domain.ContactRepository
	recentSize int
}

// NewAdminUsecase creates the contact management usecase. recentSize caps
// the recentContacts slice in dashboard stats.
func NewAdminUsecase(contacts domain.ContactRepository, recentSize int) domain.AdminUsecase {
	if recentSize <= 0 {
		recentSize = 5
	}
	return &adminUsecase{contacts: contacts, recentSize: recentSize}
}

func (uc *adminUsecase) ListContacts(ctx context.Context, page, pageSize int) (*domain.PaginatedResult[domain.Contact], error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	contacts, total, err := uc.contacts.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &domain.PaginatedResult[domain.Contact]{
		Data:       contacts,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (uc *adminUsecase) GetContact(ctx context.Context, id string) (*domain.Contact, error) {
	return uc.contacts.GetByID(ctx, id)
}

func (uc *adminUsecase) MarkRead(ctx context.Context, id string, read bool) error {
	return uc.contacts.SetRead(ctx, id, read)
}

func (uc *adminUsecase) DeleteContact(ctx context.Context, id string) error {
	return uc.contacts.Delete(ctx, id)
}

// DashboardStats aggregates totals, unread count, and the most recent
// submissions as of call time. No caching; it reflects the latest committed
// writes.
func (uc *adminUsecase) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	total, err := uc.contacts.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	unread, err := uc.contacts.CountUnread(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := uc.contacts.Recent(ctx, uc.recentSize)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalContacts:  total,
		UnreadContacts: unread,
		RecentContacts: recent,
	}, nil
}
