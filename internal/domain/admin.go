package domain

import (
	"context"
	"time"
)

// Admin represents a stored operator credential. Rows are created
// out-of-band by an operator (see scripts/genhash.go); no public endpoint
// creates admins.
type Admin struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	PasswordHash  string     `json:"-"`
	Role          string     `json:"role"`
	IsActive      bool       `json:"isActive"`
	LoginAttempts int        `json:"-"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// AuthClaims are the decoded contents of a verified bearer token.
type AuthClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// DashboardStats is an on-demand aggregate over the contacts collection,
// computed as of call time with no caching.
type DashboardStats struct {
	TotalContacts  int64     `json:"totalContacts"`
	UnreadContacts int64     `json:"unreadContacts"`
	RecentContacts []Contact `json:"recentContacts"`
}

// PaginatedResult wraps a page of records with pagination metadata
type PaginatedResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// AdminRepository defines data access for admin credentials
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*Admin, error)
	// IncrementLoginAttempts bumps the stored failed-attempt counter and
	// returns the new value.
	IncrementLoginAttempts(ctx context.Context, email string) (int, error)
	// ResetLoginAttempts zeroes the counter and stamps last_login_at.
	ResetLoginAttempts(ctx context.Context, email string) error
}

// AuthUsecase verifies credentials, issues bearer tokens, and validates them
type AuthUsecase interface {
	Login(ctx context.Context, email, password, clientIP string) (string, error)
	Verify(ctx context.Context, tokenString string) (*AuthClaims, error)
}

// AdminUsecase defines the token-guarded contact management operations
type AdminUsecase interface {
	ListContacts(ctx context.Context, page, pageSize int) (*PaginatedResult[Contact], error)
	GetContact(ctx context.Context, id string) (*Contact, error)
	MarkRead(ctx context.Context, id string, read bool) error
	DeleteContact(ctx context.Context, id string) error
	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
