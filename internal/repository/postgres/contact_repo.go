package postgres

import (
	"context"
	"errors"

	"go-portfolio-backend/internal/domain"
	"go-portfolio-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contactRepo struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) domain.ContactRepository {
	return &contactRepo{db: db}
}

// Create inserts a submission with read=false and a server-assigned id and
// timestamp, populating the record from the RETURNING clause.
func (r *contactRepo) Create(ctx context.Context, contact *domain.Contact) error {
	query := `INSERT INTO contacts (name, email, message, ip_address)
              VALUES ($1, $2, $3, NULLIF($4, ''))
              RETURNING id, read, created_at`
	err := r.db.QueryRow(ctx, query,
		contact.Name, contact.Email, contact.Message, contact.IPAddress,
	).Scan(&contact.ID, &contact.Read, &contact.CreatedAt)
	if err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (r *contactRepo) List(ctx context.Context, page, pageSize int) ([]domain.Contact, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return nil, 0, apperror.Internal(err)
	}

	offset := (page - 1) * pageSize
	query := `SELECT id, name, email, message, COALESCE(ip_address, ''), read, created_at
              FROM contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return contacts, total, nil
}

func (r *contactRepo) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	query := `SELECT id, name, email, message, COALESCE(ip_address, ''), read, created_at
              FROM contacts WHERE id = $1`
	var c domain.Contact
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Email, &c.Message, &c.IPAddress, &c.Read, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NotFound("Contact not found")
		}
		return nil, apperror.Internal(err)
	}
	return &c, nil
}

// SetRead idempotently sets the read flag.
func (r *contactRepo) SetRead(ctx context.Context, id string, read bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE contacts SET read = $2 WHERE id = $1`, id, read)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Contact not found")
	}
	return nil
}

func (r *contactRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Contact not found")
	}
	return nil
}

func (r *contactRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&n); err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (r *contactRepo) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts WHERE read = false`).Scan(&n); err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (r *contactRepo) Recent(ctx context.Context, n int) ([]domain.Contact, error) {
	query := `SELECT id, name, email, message, COALESCE(ip_address, ''), read, created_at
              FROM contacts ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, n)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	defer rows.Close()

	contacts, err := scanContacts(rows)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return contacts, nil
}

func scanContacts(rows pgx.Rows) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Message, &c.IPAddress, &c.Read, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
