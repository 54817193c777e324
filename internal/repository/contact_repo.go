package repository

import (
	"context"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
)

type ContactRepository struct {
	DB DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{DB: db}
}

func (r *ContactRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	now := time.Now()
	query := `
		INSERT INTO contact_messages (name, email, phone, subject, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, m.Name, m.Email, m.Phone, m.Subject, m.Message, now).Scan(&m.MessageID); err != nil {
		return translate(err)
	}
	m.CreatedAt = &now
	return nil
}

// List returns a page of messages, newest first, and the total matching count.
func (r *ContactRepository) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]model.ContactMessage, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM contact_messages WHERE ($1 = FALSE OR is_read = FALSE)`
	if err := r.DB.QueryRow(ctx, countQuery, unreadOnly).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, name, email, phone, subject, message, is_read, created_at
		FROM contact_messages
		WHERE ($1 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.Query(ctx, query, unreadOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []model.ContactMessage{}
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.MessageID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *ContactRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ContactRepository) CountUnread(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE`).Scan(&n)
	return n, err
}
