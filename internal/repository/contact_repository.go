package repository

//go:generate mockgen -source=contact_repository.go -destination=mocks/contact_repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"contactbook-be/internal/apperrors"
	"contactbook-be/internal/entities"
)

// ContactFields is a full set of writable contact fields.
type ContactFields struct {
	Name  string
	Email *string
	Phone *string
}

// ContactPatch lists the fields to change. A nil Name leaves the name as is;
// SetEmail/SetPhone mark Email/Phone as supplied (nil clears the column).
type ContactPatch struct {
	Name     *string
	SetEmail bool
	Email    *string
	SetPhone bool
	Phone    *string
}

// ContactFilter narrows List by case-insensitive substring matches.
type ContactFilter struct {
	Name  string
	Email string
}

// ContactRepository defines the interface for contact database operations.
// Every method is scoped to ownerID; a contact owned by someone else is
// reported as apperrors.ErrNotFound.
type ContactRepository interface {
	Create(ctx context.Context, ownerID string, fields ContactFields) (*entities.Contact, error)
	List(ctx context.Context, ownerID string, filter ContactFilter) ([]*entities.Contact, error)
	FindByID(ctx context.Context, id, ownerID string) (*entities.Contact, error)
	Replace(ctx context.Context, id, ownerID string, fields ContactFields) (*entities.Contact, error)
	Update(ctx context.Context, id, ownerID string, patch ContactPatch) (*entities.Contact, error)
	Delete(ctx context.Context, id, ownerID string) error
}

const contactColumns = `id, name, email, phone, user_id, created_at, updated_at`

type contactRepository struct {
	db *sql.DB
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *sql.DB) ContactRepository {
	return &contactRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanContact(row rowScanner) (*entities.Contact, error) {
	var c entities.Contact
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new contact owned by ownerID
func (r *contactRepository) Create(ctx context.Context, ownerID string, fields ContactFields) (*entities.Contact, error) {
	query := `
		INSERT INTO contacts (name, email, phone, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + contactColumns

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, fields.Name, fields.Email, fields.Phone, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

// List retrieves the owner's contacts, newest first
func (r *contactRepository) List(ctx context.Context, ownerID string, filter ContactFilter) ([]*entities.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1`
	args := []interface{}{ownerID}

	if filter.Name != "" {
		args = append(args, escapeLike(filter.Name))
		query += fmt.Sprintf(` AND name ILIKE '%%' || $%d || '%%'`, len(args))
	}
	if filter.Email != "" {
		args = append(args, escapeLike(filter.Email))
		query += fmt.Sprintf(` AND email ILIKE '%%' || $%d || '%%'`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]*entities.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contacts = append(contacts, contact)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", err)
	}

	return contacts, nil
}

// FindByID finds a contact by id, only if ownerID owns it
func (r *contactRepository) FindByID(ctx context.Context, id, ownerID string) (*entities.Contact, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrNotFound
	}

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find contact: %w", err)
	}

	return contact, nil
}

// Replace overwrites every writable field of an owned contact
func (r *contactRepository) Replace(ctx context.Context, id, ownerID string, fields ContactFields) (*entities.Contact, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrNotFound
	}

	query := `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING ` + contactColumns

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, fields.Name, fields.Email, fields.Phone, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to replace contact: %w", err)
	}

	return contact, nil
}

// Update changes only the supplied fields of an owned contact
func (r *contactRepository) Update(ctx context.Context, id, ownerID string, patch ContactPatch) (*entities.Contact, error) {
	if !isUUID(id) {
		return nil, apperrors.ErrNotFound
	}

	var sets []string
	var args []interface{}

	if patch.Name != nil {
		args = append(args, *patch.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if patch.SetEmail {
		args = append(args, patch.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if patch.SetPhone {
		args = append(args, patch.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id, ownerID)

	query := fmt.Sprintf(`
		UPDATE contacts
		SET %s
		WHERE id = $%d AND user_id = $%d
		RETURNING %s`, strings.Join(sets, ", "), len(args)-1, len(args), contactColumns)

	contact, err := scanContact(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

// Delete removes an owned contact
func (r *contactRepository) Delete(ctx context.Context, id, ownerID string) error {
	if !isUUID(id) {
		return apperrors.ErrNotFound
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
