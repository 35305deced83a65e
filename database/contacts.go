package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ErrContactNotFound is returned when an id does not match any contact.
var ErrContactNotFound = errors.New("contact not found")

// ContactStore provides access to the contacts table.
type ContactStore struct{ db *sqlx.DB }

// NewContactStore creates a contact store on the given database handle.
func NewContactStore(db *sqlx.DB) *ContactStore { return &ContactStore{db: db} }

// List returns every contact, newest first.
func (s *ContactStore) List(ctx context.Context) ([]Contact, error) {
	var contacts []Contact
	err := s.db.SelectContext(ctx, &contacts, `
		SELECT id, name, email, phone, profession, created_at
		FROM contacts
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Create inserts a new contact and fills in its assigned id and creation time.
func (s *ContactStore) Create(ctx context.Context, c *Contact) error {
	err := s.db.QueryRowxContext(ctx, `
		INSERT INTO contacts (name, email, phone, profession)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.Name, c.Email, c.Phone, c.Profession).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

// Update replaces the name, email, phone and profession of the contact with
// the given id.
func (s *ContactStore) Update(ctx context.Context, c *Contact) error {
	row := s.db.QueryRowxContext(ctx, `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, profession = $4
		WHERE id = $5
		RETURNING created_at
	`, c.Name, c.Email, c.Phone, c.Profession, c.ID)
	err := row.Scan(&c.CreatedAt)
	if err == sql.ErrNoRows {
		return ErrContactNotFound
	}
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	return nil
}

// Delete removes the contact with the given id.
func (s *ContactStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if affected == 0 {
		return ErrContactNotFound
	}
	return nil
}

// Upsert inserts a contact keyed by email, or updates the name, phone and
// profession of the existing row. The creation time is preserved on update and
// taken from the contact on insert, so imports can carry their original
// timestamps.
func (s *ContactStore) Upsert(ctx context.Context, c *Contact) error {
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (name, email, phone, profession, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = EXCLUDED.phone, profession = EXCLUDED.profession
	`, c.Name, c.Email, c.Phone, c.Profession, createdAt)
	if err != nil {
		return fmt.Errorf("upsert contact %s: %w", c.Email, err)
	}
	return nil
}

// EmailsAll returns the email field of every contact, unfiltered.
func (s *ContactStore) EmailsAll(ctx context.Context) ([]string, error) {
	var emails []string
	err := s.db.SelectContext(ctx, &emails, `SELECT email FROM contacts`)
	if err != nil {
		return nil, fmt.Errorf("select all emails: %w", err)
	}
	return emails, nil
}

// EmailsByProfession returns the email of every contact whose profession
// equals the given value, compared case-insensitively. The match is exact, not
// partial.
func (s *ContactStore) EmailsByProfession(ctx context.Context, profession string) ([]string, error) {
	var emails []string
	err := s.db.SelectContext(ctx, &emails, `
		SELECT email FROM contacts WHERE LOWER(profession) = LOWER($1)
	`, profession)
	if err != nil {
		return nil, fmt.Errorf("select emails by profession: %w", err)
	}
	return emails, nil
}

// ProfessionCounts returns the raw per-profession contact counts. Contacts
// with a NULL or empty profession are excluded. Case folding of near-duplicate
// spellings happens in the aggregation layer, not here.
func (s *ContactStore) ProfessionCounts(ctx context.Context) ([]ProfessionCount, error) {
	var counts []ProfessionCount
	err := s.db.SelectContext(ctx, &counts, `
		SELECT profession, COUNT(*) AS count
		FROM contacts
		WHERE profession IS NOT NULL AND profession <> ''
		GROUP BY profession
	`)
	if err != nil {
		return nil, fmt.Errorf("profession counts: %w", err)
	}
	return counts, nil
}
