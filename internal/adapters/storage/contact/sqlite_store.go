package contact

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"pursuit/internal/adapters/storage"
	domain "pursuit/internal/domain/contact"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const contactColumns = `id, name, email, company, position, relationship, notes, created_at, updated_at`

// GetByID retrieves a contact by ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact WHERE id = ?`, id)
	return scanContact(row)
}

// Save inserts or updates a contact.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, c domain.Contact) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact (id, name, email, company, position, relationship, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name=excluded.name, email=excluded.email, company=excluded.company,
		   position=excluded.position, relationship=excluded.relationship, notes=excluded.notes,
		   created_at=excluded.created_at, updated_at=excluded.updated_at`,
		c.ID, c.Name, nullableString(c.Email), nullableString(c.Company),
		nullableString(c.Position), nullableString(c.Relationship), c.Notes,
		c.CreatedAt.Format(timeLayout), nullableTime(c.UpdatedAt))
	return err
}

// Delete removes a contact by ID.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM contact WHERE id = ?`, id)
	return err
}

// List returns contacts matching the filter, ordered by name.
// PRE: filter has valid parameters
// POST: Returns matching contacts ordered by name ASC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contact WHERE 1=1`
	args := []any{}

	if filter.Relationship != "" {
		query += ` AND relationship = ?`
		args = append(args, filter.Relationship)
	}
	if filter.Company != "" {
		query += ` AND company = ?`
		args = append(args, filter.Company)
	}
	if filter.Search != "" {
		query += ` AND name LIKE ?`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY name ASC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		c, err := scanContactRow(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// scannedRow holds the raw scanned values from a contact row before conversion.
type scannedRow struct {
	email        sql.NullString
	company      sql.NullString
	position     sql.NullString
	relationship sql.NullString
	createdAt    string
	updatedAt    sql.NullString
}

// scanContact scans a single row into a Contact.
func scanContact(row *sql.Row) (domain.Contact, error) {
	var c domain.Contact
	var s scannedRow
	err := row.Scan(&c.ID, &c.Name, &s.email, &s.company, &s.position, &s.relationship,
		&c.Notes, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Contact{}, err
	}
	applyScanned(&c, &s)
	return c, nil
}

// scanContactRow scans the current row of a result set into a Contact.
func scanContactRow(rows *sql.Rows) (domain.Contact, error) {
	var c domain.Contact
	var s scannedRow
	err := rows.Scan(&c.ID, &c.Name, &s.email, &s.company, &s.position, &s.relationship,
		&c.Notes, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Contact{}, err
	}
	applyScanned(&c, &s)
	return c, nil
}

// applyScanned converts raw scanned values into the Contact domain fields.
func applyScanned(c *domain.Contact, s *scannedRow) {
	if s.email.Valid {
		c.Email = s.email.String
	}
	if s.company.Valid {
		c.Company = s.company.String
	}
	if s.position.Valid {
		c.Position = s.position.String
	}
	if s.relationship.Valid {
		c.Relationship = s.relationship.String
	}
	c.CreatedAt = parseTime(s.createdAt, "created_at", c.ID)
	c.UpdatedAt = parseNullableTime(s.updatedAt, "updated_at", c.ID)
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, contactID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("contact: failed to parse time", "field", field, "contact_id", contactID, "raw", raw, "error", err)
	}
	return t
}

// parseNullableTime parses a nullable time string, logging a warning on failure.
func parseNullableTime(ns sql.NullString, field, contactID string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseTime(ns.String, field, contactID)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}
