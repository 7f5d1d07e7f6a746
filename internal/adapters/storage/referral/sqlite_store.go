package referral

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"pursuit/internal/adapters/storage"
	domain "pursuit/internal/domain/referral"
)

const (
	timeLayout = "2006-01-02T15:04:05Z07:00"
	dateLayout = "2006-01-02" // request/follow-up dates are calendar dates
)

// entityKind tags this store's rows in the shared followup_action table.
const entityKind = "referral"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const referralColumns = `id, contact_id, company, position, status, request_date, follow_up_date, created_at, updated_at`

// GetByID retrieves a referral by ID, including its follow-up history.
// PRE: id is non-empty
// POST: Returns the full record or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Referral, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+referralColumns+` FROM referral WHERE id = ?`, id)
	r, err := scanReferral(row)
	if err != nil {
		return domain.Referral{}, err
	}
	r.FollowUps, err = s.loadFollowUps(ctx, id)
	if err != nil {
		return domain.Referral{}, err
	}
	return r, nil
}

// Save writes the whole record: the referral row and its follow-up rows, in
// one transaction. No concurrency token; last write wins.
// PRE: entity has been validated and carries the full merged follow-up list
// POST: Row and followup_action rows reflect the record exactly
func (s *SQLiteStore) Save(ctx context.Context, r domain.Referral) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin referral save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO referral (id, contact_id, company, position, status, request_date, follow_up_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   contact_id=excluded.contact_id, company=excluded.company, position=excluded.position,
		   status=excluded.status, request_date=excluded.request_date, follow_up_date=excluded.follow_up_date,
		   created_at=excluded.created_at, updated_at=excluded.updated_at`,
		r.ID, r.ContactID, r.Company, r.Position, r.Status,
		nullableDate(r.RequestDate), nullableDate(r.FollowUpDate),
		r.CreatedAt.Format(timeLayout), nullableTime(r.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save referral %s: %w", r.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM followup_action WHERE entity_kind = ? AND entity_id = ?`, entityKind, r.ID); err != nil {
		return fmt.Errorf("save referral %s follow-ups: %w", r.ID, err)
	}
	for _, f := range r.FollowUps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO followup_action (entity_kind, entity_id, action_kind, subkind, sent_at, status)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			entityKind, r.ID, f.Kind, f.Subkind, f.SentAt.Format(timeLayout), f.Status); err != nil {
			return fmt.Errorf("save referral %s follow-ups: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes a referral and its follow-up rows.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM followup_action WHERE entity_kind = ? AND entity_id = ?`, entityKind, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM referral WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns referrals matching the filter, most recent request first,
// with follow-up histories attached.
// PRE: filter has valid parameters
// POST: Returns matching records ordered by request_date DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Referral, error) {
	query := `SELECT ` + referralColumns + ` FROM referral WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.ContactID != "" {
		query += ` AND contact_id = ?`
		args = append(args, filter.ContactID)
	}
	query += ` ORDER BY request_date DESC`
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

	var referrals []domain.Referral
	for rows.Next() {
		r, err := scanReferralRow(rows)
		if err != nil {
			return nil, err
		}
		referrals = append(referrals, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range referrals {
		referrals[i].FollowUps, err = s.loadFollowUps(ctx, referrals[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return referrals, nil
}

// loadFollowUps loads follow-up rows for one referral in sent order.
func (s *SQLiteStore) loadFollowUps(ctx context.Context, id string) ([]domain.FollowUp, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_kind, subkind, sent_at, status FROM followup_action
		 WHERE entity_kind = ? AND entity_id = ? ORDER BY id ASC`, entityKind, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followUps []domain.FollowUp
	for rows.Next() {
		var f domain.FollowUp
		var sentAt string
		if err := rows.Scan(&f.Kind, &f.Subkind, &sentAt, &f.Status); err != nil {
			return nil, err
		}
		f.SentAt = parseTime(sentAt, timeLayout, "sent_at", id)
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

// scannedRow holds the raw scanned values from a referral row before conversion.
type scannedRow struct {
	requestDate  sql.NullString
	followUpDate sql.NullString
	createdAt    string
	updatedAt    sql.NullString
}

// scanReferral scans a single row into a Referral.
func scanReferral(row *sql.Row) (domain.Referral, error) {
	var r domain.Referral
	var s scannedRow
	err := row.Scan(&r.ID, &r.ContactID, &r.Company, &r.Position, &r.Status,
		&s.requestDate, &s.followUpDate, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Referral{}, err
	}
	applyScanned(&r, &s)
	return r, nil
}

// scanReferralRow scans the current row of a result set into a Referral.
func scanReferralRow(rows *sql.Rows) (domain.Referral, error) {
	var r domain.Referral
	var s scannedRow
	err := rows.Scan(&r.ID, &r.ContactID, &r.Company, &r.Position, &r.Status,
		&s.requestDate, &s.followUpDate, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Referral{}, err
	}
	applyScanned(&r, &s)
	return r, nil
}

// applyScanned converts raw scanned values into the Referral domain fields.
func applyScanned(r *domain.Referral, s *scannedRow) {
	if s.requestDate.Valid {
		r.RequestDate = parseTime(s.requestDate.String, dateLayout, "request_date", r.ID)
	}
	if s.followUpDate.Valid {
		r.FollowUpDate = parseTime(s.followUpDate.String, dateLayout, "follow_up_date", r.ID)
	}
	r.CreatedAt = parseTime(s.createdAt, timeLayout, "created_at", r.ID)
	if s.updatedAt.Valid {
		r.UpdatedAt = parseTime(s.updatedAt.String, timeLayout, "updated_at", r.ID)
	}
}

// parseTime parses a time or date string, logging a warning on failure.
func parseTime(raw, layout, field, referralID string) time.Time {
	t, err := time.Parse(layout, raw)
	if err != nil {
		slog.Warn("referral: failed to parse time", "field", field, "referral_id", referralID, "raw", raw, "error", err)
	}
	return t
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(timeLayout)
}

func nullableDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}
