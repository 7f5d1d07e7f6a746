package interview

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"pursuit/internal/adapters/storage"
	domain "pursuit/internal/domain/interview"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// entityKind tags this store's rows in the shared followup_action table.
const entityKind = "interview"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

const interviewColumns = `id, contact_id, company, position, round, status, interview_at, outcome, created_at, updated_at`

// GetByID retrieves an interview by ID, including its follow-up history.
// PRE: id is non-empty
// POST: Returns the full record or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Interview, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+interviewColumns+` FROM interview WHERE id = ?`, id)
	iv, err := scanInterview(row)
	if err != nil {
		return domain.Interview{}, err
	}
	iv.FollowUps, err = s.loadFollowUps(ctx, id)
	if err != nil {
		return domain.Interview{}, err
	}
	return iv, nil
}

// Save writes the whole record: the interview row and its follow-up rows, in
// one transaction. The store exposes no field-level patch and no
// concurrency token; two concurrent saves of the same record race at
// last-write-wins granularity.
// PRE: entity has been validated and carries the full merged follow-up list
// POST: Row and followup_action rows reflect the record exactly
func (s *SQLiteStore) Save(ctx context.Context, iv domain.Interview) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin interview save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO interview (id, contact_id, company, position, round, status, interview_at, outcome, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   contact_id=excluded.contact_id, company=excluded.company, position=excluded.position,
		   round=excluded.round, status=excluded.status, interview_at=excluded.interview_at,
		   outcome=excluded.outcome, created_at=excluded.created_at, updated_at=excluded.updated_at`,
		iv.ID, nullableString(iv.ContactID), iv.Company, iv.Position, iv.Round, iv.Status,
		nullableTime(iv.InterviewAt), nullableString(iv.Outcome),
		iv.CreatedAt.Format(timeLayout), nullableTime(iv.UpdatedAt))
	if err != nil {
		return fmt.Errorf("save interview %s: %w", iv.ID, err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM followup_action WHERE entity_kind = ? AND entity_id = ?`, entityKind, iv.ID); err != nil {
		return fmt.Errorf("save interview %s follow-ups: %w", iv.ID, err)
	}
	for _, f := range iv.FollowUps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO followup_action (entity_kind, entity_id, action_kind, subkind, sent_at, status)
			 VALUES (?, ?, ?, '', ?, ?)`,
			entityKind, iv.ID, f.Kind, f.SentAt.Format(timeLayout), f.Status); err != nil {
			return fmt.Errorf("save interview %s follow-ups: %w", iv.ID, err)
		}
	}

	return tx.Commit()
}

// Delete removes an interview and its follow-up rows.
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
	if _, err := tx.ExecContext(ctx, `DELETE FROM interview WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns interviews matching the filter, most recent first, with
// follow-up histories attached.
// PRE: filter has valid parameters
// POST: Returns matching records ordered by interview_at DESC
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interview WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		query += ` AND status = ?`
		args = append(args, filter.Status)
	}
	if filter.ContactID != "" {
		query += ` AND contact_id = ?`
		args = append(args, filter.ContactID)
	}
	query += ` ORDER BY interview_at DESC`
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

	var interviews []domain.Interview
	for rows.Next() {
		iv, err := scanInterviewRow(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range interviews {
		interviews[i].FollowUps, err = s.loadFollowUps(ctx, interviews[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return interviews, nil
}

// loadFollowUps loads follow-up rows for one interview in sent order.
func (s *SQLiteStore) loadFollowUps(ctx context.Context, id string) ([]domain.FollowUp, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT action_kind, sent_at, status FROM followup_action
		 WHERE entity_kind = ? AND entity_id = ? ORDER BY id ASC`, entityKind, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var followUps []domain.FollowUp
	for rows.Next() {
		var f domain.FollowUp
		var sentAt string
		if err := rows.Scan(&f.Kind, &sentAt, &f.Status); err != nil {
			return nil, err
		}
		f.SentAt = parseTime(sentAt, "sent_at", id)
		followUps = append(followUps, f)
	}
	return followUps, rows.Err()
}

// scannedRow holds the raw scanned values from an interview row before conversion.
type scannedRow struct {
	contactID   sql.NullString
	interviewAt sql.NullString
	outcome     sql.NullString
	createdAt   string
	updatedAt   sql.NullString
}

// scanInterview scans a single row into an Interview.
func scanInterview(row *sql.Row) (domain.Interview, error) {
	var iv domain.Interview
	var s scannedRow
	err := row.Scan(&iv.ID, &s.contactID, &iv.Company, &iv.Position, &iv.Round, &iv.Status,
		&s.interviewAt, &s.outcome, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Interview{}, err
	}
	applyScanned(&iv, &s)
	return iv, nil
}

// scanInterviewRow scans the current row of a result set into an Interview.
func scanInterviewRow(rows *sql.Rows) (domain.Interview, error) {
	var iv domain.Interview
	var s scannedRow
	err := rows.Scan(&iv.ID, &s.contactID, &iv.Company, &iv.Position, &iv.Round, &iv.Status,
		&s.interviewAt, &s.outcome, &s.createdAt, &s.updatedAt)
	if err != nil {
		return domain.Interview{}, err
	}
	applyScanned(&iv, &s)
	return iv, nil
}

// applyScanned converts raw scanned values into the Interview domain fields.
func applyScanned(iv *domain.Interview, s *scannedRow) {
	if s.contactID.Valid {
		iv.ContactID = s.contactID.String
	}
	if s.outcome.Valid {
		iv.Outcome = s.outcome.String
	}
	iv.InterviewAt = parseNullableTime(s.interviewAt, "interview_at", iv.ID)
	iv.CreatedAt = parseTime(s.createdAt, "created_at", iv.ID)
	iv.UpdatedAt = parseNullableTime(s.updatedAt, "updated_at", iv.ID)
}

// parseTime parses a time string, logging a warning on failure.
func parseTime(raw, field, interviewID string) time.Time {
	t, err := time.Parse(timeLayout, raw)
	if err != nil {
		slog.Warn("interview: failed to parse time", "field", field, "interview_id", interviewID, "raw", raw, "error", err)
	}
	return t
}

// parseNullableTime parses a nullable time string, logging a warning on failure.
func parseNullableTime(ns sql.NullString, field, interviewID string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return parseTime(ns.String, field, interviewID)
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
