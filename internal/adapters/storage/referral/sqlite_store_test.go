package referral

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"pursuit/internal/adapters/storage"
	domain "pursuit/internal/domain/referral"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// In-memory sqlite gives each pooled connection its own database; pin to
	// one connection so the schema and pragmas apply to every query.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO contact (id, name, relationship, created_at, updated_at) VALUES ('c-1', 'Jordan Lee', 'referrer', '2025-02-01T09:00:00Z', '2025-02-01T09:00:00Z')`); err != nil {
		t.Fatalf("failed to seed contact row: %v", err)
	}
	return NewSQLiteStore(db)
}

func sampleReferral() domain.Referral {
	return domain.Referral{
		ID:           "r-1",
		ContactID:    "c-1",
		Company:      "Acme",
		Position:     "Platform Engineer",
		Status:       domain.StatusRequested,
		RequestDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		FollowUpDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Date(2025, 2, 28, 9, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteStore_SaveAndGetByID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleReferral()
	r.FollowUps = []domain.FollowUp{
		{Kind: "follow_up", Subkind: "standard", SentAt: time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), Status: "sent"},
	}

	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.GetByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != domain.StatusRequested {
		t.Errorf("status = %q, want %q", got.Status, domain.StatusRequested)
	}
	if !got.RequestDate.Equal(r.RequestDate) {
		t.Errorf("request_date = %v, want %v", got.RequestDate, r.RequestDate)
	}
	if !got.FollowUpDate.Equal(r.FollowUpDate) {
		t.Errorf("follow_up_date = %v, want %v", got.FollowUpDate, r.FollowUpDate)
	}
	if len(got.FollowUps) != 1 {
		t.Fatalf("got %d follow-ups, want 1", len(got.FollowUps))
	}
	if got.FollowUps[0].Subkind != "standard" {
		t.Errorf("subkind = %q, want standard", got.FollowUps[0].Subkind)
	}
}

// TestSQLiteStore_Save_UnknownContact verifies the contact foreign key is
// enforced: a referral may only reference an existing contact row.
func TestSQLiteStore_Save_UnknownContact(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleReferral()
	r.ContactID = "no-such-contact"

	if err := store.Save(ctx, r); err == nil {
		t.Fatal("expected foreign key error saving referral for unknown contact")
	}
}

// TestSQLiteStore_Save_DatesRoundTripAsCalendarDays verifies that request and
// follow-up dates come back at midnight UTC regardless of the time-of-day on
// the saved value.
func TestSQLiteStore_Save_DatesRoundTripAsCalendarDays(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleReferral()
	r.RequestDate = time.Date(2025, 3, 1, 17, 45, 0, 0, time.UTC)

	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := store.GetByID(ctx, "r-1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.RequestDate.Equal(want) {
		t.Errorf("request_date = %v, want %v", got.RequestDate, want)
	}
}

func TestSQLiteStore_List_ByStatus(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	first := sampleReferral()
	second := sampleReferral()
	second.ID = "r-2"
	second.Status = domain.StatusPending
	second.FollowUpDate = time.Time{}
	second.RequestDate = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for _, r := range []domain.Referral{first, second} {
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save %s failed: %v", r.ID, err)
		}
	}

	pending, err := store.List(ctx, ListFilter{Status: domain.StatusPending})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "r-2" {
		t.Errorf("status filter returned %v, want [r-2]", pending)
	}
	if !pending[0].FollowUpDate.IsZero() {
		t.Errorf("follow_up_date = %v, want zero", pending[0].FollowUpDate)
	}

	all, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r-2" {
		t.Errorf("expected most recent request first, got %v", all)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	r := sampleReferral()
	r.FollowUps = []domain.FollowUp{
		{Kind: "follow_up", Subkind: "thank_you", SentAt: time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), Status: "sent"},
	}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "r-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, "r-1"); err == nil {
		t.Error("expected error after delete")
	}
}
