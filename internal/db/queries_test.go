package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/newshub/baitscan/internal/clickbait"
	"github.com/newshub/baitscan/internal/errors"
)

// newTestRecord analyzes title and wraps it in a record with default values.
func newTestRecord(id, title string) *clickbait.Record {
	return &clickbait.Record{
		ID:         id,
		Title:      title,
		TitleNorm:  clickbait.Normalize(title),
		TitleChars: clickbait.CountChars(title),
		Result:     clickbait.Analyze(title),
		CreatedAt:  time.Now().Unix(),
	}
}

// stringPtr returns a pointer to the given string.
func stringPtr(s string) *string {
	return &s
}

func categoryPtr(c clickbait.Category) *clickbait.Category {
	return &c
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Init(t.TempDir())
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func insertAll(t *testing.T, db *sql.DB, records ...*clickbait.Record) {
	t.Helper()
	for _, r := range records {
		if err := Insert(context.Background(), db, r); err != nil {
			t.Fatalf("Insert(%s) failed: %v", r.ID, err)
		}
	}
}

func TestInsertAndGetByID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r := newTestRecord("01ABC123", "Viral! Video Ini Bikin Merinding, Terungkap Fakta Mengagetkan!!!")
	r.Source = stringPtr("newsdata")
	r.Link = stringPtr("https://example.com/berita/1")

	if err := Insert(ctx, db, r); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := GetByID(ctx, db, "01ABC123", false)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if got.Title != r.Title {
		t.Errorf("Title = %q, want %q", got.Title, r.Title)
	}
	if got.TitleNorm != r.TitleNorm {
		t.Errorf("TitleNorm = %q, want %q", got.TitleNorm, r.TitleNorm)
	}
	if got.TitleChars != r.TitleChars {
		t.Errorf("TitleChars = %d, want %d", got.TitleChars, r.TitleChars)
	}
	if got.Source == nil || *got.Source != "newsdata" {
		t.Errorf("Source = %v, want newsdata", got.Source)
	}
	if got.Link == nil || *got.Link != *r.Link {
		t.Errorf("Link = %v, want %q", got.Link, *r.Link)
	}
	if got.DeletedAt != nil {
		t.Errorf("DeletedAt = %v, want nil", *got.DeletedAt)
	}

	// The stored breakdown must round-trip to the same Result.
	if got.Result.Score != r.Result.Score {
		t.Errorf("Score = %d, want %d", got.Result.Score, r.Result.Score)
	}
	if got.Result.MaxScore != clickbait.MaxScore {
		t.Errorf("MaxScore = %d, want %d", got.Result.MaxScore, clickbait.MaxScore)
	}
	if got.Result.Category != r.Result.Category {
		t.Errorf("Category = %q, want %q", got.Result.Category, r.Result.Category)
	}
	if got.Result.CategoryLabel != r.Result.CategoryLabel {
		t.Errorf("CategoryLabel = %q, want %q", got.Result.CategoryLabel, r.Result.CategoryLabel)
	}
	if got.Result.CategoryDescription != r.Result.CategoryDescription {
		t.Errorf("CategoryDescription = %q, want %q", got.Result.CategoryDescription, r.Result.CategoryDescription)
	}
	if got.Result.IsClickbait != r.Result.IsClickbait {
		t.Errorf("IsClickbait = %v, want %v", got.Result.IsClickbait, r.Result.IsClickbait)
	}
	if len(got.Result.Triggers) != len(r.Result.Triggers) {
		t.Fatalf("len(Triggers) = %d, want %d", len(got.Result.Triggers), len(r.Result.Triggers))
	}
	for i := range r.Result.Triggers {
		if got.Result.Triggers[i] != r.Result.Triggers[i] {
			t.Errorf("Triggers[%d] = %+v, want %+v", i, got.Result.Triggers[i], r.Result.Triggers[i])
		}
	}
}

func TestInsert_NoTriggers(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	r := newTestRecord("01NOTRIG", "Pemerintah Umumkan Kebijakan Baru")
	r.Result.Triggers = nil
	insertAll(t, db, r)

	got, err := GetByID(ctx, db, "01NOTRIG", false)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Result.Triggers == nil {
		t.Error("Triggers should be an empty slice, not nil")
	}
	if got.Source != nil || got.Link != nil {
		t.Errorf("Source/Link = %v/%v, want nil", got.Source, got.Link)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := GetByID(context.Background(), db, "nonexistent", false)
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID should return ErrNotFound, got: %v", err)
	}
}

func TestSoftDelete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db, newTestRecord("01DEL001", "WOW ternyata"))

	if err := SoftDelete(ctx, db, "01DEL001"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	// Hidden by default
	if _, err := GetByID(ctx, db, "01DEL001", false); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("GetByID after delete should return ErrNotFound, got: %v", err)
	}

	// Visible with includeDeleted
	got, err := GetByID(ctx, db, "01DEL001", true)
	if err != nil {
		t.Fatalf("GetByID(includeDeleted) failed: %v", err)
	}
	if got.DeletedAt == nil {
		t.Error("DeletedAt should be set")
	}
}

func TestSoftDelete_NotFound(t *testing.T) {
	db := openTestDB(t)

	err := SoftDelete(context.Background(), db, "nonexistent")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("SoftDelete should return ErrNotFound, got: %v", err)
	}
}

func TestSoftDelete_AlreadyDeleted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db, newTestRecord("01DEL002", "Berita biasa"))
	if err := SoftDelete(ctx, db, "01DEL002"); err != nil {
		t.Fatalf("first SoftDelete failed: %v", err)
	}

	err := SoftDelete(ctx, db, "01DEL002")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second SoftDelete should return ErrNotFound, got: %v", err)
	}
}

// =============================================================================
// List Tests
// =============================================================================

func TestList_Basic(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i, id := range []string{"01AAA001", "01AAA002", "01AAA003"} {
		r := newTestRecord(id, "Judul "+id)
		r.CreatedAt = int64(1000 + i)
		insertAll(t, db, r)
	}

	items, total, err := List(ctx, db, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}

	// Most recent first
	if items[0].ID != "01AAA003" {
		t.Errorf("first item ID = %q, want 01AAA003", items[0].ID)
	}
}

func TestList_Empty(t *testing.T) {
	db := openTestDB(t)

	items, total, err := List(context.Background(), db, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if items == nil {
		t.Error("items should be an empty slice, not nil")
	}
}

func TestList_Pagination(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		r := newTestRecord("01CCC00"+string(rune('1'+i)), "Judul")
		r.CreatedAt = int64(1000 + i)
		insertAll(t, db, r)
	}

	items, total, err := List(ctx, db, Filter{}, 2, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ID != "01CCC003" || items[1].ID != "01CCC002" {
		t.Errorf("page IDs = [%s %s], want [01CCC003 01CCC002]", items[0].ID, items[1].ID)
	}
}

func TestList_StableOrdering(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Same created_at; id breaks the tie
	for _, id := range []string{"01SAME01", "01SAME03", "01SAME02"} {
		r := newTestRecord(id, "Judul")
		r.CreatedAt = 5000
		insertAll(t, db, r)
	}

	items, _, err := List(ctx, db, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"01SAME03", "01SAME02", "01SAME01"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestList_CategoryAndClickbaitFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db,
		newTestRecord("01SAFE01", "Pemerintah Umumkan Kebijakan Baru"),
		newTestRecord("01DANG01", "Viral! Video Ini Bikin Merinding, Terungkap Fakta Mengagetkan!!!"),
		newTestRecord("01WARN01", "Wajib Baca! 50 Cara Menghasilkan Uang yang Tidak Akan Kamu Percaya!"),
	)

	items, total, err := List(ctx, db, Filter{Category: categoryPtr(clickbait.CategoryDanger)}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || items[0].ID != "01DANG01" {
		t.Errorf("danger filter = %d items (first %v), want only 01DANG01", total, items)
	}

	items, total, err = List(ctx, db, Filter{ClickbaitOnly: true}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("clickbait filter total = %d, want 2", total)
	}
	for _, it := range items {
		if !it.IsClickbait {
			t.Errorf("item %s IsClickbait = false in clickbait-only listing", it.ID)
		}
	}
}

func TestList_QueryFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db,
		newTestRecord("01QRY001", "Harga BBM Naik Lagi"),
		newTestRecord("01QRY002", "Diskon 50% untuk Pelanggan Baru"),
		newTestRecord("01QRY003", "Nama_File Bocor di Internet"),
	)

	tests := []struct {
		query string
		want  []string
	}{
		{"bbm", []string{"01QRY001"}},
		{"  HARGA   bbm ", []string{"01QRY001"}},
		// LIKE wildcards must match literally
		{"50%", []string{"01QRY002"}},
		{"harga_bbm", nil},
		{"_file", []string{"01QRY003"}},
		{"tidak ada", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			items, total, err := List(ctx, db, Filter{Query: stringPtr(tt.query)}, 10, 0)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if total != len(tt.want) {
				t.Fatalf("total = %d, want %d", total, len(tt.want))
			}
			for i, id := range tt.want {
				if items[i].ID != id {
					t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
				}
			}
		})
	}
}

func TestList_IncludeDeleted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db, newTestRecord("01INC001", "Satu"), newTestRecord("01INC002", "Dua"))
	if err := SoftDelete(ctx, db, "01INC001"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	_, total, err := List(ctx, db, Filter{}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 {
		t.Errorf("active total = %d, want 1", total)
	}

	items, total, err := List(ctx, db, Filter{IncludeDeleted: true}, 10, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 2 {
		t.Errorf("total with deleted = %d, want 2", total)
	}
	var sawDeleted bool
	for _, it := range items {
		if it.ID == "01INC001" && it.DeletedAt != nil {
			sawDeleted = true
		}
	}
	if !sawDeleted {
		t.Error("deleted record should be listed with DeletedAt set")
	}
}

// =============================================================================
// Each / Stats / Purge Tests
// =============================================================================

func TestEach_CreationOrder(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for i, id := range []string{"01EACH03", "01EACH01", "01EACH02"} {
		r := newTestRecord(id, "Judul "+id)
		r.CreatedAt = int64(3000 - i)
		insertAll(t, db, r)
	}

	var ids []string
	err := Each(ctx, db, Filter{}, func(r *clickbait.Record) error {
		ids = append(ids, r.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Each failed: %v", err)
	}

	want := []string{"01EACH02", "01EACH01", "01EACH03"}
	if len(ids) != len(want) {
		t.Fatalf("visited %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestEach_StopsOnCallbackError(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db, newTestRecord("01STOP01", "Satu"), newTestRecord("01STOP02", "Dua"))

	stop := errors.NewInvalidRequest("stop")
	calls := 0
	err := Each(ctx, db, Filter{}, func(*clickbait.Record) error {
		calls++
		return stop
	})
	if err != stop {
		t.Errorf("Each error = %v, want callback error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestGetStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	safe := newTestRecord("01STA001", "Pemerintah Umumkan Kebijakan Baru")
	danger := newTestRecord("01STA002", "Viral! Video Ini Bikin Merinding, Terungkap Fakta Mengagetkan!!!")
	gone := newTestRecord("01STA003", "HEBOH gempar")
	insertAll(t, db, safe, danger, gone)
	if err := SoftDelete(ctx, db, "01STA003"); err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}

	s, err := GetStats(ctx, db)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if s.Total != 2 {
		t.Errorf("Total = %d, want 2", s.Total)
	}
	if s.Clickbait != 1 {
		t.Errorf("Clickbait = %d, want 1", s.Clickbait)
	}
	if s.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", s.Deleted)
	}
	wantAvg := float64(safe.Result.Score+danger.Result.Score) / 2
	if s.AvgScore != wantAvg {
		t.Errorf("AvgScore = %v, want %v", s.AvgScore, wantAvg)
	}
	if s.ByCategory[clickbait.CategorySafe] != 1 || s.ByCategory[clickbait.CategoryDanger] != 1 {
		t.Errorf("ByCategory = %v", s.ByCategory)
	}
	// Empty buckets are reported as zero
	if n, ok := s.ByCategory[clickbait.CategoryWarning]; !ok || n != 0 {
		t.Errorf("ByCategory[warning] = %d (present=%v), want 0", n, ok)
	}
}

func TestGetStats_Empty(t *testing.T) {
	db := openTestDB(t)

	s, err := GetStats(context.Background(), db)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if s.Total != 0 || s.AvgScore != 0 {
		t.Errorf("empty stats = %+v", s)
	}
	if len(s.ByCategory) != 4 {
		t.Errorf("len(ByCategory) = %d, want 4", len(s.ByCategory))
	}
}

func TestPurgeDeleted(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	insertAll(t, db,
		newTestRecord("01PUR001", "Lama"),
		newTestRecord("01PUR002", "Baru"),
		newTestRecord("01PUR003", "Aktif"),
	)
	for _, id := range []string{"01PUR001", "01PUR002"} {
		if err := SoftDelete(ctx, db, id); err != nil {
			t.Fatalf("SoftDelete failed: %v", err)
		}
	}

	// Backdate one deletion by 10 days
	old := time.Now().Add(-10 * 24 * time.Hour).Unix()
	if _, err := db.Exec("UPDATE analyses SET deleted_at = ? WHERE id = ?", old, "01PUR001"); err != nil {
		t.Fatalf("backdate failed: %v", err)
	}

	days := 7
	n, err := PurgeDeleted(ctx, db, &days)
	if err != nil {
		t.Fatalf("PurgeDeleted failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	// Without a cutoff every soft-deleted record goes
	n, err = PurgeDeleted(ctx, db, nil)
	if err != nil {
		t.Fatalf("PurgeDeleted failed: %v", err)
	}
	if n != 1 {
		t.Errorf("purged = %d, want 1", n)
	}

	// Active records are untouched
	if _, err := GetByID(ctx, db, "01PUR003", false); err != nil {
		t.Errorf("active record should survive purge: %v", err)
	}
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"50%", `50\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}
	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
