package pubadmin

import (
	"path/filepath"
	"testing"

	"github.com/eringen/pubadmin/datatable"
)

func setupTestStore(t *testing.T) *PrefStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "test_admin.db")

	s, err := NewPrefStore(path)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewPrefStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestVisibilityRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	vis, err := s.Visibility("posts")
	if err != nil {
		t.Fatalf("Visibility failed: %v", err)
	}
	if len(vis) != 0 {
		t.Fatalf("expected no saved columns, got %v", vis)
	}

	want := map[datatable.ColumnKey]bool{"title": true, "slug": false}
	if err := s.SaveVisibility("posts", want); err != nil {
		t.Fatalf("SaveVisibility failed: %v", err)
	}
	got, err := s.Visibility("posts")
	if err != nil {
		t.Fatalf("Visibility failed: %v", err)
	}
	if len(got) != 2 || got["title"] != true || got["slug"] != false {
		t.Errorf("Visibility = %v, want %v", got, want)
	}

	if err := s.SaveVisibility("posts", map[datatable.ColumnKey]bool{"slug": true}); err != nil {
		t.Fatalf("SaveVisibility failed: %v", err)
	}
	got, _ = s.Visibility("posts")
	if !got["slug"] || !got["title"] {
		t.Errorf("expected upsert to keep title and flip slug, got %v", got)
	}
}

func TestVisibilityIsPerResource(t *testing.T) {
	s := setupTestStore(t)

	if err := s.SaveVisibility("posts", map[datatable.ColumnKey]bool{"title": false}); err != nil {
		t.Fatalf("SaveVisibility failed: %v", err)
	}
	got, err := s.Visibility("tags")
	if err != nil {
		t.Fatalf("Visibility failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected tags to be untouched, got %v", got)
	}
}

func TestPageSize(t *testing.T) {
	s := setupTestStore(t)

	n, err := s.PageSize("posts")
	if err != nil {
		t.Fatalf("PageSize failed: %v", err)
	}
	if n != 0 {
		t.Errorf("PageSize = %d, want 0 before saving", n)
	}

	if err := s.SavePageSize("posts", 25); err != nil {
		t.Fatalf("SavePageSize failed: %v", err)
	}
	if err := s.SavePageSize("posts", 50); err != nil {
		t.Fatalf("SavePageSize failed: %v", err)
	}
	n, err = s.PageSize("posts")
	if err != nil {
		t.Fatalf("PageSize failed: %v", err)
	}
	if n != 50 {
		t.Errorf("PageSize = %d, want 50", n)
	}
}

func TestReset(t *testing.T) {
	s := setupTestStore(t)

	_ = s.SaveVisibility("posts", map[datatable.ColumnKey]bool{"title": false})
	_ = s.SavePageSize("posts", 10)

	if err := s.Reset("posts"); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	vis, _ := s.Visibility("posts")
	n, _ := s.PageSize("posts")
	if len(vis) != 0 || n != 0 {
		t.Errorf("expected preferences to be cleared, got %v and %d", vis, n)
	}
}
