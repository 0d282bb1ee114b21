package store

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestLoadDraftEmpty(t *testing.T) {
	db := openTestDB(t)
	_, ok, err := db.LoadDraft()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected no draft in fresh database")
	}
}

func TestSaveAndLoadDraft(t *testing.T) {
	db := openTestDB(t)
	if err := db.SaveDraft("<h1>Newsletter</h1>", "newsletter"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	draft, ok, err := db.LoadDraft()
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if draft.Content != "<h1>Newsletter</h1>" || draft.DocumentType != "newsletter" {
		t.Errorf("unexpected draft %+v", draft)
	}
	if draft.UpdatedAt == "" {
		t.Error("expected updated_at timestamp")
	}
}

func TestSaveDraftOverwrites(t *testing.T) {
	db := openTestDB(t)
	db.SaveDraft("alt", "newsletter")
	db.SaveDraft("neu", "internal")

	draft, ok, _ := db.LoadDraft()
	if !ok || draft.Content != "neu" || draft.DocumentType != "internal" {
		t.Errorf("expected latest save to win, got %+v", draft)
	}
}

func TestClearDraft(t *testing.T) {
	db := openTestDB(t)
	db.SaveDraft("inhalt", "newsletter")
	if err := db.ClearDraft(); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := db.LoadDraft(); ok {
		t.Error("expected draft cleared")
	}
}

func TestReopenKeepsDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	db.SaveDraft("bleibt", "newsletter")
	db.Close()

	db2, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db2.Close()
	draft, ok, _ := db2.LoadDraft()
	if !ok || draft.Content != "bleibt" {
		t.Error("expected draft to survive reopen")
	}
}
