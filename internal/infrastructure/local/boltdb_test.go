package local

import (
	"errors"
	"path/filepath"
	"testing"
)

type doc struct {
	Name string `json:"name"`
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "planner.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGetDelete(t *testing.T) {
	s := openTemp(t)

	if err := s.Put(BucketNotes, "a", doc{Name: "alpha"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	var got doc
	if err := s.Get(BucketNotes, "a", &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "alpha" {
		t.Fatalf("expected alpha, got %q", got.Name)
	}

	if n, err := s.Size(BucketNotes); err != nil || n != 1 {
		t.Fatalf("expected size 1, got %d (%v)", n, err)
	}

	if err := s.Delete(BucketNotes, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(BucketNotes, "a"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if err := s.Get(BucketNotes, "a", &got); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
}

func TestReplaceRequiresExistingKey(t *testing.T) {
	s := openTemp(t)

	if err := s.Replace(BucketTasks, "missing", doc{}); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	_ = s.Put(BucketTasks, "t", doc{Name: "before"})
	if err := s.Replace(BucketTasks, "t", doc{Name: "after"}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	var got doc
	_ = s.Get(BucketTasks, "t", &got)
	if got.Name != "after" {
		t.Fatalf("expected replaced value, got %q", got.Name)
	}
}

func TestClosedStoreReportsErrors(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Ping(); err != nil {
		t.Fatalf("ping open store: %v", err)
	}
	_ = s.Close()
	if err := s.Ping(); err == nil {
		t.Fatalf("expected ping on closed store to fail")
	}
}
