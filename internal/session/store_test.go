package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	now := time.Unix(1700000000, 0)
	s.now = func() time.Time { return now }

	if _, ok, err := s.Get(ctx, "/a"); ok || err != nil {
		t.Fatalf("Get before Put = %v, %v", ok, err)
	}
	if err := s.Put(ctx, "/a", 3, 40.5); err != nil {
		t.Fatal(err)
	}
	off, ok, err := s.Get(ctx, "/a")
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if off.X != 3 || off.Y != 40.5 || !off.Updated.Equal(now) {
		t.Errorf("offset = %+v", off)
	}

	if err := s.Put(ctx, "/a", 0, 7); err != nil {
		t.Fatal(err)
	}
	off, _, _ = s.Get(ctx, "/a")
	if off.X != 0 || off.Y != 7 {
		t.Errorf("after overwrite offset = %+v", off)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	_ = s.Put(ctx, "/a", 1, 1)
	if err := s.Delete(ctx, "/a"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, "/a"); ok {
		t.Error("offset survived Delete")
	}
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := openMemory(t)
	base := time.Unix(1700000000, 0)

	s.now = func() time.Time { return base }
	_ = s.Put(ctx, "/old", 0, 1)
	s.now = func() time.Time { return base.Add(time.Hour) }
	_ = s.Put(ctx, "/new", 0, 2)

	n, err := s.Prune(ctx, base.Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pruned %d, want 1", n)
	}
	if _, ok, _ := s.Get(ctx, "/new"); !ok {
		t.Error("recent offset was pruned")
	}
}

func TestPersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Put(ctx, "/doc.txt", 2, 12); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	off, ok, err := s.Get(ctx, "/doc.txt")
	if err != nil || !ok || off.Y != 12 {
		t.Errorf("Get after reopen = %+v, %v, %v", off, ok, err)
	}
}

func TestClosed(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	ctx := context.Background()
	if err := s.Put(ctx, "/a", 0, 0); !errors.Is(err, ErrClosed) {
		t.Errorf("Put = %v, want ErrClosed", err)
	}
	if _, _, err := s.Get(ctx, "/a"); !errors.Is(err, ErrClosed) {
		t.Errorf("Get = %v, want ErrClosed", err)
	}
}
