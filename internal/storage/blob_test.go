// ABOUTME: Tests shared by every blob backend.
// ABOUTME: Each backend must round trip bytes, overwrite, and report missing keys.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]BlobStore {
	t.Helper()

	sqliteBlobs, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "mtbmaint.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	badgerBlobs, err := OpenBadgerInMemory()
	if err != nil {
		t.Fatalf("OpenBadgerInMemory failed: %v", err)
	}

	all := map[string]BlobStore{
		"memory": NewMemoryBlobs(),
		"sqlite": sqliteBlobs,
		"badger": badgerBlobs,
		"s3":     NewS3Blobs(newFakeS3(), "bucket", "test/", 0),
	}
	t.Cleanup(func() {
		for _, b := range all {
			_ = b.Close()
		}
	})
	return all
}

func TestBlobStoreRoundTrip(t *testing.T) {
	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := b.Get(DefaultKey); !errors.Is(err, ErrNotExist) {
				t.Fatalf("expected ErrNotExist for empty store, got %v", err)
			}

			if err := b.Set(DefaultKey, []byte(`{"bikes":[]}`)); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
			got, err := b.Get(DefaultKey)
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if string(got) != `{"bikes":[]}` {
				t.Errorf("Get = %s", got)
			}

			if err := b.Set(DefaultKey, []byte(`{"bikes":[{"id":"1"}]}`)); err != nil {
				t.Fatalf("overwrite failed: %v", err)
			}
			got, err = b.Get(DefaultKey)
			if err != nil {
				t.Fatalf("Get after overwrite failed: %v", err)
			}
			if string(got) != `{"bikes":[{"id":"1"}]}` {
				t.Errorf("Get after overwrite = %s", got)
			}

			if _, err := b.Get("other"); !errors.Is(err, ErrNotExist) {
				t.Errorf("expected ErrNotExist for other key, got %v", err)
			}
		})
	}
}

func TestMemoryBlobsCopiesValues(t *testing.T) {
	m := NewMemoryBlobs()
	data := []byte("abc")
	if err := m.Set("k", data); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	data[0] = 'x'

	got, _ := m.Get("k")
	if string(got) != "abc" {
		t.Errorf("stored value changed through caller slice: %s", got)
	}
	got[1] = 'y'
	again, _ := m.Get("k")
	if string(again) != "abc" {
		t.Errorf("stored value changed through returned slice: %s", again)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mtbmaint.db")

	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := s.Set(DefaultKey, []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat database: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("database permissions = %o, want 600", info.Mode().Perm())
	}

	s, err = OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s.Close()

	got, err := s.Get(DefaultKey)
	if err != nil || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
	if s.Path() != path {
		t.Errorf("Path() = %s, want %s", s.Path(), path)
	}
}

func TestBadgerPersistsAcrossReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")

	b, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("OpenBadger failed: %v", err)
	}
	if err := b.Set(DefaultKey, []byte("persisted")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err = OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer b.Close()

	got, err := b.Get(DefaultKey)
	if err != nil || string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, %v", got, err)
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	if got := DataDir(); got != "/tmp/xdg-data/mtbmaint" {
		t.Errorf("DataDir() = %s", got)
	}
	if got := DefaultSQLitePath(DataDir()); got != "/tmp/xdg-data/mtbmaint/mtbmaint.db" {
		t.Errorf("DefaultSQLitePath() = %s", got)
	}
	if got := DefaultBadgerPath(DataDir()); got != "/tmp/xdg-data/mtbmaint/badger" {
		t.Errorf("DefaultBadgerPath() = %s", got)
	}
}
