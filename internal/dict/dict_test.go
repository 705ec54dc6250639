package dict

import (
	"os"
	"testing"
	"testing/quick"

	"github.com/boltdb/bolt"

	"github.com/relationlabs/graphdb/internal/bighash"
)

func tempfile() string {
	f, err := os.CreateTemp("", "graphdb-dict-")
	if err != nil {
		panic(err)
	}
	f.Close()
	os.Remove(f.Name())
	return f.Name()
}

func openTestDB(t *testing.T) *bolt.DB {
	t.Helper()
	path := tempfile()
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		t.Fatalf("bolt.Open: %v", err)
	}
	if err := db.Update(Setup); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
		os.Remove(path)
	})
	return db
}

func TestInsertStrIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	const value = "http://example.org/subject"

	var h1, h2 [16]byte
	db.Update(func(tx *bolt.Tx) error {
		hash, err := InsertStr(tx, value, 0)
		if err != nil {
			t.Fatalf("InsertStr: %v", err)
		}
		h1 = hash.Bytes()
		return nil
	})
	db.Update(func(tx *bolt.Tx) error {
		hash, err := InsertStr(tx, value, 0)
		if err != nil {
			t.Fatalf("InsertStr (second): %v", err)
		}
		h2 = hash.Bytes()
		return nil
	})
	if h1 != h2 {
		t.Fatalf("InsertStr produced different hashes for the same value: %x != %x", h1, h2)
	}
	db.View(func(tx *bolt.Tx) error {
		if Count(tx) != 1 {
			t.Fatalf("expected exactly one dictionary entry after repeated insert, got %d", Count(tx))
		}
		return nil
	})
}

func TestGetStrRoundTripsInsertStr(t *testing.T) {
	db := openTestDB(t)
	f := func(value string) bool {
		var got string
		err := db.Update(func(tx *bolt.Tx) error {
			h, err := InsertStr(tx, value, 0)
			if err != nil {
				return err
			}
			got, err = GetStr(tx, h)
			return err
		})
		return err == nil && got == value
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestGetStrNotFound(t *testing.T) {
	db := openTestDB(t)
	db.View(func(tx *bolt.Tx) error {
		var h [16]byte
		h[0] = 0xff
		hash, _ := bighash.FromBytes(h[:])
		if _, err := GetStr(tx, hash); err != ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
		return nil
	})
}

func TestInsertStrValueTooLarge(t *testing.T) {
	db := openTestDB(t)
	db.Update(func(tx *bolt.Tx) error {
		_, err := InsertStr(tx, "this value is much too long", 4)
		if err != ErrValueTooLarge {
			t.Fatalf("expected ErrValueTooLarge, got %v", err)
		}
		return nil
	})
}

func TestClearRemovesAllEntries(t *testing.T) {
	db := openTestDB(t)
	db.Update(func(tx *bolt.Tx) error {
		InsertStr(tx, "a", 0)
		InsertStr(tx, "b", 0)
		return Clear(tx)
	})
	db.View(func(tx *bolt.Tx) error {
		if n := Count(tx); n != 0 {
			t.Fatalf("expected empty dictionary after Clear, got %d entries", n)
		}
		return nil
	})
}
