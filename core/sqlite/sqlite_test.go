package sqlite

import (
	"path/filepath"
	"testing"
)

func TestDriverSelection(t *testing.T) {
	name := DriverName()
	if name != "sqlite" && name != "sqlite3" {
		t.Errorf("DriverName = %q", name)
	}
	if IsCGO() != (DriverType() == "cgo") {
		t.Error("IsCGO disagrees with DriverType")
	}
}

func TestOpenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (n INTEGER)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO t VALUES (42)`); err != nil {
		t.Fatal(err)
	}

	var n int
	if err := db.QueryRow(`SELECT n FROM t`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Errorf("n = %d, want 42", n)
	}
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.db")

	db, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`CREATE TABLE t (n INTEGER)`); err != nil {
		t.Fatal(err)
	}
	db.Close()

	ro, err := OpenReadOnly(path)
	if err != nil {
		t.Fatal(err)
	}
	defer ro.Close()

	if _, err := ro.Exec(`INSERT INTO t VALUES (1)`); err == nil {
		t.Error("write on a read-only handle should fail")
	}
}
