package sqlite

import "testing"

func TestOpenAndPing(t *testing.T) {
	db, err := Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		t.Fatalf("Ping returned error: %v", err)
	}
}

func TestDriverInfoConsistent(t *testing.T) {
	info := GetInfo()
	if info.DriverName != DriverName() {
		t.Errorf("info.DriverName = %q, want %q", info.DriverName, DriverName())
	}
	if info.IsCGO != IsCGO() {
		t.Error("info.IsCGO disagrees with IsCGO()")
	}
	if info.Package == "" {
		t.Error("info.Package should not be empty")
	}
}

func TestRoundTripRow(t *testing.T) {
	db := MustOpen(t.TempDir() + "/rt.db")
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, name TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO t (name) VALUES (?)`, "es"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	var name string
	if err := db.QueryRow(`SELECT name FROM t WHERE id = 1`).Scan(&name); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "es" {
		t.Errorf("name = %q, want es", name)
	}
}
