package db

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`CREATE TABLE test_table (id INTEGER PRIMARY KEY, value TEXT)`)
	if err != nil {
		db.Close()
		t.Fatalf("failed to create table: %v", err)
	}

	return db
}

func count(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM test_table`).Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	return n
}

func TestWithTx_Success(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "test")
		return err
	})
	if err != nil {
		t.Fatalf("WithTx failed: %v", err)
	}

	if n := count(t, db); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	testErr := errors.New("test error")

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "first"); err != nil {
			return err
		}
		if _, err := tx.Exec(`INSERT INTO test_table (value) VALUES (?)`, "second"); err != nil {
			return err
		}
		return testErr
	})

	if !errors.Is(err, testErr) {
		t.Fatalf("WithTx should return the error: got %v, want %v", err, testErr)
	}
	if n := count(t, db); n != 0 {
		t.Errorf("count = %d, want 0 (rolled back)", n)
	}
}

func TestWithTx_CanceledContext(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithTx(ctx, db, func(*sql.Tx) error {
		called = true
		return nil
	})

	if err == nil {
		t.Fatal("WithTx should fail on a canceled context")
	}
	if called {
		t.Error("fn should not run without a transaction")
	}
}

func TestNullString(t *testing.T) {
	if v := NullString(""); v.Valid {
		t.Error("empty string should be NULL")
	}
	if v := NullString("x"); !v.Valid || v.String != "x" {
		t.Errorf("NullString(x) = %+v", v)
	}
	if got := NullStringValue(sql.NullString{String: "ignored"}); got != "" {
		t.Errorf("NullStringValue(invalid) = %q, want empty", got)
	}
	if got := NullStringValue(NullString("x")); got != "x" {
		t.Errorf("NullStringValue = %q, want x", got)
	}
}

func TestNullInt64(t *testing.T) {
	if v := NullInt64(0); v.Valid {
		t.Error("zero should be NULL")
	}
	if got := NullInt64Value(NullInt64(42)); got != 42 {
		t.Errorf("NullInt64Value = %d, want 42", got)
	}
	if got := NullInt64Value(sql.NullInt64{Int64: 7}); got != 0 {
		t.Errorf("NullInt64Value(invalid) = %d, want 0", got)
	}
}
