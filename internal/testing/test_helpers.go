// Package testing provides the live-database harness used by integration
// tests. Tests are skipped unless LISTKEEPER_TEST_DATABASE_URL is set.
package testing

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/eleven-am/listkeeper/internal/store"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// EnvDatabaseURL names the variable holding the server to test against.
const EnvDatabaseURL = "LISTKEEPER_TEST_DATABASE_URL"

var lookupEnv = os.Getenv

// TestDB is a connection bound to a private schema that holds the
// reference tables.
type TestDB struct {
	DB      *sqlx.DB
	Schema  string
	ConnStr string

	admin *sqlx.DB
	t     *testing.T
}

// NewTestDB creates a throwaway schema, applies the reference DDL to it and
// registers its removal with t.Cleanup.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	baseConnStr := lookupEnv(EnvDatabaseURL)
	if baseConnStr == "" {
		t.Skipf("Skipping integration test: %s is not set", EnvDatabaseURL)
	}

	admin, err := sqlx.Connect("postgres", baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}

	schema := fmt.Sprintf("listkeeper_test_%d", time.Now().UnixNano())
	if _, err := admin.Exec(fmt.Sprintf("CREATE SCHEMA %s", schema)); err != nil {
		admin.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	connStr, err := withSearchPath(baseConnStr, schema)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to build test connection string: %v", err)
	}

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		admin.Close()
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	tdb := &TestDB{DB: db, Schema: schema, ConnStr: connStr, admin: admin, t: t}
	t.Cleanup(tdb.Cleanup)

	if err := tdb.ExecuteSQL(store.Schema); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	return tdb
}

// Cleanup drops the test schema
func (tdb *TestDB) Cleanup() {
	tdb.DB.Close()
	defer tdb.admin.Close()

	if _, err := tdb.admin.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", tdb.Schema)); err != nil {
		tdb.t.Logf("Failed to drop test schema: %v", err)
	}
}

// ExecuteSQL executes SQL statements
func (tdb *TestDB) ExecuteSQL(sql string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, stmt := range strings.Split(sql, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tdb.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute SQL: %w\nStatement: %s", err, stmt)
		}
	}
	return nil
}

// RowCount returns the number of rows in table.
func (tdb *TestDB) RowCount(table string) int64 {
	tdb.t.Helper()

	var n int64
	if err := tdb.DB.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM %s", table)); err != nil {
		tdb.t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// withSearchPath pins every pooled connection to schema. lib/pq forwards
// unknown URL parameters as run-time settings.
func withSearchPath(connStr, schema string) (string, error) {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return "", err
		}
		q := u.Query()
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String(), nil
	}
	return connStr + " search_path=" + schema, nil
}
