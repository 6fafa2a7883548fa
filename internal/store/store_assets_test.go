package store_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/store"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (row fakeRow) Scan(dest ...any) error {
	return row.scan(dest...)
}

type emptyRows struct{}

func (emptyRows) Next() bool             { return false }
func (emptyRows) Scan(dest ...any) error { return nil }
func (emptyRows) Close()                 {}
func (emptyRows) Err() error             { return nil }

// fakeConn records the SQL the store generates and answers QueryRow
// with a configured row.
type fakeConn struct {
	lastSQL string
	row     database.Row
}

func (conn *fakeConn) Exec(sql string, arguments ...any) error {
	conn.lastSQL = sql

	return nil
}

func (conn *fakeConn) Query(sql string, arguments ...any) (database.Rows, error) {
	conn.lastSQL = sql

	return emptyRows{}, nil
}

func (conn *fakeConn) QueryRow(sql string, arguments ...any) database.Row {
	conn.lastSQL = sql

	return conn.row
}

func TestMarkAssetSold(t *testing.T) {
	conn := &fakeConn{
		row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int) = 42

			return nil
		}},
	}

	err := store.New(conn).MarkAssetSold(1, 42, decimal.NewFromInt(100), time.Now())

	if err != nil {
		t.Fatalf("MarkAssetSold failed: %s", err)
	}

	if !strings.Contains(conn.lastSQL, "is_sold") {
		t.Errorf("The update should guard on is_sold, got: %s", conn.lastSQL)
	}

	if !strings.Contains(conn.lastSQL, "returning id") {
		t.Errorf("The update should return the matched row, got: %s", conn.lastSQL)
	}
}

func TestMarkAssetSoldAlreadySold(t *testing.T) {
	// The guarded update matches no row for a sold asset, so the
	// second of two racing sells has to come back as not found.
	conn := &fakeConn{
		row: fakeRow{scan: func(dest ...any) error {
			return database.ErrNoRows
		}},
	}

	err := store.New(conn).MarkAssetSold(1, 42, decimal.NewFromInt(100), time.Now())

	if err == nil {
		t.Fatal("Selling an already-sold asset should fail")
	}

	if !store.IsNotFound(err) {
		t.Errorf("The error should read as not found, got: %s", err)
	}
}

func TestListAssetsCategoryFilter(t *testing.T) {
	conn := &fakeConn{}
	s := store.New(conn)

	if _, err := s.ListAssets(1, store.AssetFilter{}); err != nil {
		t.Fatalf("ListAssets failed: %s", err)
	}

	if strings.Contains(conn.lastSQL, "category =") {
		t.Errorf("An empty filter should not constrain the category, got: %s", conn.lastSQL)
	}

	if _, err := s.ListAssets(1, store.AssetFilter{Category: "gold"}); err != nil {
		t.Fatalf("ListAssets failed: %s", err)
	}

	if !strings.Contains(conn.lastSQL, "category = $") {
		t.Errorf("The category filter should constrain the query, got: %s", conn.lastSQL)
	}
}
