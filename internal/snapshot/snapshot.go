// Package snapshot keeps the append-only portfolio value history that
// feeds the wealth chart. It lives in ClickHouse; rows are only ever
// inserted, never updated.
package snapshot

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/portfolio"
)

type Conn struct {
	chConn clickhouse.Conn
}

// Connect connects to the ClickHouse history database with the project
// environment variables.
func Connect() (*Conn, error) {
	address := fmt.Sprintf("%s:%s", os.Getenv("CH_HOST"), os.Getenv("CH_PORT"))
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{address},
		Auth: clickhouse.Auth{
			Database: os.Getenv("CH_NAME"),
			Username: os.Getenv("CH_USERNAME"),
			Password: os.Getenv("CH_PASSWORD"),
		},
		DialTimeout: time.Second * 5,
	})

	if err != nil {
		return nil, err
	}

	if err := conn.Ping(context.Background()); err != nil {
		return nil, err
	}

	return &Conn{chConn: conn}, nil
}

// Close closes the connection.
func (conn *Conn) Close() error {
	return conn.chConn.Close()
}

var createTableQuery = `
create table if not exists birikio_snapshot (
	user_id Int64,
	total_value Decimal(28, 8),
	gold_value Decimal(28, 8),
	crypto_value Decimal(28, 8),
	stock_value Decimal(28, 8),
	currency_value Decimal(28, 8),
	other_value Decimal(28, 8),
	time DateTime64(9)
)
engine = MergeTree()
order by (user_id, time)
`

// EnsureTable creates the snapshot table if it doesn't exist yet.
func (conn *Conn) EnsureTable() error {
	return conn.chConn.Exec(context.Background(), createTableQuery)
}

// Point is one day's portfolio value for a user.
type Point struct {
	Time       time.Time
	TotalValue decimal.Decimal
}

var insertQuery = `
insert into birikio_snapshot
	(user_id, total_value, gold_value, crypto_value, stock_value, currency_value, other_value, time)
values (?, ?, ?, ?, ?, ?, ?, now64(9))
`

// Record appends a snapshot of a user's current totals and category
// values.
func (conn *Conn) Record(userID int, summary portfolio.Summary, sliceList []portfolio.Slice) error {
	categoryValues := map[model.Category]decimal.Decimal{}

	for _, slice := range sliceList {
		categoryValues[slice.Category] = slice.Value
	}

	return conn.chConn.Exec(
		context.Background(),
		insertQuery,
		int64(userID),
		summary.TotalValue,
		categoryValues[model.CategoryGold],
		categoryValues[model.CategoryCrypto],
		categoryValues[model.CategoryStock],
		categoryValues[model.CategoryCurrency],
		categoryValues[model.CategoryOther],
	)
}

var historyQuery = `
select
	toStartOfDay(time) as day,
	argMax(total_value, time) as total_value
from birikio_snapshot
where user_id = ?
and time >= now() - interval ? day
group by day
order by day
`

// History loads the last `days` days of snapshot points for a user,
// one per day, oldest first.
func (conn *Conn) History(userID, days int) ([]Point, error) {
	rows, err := conn.chConn.Query(
		context.Background(),
		historyQuery,
		int64(userID),
		int64(days),
	)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	pointList := make([]Point, 0, days)

	for rows.Next() {
		var point Point

		if err := rows.Scan(&point.Time, &point.TotalValue); err != nil {
			return nil, err
		}

		pointList = append(pointList, point)
	}

	return pointList, rows.Err()
}
