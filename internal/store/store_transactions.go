package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var transactionColumns = []string{
	"id",
	"user_id",
	"asset_id",
	"asset_name",
	"transaction_type",
	"quantity",
	"price_per_unit",
	"total_amount",
	"currency",
	"profit_loss",
	"transaction_date",
	"notes",
	"created_at",
}

func scanTransaction(row database.Row, transaction *model.Transaction) error {
	return row.Scan(
		&transaction.ID,
		&transaction.UserID,
		&transaction.AssetID,
		&transaction.AssetName,
		&transaction.Type,
		&transaction.Quantity,
		&transaction.PricePerUnit,
		&transaction.TotalAmount,
		&transaction.Currency,
		&transaction.ProfitLoss,
		&transaction.TransactionDate,
		&transaction.Notes,
		&transaction.CreatedAt,
	)
}

// ListTransactions loads a user's transaction history, newest first.
//
// Transactions are only ever appended; there is no update or delete.
func (s *Store) ListTransactions(userID int) ([]model.Transaction, error) {
	query, args, err := s.builder.
		Select(transactionColumns...).
		From("birikio_transaction").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("transaction_date desc").
		ToSql()

	if err != nil {
		return nil, errors.Wrap(err, "build transaction list query")
	}

	var transactionList []model.Transaction

	if err := model.LoadList(s.conn, &transactionList, 10, scanTransaction, query, args...); err != nil {
		return nil, errors.Wrap(err, "exec transaction list query")
	}

	return transactionList, nil
}

// CreateTransaction appends an immutable transaction record.
func (s *Store) CreateTransaction(transaction *model.Transaction) error {
	query, args, err := s.builder.
		Insert("birikio_transaction").
		Columns(
			"user_id",
			"asset_id",
			"asset_name",
			"transaction_type",
			"quantity",
			"price_per_unit",
			"total_amount",
			"currency",
			"profit_loss",
			"transaction_date",
			"notes",
			"created_at",
		).
		Values(
			transaction.UserID,
			transaction.AssetID,
			transaction.AssetName,
			transaction.Type,
			transaction.Quantity,
			transaction.PricePerUnit,
			transaction.TotalAmount,
			transaction.Currency,
			transaction.ProfitLoss,
			transaction.TransactionDate,
			transaction.Notes,
			time.Now(),
		).
		Suffix("returning id").
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build insert transaction")
	}

	if err := s.conn.QueryRow(query, args...).Scan(&transaction.ID); err != nil {
		return errors.Wrap(err, "exec insert transaction")
	}

	return nil
}
