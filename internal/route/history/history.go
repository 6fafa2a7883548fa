// Package history defines the transaction history route
package history

import (
	"net/http"

	"github.com/birikio/birikio/internal/currency"
	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
	"github.com/birikio/birikio/internal/route/util"
	"github.com/birikio/birikio/internal/session"
	"github.com/birikio/birikio/internal/store"
	"github.com/birikio/birikio/internal/template"
)

// TransactionView is one transaction prepared for display.
type TransactionView struct {
	AssetName       string
	Type            string
	IsSell          bool
	Quantity        string
	PricePerUnit    string
	TotalAmount     string
	ProfitLoss      string
	ProfitPositive  bool
	TransactionDate string
	Notes           string
}

func makeTransactionView(transaction *model.Transaction) TransactionView {
	view := TransactionView{
		AssetName:       transaction.AssetName,
		Type:            transaction.Type,
		IsSell:          transaction.Type == model.TransactionSell,
		Quantity:        transaction.Quantity.String(),
		PricePerUnit:    currency.Format(transaction.PricePerUnit, transaction.Currency),
		TotalAmount:     currency.Format(transaction.TotalAmount, transaction.Currency),
		TransactionDate: transaction.TransactionDate.Format("2006-01-02 15:04"),
		Notes:           transaction.Notes,
	}

	if transaction.ProfitLoss.Valid {
		view.ProfitLoss = currency.Format(transaction.ProfitLoss.Decimal, transaction.Currency)
		view.ProfitPositive = !transaction.ProfitLoss.Decimal.IsNegative()
	}

	return view
}

type HistoryPageData struct {
	User         model.User
	Transactions []TransactionView
}

// HandleHistory shows a user's transactions, newest first.
func HandleHistory(conn *database.Conn, writer http.ResponseWriter, request *http.Request) {
	var data HistoryPageData

	found, err := session.LoadUserFromSession(conn, request, &data.User)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	if !found {
		http.Redirect(writer, request, "/login", http.StatusFound)

		return
	}

	transactionList, err := store.New(conn).ListTransactions(data.User.ID)

	if err != nil {
		util.RespondInternalServerError(writer, err)

		return
	}

	data.Transactions = make([]TransactionView, 0, len(transactionList))

	for i := range transactionList {
		data.Transactions = append(data.Transactions, makeTransactionView(&transactionList[i]))
	}

	template.Render(template.History, writer, data)
}
