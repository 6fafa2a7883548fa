package model

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/currency"
)

// User represents a login user in the database
type User struct {
	ID       int
	Username string
}

// Asset represents a tracked holding: some quantity of gold, crypto,
// stock or foreign currency bought at a price and valued at another.
type Asset struct {
	ID            int
	UserID        int
	Name          string
	Category      Category
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	PurchaseDate  sql.NullTime
	CurrentPrice  decimal.Decimal
	Currency      currency.Currency
	IsSold        bool
	SoldPrice     decimal.NullDecimal
	SoldDate      sql.NullTime
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PriceAlert represents an alert configured by a user.
//
// The triggered flag is set by an external watcher and is never
// reset from this application.
type PriceAlert struct {
	ID            int
	UserID        int
	AssetName     string
	AssetCategory Category
	TargetPrice   decimal.Decimal
	Above         bool
	Currency      currency.Currency
	IsActive      bool
	IsTriggered   bool
	TriggeredAt   sql.NullTime
	CreatedAt     time.Time
}

// Transaction is an immutable record of a buy or sell.
type Transaction struct {
	ID              int
	UserID          int
	AssetID         sql.NullInt64
	AssetName       string
	Type            string
	Quantity        decimal.Decimal
	PricePerUnit    decimal.Decimal
	TotalAmount     decimal.Decimal
	Currency        currency.Currency
	ProfitLoss      decimal.NullDecimal
	TransactionDate time.Time
	Notes           string
	CreatedAt       time.Time
}

// Transaction types as stored in the database.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// UserSettings holds per-user preferences, one row per user.
//
// PinCode holds a bcrypt hash, never the raw PIN.
type UserSettings struct {
	ID                   int
	UserID               int
	BaseCurrency         currency.Currency
	PinCode              string
	PinEnabled           bool
	Theme                string
	NotificationsEnabled bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DefaultSettings returns the settings a user starts out with.
func DefaultSettings(userID int) UserSettings {
	return UserSettings{
		UserID:               userID,
		BaseCurrency:         currency.TRY,
		Theme:                "dark",
		NotificationsEnabled: true,
	}
}

// Subscription represents a billing record for a user.
type Subscription struct {
	ID                   int
	UserID               int
	PlanType             string
	IsPro                bool
	StripeCustomerID     sql.NullString
	StripeSubscriptionID sql.NullString
	SubscriptionStart    sql.NullTime
	SubscriptionEnd      sql.NullTime
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
