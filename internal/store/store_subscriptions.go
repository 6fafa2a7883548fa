package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var subscriptionColumns = []string{
	"id",
	"user_id",
	"plan_type",
	"is_pro",
	"stripe_customer_id",
	"stripe_subscription_id",
	"subscription_start",
	"subscription_end",
	"created_at",
	"updated_at",
}

func scanSubscription(row database.Row, subscription *model.Subscription) error {
	return row.Scan(
		&subscription.ID,
		&subscription.UserID,
		&subscription.PlanType,
		&subscription.IsPro,
		&subscription.StripeCustomerID,
		&subscription.StripeSubscriptionID,
		&subscription.SubscriptionStart,
		&subscription.SubscriptionEnd,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
}

// GetSubscription loads the billing record for a user.
func (s *Store) GetSubscription(userID int) (model.Subscription, error) {
	query, args, err := s.builder.
		Select(subscriptionColumns...).
		From("birikio_subscription").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return model.Subscription{}, errors.Wrap(err, "build subscription query")
	}

	var subscription model.Subscription

	if err := scanSubscription(s.conn.QueryRow(query, args...), &subscription); err != nil {
		return model.Subscription{}, err
	}

	return subscription, nil
}

// UpsertSubscription inserts or replaces the single billing record a
// user has.
func (s *Store) UpsertSubscription(subscription *model.Subscription) error {
	now := time.Now()

	query, args, err := s.builder.
		Insert("birikio_subscription").
		Columns(
			"user_id",
			"plan_type",
			"is_pro",
			"stripe_customer_id",
			"stripe_subscription_id",
			"subscription_start",
			"subscription_end",
			"created_at",
			"updated_at",
		).
		Values(
			subscription.UserID,
			subscription.PlanType,
			subscription.IsPro,
			subscription.StripeCustomerID,
			subscription.StripeSubscriptionID,
			subscription.SubscriptionStart,
			subscription.SubscriptionEnd,
			now,
			now,
		).
		Suffix(`on conflict (user_id) do update set
			plan_type = excluded.plan_type,
			is_pro = excluded.is_pro,
			stripe_customer_id = excluded.stripe_customer_id,
			stripe_subscription_id = excluded.stripe_subscription_id,
			subscription_start = excluded.subscription_start,
			subscription_end = excluded.subscription_end,
			updated_at = excluded.updated_at`).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build upsert subscription")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec upsert subscription")
	}

	return nil
}
