package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var alertColumns = []string{
	"id",
	"user_id",
	"asset_name",
	"asset_category",
	"target_price",
	"above",
	"currency",
	"is_active",
	"is_triggered",
	"triggered_at",
	"created_at",
}

func scanAlert(row database.Row, alert *model.PriceAlert) error {
	return row.Scan(
		&alert.ID,
		&alert.UserID,
		&alert.AssetName,
		&alert.AssetCategory,
		&alert.TargetPrice,
		&alert.Above,
		&alert.Currency,
		&alert.IsActive,
		&alert.IsTriggered,
		&alert.TriggeredAt,
		&alert.CreatedAt,
	)
}

// ListAlerts loads a user's price alerts, newest first.
func (s *Store) ListAlerts(userID int) ([]model.PriceAlert, error) {
	query, args, err := s.builder.
		Select(alertColumns...).
		From("birikio_alert").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()

	if err != nil {
		return nil, errors.Wrap(err, "build alert list query")
	}

	var alertList []model.PriceAlert

	if err := model.LoadList(s.conn, &alertList, 10, scanAlert, query, args...); err != nil {
		return nil, errors.Wrap(err, "exec alert list query")
	}

	return alertList, nil
}

// GetAlert loads one of a user's alerts by ID.
func (s *Store) GetAlert(userID, alertID int) (model.PriceAlert, error) {
	query, args, err := s.builder.
		Select(alertColumns...).
		From("birikio_alert").
		Where(sq.Eq{"user_id": userID, "id": alertID}).
		ToSql()

	if err != nil {
		return model.PriceAlert{}, errors.Wrap(err, "build alert query")
	}

	var alert model.PriceAlert

	if err := scanAlert(s.conn.QueryRow(query, args...), &alert); err != nil {
		return model.PriceAlert{}, err
	}

	return alert, nil
}

// CreateAlert inserts a new alert, active and untriggered.
func (s *Store) CreateAlert(alert *model.PriceAlert) error {
	query, args, err := s.builder.
		Insert("birikio_alert").
		Columns(
			"user_id",
			"asset_name",
			"asset_category",
			"target_price",
			"above",
			"currency",
			"is_active",
			"is_triggered",
			"created_at",
		).
		Values(
			alert.UserID,
			alert.AssetName,
			alert.AssetCategory,
			alert.TargetPrice,
			alert.Above,
			alert.Currency,
			true,
			false,
			time.Now(),
		).
		Suffix("returning id").
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build insert alert")
	}

	if err := s.conn.QueryRow(query, args...).Scan(&alert.ID); err != nil {
		return errors.Wrap(err, "exec insert alert")
	}

	return nil
}

// SetAlertActive toggles an alert between active and inactive.
//
// The triggered flag belongs to the external watcher and is never
// touched here.
func (s *Store) SetAlertActive(userID, alertID int, active bool) error {
	query, args, err := s.builder.
		Update("birikio_alert").
		Set("is_active", active).
		Where(sq.Eq{"user_id": userID, "id": alertID}).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build toggle alert")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec toggle alert")
	}

	return nil
}

// DeleteAlert removes one of a user's alerts.
func (s *Store) DeleteAlert(userID, alertID int) error {
	query, args, err := s.builder.
		Delete("birikio_alert").
		Where(sq.Eq{"user_id": userID, "id": alertID}).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build delete alert")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec delete alert")
	}

	return nil
}
