package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var settingsColumns = []string{
	"id",
	"user_id",
	"base_currency",
	"pin_code",
	"pin_enabled",
	"theme",
	"notifications_enabled",
	"created_at",
	"updated_at",
}

func scanSettings(row database.Row, settings *model.UserSettings) error {
	return row.Scan(
		&settings.ID,
		&settings.UserID,
		&settings.BaseCurrency,
		&settings.PinCode,
		&settings.PinEnabled,
		&settings.Theme,
		&settings.NotificationsEnabled,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
}

// GetSettings loads the settings row for a user.
func (s *Store) GetSettings(userID int) (model.UserSettings, error) {
	query, args, err := s.builder.
		Select(settingsColumns...).
		From("birikio_settings").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return model.UserSettings{}, errors.Wrap(err, "build settings query")
	}

	var settings model.UserSettings

	if err := scanSettings(s.conn.QueryRow(query, args...), &settings); err != nil {
		return model.UserSettings{}, err
	}

	return settings, nil
}

// EnsureSettings loads the settings row for a user, creating it with
// defaults on first use.
func (s *Store) EnsureSettings(userID int) (model.UserSettings, error) {
	settings, err := s.GetSettings(userID)

	if err == nil {
		return settings, nil
	}

	if !IsNotFound(err) {
		return model.UserSettings{}, err
	}

	settings = model.DefaultSettings(userID)
	now := time.Now()

	query, args, err := s.builder.
		Insert("birikio_settings").
		Columns(
			"user_id",
			"base_currency",
			"pin_code",
			"pin_enabled",
			"theme",
			"notifications_enabled",
			"created_at",
			"updated_at",
		).
		Values(
			settings.UserID,
			settings.BaseCurrency,
			settings.PinCode,
			settings.PinEnabled,
			settings.Theme,
			settings.NotificationsEnabled,
			now,
			now,
		).
		Suffix("returning id").
		ToSql()

	if err != nil {
		return model.UserSettings{}, errors.Wrap(err, "build insert settings")
	}

	if err := s.conn.QueryRow(query, args...).Scan(&settings.ID); err != nil {
		return model.UserSettings{}, errors.Wrap(err, "exec insert settings")
	}

	settings.CreatedAt = now
	settings.UpdatedAt = now

	return settings, nil
}

// UpdateSettings saves a user's preferences.
func (s *Store) UpdateSettings(settings *model.UserSettings) error {
	query, args, err := s.builder.
		Update("birikio_settings").
		Set("base_currency", settings.BaseCurrency).
		Set("pin_code", settings.PinCode).
		Set("pin_enabled", settings.PinEnabled).
		Set("theme", settings.Theme).
		Set("notifications_enabled", settings.NotificationsEnabled).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": settings.UserID}).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build update settings")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec update settings")
	}

	return nil
}
