package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/birikio/birikio/internal/database"
	"github.com/birikio/birikio/internal/model"
)

var assetColumns = []string{
	"id",
	"user_id",
	"name",
	"category",
	"quantity",
	"purchase_price",
	"purchase_date",
	"current_price",
	"currency",
	"is_sold",
	"sold_price",
	"sold_date",
	"notes",
	"created_at",
	"updated_at",
}

func scanAsset(row database.Row, asset *model.Asset) error {
	return row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.Name,
		&asset.Category,
		&asset.Quantity,
		&asset.PurchasePrice,
		&asset.PurchaseDate,
		&asset.CurrentPrice,
		&asset.Currency,
		&asset.IsSold,
		&asset.SoldPrice,
		&asset.SoldDate,
		&asset.Notes,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
}

// AssetFilter narrows an asset listing.
type AssetFilter struct {
	Category    model.Category
	IncludeSold bool
}

// ListAssets loads a user's assets, newest first.
func (s *Store) ListAssets(userID int, filter AssetFilter) ([]model.Asset, error) {
	builder := s.builder.
		Select(assetColumns...).
		From("birikio_asset").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc")

	if !filter.IncludeSold {
		builder = builder.Where(sq.Eq{"is_sold": false})
	}

	if filter.Category != "" {
		builder = builder.Where(sq.Eq{"category": filter.Category})
	}

	query, args, err := builder.ToSql()

	if err != nil {
		return nil, errors.Wrap(err, "build asset list query")
	}

	var assetList []model.Asset

	if err := model.LoadList(s.conn, &assetList, 10, scanAsset, query, args...); err != nil {
		return nil, errors.Wrap(err, "exec asset list query")
	}

	return assetList, nil
}

// GetAsset loads one of a user's assets by ID.
func (s *Store) GetAsset(userID, assetID int) (model.Asset, error) {
	query, args, err := s.builder.
		Select(assetColumns...).
		From("birikio_asset").
		Where(sq.Eq{"user_id": userID, "id": assetID}).
		ToSql()

	if err != nil {
		return model.Asset{}, errors.Wrap(err, "build asset query")
	}

	var asset model.Asset

	if err := scanAsset(s.conn.QueryRow(query, args...), &asset); err != nil {
		return model.Asset{}, err
	}

	return asset, nil
}

// CreateAsset inserts a holding and fills in its new ID.
func (s *Store) CreateAsset(asset *model.Asset) error {
	now := time.Now()

	query, args, err := s.builder.
		Insert("birikio_asset").
		Columns(
			"user_id",
			"name",
			"category",
			"quantity",
			"purchase_price",
			"purchase_date",
			"current_price",
			"currency",
			"is_sold",
			"notes",
			"created_at",
			"updated_at",
		).
		Values(
			asset.UserID,
			asset.Name,
			asset.Category,
			asset.Quantity,
			asset.PurchasePrice,
			asset.PurchaseDate,
			asset.CurrentPrice,
			asset.Currency,
			false,
			asset.Notes,
			now,
			now,
		).
		Suffix("returning id").
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build insert asset")
	}

	row := s.conn.QueryRow(query, args...)

	if err := row.Scan(&asset.ID); err != nil {
		return errors.Wrap(err, "exec insert asset")
	}

	asset.CreatedAt = now
	asset.UpdatedAt = now

	return nil
}

// UpdateAsset saves the editable fields of a held asset.
func (s *Store) UpdateAsset(asset *model.Asset) error {
	query, args, err := s.builder.
		Update("birikio_asset").
		Set("name", asset.Name).
		Set("category", asset.Category).
		Set("quantity", asset.Quantity).
		Set("purchase_price", asset.PurchasePrice).
		Set("purchase_date", asset.PurchaseDate).
		Set("current_price", asset.CurrentPrice).
		Set("currency", asset.Currency).
		Set("notes", asset.Notes).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": asset.UserID, "id": asset.ID}).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build update asset")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec update asset")
	}

	return nil
}

// MarkAssetSold transitions a holding to sold, one way only. When the
// asset was already sold, the update matches no row and a not-found
// error comes back, so two concurrent sells cannot both succeed.
func (s *Store) MarkAssetSold(userID, assetID int, soldPrice decimal.Decimal, soldAt time.Time) error {
	query, args, err := s.builder.
		Update("birikio_asset").
		Set("is_sold", true).
		Set("sold_price", soldPrice).
		Set("sold_date", soldAt).
		Set("updated_at", soldAt).
		Where(sq.Eq{"user_id": userID, "id": assetID, "is_sold": false}).
		Suffix("returning id").
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build sell asset")
	}

	var soldID int

	if err := s.conn.QueryRow(query, args...).Scan(&soldID); err != nil {
		return err
	}

	return nil
}

// DeleteAsset removes one of a user's assets.
func (s *Store) DeleteAsset(userID, assetID int) error {
	query, args, err := s.builder.
		Delete("birikio_asset").
		Where(sq.Eq{"user_id": userID, "id": assetID}).
		ToSql()

	if err != nil {
		return errors.Wrap(err, "build delete asset")
	}

	if err := s.conn.Exec(query, args...); err != nil {
		return errors.Wrap(err, "exec delete asset")
	}

	return nil
}
