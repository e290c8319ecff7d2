package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/VasKaleev/internetmag-comp/internal/models"
)

// SQLSource reads the catalog from a products table.
type SQLSource struct {
	DB *sql.DB
}

func (s SQLSource) Fetch(ctx context.Context) ([]RawProduct, error) {
	query := `SELECT id, name, price, category, rating, date, image, description FROM products ORDER BY id`
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var records []RawProduct
	for rows.Next() {
		var (
			id                           sql.NullInt64
			name                         sql.NullString
			price, rating                sql.NullFloat64
			date                         sqlDate
			category, image, description sql.NullString
		)
		if err := rows.Scan(&id, &name, &price, &category, &rating, &date, &image, &description); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		// NULL required columns stay nil so the loader drops only this record.
		rec := RawProduct{
			Category:    category.String,
			Image:       image.String,
			Description: description.String,
		}
		if id.Valid {
			v := int(id.Int64)
			rec.ID = &v
		}
		if name.Valid {
			rec.Name = &name.String
		}
		if price.Valid {
			rec.Price = &price.Float64
		}
		if rating.Valid {
			rec.Rating = &rating.Float64
		}
		rec.Date = string(date)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read products: %w", err)
	}
	return records, nil
}

// sqlDate scans a date column whichever way the driver returns it: time.Time
// (pgx, sqlite DATE columns) or text (mysql without parseTime).
type sqlDate string

func (d *sqlDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = sqlDate(v.Format(models.DateLayout))
	case string:
		*d = sqlDate(v)
	case []byte:
		*d = sqlDate(v)
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
	return nil
}
