package repos

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"stockroom/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

type productRow struct {
	ID              string          `db:"id"`
	OwnerID         string          `db:"owner_id"`
	Name            string          `db:"name"`
	Brand           string          `db:"brand"`
	Description     string          `db:"description"`
	GenderCategory  string          `db:"gender_category"`
	Category        string          `db:"category"`
	Condition       string          `db:"condition"`
	InventoryStatus string          `db:"inventory_status"`
	Price           sql.NullFloat64 `db:"price"`
	OriginalPrice   float64         `db:"original_price"`
	SellingPrice    float64         `db:"selling_price"`
	CountInStock    sql.NullInt64   `db:"count_in_stock"`
	SizesJSON       string          `db:"sizes_json"`
	ColorsJSON      string          `db:"colors_json"`
	ImagesJSON      string          `db:"images_json"`
	ReleaseDate     sql.NullString  `db:"release_date"`
	CreatedAt       string          `db:"created_at"`
}

const productColumns = `
    id, owner_id, name, brand, description, gender_category, category, condition,
    inventory_status, price, original_price, selling_price, count_in_stock,
    sizes_json, colors_json, images_json, release_date, COALESCE(created_at,'') AS created_at`

// Create stores p with its attributes in one transaction and returns the
// stored form with a fresh id. p must already be validated.
func (r *ProductRepo) Create(ctx context.Context, p domain.Product, ownerID string, attrs []domain.Attribute) (domain.Product, error) {
	if p.OriginalPrice == nil || p.SellingPrice == nil {
		return domain.Product{}, fmt.Errorf("create product: prices are required")
	}
	sizes, err := json.Marshal(nonNil(p.Sizes))
	if err != nil {
		return domain.Product{}, err
	}
	colors, err := json.Marshal(nonNil(p.Colors))
	if err != nil {
		return domain.Product{}, err
	}
	images, err := json.Marshal(nonNil(p.ImageURLs))
	if err != nil {
		return domain.Product{}, err
	}

	id := uuid.NewString()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Product{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO products(
		  id, owner_id, name, brand, description, gender_category, category, condition,
		  inventory_status, price, original_price, selling_price, count_in_stock,
		  sizes_json, colors_json, images_json, release_date
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`, id, ownerID, p.Name, p.Brand, p.Description, p.GenderCategory, string(p.Category), p.Condition,
		p.InventoryStatus, p.Price, *p.OriginalPrice, *p.SellingPrice, p.CountInStock,
		string(sizes), string(colors), string(images), p.ReleaseDate); err != nil {
		return domain.Product{}, err
	}

	for i, a := range attrs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO product_attributes(product_id, position, attr_key, attr_value)
			VALUES (?,?,?,?)
		`, id, i, a.Key, a.Value); err != nil {
			return domain.Product{}, err
		}
	}

	var row productRow
	if err := tx.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Product{}, err
	}

	out, err := row.toDomain()
	if err != nil {
		return domain.Product{}, err
	}
	out.Attributes = append([]domain.Attribute{}, attrs...)
	return out, nil
}

// Get returns the product with its attributes; sql.ErrNoRows if missing.
func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, `SELECT `+productColumns+` FROM products WHERE id = ?`, id); err != nil {
		return domain.Product{}, err
	}
	p, err := row.toDomain()
	if err != nil {
		return domain.Product{}, err
	}
	var attrs []domain.Attribute
	if err := r.db.SelectContext(ctx, &attrs, `
		SELECT attr_key, attr_value
		FROM product_attributes
		WHERE product_id = ?
		ORDER BY position
	`, id); err != nil {
		return domain.Product{}, err
	}
	p.Attributes = attrs
	return p, nil
}

// ListByCategory lists products newest first, without attributes. An empty
// category lists everything.
func (r *ProductRepo) ListByCategory(ctx context.Context, cat domain.Category, limit, offset int) ([]domain.Product, error) {
	where := `1 = 1`
	args := []any{}
	if cat != "" {
		where = `category = ?`
		args = append(args, string(cat))
	}
	args = append(args, limit, offset)

	var rows []productRow
	err := r.db.SelectContext(ctx, &rows, `
  SELECT `+productColumns+`
  FROM products
  WHERE `+where+`
  ORDER BY created_at DESC, id
  LIMIT ? OFFSET ?
`, args...)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (row productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Name:            row.Name,
		Brand:           row.Brand,
		Description:     row.Description,
		GenderCategory:  row.GenderCategory,
		Category:        domain.Category(row.Category),
		Condition:       row.Condition,
		InventoryStatus: row.InventoryStatus,
		OriginalPrice:   &row.OriginalPrice,
		SellingPrice:    &row.SellingPrice,
		CreatedAt:       row.CreatedAt,
	}
	if row.Price.Valid {
		v := row.Price.Float64
		p.Price = &v
	}
	if row.CountInStock.Valid {
		v := int(row.CountInStock.Int64)
		p.CountInStock = &v
	}
	if row.ReleaseDate.Valid {
		v := row.ReleaseDate.String
		p.ReleaseDate = &v
	}
	for _, col := range []struct {
		raw string
		dst *[]string
	}{
		{row.SizesJSON, &p.Sizes},
		{row.ColorsJSON, &p.Colors},
		{row.ImagesJSON, &p.ImageURLs},
	} {
		list := []string{}
		if col.raw != "" {
			if err := json.Unmarshal([]byte(col.raw), &list); err != nil {
				return domain.Product{}, fmt.Errorf("decode product %s: %w", row.ID, err)
			}
		}
		*col.dst = list
	}
	return p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
