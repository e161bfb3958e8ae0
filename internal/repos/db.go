package repos

import (
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	applog "stockroom/internal/log"
)

// OpenDB opens the SQLite database at dsn and brings the schema up to date.
// With seedUsers the demo operator accounts are created when missing.
func OpenDB(dsn string, seedUsers bool) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite has a single writer, and every :memory: connection is its own
	// database.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	if seedUsers {
		if err := seedOperators(db); err != nil {
			return nil, err
		}
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  brand TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  gender_category TEXT NOT NULL CHECK (gender_category IN ('Men','Women','Unisex')),
  category TEXT NOT NULL CHECK (category IN ('Shoes','Bags','Perfumes','Belts','Clothes','Snacks')),
  condition TEXT NOT NULL CHECK (condition IN ('New','Used','Refurbished')),
  inventory_status TEXT NOT NULL CHECK (inventory_status IN ('In Stock','Out of Stock','Pre-order')),
  price NUMERIC CHECK (price IS NULL OR price >= 0),
  original_price NUMERIC NOT NULL CHECK (original_price >= 0),
  selling_price NUMERIC NOT NULL CHECK (selling_price >= 0),
  count_in_stock INTEGER CHECK (count_in_stock IS NULL OR count_in_stock >= 0),
  sizes_json TEXT NOT NULL DEFAULT '[]',
  colors_json TEXT NOT NULL DEFAULT '[]',
  images_json TEXT NOT NULL DEFAULT '[]',
  release_date TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_owner      ON products(owner_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Category-specific and other free-form attributes, in submission order
CREATE TABLE IF NOT EXISTS product_attributes(
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  attr_key TEXT NOT NULL,
  attr_value TEXT NOT NULL,
  PRIMARY KEY(product_id, position)
);
CREATE INDEX IF NOT EXISTS idx_product_attributes_key ON product_attributes(attr_key);

-- Operators & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('OPERATOR','ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedOperators ensures the demo operator accounts exist (idempotent).
func seedOperators(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-ops", "ops@stockroom.test", "Ops", "OPERATOR", "Passw0rd!"),
		mk("u-admin", "admin@stockroom.test", "Admin", "ADMIN", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash,role)
			VALUES(?,?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash, x.Role); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	applog.Info(nil, "seed.operators", map[string]any{"count": len(users)})
	return nil
}
