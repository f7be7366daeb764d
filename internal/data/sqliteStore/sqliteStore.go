package sqliteStore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/swippe/quickcommerce/pkg/logger_i"
)

var (
	instance *sql.DB
	once     sync.Once
	logger   *logger_i.Logger
)

// GetDB opens (once) the relational store holding users, products, orders,
// addresses and routine deliveries. Returns nil when the file cannot be
// opened; the service cannot run without it.
func GetDB(ctx context.Context, path string) *sql.DB {
	once.Do(func() {
		logger = logger_i.NewLogger("SqliteStore")
		db, err := open(path)
		if err != nil {
			logger.Error("could not open sqlite store", "path", path, "error", err)
			return
		}
		if err := InitSchema(ctx, db); err != nil {
			logger.Error("could not init schema", "error", err)
			db.Close()
			return
		}
		instance = db
		logger.Info("Sqlite store init successfully", "path", path)
		go closeOnShutdown(ctx, db)
	})
	return instance
}

func open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	// foreign keys are off by default in sqlite
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}
	return db, nil
}

func closeOnShutdown(ctx context.Context, db *sql.DB) {
	<-ctx.Done()
	logger.Info("Closing sqlite store")
	if err := db.Close(); err != nil {
		logger.Error("Error closing sqlite store", "error", err)
	}
}

// InitSchema creates all tables and indexes if missing.
func InitSchema(ctx context.Context, db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		product TEXT,
		category TEXT,
		sub_category TEXT,
		brand TEXT,
		sale_price REAL,
		market_price REAL,
		type TEXT,
		rating REAL,
		image_url TEXT
	);
	CREATE TABLE IF NOT EXISTS orders (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL,
		total_price REAL NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		ordered_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		delivery_instructions TEXT,
		payment_method TEXT,
		address_label TEXT,
		delivery_slot_minutes INTEGER,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS addresses (
		id INTEGER PRIMARY KEY,
		user_id INTEGER NOT NULL,
		name TEXT NOT NULL,
		phone TEXT,
		address_line1 TEXT NOT NULL,
		address_line2 TEXT,
		city TEXT,
		state TEXT,
		pincode TEXT,
		landmark TEXT,
		latitude REAL,
		longitude REAL,
		is_default INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);
	CREATE TABLE IF NOT EXISTS routine_deliveries (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL DEFAULT 1,
		frequency TEXT NOT NULL CHECK(frequency IN ('daily','weekly','biweekly','monthly','custom')),
		delivery_day TEXT,
		delivery_time TEXT DEFAULT '09:00',
		next_delivery_date DATE NOT NULL,
		is_active INTEGER DEFAULT 1,
		is_paused INTEGER DEFAULT 0,
		auto_order INTEGER DEFAULT 1,
		max_orders INTEGER,
		orders_completed INTEGER DEFAULT 0,
		price_locked REAL,
		notification_enabled INTEGER DEFAULT 1,
		skip_holidays INTEGER DEFAULT 1,
		custom_interval_days INTEGER,
		start_date DATE DEFAULT CURRENT_DATE,
		end_date DATE,
		last_delivery_date DATE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY(product_id) REFERENCES products(id) ON DELETE CASCADE
	);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
	CREATE INDEX IF NOT EXISTS idx_products_brand ON products(brand);
	CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	CREATE INDEX IF NOT EXISTS idx_orders_product_id ON orders(product_id);
	CREATE INDEX IF NOT EXISTS idx_routine_user ON routine_deliveries(user_id);
	CREATE INDEX IF NOT EXISTS idx_routine_next_delivery ON routine_deliveries(next_delivery_date);
	`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// NewTestDB opens an isolated in-memory database with the full schema.
func NewTestDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	// every new pool connection would get its own empty in-memory database
	db.SetMaxOpenConns(1)
	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
