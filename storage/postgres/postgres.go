package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go-currency-converter/domain"
	"time"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open connects to the rate table database. Any failure is an ErrStorageUnavailable.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open postgres connection: %v", domain.ErrStorageUnavailable, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping postgres: %v", domain.ErrStorageUnavailable, err)
	}

	// one user, one query at a time
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates and seeds usd_conversion_rates if it is not already there.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	driver, err := migratepostgres.WithInstance(db, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("creating postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}

	return nil
}

// RateStore reads USD rates from usd_conversion_rates. It never writes.
type RateStore struct {
	db *sql.DB
}

// NewRateStore constructs a RateStore over db
func NewRateStore(db *sql.DB) *RateStore {
	return &RateStore{db: db}
}

// ExchangeRate returns the stored rate from USD to code
func (s *RateStore) ExchangeRate(ctx context.Context, code domain.Currency) (domain.Rate, error) {
	const query = `
SELECT ExchangeRate
FROM usd_conversion_rates
WHERE CurrencyCode = $1`

	var rate float64
	if err := s.db.QueryRowContext(ctx, query, string(code)).Scan(&rate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: no row for %v", domain.ErrRateNotFound, code)
		}
		return 0, fmt.Errorf("select exchange rate [%v]: %w", code, err)
	}

	return domain.Rate(rate), nil
}
