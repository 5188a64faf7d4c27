package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/config"
	"go-currency-converter/domain"
	"go-currency-converter/exchange"
	"go-currency-converter/rates"
	"go-currency-converter/session"
	"go-currency-converter/storage/postgres"
	"go-currency-converter/symbols"
	"io"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %v\n\n%v", os.Args[0], config.Usage())
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	allowed, _ := cfg.Level()

	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = level.NewFilter(logger, allowed)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdin, os.Stdout); err != nil {
		level.Error(logger).Log("msg", "converter stopped", "err", err)
		stop()
		os.Exit(1)
	}
}

// run loads the symbol list, opens the rate table and drives a session over in and out.
// A registry failure returns before anything is written to out.
func run(ctx context.Context, cfg *config.Config, logger log.Logger, in io.Reader, out io.Writer) error {
	symbolService := symbols.NewService(cfg.API.URL, cfg.API.Key, cfg.API.Timeout)
	symbolService = symbols.NewLoggingService(level.Info(log.With(logger, "component", "symbols")), symbolService)

	// nothing can be validated without the symbol list
	registry, err := symbols.Load(ctx, symbolService)
	if err != nil {
		return err
	}
	if skipped := registry.Skipped(); len(skipped) > 0 {
		level.Warn(logger).Log("msg", "skipped malformed symbols", "codes", fmt.Sprint(skipped))
	}

	var service rates.Source = rates.NewService(cfg.API.URL, cfg.API.Key, cfg.API.Timeout)
	service = rates.NewLoggingSource(level.Info(log.With(logger, "component", "rate_service")), service)

	var table rates.Source
	db, err := openTable(ctx, cfg)
	if err != nil {
		level.Warn(logger).Log("msg", "rate table unavailable, table conversions disabled", "err", err)
	} else {
		defer db.Close()
		table = rates.NewTable(postgres.NewRateStore(db))
		table = rates.NewLoggingSource(level.Info(log.With(logger, "component", "rate_table")), table)
	}

	exchangeService := exchange.NewService()
	exchangeService = exchange.NewLoggingService(level.Info(log.With(logger, "component", "exchange")), exchangeService)

	return session.New(in, out, registry, exchangeService, table, service).Run(ctx)
}

func openTable(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := postgres.Open(ctx, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%w: migrate rate table: %v", domain.ErrStorageUnavailable, err)
		}
	}
	return db, nil
}
