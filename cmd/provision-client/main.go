// Command provision-client creates a BileMo client account and prints its
// API key. The key is shown exactly once; only the client can store it.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"github.com/phrazzld/bilemo-api/internal/config"
	"github.com/phrazzld/bilemo-api/internal/platform/logger"
	"github.com/phrazzld/bilemo-api/internal/platform/postgres"
	"github.com/phrazzld/bilemo-api/internal/service"
	"github.com/phrazzld/bilemo-api/internal/service/auth"
)

type options struct {
	username string
	email    string
	address  string
	password string
	admin    bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("provision-client", flag.ContinueOnError)
	fs.StringVar(&opts.username, "username", "", "client username (required)")
	fs.StringVar(&opts.email, "email", "", "client email, used to request tokens (required)")
	fs.StringVar(&opts.address, "address", "", "client postal address")
	fs.StringVar(&opts.password, "password", "", "client password; falls back to $BILEMO_CLIENT_PASSWORD")
	fs.BoolVar(&opts.admin, "admin", false, "allow the client to list every user")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.password == "" {
		opts.password = os.Getenv("BILEMO_CLIENT_PASSWORD")
	}
	if opts.username == "" || opts.email == "" || opts.password == "" {
		return opts, errors.New("-username, -email and a password are required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("provision-client: %v", err)
	}
	if err := run(context.Background(), opts, os.Stdout); err != nil {
		log.Fatalf("provision-client: %v", err)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.New(os.Stderr, cfg.Server.LogLevel)

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return err
	}
	passwords := auth.NewBcrypt(cfg.Auth.BCryptCost)
	clients, err := service.NewClientService(
		postgres.NewPostgresClientStore(db, appLogger), jwtService, passwords, passwords, appLogger)
	if err != nil {
		return err
	}

	return provision(ctx, clients, opts, out)
}

func provision(ctx context.Context, clients service.ClientService, opts options, out io.Writer) error {
	client, apiKey, err := clients.Provision(ctx, service.NewClientInput{
		Username: opts.username,
		Email:    opts.email,
		Address:  opts.address,
		Password: opts.password,
		Admin:    opts.admin,
	})
	if err != nil {
		return fmt.Errorf("failed to provision client: %w", err)
	}

	slog.Debug("client provisioned", slog.Int64("client_id", client.ID))
	_, err = fmt.Fprintf(out, "client_id: %d\napi_key: %s\n", client.ID, apiKey)
	return err
}
