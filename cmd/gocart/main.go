package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/altmart/gocart/internal/auth"
	"github.com/altmart/gocart/internal/cart"
	"github.com/altmart/gocart/internal/catalog"
	"github.com/altmart/gocart/internal/checkout"
	"github.com/altmart/gocart/internal/logger"
	"github.com/altmart/gocart/internal/port"
	"github.com/altmart/gocart/internal/storage"
)

type Config struct {
	DataDir        string `help:"Directory for durable local state." env:"GOCART_DATA_DIR"`
	APIBase        string `help:"Product catalog base URL." env:"GOCART_API_BASE" default:"${api_base}"`
	FirebaseAPIKey string `help:"Identity provider API key." env:"GOCART_FIREBASE_API_KEY"`
	Storage        string `help:"Storage backend." env:"GOCART_STORAGE" enum:"file,sqlite,memory" default:"file"`
	Log            string `help:"Log mode (dev or prod)." env:"GOCART_LOG" default:"prod"`
}

var cli struct {
	Config `embed:""`

	Products   productsCmd   `cmd:"" help:"List catalog products."`
	Product    productCmd    `cmd:"" help:"Show one product."`
	Categories categoriesCmd `cmd:"" help:"List catalog categories."`
	Cart       cartCmd       `cmd:"" help:"Inspect and edit the cart."`
	Login      loginCmd      `cmd:"" help:"Sign in with email and password."`
	Register   registerCmd   `cmd:"" help:"Create an account."`
	Logout     logoutCmd     `cmd:"" help:"Sign out."`
	Whoami     whoamiCmd     `cmd:"" help:"Show the signed-in user."`
	Checkout   checkoutCmd   `cmd:"" help:"Place an order from the cart."`
	Orders     ordersCmd     `cmd:"" help:"Show order history."`
}

// app carries the wired components into command Run methods via kong.Bind.
type app struct {
	ctx      context.Context
	out      io.Writer
	cart     port.CartStore
	catalog  port.Catalog
	auth     port.Authenticator
	checkout *checkout.Service
}

func main() {
	// optional .env for local development
	_ = godotenv.Load()

	kctx := kong.Parse(&cli,
		kong.Description("gocart - a terminal storefront client."),
		kong.UsageOnError(),
		kong.Vars{"api_base": catalog.DefaultBaseURL},
	)

	log, err := logger.New(cli.Log)
	kctx.FatalIfErrorf(err, "failed to initialize logging")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	store, closeStore, err := openStorage(cli.Config)
	kctx.FatalIfErrorf(err, "failed to open storage")
	defer closeStore()

	authn := auth.NewFirebase(cli.FirebaseAPIKey, store, log)
	cartStore := cart.New(ctx, store, log)

	err = kctx.Run(&app{
		ctx:      ctx,
		out:      os.Stdout,
		cart:     cartStore,
		catalog:  catalog.New(cli.APIBase, log),
		auth:     authn,
		checkout: checkout.New(authn, cartStore, store, log),
	})
	kctx.FatalIfErrorf(err)
}

func openStorage(cfg Config) (port.Storage, func(), error) {
	noop := func() {}

	dir := cfg.DataDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, noop, fmt.Errorf("os.UserConfigDir: %w", err)
		}
		dir = filepath.Join(base, "gocart")
	}

	switch cfg.Storage {
	case "sqlite":
		st, err := storage.NewSQLite(filepath.Join(dir, "state.db"))
		if err != nil {
			return nil, noop, err
		}
		return st, func() { _ = st.Close() }, nil
	case "memory":
		return storage.NewMemory(), noop, nil
	default:
		st, err := storage.NewFile(filepath.Join(dir, "state.json"))
		if err != nil {
			return nil, noop, err
		}
		return st, noop, nil
	}
}
