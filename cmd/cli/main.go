// Command cli runs maintenance tasks against the shop database.
//
//	cli grant-admin -email owner@example.com
//	cli seed-products
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/admin"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/app"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/config"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-shop-go/pkg/utilities"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: cli <grant-admin -email EMAIL | seed-products>")
	os.Exit(2)
}

func main() {
	_ = godotenv.Load()
	if len(os.Args) < 2 {
		usage()
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	lg, err := utilities.Init(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()
	sugar := lg.Sugar()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	shop, err := app.New(db, sugar, app.Options{JWTSecret: cfg.JWT.Secret, JWTTTL: cfg.JWT.TTL, BcryptCost: cfg.BcryptCost})
	if err != nil {
		sugar.Fatalf("init app: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := shop.EnsureSchema(ctx); err != nil {
		sugar.Fatalf("ensure schema: %v", err)
	}

	switch os.Args[1] {
	case "grant-admin":
		fs := flag.NewFlagSet("grant-admin", flag.ExitOnError)
		email := fs.String("email", "", "email of the user to promote")
		_ = fs.Parse(os.Args[2:])
		if *email == "" {
			usage()
		}
		err = grantAdmin(ctx, shop, sugar, *email)
	case "seed-products":
		var n int
		n, err = shop.Products.SeedIfAbsent(ctx, product.SampleCatalog())
		if err == nil {
			sugar.Infow("seeded products", "added", n)
		}
	default:
		usage()
	}
	if err != nil {
		sugar.Fatalf("%s: %v", os.Args[1], err)
	}
}

func grantAdmin(ctx context.Context, shop *app.App, logger *zap.SugaredLogger, email string) error {
	u, err := shop.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := shop.Admins.Grant(ctx, u.ID); err != nil {
		if errors.Is(err, admin.ErrAlreadyAdmin) {
			logger.Infow("user is already an admin", "user_id", u.ID)
			return nil
		}
		return err
	}
	logger.Infow("admin granted", "user_id", u.ID, "email", u.Email)
	return nil
}
