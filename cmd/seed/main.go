// Package main loads the sample POD destinations into the configured store.
//
// Usage:
//
//	DB_DRIVER=mongodb MONGO_URI=mongodb://localhost:27017 JWT_SECRET=dev go run ./cmd/seed
//	go run ./cmd/seed -token 64b7f0c2a1b2c3d4e5f60718   # also print a bearer token for that user
//	go run ./cmd/seed -skip-seed -token dev-user         # only print a token
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/log"
	"github.com/ravi-codingcity/FreightPro-B/pkg/utils"
)

var (
	tokenUser = flag.String("token", "", "Print a development bearer token for this user id")
	skipSeed  = flag.Bool("skip-seed", false, "Do not touch the store")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if !*skipSeed {
		if err := seed(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Seeding failed: %v\n", err)
			os.Exit(1)
		}
	}

	if *tokenUser != "" {
		jm := utils.NewJWTManager(cfg.Security.JWTSecret, cfg.Security.JWTIssuer, cfg.Security.JWTExpirationHours)
		token, err := jm.GenerateToken(*tokenUser, "", "")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate token: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nAuthorization: Bearer %s\n", token)
	}
}

func seed(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger, err := log.New(&cfg.Logging)
	if err != nil {
		return err
	}

	fmt.Printf("Opening %s store\n", cfg.Database.Driver)
	store, err := db.Open(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	result, err := db.SeedDestinations(ctx, store, db.SampleDestinations)
	if err != nil {
		return err
	}

	for _, name := range result.Created {
		fmt.Printf("- created %s\n", name)
	}
	for _, name := range result.Skipped {
		fmt.Printf("- skipped %s (already exists)\n", name)
	}
	fmt.Printf("\nSeeded %d destinations, %d already present\n", len(result.Created), len(result.Skipped))
	return nil
}
