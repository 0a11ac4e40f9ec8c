package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/migrations"
	"github.com/JaimeStill/vendor-products/pkg/database"
)

func main() {
	var (
		up      = flag.Bool("up", false, "Apply all pending migrations")
		down    = flag.Bool("down", false, "Revert migrations")
		steps   = flag.Int("steps", 1, "Migrations to revert with -down (0 reverts all)")
		version = flag.Bool("version", false, "Print the current schema version")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	switch {
	case *up:
		if err := database.Migrate(&cfg.Database, migrations.FS); err != nil {
			log.Fatalf("migrate up failed: %v", err)
		}
		fmt.Println("migrations applied")

	case *down:
		if err := database.Rollback(&cfg.Database, migrations.FS, *steps); err != nil {
			log.Fatalf("migrate down failed: %v", err)
		}
		fmt.Println("migrations reverted")

	case *version:
		v, dirty, err := database.Version(&cfg.Database, migrations.FS)
		if err != nil {
			log.Fatalf("read version failed: %v", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", v, dirty)

	default:
		fmt.Println("usage: migrate [-up | -down [-steps n] | -version]")
		flag.PrintDefaults()
	}
}
