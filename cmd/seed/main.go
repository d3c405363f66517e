// Command seed populates the database with demo data.
package main

import (
	"flag"
	"log"

	"scrimhub/internal/config"
	"scrimhub/internal/database"
	"scrimhub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numOrgs := flag.Int("orgs", 10, "Number of organizations to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	maxDays := flag.Int("max-days", 90, "Spread created_at over this many days")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (dev fast mode)")
	dryRun := flag.Bool("dry-run", false, "Log without writing to the database")
	presetPath := flag.String("preset", "", "Apply a YAML seed preset instead of generated data")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *presetPath != "" {
		preset, err := seed.LoadPreset(*presetPath)
		if err != nil {
			log.Fatalf("Preset load failed: %v", err)
		}
		if err := preset.Apply(db); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
		log.Printf("Applied preset %s", *presetPath)
		return
	}

	opts := seed.Options{
		NumUsers:    *numUsers,
		NumOrgs:     *numOrgs,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean,
		MaxDays:     *maxDays,
		SkipBcrypt:  *skipBcrypt,
		DryRun:      *dryRun,
	}
	if err := seed.Seed(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Seed users have the password: Password123!")
}
