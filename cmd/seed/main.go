// Command seed populates the configured store with demo data.
package main

import (
	"flag"
	"log"

	"corkboard/internal/config"
	"corkboard/internal/database"
	"corkboard/internal/middleware"
	"corkboard/internal/seed"
)

func main() {
	users := flag.Int("users", 10, "number of fake users to create")
	posts := flag.Int("posts", 40, "number of fake posts to create")
	comments := flag.Int("comments", 120, "number of fake comments to create")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	middleware.InitLogger(cfg.LogLevel, cfg.Env)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *users,
		NumPosts:    *posts,
		NumComments: *comments,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d posts, %d comments (password %q)",
		*users, *posts, *comments, seed.DefaultPassword)
}
