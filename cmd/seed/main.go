package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-recipe-platform/config"
	"github.com/oksasatya/go-recipe-platform/pkg/helpers"
)

type seedRecipe struct {
	title        string
	description  string
	ingredients  []string
	instructions []string
}

var recipes = []seedRecipe{
	{
		title:        "Classic Pancakes",
		description:  "Fluffy weekend pancakes.",
		ingredients:  []string{"200g flour", "2 eggs", "300ml milk", "1 tbsp sugar", "pinch of salt"},
		instructions: []string{"Whisk the dry ingredients.", "Beat in eggs and milk until smooth.", "Fry ladlefuls in a hot buttered pan."},
	},
	{
		title:        "Tomato Soup",
		description:  "Simple soup from ripe tomatoes.",
		ingredients:  []string{"1kg tomatoes", "1 onion", "2 cloves garlic", "500ml stock", "olive oil"},
		instructions: []string{"Soften onion and garlic in oil.", "Add tomatoes and stock, simmer 20 minutes.", "Blend and season."},
	},
	{
		title:        "Nasi Goreng",
		description:  "Indonesian fried rice.",
		ingredients:  []string{"2 cups cooked rice", "2 shallots", "1 egg", "2 tbsp kecap manis", "chili to taste"},
		instructions: []string{"Fry shallots and chili.", "Add rice and kecap manis, stir-fry until hot.", "Top with a fried egg."},
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email, updated_at = now()
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s username=%s email=%s password=%s\n", id, username, email, password)

	inserted := 0
	for _, r := range recipes {
		res, err := db.Exec(`
			INSERT INTO recipes (title, description, ingredients, instructions)
			SELECT $1, $2, $3, $4
			WHERE NOT EXISTS (SELECT 1 FROM recipes WHERE title = $1)
		`, r.title, r.description, r.ingredients, r.instructions)
		if err != nil {
			log.Fatalf("failed to seed recipe %q: %v", r.title, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	fmt.Printf("seeded recipes: %d new, %d total in seed set\n", inserted, len(recipes))
}
