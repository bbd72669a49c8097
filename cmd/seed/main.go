// Package main provides a tool to seed the database with sample recommendations.
//
// Useful for trying out the list page without typing books in by hand.
//
// Usage:
//
//	DATA_PATH=~/ShelfTalk go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shelftalk/shelftalk-server/internal/domain"
	"github.com/shelftalk/shelftalk-server/internal/store/sqlite"
)

// sampleRecommendations are a few well-known titles with real Open Library covers.
var sampleRecommendations = []domain.Recommendation{
	{
		Title:       "The Sun Also Rises",
		Author:      "Ernest Hemingway",
		CoverURL:    "https://covers.openlibrary.org/b/isbn/0330105515-L.jpg",
		Recommender: "Alex Rivera",
		Comments:    "Short, sharp, and the Pamplona chapters are unforgettable.",
	},
	{
		Title:       "Kindred",
		Author:      "Octavia E. Butler",
		CoverURL:    "https://covers.openlibrary.org/b/isbn/0807083690-L.jpg",
		Recommender: "Jordan Chen",
		Comments:    "Read it in two sittings.",
	},
	{
		Title:       "The Left Hand of Darkness",
		Author:      "Ursula K. Le Guin",
		CoverURL:    "https://covers.openlibrary.org/b/isbn/0441478123-L.jpg",
		Recommender: "Sam Taylor",
		Comments:    "",
	},
}

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/ShelfTalk")
	}

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataPath, "shelftalk.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, slog.Default())
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	today := time.Now().Format(domain.DateFormat)

	for _, rec := range sampleRecommendations {
		rec.DateAdded = today
		rec.DateUpdated = today

		if err := s.CreateRecommendation(ctx, &rec); err != nil {
			log.Printf("Failed to create recommendation %q: %v", rec.Title, err)
			continue
		}

		fmt.Printf("  Created: %s by %s (id %d)\n", rec.Title, rec.Author, rec.ID)
	}

	fmt.Println("Seeding complete!")
}
