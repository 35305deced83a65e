// Command import seeds the contacts table from a CSV export. Rows are keyed
// by email: re-importing the same file updates names, phones and professions
// without creating duplicates.
//
// Expected header: id,name,email,phone,company,createdAt — the 'company'
// column maps to the profession field.
//
// Usage:
//
//	> DATABASE_URL=postgres://... go run ./cmd/import registrations.csv
package main

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"time"

	"marketing-mailer/config"
	"marketing-mailer/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: import <contacts.csv>")
	}
	csvPath := os.Args[1]

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := database.InitDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	defer db.Close()

	f, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Error opening %s: %v", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Error reading %s: %v", csvPath, err)
	}
	if len(records) < 2 {
		log.Fatal("No contact rows found.")
	}
	log.Printf("Found %d contacts to process.", len(records)-1)

	store := database.NewContactStore(db)
	ctx := context.Background()

	imported, skipped := 0, 0
	for _, record := range records[1:] { // skip header
		if len(record) < 5 {
			skipped++
			continue
		}
		name, email, phone, profession := record[1], record[2], record[3], record[4]
		if email == "" {
			skipped++
			continue
		}

		contact := &database.Contact{
			Name:       name,
			Email:      email,
			Phone:      optional(phone),
			Profession: optional(profession),
		}
		if len(record) > 5 {
			if createdAt, err := time.Parse(time.RFC3339, record[5]); err == nil {
				contact.CreatedAt = createdAt
			}
		}

		if err := store.Upsert(ctx, contact); err != nil {
			log.Printf("Failed to upsert contact %s: %v", email, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Seeding completed: %d imported, %d skipped.", imported, skipped)
}

// optional maps empty CSV cells to NULL columns.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
