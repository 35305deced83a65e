package database

import "time"

// Contact represents a row in the contacts table.
type Contact struct {
	ID         int64     `json:"id"         db:"id"`
	Name       string    `json:"name"       db:"name"`
	Email      string    `json:"email"      db:"email"`
	Phone      *string   `json:"phone"      db:"phone"`
	Profession *string   `json:"profession" db:"profession"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}

// EmailCampaign is the durable record of one completed send. Rows are written
// once, after the transport accepts the message, and never updated.
type EmailCampaign struct {
	ID               int64     `json:"id"               db:"id"`
	Subject          string    `json:"subject"          db:"subject"`
	Body             string    `json:"body"             db:"body"` // original, unwrapped HTML
	RecipientsCount  int       `json:"recipientsCount"  db:"recipients_count"`
	FilterProfession string    `json:"filterProfession" db:"filter_profession"` // "all" or a profession value
	CreatedAt        time.Time `json:"createdAt"        db:"created_at"`
}

// ProfessionCount is one bucket of the profession aggregation.
type ProfessionCount struct {
	Profession string `json:"profession" db:"profession"`
	Count      int    `json:"count"      db:"count"`
}
