package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"marketing-mailer/database"
	"marketing-mailer/services"
)

// Dispatcher is the campaign-dispatch entry point the send handler needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, req *services.DispatchRequest) (*services.DispatchResult, error)
}

// SendMailRequest is the JSON payload for a campaign send. The 'to' field is
// either a string ("all", "profession:<value>", or a single address) or an
// array of addresses.
type SendMailRequest struct {
	To      json.RawMessage `json:"to"`
	Subject string          `json:"subject"`
	HTML    string          `json:"html"`
}

// SendMailHandler dispatches a campaign and responds with the recipient count
// and the transport's message identifier.
func SendMailHandler(dispatcher Dispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SendMailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorResponse(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		// The target is constructed once here at the boundary; everything
		// downstream works with the parsed form.
		var target *services.Target
		if len(req.To) > 0 {
			t, err := services.ParseTarget(req.To)
			if err != nil {
				errorResponse(w, "Missing required fields", http.StatusBadRequest)
				return
			}
			target = t
		}

		result, err := dispatcher.Dispatch(r.Context(), &services.DispatchRequest{
			Subject: req.Subject,
			HTML:    req.HTML,
			Target:  target,
		})
		switch {
		case errors.Is(err, services.ErrMissingFields):
			errorResponse(w, "Missing required fields", http.StatusBadRequest)
			return
		case errors.Is(err, services.ErrNoRecipients):
			errorResponse(w, "No valid recipients found for criteria", http.StatusNotFound)
			return
		case errors.Is(err, services.ErrNotConfigured):
			errorResponse(w, "Server configuration error", http.StatusInternalServerError)
			return
		case err != nil:
			log.Printf("Error sending campaign: %v", err)
			errorResponse(w, "Failed to send email", http.StatusInternalServerError)
			return
		}

		log.Printf("Campaign sent to %d recipients", result.RecipientCount)
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message":   "Email sent to " + strconv.Itoa(result.RecipientCount) + " recipients",
			"messageId": result.MessageID,
		})
	}
}

// PreviewRequest is the JSON payload for a compose preview.
type PreviewRequest struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// PreviewHandler returns the brand-wrapped HTML for the compose preview. It
// uses the same render path as the outgoing send.
func PreviewHandler(template *services.BrandTemplate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorResponse(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if req.HTML == "" {
			errorResponse(w, "Missing required fields", http.StatusBadRequest)
			return
		}
		html, err := template.Wrap(req.HTML, req.Subject)
		if err != nil {
			log.Printf("Error rendering preview: %v", err)
			errorResponse(w, "Failed to render preview", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"html": html})
	}
}

// GetContactsHandler lists every contact, newest first.
func GetContactsHandler(store *database.ContactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contacts, err := store.List(r.Context())
		if err != nil {
			log.Printf("Error listing contacts: %v", err)
			errorResponse(w, "Failed to fetch contacts", http.StatusInternalServerError)
			return
		}
		if contacts == nil {
			contacts = []database.Contact{}
		}
		respondWithJSON(w, http.StatusOK, contacts)
	}
}

// CreateContactHandler inserts a contact from the request JSON and responds
// with the stored row, including the assigned id.
func CreateContactHandler(store *database.ContactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact database.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			errorResponse(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if contact.Name == "" || contact.Email == "" {
			errorResponse(w, "Email and Name required", http.StatusBadRequest)
			return
		}
		if err := store.Create(r.Context(), &contact); err != nil {
			log.Printf("Error creating contact: %v", err)
			errorResponse(w, "Failed to create contact", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, contact)
	}
}

// UpdateContactHandler replaces the contact identified by the id in the
// request JSON and responds with the updated row.
func UpdateContactHandler(store *database.ContactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var contact database.Contact
		if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
			errorResponse(w, "Invalid request payload", http.StatusBadRequest)
			return
		}
		if contact.ID == 0 {
			errorResponse(w, "ID required", http.StatusBadRequest)
			return
		}
		if err := store.Update(r.Context(), &contact); err != nil {
			log.Printf("Error updating contact %d: %v", contact.ID, err)
			errorResponse(w, "Failed to update contact", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, contact)
	}
}

// DeleteContactHandler deletes the contact identified by the 'id' query
// parameter.
func DeleteContactHandler(store *database.ContactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := r.URL.Query().Get("id")
		if idStr == "" {
			errorResponse(w, "ID required", http.StatusBadRequest)
			return
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			errorResponse(w, "ID required", http.StatusBadRequest)
			return
		}
		if err := store.Delete(r.Context(), id); err != nil {
			log.Printf("Error deleting contact %d: %v", id, err)
			errorResponse(w, "Failed to delete contact", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// GetStatsHandler returns per-profession contact counts, normalized and
// sorted descending.
func GetStatsHandler(store *database.ContactStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := store.ProfessionCounts(r.Context())
		if err != nil {
			log.Printf("Error fetching profession stats: %v", err)
			errorResponse(w, "Failed to fetch stats", http.StatusInternalServerError)
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"professions": services.AggregateProfessions(raw),
		})
	}
}

// GetCampaignsHandler lists recent campaign records, newest first. The
// 'limit' query parameter caps the result set.
func GetCampaignsHandler(store *database.CampaignStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 50
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
				limit = parsed
			}
		}
		campaigns, err := store.Recent(r.Context(), limit)
		if err != nil {
			log.Printf("Error listing campaigns: %v", err)
			errorResponse(w, "Failed to fetch campaigns", http.StatusInternalServerError)
			return
		}
		if campaigns == nil {
			campaigns = []database.EmailCampaign{}
		}
		respondWithJSON(w, http.StatusOK, campaigns)
	}
}

// HealthHandler is an unauthenticated liveness probe.
func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
