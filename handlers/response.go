package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshalling JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(response)
}

// errorResponse sends an error JSON response of the form {"error": message}.
func errorResponse(w http.ResponseWriter, message string, statusCode int) {
	respondWithJSON(w, statusCode, map[string]string{"error": message})
}
