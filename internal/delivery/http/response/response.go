package response

import (
	"encoding/json"
	"net/http"
)

// FieldError reports a single failed validation on a named field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Envelope is the response shape every endpoint answers with. Field names
// are capitalized to stay wire-compatible with the existing storefront.
type Envelope struct {
	Success  bool         `json:"Success"`
	Product  interface{}  `json:"Product,omitempty"`
	Products interface{}  `json:"Products,omitempty"`
	Sale     *float64     `json:"Sale,omitempty"`
	Message  string       `json:"Message,omitempty"`
	Warnings []string     `json:"Warnings,omitempty"`
	Error    string       `json:"error,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
}

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Product writes a success response carrying a single product
func Product(w http.ResponseWriter, product interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Product: product})
}

// ProductMessage writes a success response carrying a message and a product
func ProductMessage(w http.ResponseWriter, message string, product interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message, Product: product})
}

// Products writes a success response carrying a product list
func Products(w http.ResponseWriter, products interface{}) {
	JSON(w, http.StatusOK, Envelope{Success: true, Products: products})
}

// Sale writes a success response carrying the storewide sale value
func Sale(w http.ResponseWriter, sale float64) {
	JSON(w, http.StatusOK, Envelope{Success: true, Sale: &sale})
}

// Message writes a success response carrying only a message
func Message(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Error writes an error response
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Envelope{Success: false, Error: message})
}

// ValidationErrors writes a 400 response with field-level errors
func ValidationErrors(w http.ResponseWriter, errs []FieldError) {
	JSON(w, http.StatusBadRequest, Envelope{Success: false, Errors: errs})
}
