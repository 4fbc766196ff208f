package response

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// TransactionFailedLabel is the generic label attached to every unexpected failure.
const TransactionFailedLabel = "transaction failed"

type MessageBody struct {
	Message string `json:"message"`
}

type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type ValidationBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Status writes a bare status code with no body.
func Status(w http.ResponseWriter, statusCode int) {
	w.WriteHeader(statusCode)
}

func OK(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, data)
}

func NoContent(w http.ResponseWriter) {
	Status(w, http.StatusNoContent)
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, MessageBody{Message: message})
}

// BadRequest writes a 400. An empty message produces an empty body.
func BadRequest(w http.ResponseWriter, message string) {
	if message == "" {
		Status(w, http.StatusBadRequest)
		return
	}
	Message(w, http.StatusBadRequest, message)
}

func ValidationError(w http.ResponseWriter, errors map[string]string) {
	JSON(w, http.StatusBadRequest, ValidationBody{
		Message: "Validation failed",
		Errors:  errors,
	})
}

func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}
	Message(w, http.StatusNotFound, message)
}

// TransactionFailed writes a 500 exposing the raw error text.
func TransactionFailed(w http.ResponseWriter, err error) {
	message := "Internal server error"
	if err != nil {
		message = err.Error()
	}
	JSON(w, http.StatusInternalServerError, ErrorBody{
		Error:   TransactionFailedLabel,
		Message: message,
	})
}

func TooManyRequests(w http.ResponseWriter, retryAfterSeconds int) {
	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
	Message(w, http.StatusTooManyRequests, "Too many requests")
}
