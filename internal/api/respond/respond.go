package respond

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hywel/accountd/internal/auth"
	"github.com/hywel/accountd/internal/domain"
	"gorm.io/gorm"
)

// Envelope is the uniform response wrapper. Error responses use the same
// shape with code mirroring the HTTP status.
type Envelope struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{Code: status, Data: data, Message: message})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, nil, message)
}

// FromError converts service and library errors into the error
// taxonomy at the handler boundary. Raw error text from the datastore or
// token library never reaches the client.
func FromError(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		Error(w, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrInvalidPassword):
		Error(w, http.StatusUnauthorized, "Invalid password")
	case errors.Is(err, domain.ErrEmailExists):
		Error(w, http.StatusConflict, "Email already exists")
	case errors.Is(err, domain.ErrForbidden):
		Error(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, domain.ErrUnavailable):
		Error(w, http.StatusServiceUnavailable, "Service unavailable")
	case errors.Is(err, auth.ErrInvalidToken):
		Error(w, http.StatusUnauthorized, "Invalid token")
	case errors.Is(err, context.DeadlineExceeded):
		Error(w, http.StatusRequestTimeout, "Request timed out")
	case errors.As(err, &verrs):
		Error(w, http.StatusBadRequest, validationMessage(verrs))
	case errors.Is(err, gorm.ErrRecordNotFound):
		Error(w, http.StatusNotFound, "Not found")
	default:
		Error(w, http.StatusInternalServerError, "Internal server error")
	}
}

func validationMessage(verrs validator.ValidationErrors) string {
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "email":
			return "Invalid email address"
		}
	}
	return "Invalid request"
}
