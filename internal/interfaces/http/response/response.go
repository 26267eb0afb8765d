package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	domainerrors "btc-custody.backend/internal/domain/errors"
)

// Envelope is the uniform response shape
type Envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Details []ValidationIssue `json:"details,omitempty"`
}

// ValidationIssue describes one failed input field
type ValidationIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// SuccessWithMessage sends a success envelope with a message
func SuccessWithMessage(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// Error sends an error envelope. AppErrors keep their status and message,
// everything else becomes a 500 with a generic body.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, Envelope{
		Success: false,
		Error:   appErr.Code,
		Message: appErr.Message,
	})
}

// BindingError sends a 400 for a failed ShouldBindJSON, expanding
// validator errors into per-field details.
func BindingError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ValidationIssue, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ValidationIssue{
				Field:   fe.Field(),
				Message: validationMessage(fe),
				Code:    fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, Envelope{
			Success: false,
			Error:   domainerrors.CodeInvalidInput,
			Message: "Validation failed",
			Details: details,
		})
		return
	}

	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Error:   domainerrors.CodeBadRequest,
		Message: "Invalid request body",
	})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "uuid":
		return "Must be a valid UUID"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "min":
		return "Must be at least " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param()
	default:
		return "Invalid value"
	}
}
