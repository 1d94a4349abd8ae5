package serverutils

import (
	"fmt"
	"strings"

	"prep-tool-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the `validate` struct tags and folds every failure
// into one ErrValidation.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", strings.ToLower(fe.Field())))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s]", strings.ToLower(fe.Field()), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s failed on %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}

	return fmt.Errorf("%w: %s", apperror.ErrValidation, strings.Join(messages, "; "))
}
