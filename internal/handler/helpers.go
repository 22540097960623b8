package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// parseIDParam extracts a positive numeric identifier from a route
// parameter. Missing or malformed values are a validation failure; the
// request is rejected before any storage is touched.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return 0, errors.New("missing " + name)
	}

	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid " + name)
	}

	return uint(parsed), nil
}

// validationMessage flattens validator errors into a readable message.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]string, 0, len(validationErrors))
		for _, fieldError := range validationErrors {
			fields = append(fields, strings.ToLower(fieldError.Field()))
		}
		return "invalid fields: " + strings.Join(fields, ", ")
	}
	return err.Error()
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
