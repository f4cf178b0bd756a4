package validation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/spec-kit/review-router/pkg/util"
)

// submitTicketSchema checks JSON types only. Empty review text is handled by
// the submission service, which answers with a warning instead of an error.
const submitTicketSchema = `{
  "type": "object",
  "properties": {
    "reviewText":     {"type": ["string", "null"]},
    "sourcePlatform": {"type": ["string", "null"]},
    "hasAttachment":  {"type": ["boolean", "null"]}
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error

	validate = validator.New(validator.WithRequiredStructEnabled())
)

func submitSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(submitTicketSchema))
	})
	return schema, schemaErr
}

// SubmitTicketJSON validates the raw body of a JSON ticket submission.
func SubmitTicketJSON(body []byte) error {
	s, err := submitSchema()
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("compile submit schema: %w", err))
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewValidationError("invalid JSON body", map[string]any{"reason": err.Error()})
	}
	if result.Valid() {
		return nil
	}

	details := make(map[string]any, len(result.Errors()))
	for _, desc := range result.Errors() {
		details[desc.Field()] = desc.Description()
	}
	return apperrors.NewValidationError("invalid payload", details)
}

// Struct applies `validate` tags and converts failures into a validation error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			details[fe.Field()] = fmt.Sprintf("failed %s=%s", fe.Tag(), fe.Param())
		} else {
			details[fe.Field()] = "failed " + fe.Tag()
		}
	}
	return apperrors.NewValidationError("invalid payload", details)
}
