package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes bounds request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

var (
	// ErrInvalidBody is wrapped by every DecodeJSON failure.
	ErrInvalidBody = errors.New("invalid request body")

	errEmptyBody    = fmt.Errorf("%w: body is empty", ErrInvalidBody)
	errNotAnObject  = fmt.Errorf("%w: body must be a JSON object", ErrInvalidBody)
	errTrailingData = fmt.Errorf("%w: body must contain a single JSON object", ErrInvalidBody)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// DecodeJSON decodes a request body holding exactly one JSON object into v.
// Empty bodies, malformed JSON, non-object values and trailing data are all
// rejected with errors wrapping ErrInvalidBody.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errEmptyBody
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if len(body) > MaxBodyBytes {
		return fmt.Errorf("%w: body exceeds %d bytes", ErrInvalidBody, MaxBodyBytes)
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return errEmptyBody
	}
	if trimmed[0] != '{' {
		return errNotAnObject
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}

// ValidateRequest validates v with its validate struct tags.
func ValidateRequest(v interface{}) error {
	return validate.Struct(v)
}

// ValidationDetails converts validator errors into one FieldError per
// rejected field. It returns nil for other errors.
func ValidationDetails(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Message: tagMessage(fe),
		})
	}
	return details
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	default:
		return "is invalid"
	}
}
