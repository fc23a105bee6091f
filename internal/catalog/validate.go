package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ppiankov/bartier/internal/model"
)

// validate is safe for concurrent use and caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("image_url", validateImageURL); err != nil {
		panic(err)
	}
	return v
}

// validateImageURL accepts http(s) URLs with a host and scheme-less paths.
// Image fields end up in HTML src attributes and Markdown links, so any other
// scheme (javascript:, data:, file:) is rejected.
func validateImageURL(fl validator.FieldLevel) bool {
	return isImageURL(fl.Field().String())
}

func isImageURL(raw string) bool {
	if raw == "" || raw != strings.TrimSpace(raw) {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "":
		return u.Opaque == ""
	case "http", "https":
		return u.Host != ""
	default:
		return false
	}
}

// ValidateRecord checks the structural rules a catalog record must meet.
// The classifier and assembler never validate; this runs once at load time.
func ValidateRecord(bar model.BarContent) error {
	err := validate.Struct(bar)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}

	id := bar.ID
	if id == "" {
		id = "<no id>"
	}
	return fmt.Errorf("%w %s: %s", ErrInvalidRecord, id, strings.Join(fields, ", "))
}
