package validators

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

const (
	// TagLogLevel accepts any level name zerolog can parse.
	TagLogLevel = "loglevel"
	// TagFileName accepts a bare file name with no directory part.
	TagFileName = "filename"
)

// New creates a new validator instance with the project's custom tags registered.
func New() *Validate {
	v := validator.New()
	// Registration only fails on an empty tag or a nil func.
	_ = v.RegisterValidation(TagLogLevel, isLogLevel)
	_ = v.RegisterValidation(TagFileName, isFileName)
	return v
}

func isLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	if level == "" {
		return false
	}
	_, err := zerolog.ParseLevel(level)
	return err == nil
}

func isFileName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || name == "." || name == ".." {
		return false
	}
	return filepath.Base(name) == name && !strings.ContainsAny(name, `/\`)
}
