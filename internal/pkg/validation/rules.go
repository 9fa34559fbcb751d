// Package validation registers the request rules gin's validator does not ship with.
package validation

import (
	"errors"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yigit/researchconnect/internal/pkg/helpers"
)

// Custom tags
const (
	// TagDeadline accepts any of helpers.DeadlineLayouts
	TagDeadline = "deadline"
	// TagNonBlank rejects strings made only of whitespace
	TagNonBlank = "nonblank"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register adds the custom tags to gin's binding validator. Later calls are no-ops.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("validation: gin binding engine is not go-playground/validator")
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// MustRegister is Register for router setup, where a failure is a programming error
func MustRegister() {
	if err := Register(); err != nil {
		panic(err)
	}
}

// RegisterOn adds the custom tags to v
func RegisterOn(v *validator.Validate) error {
	if err := v.RegisterValidation(TagDeadline, validDeadline); err != nil {
		return err
	}
	return v.RegisterValidation(TagNonBlank, nonBlank)
}

func validDeadline(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, ok := helpers.ParseDeadline(s)
	return ok
}

func nonBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
