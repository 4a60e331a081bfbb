package auth

import (
	"chat-poll/errors"
	stderrors "errors"
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate  = newValidator()
	tagFormat = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("tag", func(fl validator.FieldLevel) bool {
		return tagFormat.MatchString(fl.Field().String())
	})
	return v
}

type RegisterRequest struct {
	Tag      string `validate:"required,min=2,max=32,tag"`
	Password string `validate:"required,min=8,max=72"`
}

// ValidateRegister reports ErrInvalidTag or ErrInvalidPassword, tag first.
func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		var failures validator.ValidationErrors
		if stderrors.As(err, &failures) {
			for _, failure := range failures {
				if failure.Field() == "Tag" {
					return errors.ErrInvalidTag
				}
			}
			return errors.ErrInvalidPassword
		}
		return err
	}
	if !isPasswordComplex(req.Password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var hasUpper, hasLower, hasNumber bool
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	return hasUpper && hasLower && hasNumber
}
