package webfront

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/nyaruka/phonenumbers"
)

// ValidateStringEquals builds a rule asserting the field matches expected,
// used for password confirmation.
func ValidateStringEquals(expected string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != expected {
			return errors.New("values do not match")
		}
		return nil
	}
}

// ValidatePhoneNumber builds a rule that parses the value as a phone number
// for the given default region. Empty values pass, pair with
// validation.Required when the field is mandatory.
func ValidatePhoneNumber(region string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		num, err := phonenumbers.Parse(s, region)
		if err != nil {
			return fmt.Errorf("invalid phone number: %v", err)
		}

		if !phonenumbers.IsValidNumber(num) {
			return errors.New("invalid phone number")
		}

		return nil
	}
}

// FormatValidationErrorToMap flattens an ozzo validation error into a
// field to message map for template rendering. Non-validation errors land
// under a catch-all key.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			out[field] = ferr.Error()
		}
		return out
	}

	out["_form"] = err.Error()
	return out
}
