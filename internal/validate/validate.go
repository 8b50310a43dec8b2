// Package validate holds the form validation rules. Each function
// returns every failing field at once, so forms can show all inline
// messages together instead of one at a time.
package validate

import (
	"regexp"
	"strings"

	"github.com/gaillardy/crm/internal/directory"
)

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegexp = regexp.MustCompile(`^\+2613[34872]\d{2}\d{3}\d{2}$`)
)

// FieldError points a validation message at a single form field.
type FieldError struct {
	Field   string
	Message string
}

// Errors collects the failing fields of one form submission.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the message for a field, or "" when it passed.
func (e Errors) ByField(field string) string {
	for _, fe := range e {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// OrNil returns e as an error, or nil when everything passed. Returning
// a typed nil slice through the error interface would read as non-nil.
func (e Errors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Login checks the login form. Credentials are never verified against
// anything; only their shape is.
func Login(email, password string) error {
	var errs Errors
	if !emailRegexp.MatchString(email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if len(password) < 6 {
		errs = append(errs, FieldError{"password", "password must be at least 6 characters"})
	}
	return errs.OrNil()
}

// Client checks a new or edited client record. Company, position and
// notes are free-form and always pass.
func Client(in directory.ClientInput) error {
	var errs Errors
	if len(in.FirstName) < 2 {
		errs = append(errs, FieldError{"first_name", "first name must be at least 2 characters"})
	}
	if len(in.LastName) < 2 {
		errs = append(errs, FieldError{"last_name", "last name must be at least 2 characters"})
	}
	if !emailRegexp.MatchString(in.Email) {
		errs = append(errs, FieldError{"email", "invalid email address"})
	}
	if !phoneRegexp.MatchString(strings.ReplaceAll(in.Phone, " ", "")) {
		errs = append(errs, FieldError{"phone", "invalid phone number"})
	}
	return errs.OrNil()
}

// Activity checks a new activity entry.
func Activity(in directory.ActivityInput) error {
	var errs Errors
	if !in.Type.Valid() {
		errs = append(errs, FieldError{"type", "select an activity type"})
	}
	if len(in.Title) < 3 {
		errs = append(errs, FieldError{"title", "title must be at least 3 characters"})
	}
	if len(in.Description) < 10 {
		errs = append(errs, FieldError{"description", "description must be at least 10 characters"})
	}
	return errs.OrNil()
}
