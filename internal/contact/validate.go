package contact

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrMissingFields is returned when any required field is blank.
	ErrMissingFields = errors.New("contact: required field missing")

	// ErrInvalidEmail is returned when the email does not look like local@domain.tld.
	ErrInvalidEmail = errors.New("contact: invalid email address")
)

// notSpaceOrAt excludes "@" and every character browsers treat as
// whitespace in a regular expression, which is wider than Go's ASCII \s.
const notSpaceOrAt = `[^\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}@]`

var emailPattern = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

// ValidEmail reports whether addr matches local@domain.tld with no whitespace.
func ValidEmail(addr string) bool {
	return emailPattern.MatchString(addr)
}

// Validate checks required fields before the email format. Fields are
// compared after trimming; the receiver is not modified.
func (s Submission) Validate() error {
	for _, v := range []string{s.Name, s.Email, s.Company, s.Position, s.Message} {
		if strings.TrimSpace(v) == "" {
			return ErrMissingFields
		}
	}
	if !ValidEmail(strings.TrimSpace(s.Email)) {
		return ErrInvalidEmail
	}
	return nil
}

// UserMessage maps a validation error to the text shown to the visitor.
// Unknown errors map to the generic unexpected-error text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingFields):
		return MsgMissingFields
	case errors.Is(err, ErrInvalidEmail):
		return MsgInvalidEmail
	default:
		return MsgUnexpected
	}
}
