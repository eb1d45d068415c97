// Package validation checks contact form submissions.
//
// Two entry points exist. Validate collects every field error at once and is
// what the form uses for immediate feedback. Check is the server-side gate:
// it trusts nothing, runs the rules in a fixed order and stops at the first
// failure, returning a single Rejection.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/yhteys/backend/internal/model"
)

// Field names as used in JSON payloads and form posts.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldMessage  = "message"
	FieldType     = "type"
	FieldAccepted = "accepted"
	FieldCompany  = "company"
)

// Fields lists the submission fields in checking order.
var Fields = []string{
	FieldName, FieldEmail, FieldSubject, FieldMessage, FieldType, FieldAccepted, FieldCompany,
}

// Messages shared by both validators.
const (
	MsgNameRequired     = "Nimi on pakollinen."
	MsgEmailRequired    = "Sähköposti on pakollinen."
	MsgEmailInvalid     = "Sähköpostiosoite on virheellinen."
	MsgSubjectRequired  = "Aihe on pakollinen."
	MsgMessageRequired  = "Viesti on pakollinen."
	MsgAcceptedRequired = "Tietosuojan hyväksyntä on pakollinen."
)

// Form-only messages.
const (
	MsgTypeSelect    = "Valitse viestin tyyppi."
	MsgHoneypotEmpty = "Jätä tämä kenttä tyhjäksi."
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsEmail reports whether s has the shape local@domain.tld. Any Unicode
// space, not only the ASCII ones \s covers, disqualifies it.
func IsEmail(s string) bool {
	if strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return false
	}
	return emailPattern.MatchString(s)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// FieldErrors maps a field name to its error message.
type FieldErrors map[string]string

// Valid reports whether no field failed.
func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

// Validate checks every field of in and returns one message per failing field.
func Validate(in model.ContactInput) FieldErrors {
	errs := FieldErrors{}

	if blank(in.Name) {
		errs[FieldName] = MsgNameRequired
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs[FieldEmail] = MsgEmailRequired
	case !IsEmail(email):
		errs[FieldEmail] = MsgEmailInvalid
	}

	if blank(in.Subject) {
		errs[FieldSubject] = MsgSubjectRequired
	}
	if blank(in.Message) {
		errs[FieldMessage] = MsgMessageRequired
	}
	if !model.IsCategory(strings.TrimSpace(in.Type)) {
		errs[FieldType] = MsgTypeSelect
	}
	if !in.Accepted {
		errs[FieldAccepted] = MsgAcceptedRequired
	}
	if !blank(in.Company) {
		errs[FieldCompany] = MsgHoneypotEmpty
	}

	return errs
}
