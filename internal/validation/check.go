package validation

import (
	"strings"

	"github.com/yhteys/backend/internal/model"
)

// Server-side gate messages.
const (
	MsgTypeRequired = "Viestiin liittyvä tyyppi on pakollinen."
	MsgTypeInvalid  = "Viestin tyyppi on virheellinen."
	MsgSpam         = "Lomake hylätty (epäilty roskaposti)."
)

// Payload is a decoded request body before any type checks. Fields stay
// untyped so that a wrongly typed value is reported as missing for that
// field instead of failing the whole body.
type Payload struct {
	Name     any `json:"name"`
	Email    any `json:"email"`
	Subject  any `json:"subject"`
	Message  any `json:"message"`
	Type     any `json:"type"`
	Accepted any `json:"accepted"`
	Company  any `json:"company"`
}

// Rejection is the first rule a payload failed.
type Rejection struct {
	Field   string
	Message string
}

func (r *Rejection) Error() string {
	return r.Field + ": " + r.Message
}

// Spam reports whether the rejection came from the honeypot.
func (r *Rejection) Spam() bool {
	return r.Field == FieldCompany
}

func reject(field, msg string) *Rejection {
	return &Rejection{Field: field, Message: msg}
}

// nonEmptyString returns v trimmed if it is a string with visible content.
func nonEmptyString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Check runs the server-side rules in order: name, email, subject, message,
// type, accepted, company. On success it returns the trimmed input with
// Accepted set and Company empty.
func Check(p Payload) (model.ContactInput, *Rejection) {
	var in model.ContactInput
	var ok bool

	if in.Name, ok = nonEmptyString(p.Name); !ok {
		return model.ContactInput{}, reject(FieldName, MsgNameRequired)
	}

	if in.Email, ok = nonEmptyString(p.Email); !ok {
		return model.ContactInput{}, reject(FieldEmail, MsgEmailRequired)
	}
	if !IsEmail(in.Email) {
		return model.ContactInput{}, reject(FieldEmail, MsgEmailInvalid)
	}

	if in.Subject, ok = nonEmptyString(p.Subject); !ok {
		return model.ContactInput{}, reject(FieldSubject, MsgSubjectRequired)
	}

	if in.Message, ok = nonEmptyString(p.Message); !ok {
		return model.ContactInput{}, reject(FieldMessage, MsgMessageRequired)
	}

	if in.Type, ok = nonEmptyString(p.Type); !ok {
		return model.ContactInput{}, reject(FieldType, MsgTypeRequired)
	}
	if !model.IsCategory(in.Type) {
		return model.ContactInput{}, reject(FieldType, MsgTypeInvalid)
	}

	if accepted, isBool := p.Accepted.(bool); !isBool || !accepted {
		return model.ContactInput{}, reject(FieldAccepted, MsgAcceptedRequired)
	}
	in.Accepted = true

	// Any non-string honeypot value counts as empty.
	if company, isString := p.Company.(string); isString && strings.TrimSpace(company) != "" {
		return model.ContactInput{}, reject(FieldCompany, MsgSpam)
	}

	return in, nil
}

// PayloadFromInput converts typed form input into a Payload for Check.
func PayloadFromInput(in model.ContactInput) Payload {
	return Payload{
		Name:     in.Name,
		Email:    in.Email,
		Subject:  in.Subject,
		Message:  in.Message,
		Type:     in.Type,
		Accepted: in.Accepted,
		Company:  in.Company,
	}
}
