package contact

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// emailPattern mirrors the form's client-side rule: one @ with at least
// one dot in the domain part, no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const (
	maxNameLen    = 100
	maxPhoneLen   = 20
	maxSubjectLen = 200
	maxMessageLen = 5000
)

// SubmitRequest is the inbound contact-form payload.
type SubmitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// FieldError describes a single failed field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationErrors is the full set of field failures for one request.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	fields := make([]string, len(v))
	for i, fe := range v {
		fields[i] = fe.Field
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// Fields returns a field -> reason map for the response details payload.
func (v ValidationErrors) Fields() map[string]string {
	out := make(map[string]string, len(v))
	for _, fe := range v {
		out[fe.Field] = fe.Reason
	}
	return out
}

// Validate checks the request against the form contract. It inspects
// trimmed values only and never touches the store, so it can run (and be
// tested) without any I/O. Length limits count characters, not bytes.
// A nil return means the request is acceptable.
func (r *SubmitRequest) Validate() ValidationErrors {
	var errs ValidationErrors

	name := strings.TrimSpace(r.Name)
	email := strings.TrimSpace(r.Email)
	phone := strings.TrimSpace(r.Phone)
	subject := strings.TrimSpace(r.Subject)
	message := strings.TrimSpace(r.Message)

	switch {
	case name == "":
		errs = append(errs, FieldError{Field: "name", Reason: "Name is required"})
	case utf8.RuneCountInString(name) > maxNameLen:
		errs = append(errs, FieldError{Field: "name", Reason: "Name cannot exceed 100 characters"})
	}

	switch {
	case email == "":
		errs = append(errs, FieldError{Field: "email", Reason: "Email is required"})
	case !emailPattern.MatchString(email):
		errs = append(errs, FieldError{Field: "email", Reason: "Please provide a valid email"})
	}

	if utf8.RuneCountInString(phone) > maxPhoneLen {
		errs = append(errs, FieldError{Field: "phone", Reason: "Phone number cannot exceed 20 characters"})
	}

	switch {
	case subject == "":
		errs = append(errs, FieldError{Field: "subject", Reason: "Subject is required"})
	case utf8.RuneCountInString(subject) > maxSubjectLen:
		errs = append(errs, FieldError{Field: "subject", Reason: "Subject cannot exceed 200 characters"})
	}

	switch {
	case message == "":
		errs = append(errs, FieldError{Field: "message", Reason: "Message is required"})
	case utf8.RuneCountInString(message) > maxMessageLen:
		errs = append(errs, FieldError{Field: "message", Reason: "Message cannot exceed 5000 characters"})
	}

	return errs
}

// Normalize trims every text field and lower-cases the email. It is applied
// after validation and before the record is persisted.
func (r *SubmitRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = strings.TrimSpace(r.Phone)
	r.Subject = strings.TrimSpace(r.Subject)
	r.Message = strings.TrimSpace(r.Message)
}
