// Package enquiry validates contact form submissions and delivers them to the
// dealership inbox without blocking the request that submitted them.
package enquiry

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "github.com/infinitidrive/infiniti-drive/pkg/types"
)

const (
	maxNameLen    = 120
	maxEmailLen   = 254
	maxPhoneLen   = 32
	maxMessageLen = 4000
)

// Submitter delivers a validated enquiry to its destination.
type Submitter interface {
	Submit(ctx context.Context, e *domain.Enquiry) error
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
	Value   any
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Normalize trims every text field and defaults an empty subject to general.
func Normalize(e *domain.Enquiry) {
	e.Name = strings.TrimSpace(e.Name)
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Message = strings.TrimSpace(e.Message)
	e.ListingID = strings.TrimSpace(e.ListingID)
	e.Subject = domain.EnquirySubject(strings.ToLower(strings.TrimSpace(string(e.Subject))))
	if e.Subject == "" {
		e.Subject = domain.SubjectGeneral
	}
}

// Validate checks a normalized enquiry. The returned error joins one
// *FieldError per invalid field; use FieldErrors to list them.
func Validate(e *domain.Enquiry) error {
	var errs []error

	switch {
	case e.Name == "":
		errs = append(errs, &FieldError{Field: "name", Message: "name is required"})
	case utf8.RuneCountInString(e.Name) > maxNameLen:
		errs = append(errs, &FieldError{Field: "name", Message: "name is too long", Value: e.Name})
	}

	switch {
	case e.Email == "":
		errs = append(errs, &FieldError{Field: "email", Message: "email is required"})
	case len(e.Email) > maxEmailLen:
		errs = append(errs, &FieldError{Field: "email", Message: "email is too long", Value: e.Email})
	default:
		if _, err := mail.ParseAddress(e.Email); err != nil {
			errs = append(errs, &FieldError{Field: "email", Message: "email is invalid", Value: e.Email})
		}
	}

	if utf8.RuneCountInString(e.Phone) > maxPhoneLen {
		errs = append(errs, &FieldError{Field: "phone", Message: "phone is too long", Value: e.Phone})
	}

	if !slices.Contains(domain.EnquirySubjects, e.Subject) {
		errs = append(errs, &FieldError{Field: "subject", Message: "subject is not recognized", Value: e.Subject})
	}

	switch {
	case e.Message == "":
		errs = append(errs, &FieldError{Field: "message", Message: "message is required"})
	case utf8.RuneCountInString(e.Message) > maxMessageLen:
		errs = append(errs, &FieldError{Field: "message", Message: "message is too long"})
	}

	return errors.Join(errs...)
}

// FieldErrors unpacks the field errors joined by Validate.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}

	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var fe *FieldError
			if errors.As(e, &fe) {
				out = append(out, fe)
			}
		}
		return out
	}

	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

// NewReference returns a human-quotable enquiry reference such as
// ID-20260314-100000-A1B2C3D4.
func NewReference(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("ID-%s-%s", now.UTC().Format("20060102-150405"), id[:8])
}
