package model

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

const (
	contactNameMinLength         = 2
	contactNameMaxLength         = 100
	contactOrganizationMaxLength = 200
	contactMessageMinLength      = 10
	contactMessageMaxLength      = 2000

	emailMaxLength = 320

	fieldNameName         = "name"
	fieldNameOrganization = "organization"
	fieldNameEmail        = "email"
	fieldNameMessage      = "message"
)

// ContactMessage is a submitted contact-form record.
type ContactMessage struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"not null;size:100" json:"name"`
	Organization *string   `gorm:"size:200" json:"organization"`
	Email        string    `gorm:"not null;size:320" json:"email"`
	Message      string    `gorm:"not null;size:2000" json:"message"`
	CreatedAt    time.Time `gorm:"not null;index" json:"createdAt"`
}

// ContactMessageInput holds the raw values of a contact submission.
type ContactMessageInput struct {
	Name         string `json:"name"`
	Organization string `json:"organization"`
	Email        string `json:"email"`
	Message      string `json:"message"`
}

// ValidateContactMessage normalizes the input and checks every field,
// returning a record without identity or timestamp plus the full set of
// violations. The returned record is meaningful only when the error set is
// empty.
func ValidateContactMessage(input ContactMessageInput) (ContactMessage, FieldErrors) {
	fieldErrors := FieldErrors{}

	name := strings.TrimSpace(input.Name)
	if len(name) < contactNameMinLength || len(name) > contactNameMaxLength {
		fieldErrors.Add(fieldNameName, lengthRangeMessage(contactNameMinLength, contactNameMaxLength))
	}

	organization := optionalString(input.Organization)
	if organization != nil && len(*organization) > contactOrganizationMaxLength {
		fieldErrors.Add(fieldNameOrganization, maxLengthMessage(contactOrganizationMaxLength))
	}

	email, emailValid := normalizeEmail(input.Email)
	if !emailValid {
		fieldErrors.Add(fieldNameEmail, invalidEmailMessage)
	}

	messageBody := strings.TrimSpace(input.Message)
	if len(messageBody) < contactMessageMinLength || len(messageBody) > contactMessageMaxLength {
		fieldErrors.Add(fieldNameMessage, lengthRangeMessage(contactMessageMinLength, contactMessageMaxLength))
	}

	return ContactMessage{
		Name:         name,
		Organization: organization,
		Email:        email,
		Message:      messageBody,
	}, fieldErrors
}

const invalidEmailMessage = "must be a valid email address"

func lengthRangeMessage(minimumLength int, maximumLength int) string {
	return fmt.Sprintf("must be between %d and %d characters", minimumLength, maximumLength)
}

func maxLengthMessage(maximumLength int) string {
	return fmt.Sprintf("must be at most %d characters", maximumLength)
}

// optionalString trims the raw value and coerces blank or absent values to
// nil so they are stored and marshaled as null, never as an empty string.
func optionalString(rawValue string) *string {
	trimmed := strings.TrimSpace(rawValue)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeEmail trims and lowercases the address before parsing it.
func normalizeEmail(rawEmail string) (string, bool) {
	email := strings.ToLower(strings.TrimSpace(rawEmail))
	if email == "" || len(email) > emailMaxLength {
		return email, false
	}
	parsedAddress, parseErr := mail.ParseAddress(email)
	if parseErr != nil || parsedAddress.Address != email {
		return email, false
	}
	return email, true
}
