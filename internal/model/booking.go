package model

import (
	"regexp"
	"strings"
	"time"
)

// Service identifiers for consultation bookings.
const (
	ServiceSOC2                = "soc2"
	ServiceISO27001            = "iso27001"
	ServiceHIPAA               = "hipaa"
	ServiceNISTCSF             = "nist-csf"
	ServiceNISTCMMC            = "nist-cmmc"
	ServiceCloudSecurity       = "cloud-security"
	ServiceGeneralConsultation = "general-consultation"
)

// Preferred time windows for consultation bookings. Exact 24-hour times are
// accepted on input and normalized into their containing window, so stored
// bookings always carry one of these three values.
const (
	TimeWindowMorning   = "morning"
	TimeWindowAfternoon = "afternoon"
	TimeWindowEvening   = "evening"
)

const (
	bookingNameMinLength    = 2
	bookingNameMaxLength    = 100
	bookingCompanyMaxLength = 200
	bookingNotesMaxLength   = 1000

	afternoonStartHour = 12
	eveningStartHour   = 17

	fieldNamePhone         = "phone"
	fieldNameCompany       = "company"
	fieldNameService       = "service"
	fieldNamePreferredDate = "preferredDate"
	fieldNamePreferredTime = "preferredTime"
	fieldNameNotes         = "notes"

	invalidPhoneMessage       = "must be a valid phone number"
	unknownServiceMessage     = "must be one of the offered services"
	invalidDateMessage        = "must be a date in YYYY-MM-DD format"
	pastDateMessage           = "must be today or a future date"
	invalidTimeMessage        = "must be a 24-hour HH:MM time or morning, afternoon or evening"
	clockLayoutTwentyFourHour = "15:04"
)

var bookingServices = map[string]struct{}{
	ServiceSOC2:                {},
	ServiceISO27001:            {},
	ServiceHIPAA:               {},
	ServiceNISTCSF:             {},
	ServiceNISTCMMC:            {},
	ServiceCloudSecurity:       {},
	ServiceGeneralConsultation: {},
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{5,18}[0-9]$`)

// Booking is a stored consultation-booking record.
type Booking struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"not null;size:100" json:"name"`
	Email         string    `gorm:"not null;size:320" json:"email"`
	Phone         *string   `gorm:"size:32" json:"phone"`
	Company       *string   `gorm:"size:200" json:"company"`
	Service       string    `gorm:"not null;size:32" json:"service"`
	PreferredDate string    `gorm:"not null;size:10" json:"preferredDate"`
	PreferredTime string    `gorm:"not null;size:16" json:"preferredTime"`
	Notes         *string   `gorm:"size:1000" json:"notes"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
}

// BookingInput holds the raw values of a consultation-booking submission.
type BookingInput struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	Service       string `json:"service"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Notes         string `json:"notes"`
}

// ValidateBooking normalizes the input and checks every field against the
// booking schema. The preferred date is compared against referenceTime at UTC
// date granularity, so revalidating the same payload on a later day can
// change the outcome.
func ValidateBooking(input BookingInput, referenceTime time.Time) (Booking, FieldErrors) {
	fieldErrors := FieldErrors{}

	name := strings.TrimSpace(input.Name)
	if len(name) < bookingNameMinLength || len(name) > bookingNameMaxLength {
		fieldErrors.Add(fieldNameName, lengthRangeMessage(bookingNameMinLength, bookingNameMaxLength))
	}

	email, emailValid := normalizeEmail(input.Email)
	if !emailValid {
		fieldErrors.Add(fieldNameEmail, invalidEmailMessage)
	}

	phone := optionalString(input.Phone)
	if phone != nil && !phonePattern.MatchString(*phone) {
		fieldErrors.Add(fieldNamePhone, invalidPhoneMessage)
	}

	company := optionalString(input.Company)
	if company != nil && len(*company) > bookingCompanyMaxLength {
		fieldErrors.Add(fieldNameCompany, maxLengthMessage(bookingCompanyMaxLength))
	}

	service := strings.ToLower(strings.TrimSpace(input.Service))
	if _, serviceKnown := bookingServices[service]; !serviceKnown {
		fieldErrors.Add(fieldNameService, unknownServiceMessage)
	}

	preferredDate := strings.TrimSpace(input.PreferredDate)
	parsedDate, dateErr := time.Parse(time.DateOnly, preferredDate)
	switch {
	case dateErr != nil:
		fieldErrors.Add(fieldNamePreferredDate, invalidDateMessage)
	case parsedDate.Before(utcDate(referenceTime)):
		fieldErrors.Add(fieldNamePreferredDate, pastDateMessage)
	}

	preferredTime, timeValid := normalizePreferredTime(input.PreferredTime)
	if !timeValid {
		fieldErrors.Add(fieldNamePreferredTime, invalidTimeMessage)
	}

	notes := optionalString(input.Notes)
	if notes != nil && len(*notes) > bookingNotesMaxLength {
		fieldErrors.Add(fieldNameNotes, maxLengthMessage(bookingNotesMaxLength))
	}

	return Booking{
		Name:          name,
		Email:         email,
		Phone:         phone,
		Company:       company,
		Service:       service,
		PreferredDate: preferredDate,
		PreferredTime: preferredTime,
		Notes:         notes,
	}, fieldErrors
}

// normalizePreferredTime maps either a window literal or a 24-hour HH:MM
// time onto one of the three canonical windows.
func normalizePreferredTime(rawValue string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(rawValue))
	switch normalized {
	case TimeWindowMorning, TimeWindowAfternoon, TimeWindowEvening:
		return normalized, true
	}

	parsedClock, parseErr := time.Parse(clockLayoutTwentyFourHour, normalized)
	if parseErr != nil {
		return "", false
	}

	switch {
	case parsedClock.Hour() < afternoonStartHour:
		return TimeWindowMorning, true
	case parsedClock.Hour() < eveningStartHour:
		return TimeWindowAfternoon, true
	default:
		return TimeWindowEvening, true
	}
}

func utcDate(referenceTime time.Time) time.Time {
	utcTime := referenceTime.UTC()
	return time.Date(utcTime.Year(), utcTime.Month(), utcTime.Day(), 0, 0, 0, 0, time.UTC)
}
