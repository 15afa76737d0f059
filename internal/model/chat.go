package model

import (
	"strings"
	"time"
)

const (
	chatVisitorIDMinLength = 1
	chatVisitorIDMaxLength = 200
	chatNameMinLength      = 2
	chatNameMaxLength      = 100
	chatMessageMinLength   = 1
	chatMessageMaxLength   = 1000

	fieldNameVisitorID = "visitorId"

	missingVisitorIDMessage = "is required"
)

// ChatMessage is one message in a visitor's conversation thread. Messages
// sharing a VisitorID form one thread, read oldest first.
type ChatMessage struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	VisitorID     string    `gorm:"not null;size:200;index" json:"visitorId"`
	Name          *string   `gorm:"size:100" json:"name"`
	Email         *string   `gorm:"size:320" json:"email"`
	Message       string    `gorm:"not null;size:1000" json:"message"`
	IsFromVisitor bool      `gorm:"not null" json:"isFromVisitor"`
	CreatedAt     time.Time `gorm:"not null;index" json:"createdAt"`
}

// ChatMessageInput holds the raw values of a chat submission. IsFromVisitor
// is a pointer so an absent field can default to visitor-authored.
type ChatMessageInput struct {
	VisitorID     string `json:"visitorId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Message       string `json:"message"`
	IsFromVisitor *bool  `json:"isFromVisitor"`
}

// ValidateChatMessage normalizes the input and checks every field against
// the chat schema.
func ValidateChatMessage(input ChatMessageInput) (ChatMessage, FieldErrors) {
	fieldErrors := FieldErrors{}

	visitorID := strings.TrimSpace(input.VisitorID)
	if len(visitorID) < chatVisitorIDMinLength {
		fieldErrors.Add(fieldNameVisitorID, missingVisitorIDMessage)
	} else if len(visitorID) > chatVisitorIDMaxLength {
		fieldErrors.Add(fieldNameVisitorID, maxLengthMessage(chatVisitorIDMaxLength))
	}

	name := optionalString(input.Name)
	if name != nil && (len(*name) < chatNameMinLength || len(*name) > chatNameMaxLength) {
		fieldErrors.Add(fieldNameName, lengthRangeMessage(chatNameMinLength, chatNameMaxLength))
	}

	var email *string
	if trimmedEmail := strings.TrimSpace(input.Email); trimmedEmail != "" {
		normalizedEmail, emailValid := normalizeEmail(trimmedEmail)
		if !emailValid {
			fieldErrors.Add(fieldNameEmail, invalidEmailMessage)
		}
		email = &normalizedEmail
	}

	messageBody := strings.TrimSpace(input.Message)
	if len(messageBody) < chatMessageMinLength || len(messageBody) > chatMessageMaxLength {
		fieldErrors.Add(fieldNameMessage, lengthRangeMessage(chatMessageMinLength, chatMessageMaxLength))
	}

	isFromVisitor := true
	if input.IsFromVisitor != nil {
		isFromVisitor = *input.IsFromVisitor
	}

	return ChatMessage{
		VisitorID:     visitorID,
		Name:          name,
		Email:         email,
		Message:       messageBody,
		IsFromVisitor: isFromVisitor,
	}, fieldErrors
}
