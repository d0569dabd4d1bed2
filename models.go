package webfront

import (
	"encoding/json"
	"time"
)

// UserRole is the user's role as reported by the backend
type UserRole = string

const (
	// RoleGuest is an unauthenticated visitor
	RoleGuest UserRole = "guest"
	// RoleUser is a signed-up community member
	RoleUser UserRole = "user"
	// RoleAdmin can manage members, contacts and messages
	RoleAdmin UserRole = "admin"
)

// User is the profile the backend returns for an authenticated visitor.
// Role and Admin come exclusively from the backend; nothing in this package
// derives privilege from any other field.
type User struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name,omitempty"`
	Email     string     `json:"email,omitempty"`
	Role      UserRole   `json:"role,omitempty"`
	Admin     bool       `json:"isAdmin,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// UnmarshalJSON tolerates the backend's Mongo-flavored `_id` key alongside `id`.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// IsAdmin reports whether the backend granted admin privilege, via either the
// explicit flag or the role field.
func (u *User) IsAdmin() bool {
	if u == nil {
		return false
	}
	return u.Admin || u.Role == RoleAdmin
}

// EnsureRole defaults a missing role to the plain user role.
func (u *User) EnsureRole() {
	if u.Role == "" {
		u.Role = RoleUser
	}
}

// MemberStatus tracks a membership application through review
type MemberStatus = string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusApproved MemberStatus = "approved"
	MemberStatusRejected MemberStatus = "rejected"
	MemberStatusInactive MemberStatus = "inactive"
)

// Member is a community membership application record
type Member struct {
	ID         string       `json:"id,omitempty"`
	FullName   string       `json:"fullName,omitempty"`
	Email      string       `json:"email,omitempty"`
	Phone      string       `json:"phone,omitempty"`
	University string       `json:"university,omitempty"`
	Year       string       `json:"year,omitempty"`
	Interests  string       `json:"interests,omitempty"`
	Motivation string       `json:"motivation,omitempty"`
	Experience string       `json:"experience,omitempty"`
	Github     string       `json:"github,omitempty"`
	Linkedin   string       `json:"linkedin,omitempty"`
	Newsletter bool         `json:"newsletter,omitempty"`
	Status     MemberStatus `json:"status,omitempty"`
	CreatedAt  *time.Time   `json:"createdAt,omitempty"`
}

// UnmarshalJSON tolerates `_id` alongside `id`.
func (m *Member) UnmarshalJSON(data []byte) error {
	type alias Member
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = aux.MongoID
	}
	return nil
}

// ContactStatus tracks a contact request through triage
type ContactStatus = string

const (
	ContactStatusNew      ContactStatus = "new"
	ContactStatusRead     ContactStatus = "read"
	ContactStatusResolved ContactStatus = "resolved"
)

// Contact is a contact-form submission record
type Contact struct {
	ID        string        `json:"id,omitempty"`
	Name      string        `json:"name,omitempty"`
	Email     string        `json:"email,omitempty"`
	Subject   string        `json:"subject,omitempty"`
	Message   string        `json:"message,omitempty"`
	Status    ContactStatus `json:"status,omitempty"`
	CreatedAt *time.Time    `json:"createdAt,omitempty"`
}

// UnmarshalJSON tolerates `_id` alongside `id`.
func (c *Contact) UnmarshalJSON(data []byte) error {
	type alias Contact
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.MongoID
	}
	return nil
}

// MessageStatus tracks an inbox message
type MessageStatus = string

const (
	MessageStatusUnread   MessageStatus = "unread"
	MessageStatusRead     MessageStatus = "read"
	MessageStatusResolved MessageStatus = "resolved"
)

// MessageCategory buckets inbox messages
type MessageCategory = string

const (
	MessageCategoryGeneral     MessageCategory = "general"
	MessageCategorySupport     MessageCategory = "support"
	MessageCategoryFeedback    MessageCategory = "feedback"
	MessageCategoryPartnership MessageCategory = "partnership"
)

// MessageCategories lists every accepted category.
var MessageCategories = []MessageCategory{
	MessageCategoryGeneral,
	MessageCategorySupport,
	MessageCategoryFeedback,
	MessageCategoryPartnership,
}

// MessagePriority orders inbox messages
type MessagePriority = string

const (
	MessagePriorityLow    MessagePriority = "low"
	MessagePriorityMedium MessagePriority = "medium"
	MessagePriorityHigh   MessagePriority = "high"
)

// MessagePriorities lists every accepted priority.
var MessagePriorities = []MessagePriority{
	MessagePriorityLow,
	MessagePriorityMedium,
	MessagePriorityHigh,
}

// Message is an inbox message record
type Message struct {
	ID        string          `json:"id,omitempty"`
	Name      string          `json:"name,omitempty"`
	Email     string          `json:"email,omitempty"`
	Category  MessageCategory `json:"category,omitempty"`
	Priority  MessagePriority `json:"priority,omitempty"`
	Content   string          `json:"content,omitempty"`
	Status    MessageStatus   `json:"status,omitempty"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// UnmarshalJSON tolerates `_id` alongside `id`.
func (m *Message) UnmarshalJSON(data []byte) error {
	type alias Message
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = aux.MongoID
	}
	return nil
}
