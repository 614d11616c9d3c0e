package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iliyamo/shareit/internal/model"
)

const (
	msgBlank     = "must not be blank"
	msgNull      = "must not be null"
	msgEmail     = "must be a well-formed email address"
	msgPast      = "must not be in the past"
	msgEndBefore = "must be after start"
)

// Column widths of the text fields, in characters.
const (
	maxUserName    = 255
	maxEmail       = 512
	maxItemName    = 255
	maxDescription = 512
	maxCommentText = 1000
)

var rules = validator.New()

func tooLong(s string, n int) bool { return rules.Var(s, "max="+strconv.Itoa(n)) != nil }

func msgTooLong(n int) string { return fmt.Sprintf("must be at most %d characters", n) }

// checkLen records a violation when s is present and longer than n.
func (v violations) checkLen(field string, s *string, n int) {
	if s != nil && tooLong(*s, n) {
		v.add(field, msgTooLong(n))
	}
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func validEmail(s string) bool { return rules.Var(s, "required,email") == nil }

// Page selects a slice of a list: From is the index of the first wanted
// element and Size the page length.
type Page struct {
	From int
	Size int
}

// DefaultPage is used when the caller passes neither from nor size.
var DefaultPage = Page{From: 0, Size: 10}

func (p Page) Validate() error {
	v := violations{}
	if p.From < 0 {
		v.add("from", "must be greater than or equal to 0")
	}
	if p.Size < 1 {
		v.add("size", "must be greater than 0")
	}
	return v.err()
}

func (p Page) Limit() int { return p.Size }

// Offset rounds From down to the start of the page containing it.
func (p Page) Offset() int { return (p.From / p.Size) * p.Size }

// UserInput is the body of user registration and partial update. Nil
// fields are absent from the request.
type UserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

func (in UserInput) ValidateCreate() error {
	v := violations{}
	if blank(in.Name) {
		v.add("name", msgBlank)
	}
	if blank(in.Email) {
		v.add("email", msgBlank)
	} else if !validEmail(*in.Email) {
		v.add("email", msgEmail)
	}
	v.checkLen("name", in.Name, maxUserName)
	v.checkLen("email", in.Email, maxEmail)
	return v.err()
}

func (in UserInput) ValidatePatch() error {
	v := violations{}
	if in.Name != nil && blank(in.Name) {
		v.add("name", msgBlank)
	}
	if in.Email != nil {
		if blank(in.Email) {
			v.add("email", msgBlank)
		} else if !validEmail(*in.Email) {
			v.add("email", msgEmail)
		}
	}
	v.checkLen("name", in.Name, maxUserName)
	v.checkLen("email", in.Email, maxEmail)
	return v.err()
}

// ItemInput is the body of item creation and partial update.
type ItemInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *uint64 `json:"requestId"`
}

func (in ItemInput) ValidateCreate() error {
	v := violations{}
	if blank(in.Name) {
		v.add("name", msgBlank)
	}
	if blank(in.Description) {
		v.add("description", msgBlank)
	}
	if in.Available == nil {
		v.add("available", msgNull)
	}
	v.checkLen("name", in.Name, maxItemName)
	v.checkLen("description", in.Description, maxDescription)
	return v.err()
}

func (in ItemInput) ValidatePatch() error {
	v := violations{}
	if in.Name != nil && blank(in.Name) {
		v.add("name", msgBlank)
	}
	if in.Description != nil && blank(in.Description) {
		v.add("description", msgBlank)
	}
	v.checkLen("name", in.Name, maxItemName)
	v.checkLen("description", in.Description, maxDescription)
	return v.err()
}

type RequestInput struct {
	Description string `json:"description"`
}

func (in RequestInput) Validate() error {
	v := violations{}
	if blank(&in.Description) {
		v.add("description", msgBlank)
	}
	v.checkLen("description", &in.Description, maxDescription)
	return v.err()
}

type CommentInput struct {
	Text string `json:"text"`
}

func (in CommentInput) Validate() error {
	v := violations{}
	if blank(&in.Text) {
		v.add("text", msgBlank)
	}
	v.checkLen("text", &in.Text, maxCommentText)
	return v.err()
}

// BookingInput is the body of a booking request.
type BookingInput struct {
	ItemID *uint64          `json:"itemId"`
	Start  *model.LocalTime `json:"start"`
	End    *model.LocalTime `json:"end"`
}

// Validate checks the rental window against now: both ends present, not
// in the past, end strictly after start.
func (in BookingInput) Validate(now time.Time) error {
	v := violations{}
	if in.ItemID == nil {
		v.add("itemId", msgNull)
	}
	if in.Start == nil {
		v.add("start", msgNull)
	} else if in.Start.Before(now) {
		v.add("start", msgPast)
	}
	if in.End == nil {
		v.add("end", msgNull)
	} else if in.End.Before(now) {
		v.add("end", msgPast)
	}
	if in.Start != nil && in.End != nil && !in.End.After(in.Start.Time) {
		v.add("end", msgEndBefore)
	}
	return v.err()
}
