// Package models defines the contact record, its editable fields, the backup
// document and the theme preference.
package models

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/go-playground/validator/v10"
)

// Contact is a single address book record.
type Contact struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`
	Tags    []string  `json:"tags"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// Clone returns a deep copy of c.
func (c Contact) Clone() Contact {
	c.Tags = slices.Clone(c.Tags)
	return c
}

// HasTag reports whether tag is one of the contact's tags (exact match).
func (c Contact) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// Fields returns the user-editable part of c, e.g. to prefill an edit form.
func (c Contact) Fields() Fields {
	return Fields{
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
		Tags:    slices.Clone(c.Tags),
	}
}

// CloneAll deep-copies a collection. A nil collection stays nil.
func CloneAll(in []Contact) []Contact {
	if in == nil {
		return nil
	}
	out := make([]Contact, len(in))
	for i, c := range in {
		out[i] = c.Clone()
	}
	return out
}

// Fields holds the values a user supplies when adding or editing a contact.
type Fields struct {
	Name    string   `json:"name" validate:"required"`
	Email   string   `json:"email" validate:"required"`
	Phone   string   `json:"phone"`
	Address string   `json:"address"`
	Tags    []string `json:"tags"`
}

// Normalize trims every value and drops blank tags. Tags keep their order
// and duplicates.
func (f Fields) Normalize() Fields {
	out := Fields{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Address: strings.TrimSpace(f.Address),
		Tags:    make([]string, 0, len(f.Tags)),
	}
	for _, t := range f.Tags {
		if t = strings.TrimSpace(t); t != "" {
			out.Tags = append(out.Tags, t)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the required fields of the normalized values. The
// returned error wraps common.ErrValidation.
func (f Fields) Validate() error {
	n := f.Normalize()
	err := validate.Struct(&n)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, ValidationMessage(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrValidation, strings.Join(msgs, "; "))
}

// ValidationMessage renders a validator field error for humans.
func ValidationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "max":
		return fe.Field() + " must be at most " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}

// ParseTags splits a comma separated tag list as typed in a form.
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// FormatTags is the inverse of ParseTags.
func FormatTags(tags []string) string {
	return strings.Join(tags, ", ")
}
