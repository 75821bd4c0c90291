// Package store holds the canonical, insertion-ordered contact collection of
// a session. It is not safe for concurrent use; the service serialises access.
package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/google/uuid"
)

type Store struct {
	contacts []models.Contact
	now      func() time.Time
	newID    func() string
}

type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now is the store clock, in UTC with millisecond precision so timestamps
// survive a JSON round trip unchanged.
func (s *Store) Now() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// NewID returns an id not used by any contact in the store.
func (s *Store) NewID() string {
	for {
		id := s.newID()
		if s.index(id) < 0 {
			return id
		}
	}
}

// All returns a deep copy of the collection in canonical order.
func (s *Store) All() []models.Contact {
	return models.CloneAll(s.contacts)
}

func (s *Store) Len() int {
	return len(s.contacts)
}

func (s *Store) Get(id string) (models.Contact, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Contact{}, false
	}
	return s.contacts[i].Clone(), true
}

func (s *Store) Has(id string) bool {
	return s.index(id) >= 0
}

// Add validates f and appends a new contact.
func (s *Store) Add(f models.Fields) (models.Contact, error) {
	if err := f.Validate(); err != nil {
		return models.Contact{}, err
	}
	f = f.Normalize()

	now := s.Now()
	c := models.Contact{
		ID:      s.NewID(),
		Name:    f.Name,
		Email:   f.Email,
		Phone:   f.Phone,
		Address: f.Address,
		Tags:    f.Tags,
		Created: now,
		Updated: now,
	}
	s.contacts = append(s.contacts, c)
	return c.Clone(), nil
}

// Update overwrites the editable fields of contact id in place.
func (s *Store) Update(id string, f models.Fields) (models.Contact, error) {
	if err := f.Validate(); err != nil {
		return models.Contact{}, err
	}
	i := s.index(id)
	if i < 0 {
		return models.Contact{}, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
	}
	f = f.Normalize()

	c := &s.contacts[i]
	c.Name = f.Name
	c.Email = f.Email
	c.Phone = f.Phone
	c.Address = f.Address
	c.Tags = f.Tags
	c.Updated = s.Now()
	if c.Updated.Before(c.Created) {
		c.Updated = c.Created
	}
	return c.Clone(), nil
}

// Remove deletes contact id and reports whether it existed.
func (s *Store) Remove(id string) bool {
	return s.RemoveMany([]string{id}) == 1
}

// RemoveMany deletes every contact whose id is listed and returns how many
// were removed. Unknown ids are ignored.
func (s *Store) RemoveMany(ids []string) int {
	before := len(s.contacts)
	s.contacts = slices.DeleteFunc(s.contacts, func(c models.Contact) bool {
		return slices.Contains(ids, c.ID)
	})
	return before - len(s.contacts)
}

// ReplaceAll swaps in a deep copy of contacts without validating it.
func (s *Store) ReplaceAll(contacts []models.Contact) {
	s.contacts = models.CloneAll(contacts)
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.contacts, func(c models.Contact) bool { return c.ID == id })
}
