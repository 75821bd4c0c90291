package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/contactpro/internal/codec"
	"github.com/dmitrijs2005/contactpro/internal/common"
	"github.com/dmitrijs2005/contactpro/internal/history"
	"github.com/dmitrijs2005/contactpro/internal/logging"
	"github.com/dmitrijs2005/contactpro/internal/models"
	"github.com/dmitrijs2005/contactpro/internal/query"
	"github.com/dmitrijs2005/contactpro/internal/storage"
	"github.com/dmitrijs2005/contactpro/internal/store"
)

// Filter fields accepted by SetFilter.
const (
	FilterSearch = "search"
	FilterTag    = "tag"
	FilterRecent = "recent"
)

type ContactService interface {
	// View is the filtered and sorted collection for display.
	View() []models.Contact
	// Count is the number of contacts in View.
	Count() int
	// Total is the size of the whole collection.
	Total() int
	Criteria() query.Criteria
	SetFilter(field, value string) error
	SetSort(value string)
	Tags() []string

	Get(id string) (models.Contact, error)
	Add(ctx context.Context, f models.Fields) (models.Contact, error)
	Update(ctx context.Context, id string, f models.Fields) (models.Contact, error)
	Remove(ctx context.Context, id string) (bool, error)
	RemoveMany(ctx context.Context, ids []string) (int, error)

	Export(f codec.Format) ([]byte, error)
	Import(ctx context.Context, data []byte, f codec.Format) (int, error)
	ImportFile(ctx context.Context, path string) (int, error)

	Backup(ctx context.Context) (models.Backup, error)
	// HasBackup reports whether a backup is stored, so renderers can
	// refuse a restore before asking for confirmation.
	HasBackup(ctx context.Context) (bool, error)
	Restore(ctx context.Context) (int, error)

	Undo(ctx context.Context) (bool, error)
	Redo(ctx context.Context) (bool, error)
	CanUndo() bool
	CanRedo() bool

	Theme() models.Theme
	ToggleTheme(ctx context.Context) (models.Theme, error)
}

type contactService struct {
	mu        sync.Mutex
	importing atomic.Bool

	store    *store.Store
	history  *history.History
	gw       storage.Gateway
	criteria query.Criteria
	theme    models.Theme
	log      logging.Logger

	storeOpts    []store.Option
	historyLimit int
}

type Option func(*contactService)

func WithClock(now func() time.Time) Option {
	return func(s *contactService) { s.storeOpts = append(s.storeOpts, store.WithClock(now)) }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *contactService) { s.storeOpts = append(s.storeOpts, store.WithIDGenerator(gen)) }
}

// WithHistoryLimit caps the undo history; 0 keeps everything.
func WithHistoryLimit(n int) Option {
	return func(s *contactService) { s.historyLimit = n }
}

// NewContactService loads the persisted collection and theme from gw.
func NewContactService(ctx context.Context, gw storage.Gateway, log logging.Logger, opts ...Option) (ContactService, error) {
	s := &contactService{
		gw:       gw,
		log:      log,
		criteria: query.DefaultCriteria(),
	}
	for _, o := range opts {
		o(s)
	}
	s.store = store.New(s.storeOpts...)
	s.history = history.New(s.historyLimit)

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	contactsGauge.Set(float64(s.store.Len()))
	return s, nil
}

func (s *contactService) load(ctx context.Context) error {
	raw, ok, err := s.gw.Get(ctx, storage.KeyContacts)
	if err != nil {
		return fmt.Errorf("error loading contacts: %w", err)
	}
	if ok && strings.TrimSpace(raw) != "" {
		var contacts []models.Contact
		if err := json.Unmarshal([]byte(raw), &contacts); err != nil {
			return fmt.Errorf("%w: stored contacts: %v", common.ErrParse, err)
		}
		s.store.ReplaceAll(contacts)
	}

	theme, _, err := s.gw.Get(ctx, storage.KeyTheme)
	if err != nil {
		return fmt.Errorf("error loading theme: %w", err)
	}
	s.theme = models.ParseTheme(theme)

	s.log.Info(ctx, "contacts loaded", "count", s.store.Len(), "theme", s.theme)
	return nil
}

// persist writes the whole collection; callers hold s.mu.
func (s *contactService) persist(ctx context.Context) error {
	contacts := s.store.All()
	if contacts == nil {
		contacts = []models.Contact{}
	}
	b, err := json.Marshal(contacts)
	if err != nil {
		return fmt.Errorf("error encoding contacts: %w", err)
	}
	if err := s.gw.Set(ctx, storage.KeyContacts, string(b)); err != nil {
		s.log.Error(ctx, "failed to persist contacts", "error", err)
		return fmt.Errorf("error saving contacts: %w", err)
	}
	contactsGauge.Set(float64(len(contacts)))
	return nil
}

func (s *contactService) View() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *contactService) view() []models.Contact {
	return query.View(s.store.All(), s.criteria, s.store.Now())
}

func (s *contactService) Count() int {
	return len(s.View())
}

func (s *contactService) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len()
}

func (s *contactService) Criteria() query.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

func (s *contactService) SetFilter(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch field {
	case FilterSearch:
		s.criteria.Search = value
	case FilterTag:
		s.criteria.Tag = value
	case FilterRecent:
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: recent must be true or false, got %q", common.ErrValidation, value)
		}
		s.criteria.Recent = on
	default:
		return fmt.Errorf("%w: unknown filter %q", common.ErrValidation, field)
	}
	return nil
}

func (s *contactService) SetSort(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SortBy = value
}

func (s *contactService) Tags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return query.Tags(s.store.All())
}

func (s *contactService) Get(id string) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.store.Get(id)
	if !ok {
		return models.Contact{}, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
	}
	return c, nil
}

func (s *contactService) Add(ctx context.Context, f models.Fields) (c models.Contact, err error) {
	defer func() { observe("add", err) }()

	if err := f.Validate(); err != nil {
		return models.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Snapshot(s.store.All())
	c, err = s.store.Add(f)
	if err != nil {
		return models.Contact{}, err
	}
	if err := s.persist(ctx); err != nil {
		return c, err
	}

	s.log.Info(ctx, "contact added", "id", c.ID)
	return c, nil
}

func (s *contactService) Update(ctx context.Context, id string, f models.Fields) (c models.Contact, err error) {
	defer func() { observe("update", err) }()

	if err := f.Validate(); err != nil {
		return models.Contact{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.store.Has(id) {
		return models.Contact{}, fmt.Errorf("contact %s: %w", id, common.ErrNotFound)
	}

	s.history.Snapshot(s.store.All())
	c, err = s.store.Update(id, f)
	if err != nil {
		return models.Contact{}, err
	}
	if err := s.persist(ctx); err != nil {
		return c, err
	}

	s.log.Info(ctx, "contact updated", "id", id)
	return c, nil
}

func (s *contactService) Remove(ctx context.Context, id string) (bool, error) {
	n, err := s.removeMany(ctx, "remove", []string{id})
	return n == 1, err
}

func (s *contactService) RemoveMany(ctx context.Context, ids []string) (int, error) {
	return s.removeMany(ctx, "remove_many", ids)
}

func (s *contactService) removeMany(ctx context.Context, op string, ids []string) (n int, err error) {
	defer func() { observe(op, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Snapshot(s.store.All())
	n = s.store.RemoveMany(ids)
	if err := s.persist(ctx); err != nil {
		return n, err
	}

	s.log.Info(ctx, "contacts removed", "requested", len(ids), "removed", n)
	return n, nil
}

func (s *contactService) Export(f codec.Format) (b []byte, err error) {
	defer func() { observe("export", err) }()

	s.mu.Lock()
	contacts := s.store.All()
	s.mu.Unlock()

	return codec.Export(contacts, f)
}

func (s *contactService) Import(ctx context.Context, data []byte, f codec.Format) (int, error) {
	if !s.importing.CompareAndSwap(false, true) {
		return 0, common.ErrImportInProgress
	}
	defer s.importing.Store(false)

	return s.importData(ctx, data, f)
}

// ImportFile reads path and imports it in the format named by its extension.
// The import guard is held while the file is read.
func (s *contactService) ImportFile(ctx context.Context, path string) (int, error) {
	if !s.importing.CompareAndSwap(false, true) {
		return 0, common.ErrImportInProgress
	}
	defer s.importing.Store(false)

	f, err := codec.FormatFromPath(path)
	if err != nil {
		observe("import", err)
		return 0, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		observe("import", err)
		return 0, fmt.Errorf("error reading %s: %w", path, err)
	}

	return s.importData(ctx, data, f)
}

func (s *contactService) importData(ctx context.Context, data []byte, f codec.Format) (n int, err error) {
	defer func() { observe("import", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	contacts, err := codec.Import(data, f, codec.Stamp{Now: s.store.Now(), NewID: s.store.NewID})
	if err != nil {
		s.log.Warn(ctx, "import rejected", "format", f, "error", err)
		return 0, err
	}

	s.history.Snapshot(s.store.All())
	s.store.ReplaceAll(contacts)
	if err := s.persist(ctx); err != nil {
		return len(contacts), err
	}

	s.log.Info(ctx, "contacts imported", "format", f, "count", len(contacts))
	return len(contacts), nil
}

func (s *contactService) Backup(ctx context.Context) (b models.Backup, err error) {
	defer func() { observe("backup", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	b = models.Backup{
		Version:   models.BackupVersion,
		Timestamp: s.store.Now(),
		Contacts:  s.store.All(),
	}
	if b.Contacts == nil {
		b.Contacts = []models.Contact{}
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return models.Backup{}, fmt.Errorf("error encoding backup: %w", err)
	}
	if err := s.gw.Set(ctx, storage.KeyBackup, string(raw)); err != nil {
		return models.Backup{}, fmt.Errorf("error saving backup: %w", err)
	}

	s.log.Info(ctx, "backup created", "count", len(b.Contacts))
	return b, nil
}

func (s *contactService) HasBackup(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.gw.Get(ctx, storage.KeyBackup)
	if err != nil {
		return false, fmt.Errorf("error loading backup: %w", err)
	}
	return ok, nil
}

func (s *contactService) Restore(ctx context.Context) (n int, err error) {
	defer func() { observe("restore", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.gw.Get(ctx, storage.KeyBackup)
	if err != nil {
		return 0, fmt.Errorf("error loading backup: %w", err)
	}
	if !ok {
		return 0, fmt.Errorf("backup: %w", common.ErrNotFound)
	}

	var b models.Backup
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		return 0, fmt.Errorf("%w: backup: %v", common.ErrParse, err)
	}

	s.history.Snapshot(s.store.All())
	s.store.ReplaceAll(b.Contacts)
	if err := s.persist(ctx); err != nil {
		return len(b.Contacts), err
	}

	s.log.Info(ctx, "backup restored", "count", len(b.Contacts), "taken", b.Timestamp)
	return len(b.Contacts), nil
}

func (s *contactService) Undo(ctx context.Context) (changed bool, err error) {
	defer func() { observe("undo", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.history.Undo(s.store.All())
	if !ok {
		return false, nil
	}
	s.store.ReplaceAll(prev)
	if err := s.persist(ctx); err != nil {
		return true, err
	}

	s.log.Debug(ctx, "undo", "cursor", s.history.Cursor())
	return true, nil
}

func (s *contactService) Redo(ctx context.Context) (changed bool, err error) {
	defer func() { observe("redo", err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	next, ok := s.history.Redo()
	if !ok {
		return false, nil
	}
	s.store.ReplaceAll(next)
	if err := s.persist(ctx); err != nil {
		return true, err
	}

	s.log.Debug(ctx, "redo", "cursor", s.history.Cursor())
	return true, nil
}

func (s *contactService) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

func (s *contactService) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

func (s *contactService) Theme() models.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

func (s *contactService) ToggleTheme(ctx context.Context) (models.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.theme.Toggle()
	if err := s.gw.Set(ctx, storage.KeyTheme, next.String()); err != nil {
		return s.theme, fmt.Errorf("error saving theme: %w", err)
	}
	s.theme = next
	return next, nil
}
