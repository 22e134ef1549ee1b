package engine

import (
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

var (
	ErrNameEmpty   = errors.New(config.ErrNameEmpty)
	ErrDateInvalid = errors.New(config.ErrDateInvalid)
)

var uidNamespace = uuid.MustParse(config.UIDNamespace)

// Contact is one person in the birthday book.
type Contact struct {
	// UID is stable across imports and exports of the same person.
	UID string

	Name string

	// DateOfBirth is a calendar day at UTC midnight.
	DateOfBirth time.Time
}

// BirthdayEntry represents a lightweight contact record optimized for UI display.
type BirthdayEntry struct {
	UID         string
	Name        string
	DateOfBirth time.Time

	// NextOccurrence is the calculated date of the birthday for the current or next year.
	// This is the primary sorting key for the "Upcoming Birthdays" view.
	NextOccurrence time.Time

	// AgeNext is the age the person will turn at NextOccurrence.
	AgeNext int
}

// NewUID derives a deterministic UUIDv5 from a name and a birth date, so the
// same person gets the same UID on every machine.
func NewUID(name string, dob time.Time) string {
	seed := strings.ToLower(strings.TrimSpace(name)) + "|" + dob.Format(config.DateFormatFullDash)
	return uuid.NewSHA1(uidNamespace, []byte(seed)).String()
}

// Book is the in-memory contact list fed by the date entry. It is safe for
// concurrent use: the table reads it while the form writes it.
type Book struct {
	Clock segment.Clock

	mu       sync.RWMutex
	contacts []Contact
}

// NewBook returns an empty book. A nil clock uses the system time.
func NewBook(clock segment.Clock) *Book {
	if clock == nil {
		clock = segment.RealClock{}
	}
	return &Book{Clock: clock}
}

// Add validates and stores a contact. Adding the same name and date twice
// replaces the first entry.
func (b *Book) Add(name string, dob time.Time) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, ErrNameEmpty
	}
	day, ok := segment.ParseValue(dob)
	if !ok {
		return Contact{}, ErrDateInvalid
	}

	c := Contact{UID: NewUID(name, day), Name: name, DateOfBirth: day}

	b.mu.Lock()
	b.upsert(c)
	b.mu.Unlock()

	slog.Info(config.MsgContactAdded,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyName, name,
		config.LogKeyDate, day.Format(config.DateFormatFullDash),
	)
	return c, nil
}

// Import merges contacts read from a vCard stream and returns how many were
// stored. Contacts without a name or date are skipped.
func (b *Book) Import(contacts []Contact) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, c := range contacts {
		if c.Name == "" || c.DateOfBirth.IsZero() {
			continue
		}
		if c.UID == "" {
			c.UID = NewUID(c.Name, c.DateOfBirth)
		}
		b.upsert(c)
		n++
	}
	return n
}

func (b *Book) upsert(c Contact) {
	i := slices.IndexFunc(b.contacts, func(o Contact) bool { return o.UID == c.UID })
	if i >= 0 {
		b.contacts[i] = c
		return
	}
	b.contacts = append(b.contacts, c)
}

// Contacts returns a copy of the stored contacts in insertion order.
func (b *Book) Contacts() []Contact {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.contacts)
}

// Len returns the number of stored contacts.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.contacts)
}

// Entries projects the book for display, soonest birthday first.
func (b *Book) Entries() []BirthdayEntry {
	now := b.Clock.Now()
	contacts := b.Contacts()

	entries := make([]BirthdayEntry, 0, len(contacts))
	for _, c := range contacts {
		next, age := calculateNextOccurrence(now, c.DateOfBirth)
		entries = append(entries, BirthdayEntry{
			UID:            c.UID,
			Name:           c.Name,
			DateOfBirth:    c.DateOfBirth,
			NextOccurrence: next,
			AgeNext:        age,
		})
	}

	slices.SortStableFunc(entries, func(a, b BirthdayEntry) int {
		if c := a.NextOccurrence.Compare(b.NextOccurrence); c != 0 {
			return c
		}
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return entries
}
