// Package engine holds the birthday book fed by the date entry and converts it
// to and from vCard and iCalendar.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-dateentry/internal/config"
	"github.com/tartampluch/go-dateentry/internal/segment"
)

// SummaryFunc renders the title of a birthday event. age is 0 for the year of birth.
type SummaryFunc func(name string, age int) string

// ReadVCards decodes a vCard stream. Cards without a name fall back to
// config.FallbackName; cards without a full birth date are skipped.
// A malformed card is logged and skipped; the import stops after
// config.MaxDecodeErrors malformed cards in a row.
func ReadVCards(ctx context.Context, r io.Reader) ([]Contact, error) {
	start := time.Now()
	decoder := vcard.NewDecoder(r)
	stats := struct{ processed, found, failed int }{}
	var contacts []Contact

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.failed++
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			if stats.failed >= config.MaxDecodeErrors {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			continue
		}
		stats.failed = 0
		stats.processed++

		bday := card.Value(config.VCardBDAY)
		dob, ok := segment.ParseValue(bday)
		if !ok {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday)
			continue
		}
		stats.found++

		name := cardName(card)
		uid := card.Value(config.VCardUID)
		if uid == "" {
			uid = NewUID(name, dob)
		}
		contacts = append(contacts, Contact{UID: uid, Name: name, DateOfBirth: dob})
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyDuration, time.Since(start).Milliseconds(),
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.found),
		),
	)
	return contacts, nil
}

// cardName picks FN, then the structured N, then the fallback.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.Value(config.VCardFN)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		if full := strings.TrimSpace(n.GivenName + " " + n.FamilyName); full != "" {
			return full
		}
	}
	return config.FallbackName
}

// WriteVCards encodes one vCard 4.0 per contact.
func WriteVCards(w io.Writer, contacts []Contact) error {
	enc := vcard.NewEncoder(w)
	for _, c := range contacts {
		card := make(vcard.Card)
		card.SetValue(config.VCardField, config.VCardVersion)
		card.SetValue(config.VCardFN, c.Name)
		card.SetValue(config.VCardUID, c.UID)
		card.SetValue(config.VCardBDAY, c.DateOfBirth.Format(config.DateFormatVCard))

		if err := enc.Encode(card); err != nil {
			return fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, len(contacts),
	)
	return nil
}

// WriteCalendar writes an iCalendar feed with one all-day event per contact
// for the previous, current and next year relative to now.
func WriteCalendar(ctx context.Context, w io.Writer, contacts []Contact, now time.Time, summary SummaryFunc) error {
	if summary == nil {
		summary = defaultSummary
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, c := range contacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, e := range createEvents(c, now, summary) {
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	// An empty VCALENDAR is rejected by the encoder; write the stub instead.
	if len(cal.Children) == 0 {
		if _, err := io.WriteString(w, config.StubVCalendar); err != nil {
			return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
		}
		logCalendar(len(contacts), 0)
		return nil
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	logCalendar(len(contacts), len(cal.Children))
	return nil
}

func logCalendar(total, events int) {
	slog.Info(config.MsgCalendarWritten,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, total),
			slog.Int(config.LogKeyFound, events),
		),
	)
}

func defaultSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryBirth, name)
	}
	return fmt.Sprintf(config.FallbackSummaryAge, name, age)
}

// calculateNextOccurrence determines the next birthday date relative to 'now'.
// A birthday falling on today counts as the next occurrence.
func calculateNextOccurrence(now time.Time, birthDate time.Time) (time.Time, int) {
	currentYear := now.Year()
	loc := now.Location()

	// Go's time.Date normalizes Feb 29 to March 1st if currentYear is not a leap year.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}
	return candidate, candidate.Year() - birthDate.Year()
}

// createEvents generates calendar events for CurrentYear-1, CurrentYear, and CurrentYear+1.
// No event is created before the person is born.
func createEvents(c Contact, now time.Time, summary SummaryFunc) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}

	var events []*ical.Event
	for _, y := range targetYears {
		age := y - c.DateOfBirth.Year()
		if age < 0 {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, c.UID, y, config.ICalDomain))
		event.Props.SetText(config.PropSummary, summary(c.Name, age))

		eventDate := time.Date(y, c.DateOfBirth.Month(), c.DateOfBirth.Day(), 0, 0, 0, 0, time.UTC)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		events = append(events, event)
	}
	return events
}
