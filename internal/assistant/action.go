// Package assistant turns replies from a natural-language assistant into
// timetable operations. Every action goes through the same validated store
// API as manual input.
package assistant

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
	"github.com/yamkelajack06/Study-Flow/internal/schedule"
)

// Kind names what an action does.
type Kind string

const (
	KindAdd            Kind = "add"
	KindUpdate         Kind = "update"
	KindDelete         Kind = "delete"
	KindView           Kind = "view"
	KindAddMultiple    Kind = "add_multiple"
	KindDeleteMultiple Kind = "delete_multiple"
)

func (k Kind) valid() bool {
	switch k {
	case KindAdd, KindUpdate, KindDelete, KindView, KindAddMultiple, KindDeleteMultiple:
		return true
	}
	return false
}

var (
	// ErrConversational means the reply holds no action. Show it as text.
	ErrConversational = errors.New("reply is not an action")
	// ErrInvalidAction means the reply is an action that cannot be applied.
	ErrInvalidAction = errors.New("invalid assistant action")
)

// Action is one operation requested by the assistant. Single-entry actions
// carry the entry fields inline; batch actions list them in Entries.
type Action struct {
	Kind Kind `json:"action"`
	entry.Record
	Error   bool           `json:"error,omitempty"`
	Entries []entry.Record `json:"entries,omitempty"`
}

var (
	codeFence  = regexp.MustCompile("```(?:json)?\\s*")
	jsonObject = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseAction extracts an action from an assistant reply. Markdown fences
// and text around the JSON object are ignored.
func ParseAction(text string) (Action, error) {
	cleaned := strings.TrimSpace(codeFence.ReplaceAllString(strings.TrimSpace(text), ""))
	if cleaned == "" {
		return Action{}, ErrConversational
	}

	var a Action
	if err := json.Unmarshal([]byte(cleaned), &a); err != nil {
		m := jsonObject.FindString(cleaned)
		if m == "" {
			return Action{}, ErrConversational
		}
		a = Action{}
		if err := json.Unmarshal([]byte(m), &a); err != nil {
			return Action{}, ErrConversational
		}
	}
	a.Kind = Kind(strings.ToLower(strings.TrimSpace(string(a.Kind))))
	if !a.Kind.valid() {
		return Action{}, ErrConversational
	}

	if a.Error {
		msg := strings.TrimSpace(a.Notes)
		if msg == "" {
			msg = "the assistant could not complete the request"
		}
		return Action{}, fmt.Errorf("%w: %s", ErrInvalidAction, msg)
	}

	switch a.Kind {
	case KindAdd:
		r, err := completeRecord(a.Record)
		if err != nil {
			return Action{}, err
		}
		a.Record = r
	case KindUpdate:
		if !usableID(a.ID) {
			return Action{}, fmt.Errorf("%w: update needs the id of an existing entry", ErrInvalidAction)
		}
		r, err := completeRecord(a.Record)
		if err != nil {
			return Action{}, err
		}
		a.Record = r
	case KindDelete:
		if !usableID(a.ID) {
			return Action{}, fmt.Errorf("%w: no valid id for that entry, try again or delete it manually", ErrInvalidAction)
		}
	case KindAddMultiple:
		kept := a.Entries[:0]
		for _, r := range a.Entries {
			if c, err := completeRecord(r); err == nil {
				kept = append(kept, c)
			}
		}
		a.Entries = kept
	case KindDeleteMultiple:
		kept := a.Entries[:0]
		for _, r := range a.Entries {
			if usableID(r.ID) {
				kept = append(kept, r)
			}
		}
		if len(kept) == 0 {
			return Action{}, fmt.Errorf("%w: no valid ids for those entries, refresh and ask again", ErrInvalidAction)
		}
		a.Entries = kept
	}
	return a, nil
}

func usableID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && !strings.EqualFold(id, "N/A")
}

// completeRecord fills the fields an assistant commonly leaves out: the
// weekday of a one-time date and the weekly default recurrence.
func completeRecord(r entry.Record) (entry.Record, error) {
	switch entry.Kind(strings.ToLower(strings.TrimSpace(r.Type))) {
	case entry.KindOnce:
		if strings.TrimSpace(r.Date) == "" {
			return r, fmt.Errorf("%w: one-time entries require a date", ErrInvalidAction)
		}
		if r.Day == "" {
			d, err := schedule.ParseCalendarDate(r.Date)
			if err != nil {
				return r, fmt.Errorf("%w: %v", ErrInvalidAction, err)
			}
			r.Day = d.Weekday().String()
		}
		r.Type = string(entry.KindOnce)
		r.Recurrence = "none"
	default:
		if strings.TrimSpace(r.Day) == "" {
			return r, fmt.Errorf("%w: recurring entries require a day", ErrInvalidAction)
		}
		if r.Recurrence == "" {
			r.Recurrence = string(schedule.Weekly)
		}
		r.Type = string(entry.KindRecurring)
	}
	return r, nil
}
