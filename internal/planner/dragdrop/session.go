// Package dragdrop models a drag gesture: what is being dragged, which drop
// zones are highlighted and how a drop is decoded and handed to a callback.
package dragdrop

import (
	"context"
	"encoding/json"
	"errors"
	"sort"

	"github.com/fastygo/timeblock/domain"
)

// MIMEType is the data type a Transfer carries.
const MIMEType = "application/x-timeblock-drag+json"

var (
	// ErrLocked is returned when dragging a completed note.
	ErrLocked = errors.New("dragdrop: completed notes cannot be dragged")
	// ErrBusy is returned when a drag starts while another is active.
	ErrBusy = errors.New("dragdrop: a drag is already in progress")
)

type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	if s == StateDragging {
		return "dragging"
	}
	return "idle"
}

// Transfer is the data attached to a drag, as a drop event would deliver it.
type Transfer struct {
	Type string
	Data []byte
}

// Handler decides what a drop does. The session never mutates anything itself.
type Handler func(ctx context.Context, payload Payload, zone Zone) error

type Session struct {
	state       State
	active      *Payload
	highlighted map[string]Zone
}

func NewSession() *Session {
	return &Session{highlighted: make(map[string]Zone)}
}

func (s *Session) State() State { return s.state }

// Active returns the payload being dragged.
func (s *Session) Active() (Payload, bool) {
	if s.active == nil {
		return Payload{}, false
	}
	return *s.active, true
}

// Start begins dragging p and returns the transfer data for the drag event.
func (s *Session) Start(p Payload) (Transfer, error) {
	if s.state == StateDragging {
		return Transfer{}, ErrBusy
	}
	if err := p.Validate(); err != nil {
		return Transfer{}, err
	}
	if p.Kind == KindNote && p.Note.IsCompleted() {
		return Transfer{}, ErrLocked
	}
	data, err := json.Marshal(p)
	if err != nil {
		return Transfer{}, domain.WrapError(domain.ErrCodeInvalid, "drag payload", err)
	}
	s.state = StateDragging
	s.active = &p
	return Transfer{Type: MIMEType, Data: data}, nil
}

// Enter highlights zone. It is ignored unless a drag is active.
func (s *Session) Enter(zone Zone) {
	if s.state != StateDragging {
		return
	}
	s.highlighted[zone.Key()] = zone
}

// Leave removes the highlight from zone.
func (s *Session) Leave(zone Zone) {
	delete(s.highlighted, zone.Key())
}

func (s *Session) IsHighlighted(zone Zone) bool {
	_, ok := s.highlighted[zone.Key()]
	return ok
}

// Highlighted returns the highlighted zone keys in sorted order.
func (s *Session) Highlighted() []string {
	keys := make([]string, 0, len(s.highlighted))
	for k := range s.highlighted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cancel ends the drag without a drop.
func (s *Session) Cancel() {
	s.reset()
}

// Drop decodes the payload from t and calls handler with it. Whatever the
// outcome the session is idle and nothing is highlighted afterwards. A
// missing or malformed payload is an INVALID domain error.
func (s *Session) Drop(ctx context.Context, zone Zone, t Transfer, handler Handler) error {
	defer s.reset()

	payload, err := Decode(t)
	if err != nil {
		return err
	}
	if err := zone.Validate(); err != nil {
		return err
	}
	if handler == nil {
		return nil
	}
	return handler(ctx, payload, zone)
}

// Decode extracts a payload from transfer data.
func Decode(t Transfer) (Payload, error) {
	if len(t.Data) == 0 {
		return Payload{}, domain.Invalid("drop: missing payload")
	}
	if t.Type != "" && t.Type != MIMEType {
		return Payload{}, domain.Invalid("drop: unsupported data type %q", t.Type)
	}
	var p Payload
	if err := json.Unmarshal(t.Data, &p); err != nil {
		return Payload{}, domain.WrapError(domain.ErrCodeInvalid, "drop: malformed payload", err)
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

func (s *Session) reset() {
	s.state = StateIdle
	s.active = nil
	for k := range s.highlighted {
		delete(s.highlighted, k)
	}
}
