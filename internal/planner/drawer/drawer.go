// Package drawer holds the bottom drawer state: its height as a fraction of
// the viewport, the resize gesture, and the note composer inside it.
package drawer

import (
	"strings"

	"github.com/google/uuid"

	"github.com/fastygo/timeblock/domain"
)

// Named states derived from the height fraction.
type State string

const (
	StateCollapsed State = "collapsed"
	StatePartial   State = "partial"
	StateFull      State = "full"
)

// Options bound the drawer. Zero fields take the defaults.
type Options struct {
	Min     float64
	Max     float64
	Initial float64
	// NudgeBelow and NudgeStep drive the one-shot grow after a note is created:
	// if the height is below NudgeBelow it grows by NudgeStep, capped at NudgeCap.
	NudgeBelow float64
	NudgeStep  float64
	NudgeCap   float64
}

func DefaultOptions() Options {
	return Options{
		Min:        0.08,
		Max:        0.9,
		Initial:    0.3,
		NudgeBelow: 0.35,
		NudgeStep:  0.1,
		NudgeCap:   0.5,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Min <= 0 {
		o.Min = d.Min
	}
	if o.Max <= 0 || o.Max > 1 {
		o.Max = d.Max
	}
	if o.Max < o.Min {
		o.Max = o.Min
	}
	if o.Initial <= 0 {
		o.Initial = d.Initial
	}
	if o.NudgeBelow <= 0 {
		o.NudgeBelow = d.NudgeBelow
	}
	if o.NudgeStep <= 0 {
		o.NudgeStep = d.NudgeStep
	}
	if o.NudgeCap <= 0 {
		o.NudgeCap = d.NudgeCap
	}
	return o
}

type Drawer struct {
	opts Options

	height   float64
	expanded float64 // height restored by Expand

	resizing    bool
	startHeight float64
	startY      float64

	composerOpen bool
	draft        domain.NoteInput
	submitKey    string
}

func New(opts Options) *Drawer {
	opts = opts.withDefaults()
	d := &Drawer{opts: opts}
	d.height = d.clamp(opts.Initial)
	d.expanded = d.height
	return d
}

// Height is the current height fraction in [Min, Max].
func (d *Drawer) Height() float64 { return d.height }

// State names the current height: collapsed at Min, full at Max, else partial.
func (d *Drawer) State() State {
	const eps = 1e-9
	switch {
	case d.height <= d.opts.Min+eps:
		return StateCollapsed
	case d.height >= d.opts.Max-eps:
		return StateFull
	default:
		return StatePartial
	}
}

// SetHeight jumps to h, clamped.
func (d *Drawer) SetHeight(h float64) {
	d.height = d.clamp(h)
	if d.State() != StateCollapsed {
		d.expanded = d.height
	}
}

// BeginResize starts a handle drag at pointer position y, measured as a
// fraction of the viewport from the top.
func (d *Drawer) BeginResize(y float64) {
	d.resizing = true
	d.startHeight = d.height
	d.startY = y
}

// ResizeTo follows the pointer. Moving up grows the drawer.
func (d *Drawer) ResizeTo(y float64) {
	if !d.resizing {
		return
	}
	d.SetHeight(d.startHeight + (d.startY - y))
}

// EndResize finishes the handle drag.
func (d *Drawer) EndResize() { d.resizing = false }

func (d *Drawer) Resizing() bool { return d.resizing }

func (d *Drawer) Collapse() {
	if d.State() != StateCollapsed {
		d.expanded = d.height
	}
	d.height = d.opts.Min
}

// Expand restores the last non-collapsed height.
func (d *Drawer) Expand() {
	h := d.expanded
	if h <= d.opts.Min {
		h = d.opts.Initial
	}
	d.height = d.clamp(h)
}

func (d *Drawer) Toggle() {
	if d.State() == StateCollapsed {
		d.Expand()
		return
	}
	d.Collapse()
}

// NoteCreated applies the one-shot grow nudge. It reports whether the height changed.
func (d *Drawer) NoteCreated() bool {
	if d.height >= d.opts.NudgeBelow {
		return false
	}
	target := d.height + d.opts.NudgeStep
	if target > d.opts.NudgeCap {
		target = d.opts.NudgeCap
	}
	if target <= d.height {
		return false
	}
	d.SetHeight(target)
	return true
}

// OpenComposer shows the composer. Opening from collapsed also expands.
// The composer keeps one submission key until it is closed, so a resubmit
// of the same draft is recognised as a duplicate.
func (d *Drawer) OpenComposer() {
	d.composerOpen = true
	if d.submitKey == "" {
		d.submitKey = uuid.NewString()
	}
	if d.State() == StateCollapsed {
		d.Expand()
	}
}

// CloseComposer hides the composer and discards the draft and its
// submission key.
func (d *Drawer) CloseComposer() {
	d.composerOpen = false
	d.draft = domain.NoteInput{}
	d.submitKey = ""
}

// SubmissionKey identifies the current composer session. It is empty while
// the composer is closed.
func (d *Drawer) SubmissionKey() string { return d.submitKey }

func (d *Drawer) ComposerOpen() bool { return d.composerOpen }

// SetDraft replaces the composer contents.
func (d *Drawer) SetDraft(in domain.NoteInput) { d.draft = in }

// Draft returns the composer contents ready to submit, or a ValidationError
// when the title is blank. Nothing is sent anywhere.
func (d *Drawer) Draft() (domain.NoteInput, error) {
	in := d.draft
	in.Title = strings.TrimSpace(in.Title)
	if in.Description != nil {
		desc := strings.TrimSpace(*in.Description)
		if desc == "" {
			in.Description = nil
		} else {
			in.Description = &desc
		}
	}
	if err := in.Validate(); err != nil {
		return domain.NoteInput{}, err
	}
	return in, nil
}

func (d *Drawer) clamp(h float64) float64 {
	if h < d.opts.Min {
		return d.opts.Min
	}
	if h > d.opts.Max {
		return d.opts.Max
	}
	return h
}
