// Package todo holds the to-do list controller: the draft entry state, its
// validation flags and the ordered item collection.
//
// Every operation runs synchronously to completion and none of them fail.
// Blank submissions and unknown ids are absorbed as no-ops. A Controller is
// not safe for concurrent use; callers that share one (the web server) must
// serialize access themselves.
package todo

import (
	"fmt"
	"strings"

	"github.com/idilsaglam/todo-screen/internal/model"
)

// WarningPolicy decides when the blank-input warning is raised.
type WarningPolicy string

const (
	// WarnLive raises the warning on every draft update that leaves the
	// draft blank. It is the default.
	WarnLive WarningPolicy = "live"
	// WarnOnBlur raises the warning only when the entry field loses focus
	// with a blank draft, and clears it when the field regains focus.
	WarnOnBlur WarningPolicy = "blur"
)

// ParseWarningPolicy accepts "live" or "blur" (case-insensitive).
func ParseWarningPolicy(s string) (WarningPolicy, error) {
	switch p := WarningPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case WarnLive, WarnOnBlur:
		return p, nil
	case "":
		return WarnLive, nil
	default:
		return "", fmt.Errorf("unknown warning policy %q (expected live|blur)", s)
	}
}

// EventKind names a state transition reported to an Observer.
type EventKind string

const (
	// EventSubmitted follows a submit that appended an item.
	EventSubmitted EventKind = "submitted"
	// EventSubmitRejected follows a submit ignored for a blank draft.
	EventSubmitRejected EventKind = "submit_rejected"
	// EventToggled follows a completion flip; Event.Completed is the new value.
	EventToggled EventKind = "toggled"
	// EventRemoved follows the removal of an item.
	EventRemoved EventKind = "removed"
)

// Event describes one applied transition. ItemID is empty for rejected submits.
type Event struct {
	Kind      EventKind
	ItemID    string
	Completed bool
}

// Observer receives events after the state change has been applied.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

// State is an immutable snapshot of a Controller.
type State struct {
	Draft         string
	SubmitEnabled bool
	ShowWarning   bool
	Focused       bool
	Items         []model.Item
}

// Controller owns the draft input state and the item collection.
type Controller struct {
	draft         string
	submitEnabled bool
	showWarning   bool
	focused       bool
	items         []model.Item

	policy   WarningPolicy
	ids      IDGenerator
	observer Observer
}

// Option configures a Controller.
type Option func(*Controller)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(c *Controller) {
		if g != nil {
			c.ids = g
		}
	}
}

// WithWarningPolicy selects when the blank warning is raised.
func WithWarningPolicy(p WarningPolicy) Option {
	return func(c *Controller) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithObserver registers a transition observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// NewController returns a controller in its initial state: empty draft,
// submit disabled, no warning, no items.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		policy: WarnLive,
		ids:    UUIDGenerator{},
		items:  []model.Item{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

// UpdateDraft stores text verbatim and recomputes the derived flags.
func (c *Controller) UpdateDraft(text string) {
	c.draft = text
	if !isBlank(text) {
		c.showWarning = false
		c.submitEnabled = true
		return
	}
	c.submitEnabled = false
	if c.policy == WarnLive {
		c.showWarning = true
	}
}

// Submit turns a non-blank draft into a new item appended to the list.
// The stored text is the raw draft, not the trimmed one.
func (c *Controller) Submit() {
	if isBlank(c.draft) {
		c.emit(Event{Kind: EventSubmitRejected})
		return
	}
	it := model.Item{
		ID:   c.ids.NewID(),
		Text: c.draft,
	}
	c.items = append(c.items, it)
	c.draft = ""
	c.submitEnabled = false
	c.showWarning = false
	c.focused = true
	c.emit(Event{Kind: EventSubmitted, ItemID: it.ID})
}

// ToggleCompletion flips the completed flag of the item with the given id.
func (c *Controller) ToggleCompletion(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Completed = !c.items[i].Completed
			c.emit(Event{Kind: EventToggled, ItemID: id, Completed: c.items[i].Completed})
			return
		}
	}
}

// Remove drops the item with the given id, keeping the others in order.
func (c *Controller) Remove(id string) {
	out := make([]model.Item, 0, len(c.items))
	removed := false
	for _, it := range c.items {
		if it.ID == id {
			removed = true
			continue
		}
		out = append(out, it)
	}
	if !removed {
		return
	}
	c.items = out
	c.emit(Event{Kind: EventRemoved, ItemID: id})
}

// Focus marks the entry field as focused. Under WarnOnBlur it also clears
// the warning.
func (c *Controller) Focus() {
	c.focused = true
	if c.policy == WarnOnBlur {
		c.showWarning = false
	}
}

// Blur marks the entry field as unfocused. Under WarnOnBlur a blank draft
// raises the warning.
func (c *Controller) Blur() {
	c.focused = false
	if c.policy == WarnOnBlur && isBlank(c.draft) {
		c.showWarning = true
	}
}

// Draft returns the entry text exactly as last set.
func (c *Controller) Draft() string { return c.draft }

// SubmitEnabled reports whether the draft is non-blank after trimming.
func (c *Controller) SubmitEnabled() bool { return c.submitEnabled }

// ShowWarning reports whether the blank-input warning is showing.
func (c *Controller) ShowWarning() bool { return c.showWarning }

// Focused reports whether the entry field has focus.
func (c *Controller) Focused() bool { return c.focused }

// Len returns the number of items.
func (c *Controller) Len() int { return len(c.items) }

// Policy returns the warning policy the controller was built with.
func (c *Controller) Policy() WarningPolicy { return c.policy }

// Items returns a copy of the items in render order.
func (c *Controller) Items() []model.Item { return append([]model.Item(nil), c.items...) }

// Item returns the item at position i in render order.
func (c *Controller) Item(i int) (model.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return model.Item{}, false
	}
	return c.items[i], true
}

// State returns a snapshot that later transitions do not affect.
func (c *Controller) State() State {
	return State{
		Draft:         c.draft,
		SubmitEnabled: c.submitEnabled,
		ShowWarning:   c.showWarning,
		Focused:       c.focused,
		Items:         c.Items(),
	}
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer.Observe(e)
	}
}
