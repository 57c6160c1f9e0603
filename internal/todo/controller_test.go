package todo

import (
	"fmt"
	"testing"
)

func newTestController(opts ...Option) *Controller {
	opts = append([]Option{WithIDGenerator(&CounterGenerator{})}, opts...)
	return NewController(opts...)
}

func add(t *testing.T, c *Controller, text string) string {
	t.Helper()
	c.UpdateDraft(text)
	before := c.Len()
	c.Submit()
	if c.Len() != before+1 {
		t.Fatalf("submit %q: expected len %d, got %d", text, before+1, c.Len())
	}
	it, _ := c.Item(c.Len() - 1)
	return it.ID
}

func TestInitialState(t *testing.T) {
	c := NewController()
	st := c.State()
	if st.Draft != "" || st.SubmitEnabled || st.ShowWarning || st.Focused {
		t.Fatalf("unexpected initial state: %+v", st)
	}
	if c.Len() != 0 {
		t.Fatalf("expected no items, got %d", c.Len())
	}
	if c.Policy() != WarnLive {
		t.Fatalf("expected live policy by default, got %q", c.Policy())
	}
}

func TestUpdateDraftNonBlankEnablesSubmit(t *testing.T) {
	for _, s := range []string{"a", "todo item", "  padded  ", "\tx\n", "ü"} {
		c := newTestController()
		c.UpdateDraft("   ") // raise the warning first
		c.UpdateDraft(s)
		if !c.SubmitEnabled() {
			t.Fatalf("%q: expected submit enabled", s)
		}
		if c.ShowWarning() {
			t.Fatalf("%q: expected no warning", s)
		}
		if c.Draft() != s {
			t.Fatalf("draft not stored verbatim: want %q, got %q", s, c.Draft())
		}
	}
}

func TestUpdateDraftBlankDisablesAndWarns(t *testing.T) {
	for _, s := range []string{"", " ", "   ", "\t\n", " "} {
		c := newTestController()
		c.UpdateDraft("something")
		c.UpdateDraft(s)
		if c.SubmitEnabled() {
			t.Fatalf("%q: expected submit disabled", s)
		}
		if !c.ShowWarning() {
			t.Fatalf("%q: expected warning under live policy", s)
		}
	}
}

func TestSubmitBlankIsNoop(t *testing.T) {
	c := newTestController()
	c.Submit()
	c.UpdateDraft("   ")
	c.Submit()
	if c.Len() != 0 {
		t.Fatalf("expected no items, got %d", c.Len())
	}
	if c.Draft() != "   " {
		t.Fatalf("rejected submit must not touch the draft, got %q", c.Draft())
	}
	if !c.ShowWarning() {
		t.Fatalf("rejected submit must not clear the warning")
	}
}

func TestSubmitAppendsAndResets(t *testing.T) {
	c := newTestController()
	c.UpdateDraft("todo item")
	c.Submit()

	if c.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", c.Len())
	}
	it, _ := c.Item(0)
	if it.Text != "todo item" || it.Completed {
		t.Fatalf("unexpected item: %+v", it)
	}
	if it.ID == "" {
		t.Fatalf("expected an id")
	}
	if c.Draft() != "" || c.SubmitEnabled() || c.ShowWarning() {
		t.Fatalf("expected reset input state, got %+v", c.State())
	}
	if !c.Focused() {
		t.Fatalf("expected entry field focus after submit")
	}
}

func TestSubmitKeepsUntrimmedText(t *testing.T) {
	c := newTestController()
	c.UpdateDraft("  milk  ")
	c.Submit()
	it, _ := c.Item(0)
	if it.Text != "  milk  " {
		t.Fatalf("expected raw draft as text, got %q", it.Text)
	}
}

func TestSubmitAppendsAtEnd(t *testing.T) {
	c := newTestController()
	for _, s := range []string{"a", "b", "c"} {
		add(t, c, s)
	}
	var got []string
	for _, it := range c.Items() {
		got = append(got, it.Text)
	}
	if fmt.Sprint(got) != "[a b c]" {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestToggleFlipsOnlyTarget(t *testing.T) {
	c := newTestController()
	a := add(t, c, "A")
	b := add(t, c, "B")

	c.ToggleCompletion(a)
	ia, _ := c.Item(0)
	ib, _ := c.Item(1)
	if !ia.Completed || ib.Completed {
		t.Fatalf("expected only A completed, got %+v %+v", ia, ib)
	}
	if ia.Text != "A" || ia.ID != a || ib.ID != b {
		t.Fatalf("toggle must not touch other fields: %+v %+v", ia, ib)
	}

	c.ToggleCompletion(a)
	ia, _ = c.Item(0)
	if ia.Completed {
		t.Fatalf("second toggle should restore false")
	}
}

func TestToggleUnknownIsNoop(t *testing.T) {
	c := newTestController()
	add(t, c, "A")
	before := c.State()
	c.ToggleCompletion("nope")
	after := c.State()
	if fmt.Sprint(before) != fmt.Sprint(after) {
		t.Fatalf("state changed: %+v -> %+v", before, after)
	}
}

func TestRemoveExcludesTargetAndPreservesOrder(t *testing.T) {
	c := newTestController()
	a := add(t, c, "A")
	b := add(t, c, "B")
	cc := add(t, c, "C")

	c.Remove(b)
	items := c.Items()
	if len(items) != 2 || items[0].ID != a || items[1].ID != cc {
		t.Fatalf("unexpected items after remove: %+v", items)
	}

	c.Remove(b)
	if c.Len() != 2 {
		t.Fatalf("second remove should be a no-op, got len %d", c.Len())
	}
}

func TestIDsAreUnique(t *testing.T) {
	for name, gen := range map[string]IDGenerator{
		"uuid":    UUIDGenerator{},
		"counter": &CounterGenerator{Prefix: "t"},
	} {
		t.Run(name, func(t *testing.T) {
			c := NewController(WithIDGenerator(gen))
			seen := map[string]bool{}
			for i := 0; i < 200; i++ {
				id := add(t, c, fmt.Sprintf("item %d", i))
				if seen[id] {
					t.Fatalf("duplicate id %q", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestStateIsSnapshot(t *testing.T) {
	c := newTestController()
	id := add(t, c, "A")
	st := c.State()
	c.ToggleCompletion(id)
	if st.Items[0].Completed {
		t.Fatalf("snapshot changed after toggle")
	}
	st.Items[0].Text = "mutated"
	it, _ := c.Item(0)
	if it.Text != "A" {
		t.Fatalf("controller changed through snapshot")
	}
}

func TestBlurPolicy(t *testing.T) {
	c := newTestController(WithWarningPolicy(WarnOnBlur))

	c.Focus()
	c.UpdateDraft("   ")
	if c.ShowWarning() {
		t.Fatalf("blur policy: typing blank must not warn")
	}
	if c.SubmitEnabled() {
		t.Fatalf("blank draft must disable submit")
	}
	c.Blur()
	if !c.ShowWarning() {
		t.Fatalf("blur policy: blank blur must warn")
	}
	c.Focus()
	if c.ShowWarning() {
		t.Fatalf("blur policy: focus must clear the warning")
	}
	c.Blur()
	c.UpdateDraft("x")
	if c.ShowWarning() {
		t.Fatalf("non-blank draft must clear the warning")
	}
	c.Blur()
	if c.ShowWarning() {
		t.Fatalf("non-blank blur must not warn")
	}
}

func TestLivePolicyIgnoresBlur(t *testing.T) {
	c := newTestController()
	c.Focus()
	c.Blur()
	if c.ShowWarning() {
		t.Fatalf("live policy: blur alone must not warn")
	}
	if c.Focused() {
		t.Fatalf("expected unfocused after blur")
	}
	c.UpdateDraft("")
	c.Focus()
	if !c.ShowWarning() {
		t.Fatalf("live policy: focus must keep the warning")
	}
}

func TestParseWarningPolicy(t *testing.T) {
	cases := map[string]WarningPolicy{"": WarnLive, "live": WarnLive, " BLUR ": WarnOnBlur}
	for in, want := range cases {
		got, err := ParseWarningPolicy(in)
		if err != nil || got != want {
			t.Fatalf("%q: got %q, %v", in, got, err)
		}
	}
	if _, err := ParseWarningPolicy("sometimes"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestObserverEvents(t *testing.T) {
	var events []Event
	c := newTestController(WithObserver(ObserverFunc(func(e Event) { events = append(events, e) })))

	c.Submit()
	id := add(t, c, "A")
	c.ToggleCompletion(id)
	c.ToggleCompletion("missing")
	c.Remove("missing")
	c.Remove(id)

	want := []EventKind{EventSubmitRejected, EventSubmitted, EventToggled, EventRemoved}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %+v", len(want), events)
	}
	for i, k := range want {
		if events[i].Kind != k {
			t.Fatalf("event %d: want %s, got %s", i, k, events[i].Kind)
		}
	}
	if !events[2].Completed || events[2].ItemID != id {
		t.Fatalf("unexpected toggle event: %+v", events[2])
	}
}
