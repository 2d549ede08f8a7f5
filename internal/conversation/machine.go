package conversation

import (
	"time"

	"github.com/google/uuid"

	"github.com/GautamArjun/packrat-demo/internal/availability"
	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/facility"
)

// Catalog selects a container tier for a described move.
type Catalog interface {
	TierForRoomDescription(text string) catalog.Tier
	TierForVolumeUnits(units float64) catalog.Tier
}

// FacilityDirectory resolves the facility serving a ZIP code.
type FacilityDirectory interface {
	Lookup(zip string) facility.Facility
}

// DateSource computes candidate delivery dates for a route.
type DateSource func(originZip, destZip string, today time.Time) []time.Time

// Options configures a Machine. Zero values fall back to the stock catalog,
// facility directory, availability policy and wall clock.
type Options struct {
	Catalog    Catalog
	Facilities FacilityDirectory
	Dates      DateSource
	Now        func() time.Time
	NewQuoteID func() string
	NewID      func() string
}

// Machine is the booking conversation for one customer. It is not safe for
// concurrent use; Session serializes access to it.
//
// Dispatch validates an event against the current state, records the data it
// carries and returns the Plan of replies. The state itself only moves as
// steps are applied, so a paced runner and an instant runner observe the same
// sequence.
type Machine struct {
	catalog    Catalog
	facilities FacilityDirectory
	dates      DateSource
	now        func() time.Time
	newQuoteID func() string
	newID      func() string

	state     State
	fields    Fields
	offer     *catalog.Offer
	quoteSize string
	quoteID   string
	available []time.Time
	facility  *facility.Facility
	addOns    []string
	messages  []Message
}

// NewMachine returns a machine in GREETING with an empty log.
func NewMachine(opts Options) *Machine {
	m := &Machine{
		catalog:    opts.Catalog,
		facilities: opts.Facilities,
		dates:      opts.Dates,
		now:        opts.Now,
		newQuoteID: opts.NewQuoteID,
		newID:      opts.NewID,
		state:      StateGreeting,
	}
	if m.catalog == nil {
		m.catalog = catalog.Default()
	}
	if m.facilities == nil {
		m.facilities = facility.NewDirectory()
	}
	if m.dates == nil {
		m.dates = availability.DatesFor
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newQuoteID == nil {
		m.newQuoteID = NewQuoteID
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	return m
}

// Dispatch looks up the handler for the current state and event kind. Free
// text that no state claims gets a clarifying reply; any other unexpected
// event is rejected with a *TransitionError and leaves the machine untouched.
func (m *Machine) Dispatch(ev Event) (Plan, error) {
	ev, ok := concrete(ev)
	if !ok {
		return Plan{}, &TransitionError{State: m.state}
	}
	kind := ev.Kind()
	plan := Plan{Event: kind, From: m.state}

	h, ok := transitions[m.state][kind]
	if !ok {
		if kind != EventFreeText {
			return Plan{}, &TransitionError{State: m.state, Event: kind}
		}
		h = onText((*Machine).misunderstood)
	}
	if kind == EventFreeText {
		plan.Steps = append(plan.Steps, userStep(ev.(FreeText).Text))
	}
	plan.Steps = append(plan.Steps, h(m, ev)...)
	return plan, nil
}

// Apply performs one step: the message is stamped and appended, then the
// state is entered. It returns the appended message, if any.
func (m *Machine) Apply(step Step) *Message {
	var out *Message
	if step.Message != nil {
		msg := step.Message.clone()
		msg.ID = m.newID()
		msg.Timestamp = m.now().UTC()
		m.messages = append(m.messages, msg)
		appended := msg.clone()
		out = &appended
	}
	if step.Enter != "" {
		m.state = step.Enter
	}
	return out
}

// Process dispatches the event and applies the whole plan without pacing.
func (m *Machine) Process(ev Event) (Plan, error) {
	plan, err := m.Dispatch(ev)
	if err != nil {
		return plan, err
	}
	for _, step := range plan.Steps {
		m.Apply(step)
	}
	return plan, nil
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Fields returns the collected customer details.
func (m *Machine) Fields() Fields { return m.fields }

// QuoteID returns the id minted when the offer was presented.
func (m *Machine) QuoteID() string { return m.quoteID }

// Messages returns a copy of the log.
func (m *Machine) Messages() []Message {
	out := make([]Message, len(m.messages))
	for i, msg := range m.messages {
		out[i] = msg.clone()
	}
	return out
}

// SelectedOffer returns a copy of the active offer, or nil.
func (m *Machine) SelectedOffer() *catalog.Offer {
	if m.offer == nil {
		return nil
	}
	o := m.offer.Clone()
	return &o
}

// AvailableDates returns a copy of the dates computed for the route.
func (m *Machine) AvailableDates() []time.Time {
	return append([]time.Time(nil), m.available...)
}

// Facility returns the facility assigned at ZIP submission, or nil.
func (m *Machine) Facility() *facility.Facility {
	if m.facility == nil {
		return nil
	}
	f := *m.facility
	return &f
}

// AddOns returns the chosen add-on ids.
func (m *Machine) AddOns() []string {
	return append([]string(nil), m.addOns...)
}
