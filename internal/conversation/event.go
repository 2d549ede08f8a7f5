package conversation

// EventKind names an input event.
type EventKind string

const (
	EventStart              EventKind = "start"
	EventFreeText           EventKind = "free_text"
	EventZipSubmitted       EventKind = "zip_submitted"
	EventOfferSelected      EventKind = "offer_selected"
	EventInventoryCompleted EventKind = "inventory_completed"
	EventAddOnsCompleted    EventKind = "addons_completed"
	EventContactSubmitted   EventKind = "contact_submitted"
)

// Event is an input to the state machine. The concrete types below are the
// only implementations.
type Event interface {
	Kind() EventKind
}

// Started opens the conversation and triggers the greeting.
type Started struct{}

// FreeText is a typed chat message.
type FreeText struct {
	Text string
}

// ZipSubmitted carries the route from the ZIP form.
type ZipSubmitted struct {
	Origin      string
	Destination string
}

// OfferSelected is sent when the customer accepts the presented offer. The
// id is informational; a conversation has a single active offer.
type OfferSelected struct {
	OfferID string
}

// InventoryCompleted is the result of the inventory estimator.
type InventoryCompleted struct {
	Recommendation string
	TotalUnits     float64
}

// AddOnsCompleted carries the ids chosen in the add-on picker, possibly none.
type AddOnsCompleted struct {
	AddOnIDs []string
}

// ContactSubmitted carries the contact form.
type ContactSubmitted struct {
	Name  string
	Email string
	Phone string
}

func (Started) Kind() EventKind            { return EventStart }
func (FreeText) Kind() EventKind           { return EventFreeText }
func (ZipSubmitted) Kind() EventKind       { return EventZipSubmitted }
func (OfferSelected) Kind() EventKind      { return EventOfferSelected }
func (InventoryCompleted) Kind() EventKind { return EventInventoryCompleted }
func (AddOnsCompleted) Kind() EventKind    { return EventAddOnsCompleted }
func (ContactSubmitted) Kind() EventKind   { return EventContactSubmitted }

// concrete resolves pointer forms to their values. It reports false for nil
// events and types outside this package.
func concrete(ev Event) (Event, bool) {
	switch e := ev.(type) {
	case Started, FreeText, ZipSubmitted, OfferSelected, InventoryCompleted, AddOnsCompleted, ContactSubmitted:
		return e, true
	case *Started:
		if e != nil {
			return *e, true
		}
	case *FreeText:
		if e != nil {
			return *e, true
		}
	case *ZipSubmitted:
		if e != nil {
			return *e, true
		}
	case *OfferSelected:
		if e != nil {
			return *e, true
		}
	case *InventoryCompleted:
		if e != nil {
			return *e, true
		}
	case *AddOnsCompleted:
		if e != nil {
			return *e, true
		}
	case *ContactSubmitted:
		if e != nil {
			return *e, true
		}
	}
	return nil, false
}
