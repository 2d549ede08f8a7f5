package conversation

import (
	"strings"
	"time"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
)

type handler func(m *Machine, ev Event) []Step

// transitions is the full (state, event) table. Free text in a state with no
// entry falls back to misunderstood; every other missing pair is rejected.
var transitions = map[State]map[EventKind]handler{
	StateGreeting: {
		EventStart: (*Machine).greet,
	},
	StateReadyToStart: {
		EventFreeText: onText((*Machine).readyToStart),
	},
	StateAskZip: {
		EventZipSubmitted: (*Machine).zipSubmitted,
	},
	StateConfirmDatePicker: {
		EventFreeText: onText((*Machine).showDatePicker),
	},
	StateAskDate: {
		EventFreeText: onText((*Machine).recordDate),
	},
	StateAskSizeMethod: {
		EventFreeText: onText((*Machine).chooseSizeMethod),
	},
	StateAskInventory: {
		EventInventoryCompleted: (*Machine).inventoryCompleted,
	},
	StateAskSize: {
		EventFreeText: onText((*Machine).recordSize),
	},
	StateConfirmQuote: {
		EventFreeText: onText((*Machine).revealQuote),
	},
	StateOfferPresented: {
		EventFreeText:      onText((*Machine).reassureOffer),
		EventOfferSelected: (*Machine).offerSelected,
	},
	StateConfirmAddOns: {
		EventFreeText: onText((*Machine).decideAddOns),
	},
	StateAskAddOns: {
		EventFreeText:        onText((*Machine).pointToPicker),
		EventAddOnsCompleted: (*Machine).addOnsCompleted,
	},
	StateConfirmation: {
		EventFreeText: onText((*Machine).confirm),
	},
	StateCollectContact: {
		EventFreeText:         onText((*Machine).awaitContact),
		EventContactSubmitted: (*Machine).contactSubmitted,
	},
	StateCompleted: {
		EventFreeText: onText((*Machine).stillHere),
	},
}

func onText(fn func(m *Machine, text string) []Step) handler {
	return func(m *Machine, ev Event) []Step {
		return fn(m, ev.(FreeText).Text)
	}
}

func containsAny(text string, words ...string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func (m *Machine) greet(Event) []Step {
	return []Step{replyStep(delayGreeting, TypeGreeting, copyGreeting, StateReadyToStart)}
}

func (m *Machine) readyToStart(text string) []Step {
	if containsAny(text, "more", "tell") {
		return []Step{replyStep(delayShort, TypeGreeting, copyTellMore, StateReadyToStart)}
	}
	return []Step{replyStep(delayAskZip, TypeText, copyAskZip, StateAskZip)}
}

func (m *Machine) zipSubmitted(ev Event) []Step {
	zip := ev.(ZipSubmitted)
	origin := strings.TrimSpace(zip.Origin)
	destination := strings.TrimSpace(zip.Destination)
	m.fields.OriginZip = origin
	m.fields.DestinationZip = destination

	assigned := m.facilities.Lookup(origin)
	m.facility = &assigned
	m.available = m.dates(origin, destination, m.now())

	card := assigned
	return []Step{
		userStep(copyZipUser(origin, destination)),
		enterStep(StateCheckingAvailability),
		replyStep(delayZipAck, TypeText, copyCheckingRoute, ""),
		{
			Delay:   delayFacilityCard,
			Message: &Message{Role: RoleAssistant, Content: copyFacilityIntro, Type: TypeFacility, Facility: &card},
		},
		replyStep(delayDateSummary, TypeDatePrompt, copyDateSummary(len(m.available)), StateConfirmDatePicker),
	}
}

func (m *Machine) showDatePicker(string) []Step {
	return []Step{replyStep(delayDatePicker, TypeText, copyShowCalendar, StateAskDate)}
}

func (m *Machine) recordDate(text string) []Step {
	m.fields.Date = text
	return []Step{replyStep(delayShort, TypeInventory, copySizeMethod(text), StateAskSizeMethod)}
}

func (m *Machine) chooseSizeMethod(text string) []Step {
	if containsAny(text, "inventory", "estimator", "precise", "exact") {
		return []Step{replyStep(delayShort, TypeText, copyInventoryChosen, StateAskInventory)}
	}
	return []Step{replyStep(delayDefault, TypeText, copyQuickEstimate, StateAskSize)}
}

func (m *Machine) recordSize(text string) []Step {
	m.fields.Size = text
	return m.presentOffer(text, m.catalog.TierForRoomDescription(text), delayQuoteTeaser)
}

func (m *Machine) inventoryCompleted(ev Event) []Step {
	inv := ev.(InventoryCompleted)
	m.fields.Size = inv.Recommendation
	m.fields.InventoryUnits = inv.TotalUnits

	steps := []Step{
		userStep(copyInventoryUser(inv.Recommendation)),
		enterStep(StateConfirmQuote),
		replyStep(delayShort, TypeText, copyInventoryThanks, ""),
	}
	tier := m.catalog.TierForVolumeUnits(inv.TotalUnits)
	return append(steps, m.presentOffer(inv.Recommendation, tier, delayInventoryQuote)...)
}

// presentOffer prices the tier, mints the quote id and teases the quote. The
// card itself is only shown by revealQuote.
func (m *Machine) presentOffer(size string, tier catalog.Tier, delay time.Duration) []Step {
	offer := tier.FinalOffer()
	callout := ""
	if tier.Discount != nil && offer.Discounted() {
		callout = copyDiscountCallout(*tier.Discount, offer)
	}

	m.quoteID = m.newQuoteID()
	offer.QuoteID = m.quoteID
	m.offer = &offer
	m.quoteSize = size

	return []Step{replyStep(delay, TypeQuotePrompt, copyQuoteTeaser(size, callout), StateConfirmQuote)}
}

func (m *Machine) revealQuote(text string) []Step {
	if m.offer == nil {
		return m.misunderstood(text)
	}
	card := m.offer.Clone()
	step := replyStep(delayRevealQuote, TypeOffer, copyQuoteCard(m.quoteSize), StateOfferPresented)
	step.Message.Offer = &card
	return []Step{step}
}

func (m *Machine) reassureOffer(string) []Step {
	return []Step{replyStep(delayDefault, TypeText, copyOfferReassurance, StateOfferPresented)}
}

// offerSelected echoes the active offer; the id on the event is not looked up.
func (m *Machine) offerSelected(Event) []Step {
	title := m.offerTitle(fallbackTitle)
	return []Step{
		userStep(copySelectOfferUser(title)),
		replyStep(delayDefault, TypeAddOnsPrompt, copyAddOnsTeaser(title), StateConfirmAddOns),
	}
}

func (m *Machine) decideAddOns(text string) []Step {
	if containsAny(text, "skip", "no", "later") {
		m.addOns = nil
		return []Step{replyStep(delayDefault, TypeText, copySkipSummary(m.offerTitle(fallbackTitle), m.dateOr(fallbackDate)), StateConfirmation)}
	}
	return []Step{replyStep(delayShort, TypeAddOns, copyShowAddOns, StateAskAddOns)}
}

func (m *Machine) pointToPicker(string) []Step {
	return []Step{replyStep(delayDefault, TypeText, copyUsePicker, StateAskAddOns)}
}

func (m *Machine) addOnsCompleted(ev Event) []Step {
	m.addOns = m.addOns[:0]
	for _, id := range ev.(AddOnsCompleted).AddOnIDs {
		if id = strings.TrimSpace(id); id != "" {
			m.addOns = append(m.addOns, id)
		}
	}

	title, date := m.offerTitle(fallbackTitle), m.dateOr(fallbackDate)
	if len(m.addOns) == 0 {
		return []Step{
			userStep(copyNoAddOnsUser),
			replyStep(delayDefault, TypeText, copySkipSummary(title, date), StateConfirmation),
		}
	}
	return []Step{
		userStep(copyAddOnsUser(len(m.addOns))),
		replyStep(delayDefault, TypeText, copyAddOnsSummary(title, date), StateConfirmation),
	}
}

func (m *Machine) confirm(text string) []Step {
	if containsAny(text, "yes", "proceed", "checkout", "ok", "sure") {
		return []Step{replyStep(delayDefault, TypeText, copyCollectContact, StateCollectContact)}
	}
	return []Step{replyStep(delayDefault, TypeText, copyClarify, StateConfirmation)}
}

func (m *Machine) awaitContact(string) []Step {
	return []Step{replyStep(delayDefault, TypeText, copyFillForm, StateCollectContact)}
}

func (m *Machine) contactSubmitted(ev Event) []Step {
	contact := ev.(ContactSubmitted)
	m.fields.Name = strings.TrimSpace(contact.Name)
	m.fields.Email = strings.TrimSpace(contact.Email)
	m.fields.Phone = strings.TrimSpace(contact.Phone)

	confirmation := &Confirmation{
		Name:           m.fields.Name,
		Email:          m.fields.Email,
		Phone:          m.fields.Phone,
		ContainerType:  m.offerTitle(fallbackContainer),
		DeliveryDate:   m.dateOr(fallbackDelivery),
		OriginZip:      m.fields.OriginZip,
		DestinationZip: m.fields.DestinationZip,
		AddOns:         append([]string{}, m.addOns...),
		QuoteID:        m.quoteID,
	}
	return []Step{
		userStep(copyContactUser(m.fields.Name, m.fields.Email)),
		{
			Delay:   delayConfirmation,
			Message: &Message{Role: RoleAssistant, Content: copyAllSet(m.fields.Name), Type: TypeConfirmation, Confirmation: confirmation},
			Enter:   StateCompleted,
		},
		replyStep(delayClosing, TypeText, copyClosing(m.fields.Name, m.facility, m.quoteID), ""),
	}
}

func (m *Machine) stillHere(string) []Step {
	return []Step{replyStep(delayDefault, TypeText, copyStillHere, StateCompleted)}
}

func (m *Machine) misunderstood(string) []Step {
	return []Step{replyStep(delayDefault, TypeText, copyMisunderstood, "")}
}

func (m *Machine) offerTitle(fallback string) string {
	if m.offer == nil || m.offer.Title == "" {
		return fallback
	}
	return m.offer.Title
}

func (m *Machine) dateOr(fallback string) string {
	if m.fields.Date == "" {
		return fallback
	}
	return m.fields.Date
}
