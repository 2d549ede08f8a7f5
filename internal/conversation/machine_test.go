package conversation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 16, 15, 30, 0, 0, time.UTC)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	ids := 0
	quotes := 0
	return NewMachine(Options{
		Now: func() time.Time { return testNow },
		NewQuoteID: func() string {
			quotes++
			return fmt.Sprintf("PR-TEST%04d", quotes)
		},
		NewID: func() string {
			ids++
			return fmt.Sprintf("msg-%d", ids)
		},
	})
}

func process(t *testing.T, m *Machine, ev Event) Plan {
	t.Helper()
	plan, err := m.Process(ev)
	require.NoError(t, err, "event %s in state %s", ev.Kind(), m.State())
	return plan
}

// walkTo drives a fresh machine along the quick-estimate path until it
// reaches target.
func walkTo(t *testing.T, m *Machine, target State) {
	t.Helper()
	steps := []Event{
		Started{},
		FreeText{Text: "yes let's go"},
		ZipSubmitted{Origin: "30301", Destination: "10001"},
		FreeText{Text: "show me"},
		FreeText{Text: "November 2, 2026"},
		FreeText{Text: "quick is fine"},
		FreeText{Text: "3 bedrooms"},
		FreeText{Text: "sure"},
		OfferSelected{OfferID: "offer-16ft"},
		FreeText{Text: "let me see"},
		AddOnsCompleted{AddOnIDs: []string{"packing-kit"}},
		FreeText{Text: "yes"},
	}
	for _, ev := range steps {
		if m.State() == target {
			return
		}
		process(t, m, ev)
	}
	require.Equal(t, target, m.State())
}

func lastMessage(m *Machine) Message {
	msgs := m.Messages()
	return msgs[len(msgs)-1]
}

func TestMachine_StartsInGreeting(t *testing.T) {
	m := newTestMachine(t)
	assert.Equal(t, StateGreeting, m.State())
	assert.Empty(t, m.Messages())

	process(t, m, Started{})
	assert.Equal(t, StateReadyToStart, m.State())
	msgs := m.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
	assert.Equal(t, TypeGreeting, msgs[0].Type)
	assert.Equal(t, "msg-1", msgs[0].ID)
	assert.Equal(t, testNow, msgs[0].Timestamp)
}

func TestMachine_ReadyToStartTellMore(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateReadyToStart)

	process(t, m, FreeText{Text: "Tell me more first"})
	assert.Equal(t, StateReadyToStart, m.State())
	assert.Contains(t, lastMessage(m).Content, "what makes 1-800-PACK-RAT special")

	process(t, m, FreeText{Text: "ready"})
	assert.Equal(t, StateAskZip, m.State())
}

func TestMachine_ZipSubmission(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskZip)

	plan, err := m.Dispatch(ZipSubmitted{Origin: "30301", Destination: "10001"})
	require.NoError(t, err)
	assert.Equal(t, StateConfirmDatePicker, plan.Final())
	require.Len(t, plan.Steps, 5)
	assert.Equal(t, StateCheckingAvailability, plan.Steps[1].Enter)
	assert.Equal(t, StateAskZip, m.State(), "state only moves as steps are applied")

	for _, step := range plan.Steps {
		m.Apply(step)
		if step.Enter == StateCheckingAvailability {
			assert.Equal(t, StateCheckingAvailability, m.State())
		}
	}
	assert.Equal(t, StateConfirmDatePicker, m.State())

	var facilityMsg *Message
	for _, msg := range m.Messages() {
		if msg.Type == TypeFacility {
			msg := msg
			facilityMsg = &msg
		}
	}
	require.NotNil(t, facilityMsg)
	require.NotNil(t, facilityMsg.Facility)
	assert.Equal(t, "Atlanta", facilityMsg.Facility.City)
	assert.Equal(t, "GA", facilityMsg.Facility.State)

	dates := m.AvailableDates()
	require.NotEmpty(t, dates)
	summary := lastMessage(m)
	assert.Equal(t, TypeDatePrompt, summary.Type)
	assert.Contains(t, summary.Content, fmt.Sprintf("**%d available delivery dates**", len(dates)))

	fields := m.Fields()
	assert.Equal(t, "30301", fields.OriginZip)
	assert.Equal(t, "10001", fields.DestinationZip)
}

func TestMachine_QuickEstimateOffersLargestTier(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskSize)

	plan := process(t, m, FreeText{Text: "3 bedrooms"})
	assert.Equal(t, StateConfirmQuote, m.State())

	offer := m.SelectedOffer()
	require.NotNil(t, offer)
	assert.Equal(t, "16-Foot Container", offer.Title)
	assert.Equal(t, "$249", offer.OriginalMonthlyPrice)
	assert.Equal(t, "$199", offer.MonthlyPrice)
	assert.Equal(t, "PR-TEST0001", offer.QuoteID)

	teaser := plan.Messages()[len(plan.Messages())-1]
	assert.Equal(t, TypeQuotePrompt, teaser.Type)
	assert.Contains(t, teaser.Content, "BIGMOVE20")
	assert.Contains(t, teaser.Content, "$249")
	assert.Contains(t, teaser.Content, "$199")
	assert.Equal(t, "3 bedrooms", m.Fields().Size)
}

func TestMachine_QuoteRevealIsTwoPhase(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateConfirmQuote)

	for _, msg := range m.Messages() {
		assert.NotEqual(t, TypeOffer, msg.Type, "card must not be shown with the teaser")
	}

	process(t, m, FreeText{Text: "whatever"})
	assert.Equal(t, StateOfferPresented, m.State())
	card := lastMessage(m)
	assert.Equal(t, TypeOffer, card.Type)
	require.NotNil(t, card.Offer)
	assert.Equal(t, m.QuoteID(), card.Offer.QuoteID)
	assert.Equal(t, "Here's your personalized quote for your 3 bedrooms move:", card.Content)
}

func TestMachine_OfferPresentedSelfLoops(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateOfferPresented)

	for i := 0; i < 3; i++ {
		process(t, m, FreeText{Text: "hmm, is it big enough?"})
		assert.Equal(t, StateOfferPresented, m.State())
	}

	process(t, m, OfferSelected{OfferID: "ignored"})
	assert.Equal(t, StateConfirmAddOns, m.State())
	msgs := m.Messages()
	assert.Equal(t, "I'd like to select the 16-Foot Container", msgs[len(msgs)-2].Content)
	assert.Equal(t, TypeAddOnsPrompt, msgs[len(msgs)-1].Type)
}

func TestMachine_InventoryPath(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskSizeMethod)

	process(t, m, FreeText{Text: "Use the Inventory estimator"})
	assert.Equal(t, StateAskInventory, m.State())

	plan, err := m.Dispatch(InventoryCompleted{Recommendation: "Studio / 1 Room", TotalUnits: 8})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(plan.Steps), 2)
	assert.Equal(t, StateConfirmQuote, plan.Steps[1].Enter, "inventory form is hidden before the replies")
	for _, step := range plan.Steps {
		m.Apply(step)
	}

	assert.Equal(t, StateConfirmQuote, m.State())
	fields := m.Fields()
	assert.Equal(t, "Studio / 1 Room", fields.Size)
	assert.InDelta(t, 8.0, fields.InventoryUnits, 0.001)
	assert.Equal(t, "offer-8ft", m.SelectedOffer().ID)
	assert.Equal(t, "Inventory complete: Studio / 1 Room worth of items", plan.Messages()[0].Content)
}

func TestMachine_SizeMethodDefaultsToQuickEstimate(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskSizeMethod)

	process(t, m, FreeText{Text: "just ask me"})
	assert.Equal(t, StateAskSize, m.State())
}

func TestMachine_SkipAddOnsGoesStraightToConfirmation(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateConfirmAddOns)

	process(t, m, FreeText{Text: "Skip for now"})
	assert.Equal(t, StateConfirmation, m.State())
	assert.Empty(t, m.AddOns())
	assert.Contains(t, lastMessage(m).Content, "**16-Foot Container** is ready to go for **November 2, 2026**")
}

func TestMachine_AddOnsPickerSelfLoops(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskAddOns)

	process(t, m, FreeText{Text: "what's popular?"})
	assert.Equal(t, StateAskAddOns, m.State())
	assert.Contains(t, lastMessage(m).Content, "Take your time looking through the options above")
}

func TestMachine_EmptyAddOnsEchoesOfferAndDate(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskAddOns)

	plan := process(t, m, AddOnsCompleted{})
	assert.Equal(t, StateConfirmation, m.State())

	msgs := plan.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, "No add-ons needed", msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "16-Foot Container")
	assert.Contains(t, msgs[1].Content, "November 2, 2026")
}

func TestMachine_AddOnsSelectedSummary(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskAddOns)

	plan := process(t, m, AddOnsCompleted{AddOnIDs: []string{"packing-kit", " ", "loading-help"}})
	msgs := plan.Messages()
	assert.Equal(t, "Selected 2 add-ons", msgs[0].Content)
	assert.Contains(t, msgs[1].Content, "Great picks!")
	assert.Equal(t, []string{"packing-kit", "loading-help"}, m.AddOns())
}

func TestMachine_ConfirmationNeedsAffirmative(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateConfirmation)

	process(t, m, FreeText{Text: "what about insurance?"})
	assert.Equal(t, StateConfirmation, m.State())

	process(t, m, FreeText{Text: "OK, proceed"})
	assert.Equal(t, StateCollectContact, m.State())

	process(t, m, FreeText{Text: "hello?"})
	assert.Equal(t, StateCollectContact, m.State())
	assert.Contains(t, lastMessage(m).Content, "fill out the form")
}

func TestMachine_ContactSubmissionCompletesBooking(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateCollectContact)
	quoteID := m.QuoteID()
	require.NotEmpty(t, quoteID)

	plan := process(t, m, ContactSubmitted{Name: "Jane Doe", Email: "jane@x.com", Phone: "555-1234"})
	assert.Equal(t, StateCompleted, m.State())

	msgs := plan.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "Jane Doe, jane@x.com", msgs[0].Content)

	var confirmations []Message
	for _, msg := range m.Messages() {
		if msg.Type == TypeConfirmation {
			confirmations = append(confirmations, msg)
		}
	}
	require.Len(t, confirmations, 1)
	c := confirmations[0].Confirmation
	require.NotNil(t, c)
	assert.Equal(t, "Jane Doe", c.Name)
	assert.Equal(t, "jane@x.com", c.Email)
	assert.Equal(t, "555-1234", c.Phone)
	assert.Equal(t, "16-Foot Container", c.ContainerType)
	assert.Equal(t, "November 2, 2026", c.DeliveryDate)
	assert.Equal(t, "30301", c.OriginZip)
	assert.Equal(t, "10001", c.DestinationZip)
	assert.Equal(t, []string{"packing-kit"}, c.AddOns)
	assert.Equal(t, quoteID, c.QuoteID)

	closing := msgs[2]
	assert.Equal(t, TypeText, closing.Type)
	assert.Contains(t, closing.Content, "Atlanta Metro Center in Atlanta")
	assert.Contains(t, closing.Content, quoteID)
}

func TestMachine_CompletedIsAbsorbing(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateCollectContact)
	process(t, m, ContactSubmitted{Name: "Jane", Email: "jane@x.com", Phone: "555"})

	process(t, m, FreeText{Text: "thanks!"})
	assert.Equal(t, StateCompleted, m.State())

	for _, ev := range []Event{
		Started{},
		ZipSubmitted{Origin: "1", Destination: "2"},
		OfferSelected{},
		InventoryCompleted{},
		AddOnsCompleted{},
		ContactSubmitted{},
	} {
		_, err := m.Dispatch(ev)
		assert.ErrorIs(t, err, ErrInvalidTransition, "event %s", ev.Kind())
	}
	assert.Equal(t, StateCompleted, m.State())
}

func TestMachine_QuoteIDIsNotRegenerated(t *testing.T) {
	calls := 0
	m := NewMachine(Options{
		Now: func() time.Time { return testNow },
		NewQuoteID: func() string {
			calls++
			return fmt.Sprintf("PR-%d", calls)
		},
	})
	walkTo(t, m, StateCollectContact)
	process(t, m, ContactSubmitted{Name: "Jane", Email: "j@x.com", Phone: "1"})

	assert.Equal(t, 1, calls)
	for _, msg := range m.Messages() {
		if msg.Confirmation != nil {
			assert.Equal(t, "PR-1", msg.Confirmation.QuoteID)
		}
	}
}

func TestMachine_RejectsOutOfOrderEvents(t *testing.T) {
	tests := []struct {
		name  string
		state State
		event Event
	}{
		{"contact before reaching the form", StateAskZip, ContactSubmitted{Name: "Jane"}},
		{"inventory outside estimator", StateAskSize, InventoryCompleted{TotalUnits: 10}},
		{"offer selection before reveal", StateConfirmQuote, OfferSelected{}},
		{"zip twice", StateConfirmDatePicker, ZipSubmitted{Origin: "30301", Destination: "10001"}},
		{"add-ons before picker", StateConfirmAddOns, AddOnsCompleted{}},
		{"restart", StateReadyToStart, Started{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			walkTo(t, m, tt.state)
			before := m.Messages()
			fields := m.Fields()

			_, err := m.Dispatch(tt.event)
			var te *TransitionError
			require.True(t, errors.As(err, &te))
			assert.Equal(t, tt.state, te.State)
			assert.Equal(t, tt.event.Kind(), te.Event)
			assert.True(t, errors.Is(err, ErrInvalidTransition))

			assert.Equal(t, tt.state, m.State())
			assert.Equal(t, before, m.Messages())
			assert.Equal(t, fields, m.Fields())
		})
	}
}

func TestMachine_AcceptsPointerEvents(t *testing.T) {
	m := newTestMachine(t)
	process(t, m, &Started{})
	process(t, m, &FreeText{Text: "yes"})
	assert.Equal(t, StateAskZip, m.State())

	process(t, m, &ZipSubmitted{Origin: "30301", Destination: "10001"})
	assert.Equal(t, StateConfirmDatePicker, m.State())
	assert.Equal(t, "30301", m.Fields().OriginZip)
}

type foreignEvent struct{}

func (foreignEvent) Kind() EventKind { return EventFreeText }

func TestMachine_RejectsUnusableEvents(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"nil", nil},
		{"nil free text pointer", (*FreeText)(nil)},
		{"nil zip pointer", (*ZipSubmitted)(nil)},
		{"foreign type", foreignEvent{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			walkTo(t, m, StateAskZip)
			before := m.Messages()

			var plan Plan
			var err error
			require.NotPanics(t, func() { plan, err = m.Dispatch(tt.event) })
			assert.ErrorIs(t, err, ErrInvalidTransition)
			assert.Empty(t, plan.Steps)
			assert.Equal(t, StateAskZip, m.State())
			assert.Equal(t, before, m.Messages())
		})
	}
}

func TestMachine_UnclaimedFreeTextFallsBack(t *testing.T) {
	for _, state := range []State{StateGreeting, StateAskZip, StateAskInventory} {
		t.Run(string(state), func(t *testing.T) {
			m := newTestMachine(t)
			if state == StateAskInventory {
				walkTo(t, m, StateAskSizeMethod)
				process(t, m, FreeText{Text: "exact please"})
			} else {
				walkTo(t, m, state)
			}

			plan := process(t, m, FreeText{Text: "blorp"})
			assert.Equal(t, state, m.State())
			msgs := plan.Messages()
			require.Len(t, msgs, 2)
			assert.Equal(t, RoleUser, msgs[0].Role)
			assert.Equal(t, "blorp", msgs[0].Content)
			assert.True(t, strings.HasPrefix(msgs[1].Content, "I'm sorry, I didn't quite catch that."))
		})
	}
}

func TestMachine_DelaysOnlyPrecedeAssistantMessages(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateAskZip)

	plan, err := m.Dispatch(ZipSubmitted{Origin: "30301", Destination: "10001"})
	require.NoError(t, err)
	for _, step := range plan.Steps {
		if step.Message != nil && step.Message.Role == RoleUser {
			assert.Zero(t, step.Delay)
		}
		assert.LessOrEqual(t, step.Delay, 2500*time.Millisecond)
	}
	assert.Equal(t, 7000*time.Millisecond, plan.TotalDelay())
}

func TestMachine_MessagesAreCopies(t *testing.T) {
	m := newTestMachine(t)
	walkTo(t, m, StateOfferPresented)

	msgs := m.Messages()
	card := msgs[len(msgs)-1]
	require.NotNil(t, card.Offer)
	card.Offer.Title = "mutated"
	card.Offer.Features[0] = "mutated"

	again := lastMessage(m)
	assert.Equal(t, "16-Foot Container", again.Offer.Title)
	assert.NotEqual(t, "mutated", again.Offer.Features[0])
}

func TestNewQuoteID(t *testing.T) {
	id := newQuoteIDAt(testNow)
	assert.Regexp(t, `^PR-[0-9A-Z]{8}$`, id)

	stamp := strings.ToUpper(strconv.FormatInt(testNow.UnixMilli(), 36))
	assert.Equal(t, "PR-"+stamp[len(stamp)-4:], id[:7])
	assert.Regexp(t, `^PR-[0-9A-Z]{8}$`, NewQuoteID())
}
