package conversation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/facility"
	"github.com/GautamArjun/packrat-demo/internal/observability/metrics"
	"github.com/GautamArjun/packrat-demo/pkg/logging"
)

// UpdateKind names what changed in a session.
type UpdateKind string

const (
	UpdateTyping  UpdateKind = "typing"
	UpdateMessage UpdateKind = "message"
	UpdateState   UpdateKind = "state"
)

// Update is pushed to listeners as a plan is applied.
type Update struct {
	SessionID string
	Kind      UpdateKind
	Typing    bool
	Message   *Message
	From      State
	State     State
}

// Listener observes a session. It runs on the goroutine applying the plan.
type Listener func(ctx context.Context, u Update)

// Result is the outcome of one accepted event.
type Result struct {
	From     State
	State    State
	Messages []Message
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID             string             `json:"id"`
	State          State              `json:"state"`
	Typing         bool               `json:"typing"`
	Messages       []Message          `json:"messages"`
	Offer          *catalog.Offer     `json:"offer,omitempty"`
	AvailableDates []string           `json:"available_dates"`
	Facility       *facility.Facility `json:"facility,omitempty"`
	Fields         Fields             `json:"fields"`
	AddOns         []string           `json:"add_ons"`
	QuoteID        string             `json:"quote_id,omitempty"`
	LastActive     time.Time          `json:"last_active"`
}

// SessionConfig carries the collaborators of a session.
type SessionConfig struct {
	Pacer   Pacer
	Logger  *logging.Logger
	Metrics *metrics.FunnelMetrics
	Now     func() time.Time
}

// Session is the single owner of one Machine. Events are accepted one at a
// time; an event arriving while replies are still being paced out fails with
// ErrBusy.
type Session struct {
	id      string
	machine *Machine
	pacer   Pacer
	logger  *logging.Logger
	metrics *metrics.FunnelMetrics
	tracer  trace.Tracer
	now     func() time.Time

	busy       atomic.Bool
	lastActive atomic.Int64

	mu sync.RWMutex

	listenersMu  sync.RWMutex
	listeners    map[int]Listener
	nextListener int
}

// NewSession wraps machine. A nil pacer means no waiting.
func NewSession(id string, machine *Machine, cfg SessionConfig) *Session {
	if cfg.Pacer == nil {
		cfg.Pacer = NewPacer(0)
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Session{
		id:        id,
		machine:   machine,
		pacer:     cfg.Pacer,
		logger:    cfg.Logger.With("session_id", id),
		metrics:   cfg.Metrics,
		tracer:    otel.Tracer("packrat.internal.conversation.session"),
		now:       cfg.Now,
		listeners: make(map[int]Listener),
	}
	s.touch()
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Busy reports whether a reply sequence is in flight.
func (s *Session) Busy() bool { return s.busy.Load() }

// LastActive returns when the session last accepted an event or applied a step.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Subscribe registers l and returns a function that removes it.
func (s *Session) Subscribe(l Listener) func() {
	s.listenersMu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = l
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

// Submit dispatches ev and paces out the resulting plan. Cancelling ctx skips
// the remaining delays but still applies every step, so the machine never
// rests in a state that only exists mid-sequence. The cancellation is
// reported in the returned error alongside the full result.
func (s *Session) Submit(ctx context.Context, ev Event) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	kind := EventKind("")
	if c, ok := concrete(ev); ok {
		ev, kind = c, c.Kind()
	}

	if !s.busy.CompareAndSwap(false, true) {
		s.metrics.ObserveRejected(string(s.State()), string(kind), "busy")
		return Result{}, ErrBusy
	}
	// The session is released before typing stops, so a client reacting to
	// the final typing update is never told the session is busy.
	typing := false
	defer func() {
		s.busy.Store(false)
		if typing {
			s.notify(ctx, Update{Kind: UpdateTyping, Typing: false})
		}
	}()

	ctx, span := s.tracer.Start(ctx, "conversation.session.submit", trace.WithAttributes(
		attribute.String("packrat.session_id", s.id),
		attribute.String("packrat.event", string(kind)),
	))
	defer span.End()

	started := time.Now()
	defer func() {
		s.metrics.ObserveEventLatency(string(kind), time.Since(started).Seconds())
	}()

	s.mu.Lock()
	plan, err := s.machine.Dispatch(ev)
	s.mu.Unlock()
	if err != nil {
		span.RecordError(err)
		state := s.State()
		var te *TransitionError
		if errors.As(err, &te) {
			state = te.State
		}
		s.metrics.ObserveRejected(string(state), string(kind), "invalid_transition")
		s.logger.Warn("event rejected", "event", kind, "error", err)
		return Result{}, err
	}
	s.touch()

	result := Result{From: plan.From, State: plan.From}

	var interrupted error
	for _, step := range plan.Steps {
		if step.Delay > 0 && interrupted == nil {
			if !typing {
				typing = true
				s.notify(ctx, Update{Kind: UpdateTyping, Typing: true})
			}
			if err := s.pacer.Wait(ctx, step.Delay); err != nil {
				span.RecordError(err)
				s.logger.Info("reply pacing interrupted, settling remaining steps", "event", kind, "state", s.State(), "error", err)
				interrupted = err
				ctx = context.WithoutCancel(ctx)
			}
		}

		s.mu.Lock()
		from := s.machine.State()
		msg := s.machine.Apply(step)
		to := s.machine.State()
		offer := s.machine.SelectedOffer()
		s.mu.Unlock()
		s.touch()

		if msg != nil {
			result.Messages = append(result.Messages, *msg)
			s.observeMessage(*msg, offer)
			s.notify(ctx, Update{Kind: UpdateMessage, Message: msg})
		}
		if to != from {
			result.State = to
			s.metrics.ObserveTransition(string(from), string(to), string(kind))
			s.notify(ctx, Update{Kind: UpdateState, From: from, State: to})
		}
	}

	span.SetAttributes(attribute.String("packrat.state", string(result.State)))
	if interrupted != nil {
		return result, fmt.Errorf("conversation: session %s: %w", s.id, interrupted)
	}
	s.logger.Info("event handled", "event", kind, "from", result.From, "state", result.State, "messages", len(result.Messages))
	return result, nil
}

func (s *Session) observeMessage(msg Message, offer *catalog.Offer) {
	switch msg.Type {
	case TypeQuotePrompt:
		if offer != nil {
			s.metrics.ObserveOfferPresented(offer.ID, offer.Discounted())
		}
	case TypeConfirmation:
		s.metrics.ObserveBookingCompleted()
		if msg.Confirmation != nil {
			s.logger.Info("booking completed", "quote_id", msg.Confirmation.QuoteID, "container", msg.Confirmation.ContainerType)
		}
	}
}

func (s *Session) notify(ctx context.Context, u Update) {
	u.SessionID = s.id
	s.listenersMu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(ctx, u)
	}
}

func (s *Session) touch() {
	s.lastActive.Store(s.now().UnixNano())
}

// Start emits the greeting.
func (s *Session) Start(ctx context.Context) (Result, error) {
	return s.Submit(ctx, Started{})
}

// SendText submits a typed chat message.
func (s *Session) SendText(ctx context.Context, text string) (Result, error) {
	return s.Submit(ctx, FreeText{Text: text})
}

// SubmitZip submits the route.
func (s *Session) SubmitZip(ctx context.Context, origin, destination string) (Result, error) {
	return s.Submit(ctx, ZipSubmitted{Origin: origin, Destination: destination})
}

// SelectOffer accepts the presented offer.
func (s *Session) SelectOffer(ctx context.Context, offerID string) (Result, error) {
	return s.Submit(ctx, OfferSelected{OfferID: offerID})
}

// CompleteInventory submits the estimator result.
func (s *Session) CompleteInventory(ctx context.Context, recommendation string, totalUnits float64) (Result, error) {
	return s.Submit(ctx, InventoryCompleted{Recommendation: recommendation, TotalUnits: totalUnits})
}

// CompleteAddOns submits the add-on picker, possibly empty.
func (s *Session) CompleteAddOns(ctx context.Context, ids []string) (Result, error) {
	return s.Submit(ctx, AddOnsCompleted{AddOnIDs: ids})
}

// SubmitContact submits the contact form.
func (s *Session) SubmitContact(ctx context.Context, name, email, phone string) (Result, error) {
	return s.Submit(ctx, ContactSubmitted{Name: name, Email: email, Phone: phone})
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.machine.State()
}

// Snapshot returns a copy of everything a client renders.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dates := s.machine.AvailableDates()
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format(time.DateOnly)
	}
	return Snapshot{
		ID:             s.id,
		State:          s.machine.State(),
		Typing:         s.busy.Load(),
		Messages:       s.machine.Messages(),
		Offer:          s.machine.SelectedOffer(),
		AvailableDates: formatted,
		Facility:       s.machine.Facility(),
		Fields:         s.machine.Fields(),
		AddOns:         s.machine.AddOns(),
		QuoteID:        s.machine.QuoteID(),
		LastActive:     s.LastActive().UTC(),
	}
}
