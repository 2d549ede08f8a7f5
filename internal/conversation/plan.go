package conversation

import "time"

// Step is one scheduled effect of a transition: wait Delay, append Message
// (if any), then enter State (if set). Delays only apply to assistant
// messages; they model the typing pause before a reply.
type Step struct {
	Delay   time.Duration
	Message *Message
	Enter   State
}

// Plan is the ordered list of steps produced by one event.
type Plan struct {
	Event EventKind
	From  State
	Steps []Step
}

// Final returns the state the conversation is in once every step is applied.
func (p Plan) Final() State {
	final := p.From
	for _, s := range p.Steps {
		if s.Enter != "" {
			final = s.Enter
		}
	}
	return final
}

// Messages returns the messages the plan will append, in order.
func (p Plan) Messages() []Message {
	out := make([]Message, 0, len(p.Steps))
	for _, s := range p.Steps {
		if s.Message != nil {
			out = append(out, *s.Message)
		}
	}
	return out
}

// TotalDelay is the sum of all step delays.
func (p Plan) TotalDelay() time.Duration {
	var total time.Duration
	for _, s := range p.Steps {
		total += s.Delay
	}
	return total
}

func userStep(content string) Step {
	return Step{Message: &Message{Role: RoleUser, Content: content, Type: TypeText}}
}

func replyStep(delay time.Duration, typ MessageType, content string, enter State) Step {
	return Step{
		Delay:   delay,
		Message: &Message{Role: RoleAssistant, Content: content, Type: typ},
		Enter:   enter,
	}
}

func enterStep(state State) Step {
	return Step{Enter: state}
}
