package webchat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/conversation"
)

// ErrInvalidEvent is returned for payloads that fail schema validation or
// reference unknown catalog entries.
var ErrInvalidEvent = errors.New("webchat: invalid event")

// Event types accepted from the widget.
const (
	EventStart     = "start"
	EventText      = "text"
	EventZip       = "zip"
	EventOffer     = "offer"
	EventInventory = "inventory"
	EventAddOns    = "addons"
	EventContact   = "contact"
	EventPing      = "ping"
)

// InboundEvent is what the widget sends, over HTTP or WebSocket.
type InboundEvent struct {
	Type           string         `json:"type"`
	Text           string         `json:"text,omitempty"`
	Origin         string         `json:"origin,omitempty"`
	Destination    string         `json:"destination,omitempty"`
	OfferID        string         `json:"offer_id,omitempty"`
	Recommendation string         `json:"recommendation,omitempty"`
	TotalUnits     *float64       `json:"total_units,omitempty"`
	Items          map[string]int `json:"items,omitempty"`
	AddOnIDs       []string       `json:"add_on_ids,omitempty"`
	Name           string         `json:"name,omitempty"`
	Email          string         `json:"email,omitempty"`
	Phone          string         `json:"phone,omitempty"`
}

const eventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["type"],
  "properties": {
    "type": {"enum": ["start", "text", "zip", "offer", "inventory", "addons", "contact", "ping"]}
  },
  "allOf": [
    {
      "if": {"properties": {"type": {"const": "text"}}},
      "then": {"required": ["text"], "properties": {"text": {"type": "string", "minLength": 1, "maxLength": 2000}}}
    },
    {
      "if": {"properties": {"type": {"const": "zip"}}},
      "then": {
        "required": ["origin", "destination"],
        "properties": {
          "origin": {"type": "string", "pattern": "^[0-9]{5}$"},
          "destination": {"type": "string", "pattern": "^[0-9]{5}$"}
        }
      }
    },
    {
      "if": {"properties": {"type": {"const": "offer"}}},
      "then": {"properties": {"offer_id": {"type": "string"}}}
    },
    {
      "if": {"properties": {"type": {"const": "inventory"}}},
      "then": {
        "properties": {
          "recommendation": {"type": "string", "minLength": 1},
          "total_units": {"type": "number", "minimum": 0},
          "items": {"type": "object", "additionalProperties": {"type": "integer", "minimum": 0}}
        },
        "anyOf": [
          {"required": ["recommendation", "total_units"]},
          {"required": ["items"]}
        ]
      }
    },
    {
      "if": {"properties": {"type": {"const": "addons"}}},
      "then": {"properties": {"add_on_ids": {"type": "array", "items": {"type": "string"}, "uniqueItems": true}}}
    },
    {
      "if": {"properties": {"type": {"const": "contact"}}},
      "then": {
        "required": ["name", "email", "phone"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "email": {"type": "string", "format": "email"},
          "phone": {"type": "string", "minLength": 7}
        }
      }
    }
  ]
}`

var eventSchemaLoader = gojsonschema.NewStringLoader(eventSchema)

// ValidateEvent checks a raw payload against the event schema.
func ValidateEvent(raw []byte) error {
	result, err := gojsonschema.Validate(eventSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidEvent, strings.Join(msgs, "; "))
	}
	return nil
}

// ToConversationEvent maps a validated inbound event onto the state machine's
// event types. Inventory item counts are turned into an estimate here.
func (e InboundEvent) ToConversationEvent(c *catalog.Catalog) (conversation.Event, error) {
	switch e.Type {
	case EventStart:
		return conversation.Started{}, nil
	case EventText:
		return conversation.FreeText{Text: strings.TrimSpace(e.Text)}, nil
	case EventZip:
		return conversation.ZipSubmitted{Origin: e.Origin, Destination: e.Destination}, nil
	case EventOffer:
		return conversation.OfferSelected{OfferID: e.OfferID}, nil
	case EventInventory:
		if len(e.Items) > 0 {
			est, err := c.EstimateInventory(e.Items)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
			}
			return conversation.InventoryCompleted{Recommendation: est.Recommendation, TotalUnits: est.TotalUnits}, nil
		}
		if e.TotalUnits == nil {
			return nil, fmt.Errorf("%w: total_units required", ErrInvalidEvent)
		}
		return conversation.InventoryCompleted{Recommendation: e.Recommendation, TotalUnits: *e.TotalUnits}, nil
	case EventAddOns:
		for _, id := range e.AddOnIDs {
			if _, ok := catalog.AddOnByID(id); !ok {
				return nil, fmt.Errorf("%w: unknown add-on %q", ErrInvalidEvent, id)
			}
		}
		return conversation.AddOnsCompleted{AddOnIDs: e.AddOnIDs}, nil
	case EventContact:
		return conversation.ContactSubmitted{Name: e.Name, Email: e.Email, Phone: e.Phone}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported type %q", ErrInvalidEvent, e.Type)
	}
}
