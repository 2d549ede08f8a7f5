package conversation

import (
	"time"

	"github.com/GautamArjun/packrat-demo/internal/catalog"
	"github.com/GautamArjun/packrat-demo/internal/facility"
)

// Role identifies who sent a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// MessageType tells the client how to render a message.
type MessageType string

const (
	TypeText         MessageType = "text"
	TypeOffer        MessageType = "offer"
	TypeConfirmation MessageType = "confirmation"
	TypeInventory    MessageType = "inventory"
	TypeAddOns       MessageType = "addons"
	TypeFacility     MessageType = "facility"
	TypeGreeting     MessageType = "greeting"
	TypeDatePrompt   MessageType = "datePrompt"
	TypeQuotePrompt  MessageType = "quotePrompt"
	TypeAddOnsPrompt MessageType = "addonsPrompt"
)

// Message is one entry of the conversation log. Messages are never edited
// once appended.
type Message struct {
	ID           string             `json:"id"`
	Role         Role               `json:"role"`
	Content      string             `json:"content"`
	Type         MessageType        `json:"type"`
	Timestamp    time.Time          `json:"timestamp"`
	Offer        *catalog.Offer     `json:"offer,omitempty"`
	Confirmation *Confirmation      `json:"confirmation,omitempty"`
	Facility     *facility.Facility `json:"facility,omitempty"`
}

// Confirmation summarises a completed reservation.
type Confirmation struct {
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Phone          string   `json:"phone"`
	ContainerType  string   `json:"container_type"`
	DeliveryDate   string   `json:"delivery_date"`
	OriginZip      string   `json:"origin_zip"`
	DestinationZip string   `json:"destination_zip"`
	AddOns         []string `json:"add_ons"`
	QuoteID        string   `json:"quote_id"`
}

// clone copies the payload pointers so log readers can't mutate the log.
func (m Message) clone() Message {
	out := m
	if m.Offer != nil {
		o := m.Offer.Clone()
		out.Offer = &o
	}
	if m.Confirmation != nil {
		c := *m.Confirmation
		c.AddOns = append([]string(nil), m.Confirmation.AddOns...)
		out.Confirmation = &c
	}
	if m.Facility != nil {
		f := *m.Facility
		out.Facility = &f
	}
	return out
}
