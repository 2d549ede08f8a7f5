// Package catalog holds the container size tiers, their promotional
// discounts, and the add-on and inventory tables used to size a move.
package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultVolumeBuffer pads an inventory estimate for packing inefficiency.
	DefaultVolumeBuffer = 1.2

	DefaultSmallMaxUnits  = 15
	DefaultMediumMaxUnits = 25
	DefaultLargeMaxUnits  = 40
)

var (
	// ErrThresholdOrder is returned when tier thresholds are not strictly increasing.
	ErrThresholdOrder = errors.New("catalog: tier thresholds must be strictly increasing")

	// ErrInvalidBuffer is returned for a non-positive volume buffer.
	ErrInvalidBuffer = errors.New("catalog: volume buffer must be positive")
)

// Tier is one container size with its base offer and optional discount.
type Tier struct {
	Name     string    `json:"name"`
	MaxUnits float64   `json:"max_units"`
	Label    string    `json:"label"`
	Base     Offer     `json:"base"`
	Discount *Discount `json:"discount,omitempty"`
}

// FinalOffer returns the base offer with the tier discount applied, if any.
func (t Tier) FinalOffer() Offer {
	if t.Discount == nil {
		return t.Base.Clone()
	}
	return ApplyDiscount(t.Base.Clone(), *t.Discount)
}

// Thresholds configures the buffered-unit capacity of each tier.
type Thresholds struct {
	SmallMaxUnits  float64
	MediumMaxUnits float64
	LargeMaxUnits  float64
	VolumeBuffer   float64
}

// DefaultThresholds returns the stock capacities.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SmallMaxUnits:  DefaultSmallMaxUnits,
		MediumMaxUnits: DefaultMediumMaxUnits,
		LargeMaxUnits:  DefaultLargeMaxUnits,
		VolumeBuffer:   DefaultVolumeBuffer,
	}
}

// Validate checks small < medium < large and a positive buffer.
func (t Thresholds) Validate() error {
	if t.VolumeBuffer <= 0 {
		return ErrInvalidBuffer
	}
	if !(t.SmallMaxUnits > 0 && t.SmallMaxUnits < t.MediumMaxUnits && t.MediumMaxUnits < t.LargeMaxUnits) {
		return fmt.Errorf("%w: small=%v medium=%v large=%v", ErrThresholdOrder, t.SmallMaxUnits, t.MediumMaxUnits, t.LargeMaxUnits)
	}
	return nil
}

// Catalog is the immutable set of size tiers, ordered smallest first.
type Catalog struct {
	small  Tier
	medium Tier
	large  Tier
	buffer float64
}

// New builds a catalog with the stock tiers and the given thresholds.
func New(th Thresholds) (*Catalog, error) {
	if err := th.Validate(); err != nil {
		return nil, err
	}
	small, medium, large := stockTiers()
	small.MaxUnits = th.SmallMaxUnits
	medium.MaxUnits = th.MediumMaxUnits
	large.MaxUnits = th.LargeMaxUnits
	return &Catalog{small: small, medium: medium, large: large, buffer: th.VolumeBuffer}, nil
}

// Default returns the catalog with stock thresholds.
func Default() *Catalog {
	c, err := New(DefaultThresholds())
	if err != nil {
		panic(err)
	}
	return c
}

// Tiers lists the tiers smallest first.
func (c *Catalog) Tiers() []Tier {
	return []Tier{c.small, c.medium, c.large}
}

// Smallest returns the smallest tier.
func (c *Catalog) Smallest() Tier { return c.small }

// Largest returns the largest tier.
func (c *Catalog) Largest() Tier { return c.large }

var numberPattern = regexp.MustCompile(`\d+`)

// roomCount extracts a room count from free text. Explicit numbers win (the
// largest one, so "2-3 rooms" counts as 3), then keywords, then zero.
func roomCount(text string) int {
	normalized := strings.ToLower(text)

	max := -1
	for _, n := range numberPattern.FindAllString(normalized, -1) {
		v, err := strconv.Atoi(n)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			continue
		}
		// Out-of-range numbers come back clamped to the largest int.
		if v > max {
			max = v
		}
	}
	if max >= 0 {
		return max
	}

	switch {
	case strings.Contains(normalized, "studio"):
		return 1
	case strings.Contains(normalized, "one"), strings.Contains(normalized, "single"):
		return 1
	case strings.Contains(normalized, "two"), strings.Contains(normalized, "couple"):
		return 2
	case strings.Contains(normalized, "three"):
		return 3
	case strings.Contains(normalized, "four"):
		return 4
	}
	return 0
}

// TierForRoomDescription picks a tier from a free-text room description.
// One room or fewer maps to the smallest tier, two to the middle tier and
// anything larger to the largest tier.
func (c *Catalog) TierForRoomDescription(text string) Tier {
	rooms := roomCount(text)
	switch {
	case rooms <= 1:
		return c.small
	case rooms == 2:
		return c.medium
	default:
		return c.large
	}
}

// TierForVolumeUnits picks the smallest tier whose capacity holds the
// buffered volume, falling back to the largest tier.
func (c *Catalog) TierForVolumeUnits(units float64) Tier {
	buffered := units * c.buffer
	switch {
	case buffered <= c.small.MaxUnits:
		return c.small
	case buffered <= c.medium.MaxUnits:
		return c.medium
	default:
		return c.large
	}
}

// Buffer is the safety multiplier applied to volume estimates.
func (c *Catalog) Buffer() float64 { return c.buffer }

func stockTiers() (small, medium, large Tier) {
	small = Tier{
		Name:  "small",
		Label: "Studio / 1 Room",
		Base: Offer{
			ID:            "offer-8ft",
			Title:         "8-Foot Container",
			Price:         "$300",
			DeliveryPrice: "$300",
			MonthlyPrice:  "$179",
			Description:   "Perfect for studio apartments or 1-2 rooms. Compact yet spacious.",
			Features: []string{
				"No-contact delivery & pickup",
				"Keep it as long as you need",
				"$5,000 content protection included",
				"15 free moving blankets",
			},
			Recommended: true,
		},
		Discount: &Discount{Code: "FIRSTMOVE15", Percentage: 15, Description: "first-time customer discount"},
	}
	medium = Tier{
		Name:  "medium",
		Label: "2-3 Rooms",
		Base: Offer{
			ID:            "offer-12ft",
			Title:         "12-Foot Container",
			Price:         "$340",
			DeliveryPrice: "$340",
			MonthlyPrice:  "$219",
			Description:   "Ideal for 2-3 rooms. Our most versatile option.",
			Features: []string{
				"No-contact delivery & pickup",
				"Keep it as long as you need",
				"$7,500 content protection included",
				"20 free moving blankets",
			},
			Recommended: true,
		},
		Discount: &Discount{Code: "SAVE10NOW", Percentage: 10, Description: "seasonal savings"},
	}
	large = Tier{
		Name:  "large",
		Label: "3-4 Rooms",
		Base: Offer{
			ID:            "offer-16ft",
			Title:         "16-Foot Container",
			Price:         "$370",
			DeliveryPrice: "$370",
			MonthlyPrice:  "$249",
			Description:   "Perfect for 3-4 rooms. Weather-proof, steel construction with barn-style doors.",
			Features: []string{
				"No-contact delivery & pickup",
				"Keep it as long as you need",
				"$10,000 content protection included",
				"30 free moving blankets",
			},
			Recommended: true,
		},
		Discount: &Discount{Code: "BIGMOVE20", Percentage: 20, Description: "large move special"},
	}
	return small, medium, large
}
