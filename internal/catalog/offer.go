package catalog

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Offer is a priced container option shown to the customer.
type Offer struct {
	ID                    string   `json:"id"`
	Title                 string   `json:"title"`
	Price                 string   `json:"price"`
	DeliveryPrice         string   `json:"delivery_price"`
	MonthlyPrice          string   `json:"monthly_price"`
	OriginalDeliveryPrice string   `json:"original_delivery_price,omitempty"`
	OriginalMonthlyPrice  string   `json:"original_monthly_price,omitempty"`
	Discount              string   `json:"discount,omitempty"`
	Description           string   `json:"description"`
	Features              []string `json:"features"`
	Recommended           bool     `json:"recommended,omitempty"`
	QuoteID               string   `json:"quote_id,omitempty"`
}

// Discounted reports whether a discount has been applied to the offer.
func (o Offer) Discounted() bool {
	return o.OriginalDeliveryPrice != "" && o.OriginalMonthlyPrice != ""
}

// Clone returns a deep copy so callers can't alias the catalog's feature slices.
func (o Offer) Clone() Offer {
	out := o
	if o.Features != nil {
		out.Features = append([]string(nil), o.Features...)
	}
	return out
}

// Discount is a promotional percentage off both delivery and monthly prices.
type Discount struct {
	Code        string `json:"code"`
	Percentage  int    `json:"percentage"`
	Description string `json:"description"`
}

// Valid reports whether the percentage is in (0, 100].
func (d Discount) Valid() bool {
	return d.Percentage > 0 && d.Percentage <= 100
}

// Banner is the short label stored on a discounted offer.
func (d Discount) Banner() string {
	return fmt.Sprintf("%d%% OFF — Code %s", d.Percentage, d.Code)
}

var pricePattern = regexp.MustCompile(`\$?([\d,]+)`)

// parsePrice extracts the whole-dollar amount from strings like "$1,250" or "179".
func parsePrice(s string) (int, bool) {
	m := pricePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	digits := strings.ReplaceAll(m[1], ",", "")
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatPrice(v int) string {
	return "$" + strconv.Itoa(v)
}

// ApplyDiscount returns a copy of offer with the discount applied to the
// delivery and monthly prices. Original prices are kept alongside and the
// discount banner is prepended to the features. If either price can't be
// parsed, the discount percentage is out of range, or the offer already
// carries a discount, the offer is returned unchanged.
func ApplyDiscount(offer Offer, discount Discount) Offer {
	if !discount.Valid() || offer.Discounted() {
		return offer
	}
	delivery, ok := parsePrice(offer.DeliveryPrice)
	if !ok {
		return offer
	}
	monthly, ok := parsePrice(offer.MonthlyPrice)
	if !ok {
		return offer
	}

	factor := 1 - float64(discount.Percentage)/100
	discountedDelivery := int(math.Round(float64(delivery) * factor))
	discountedMonthly := int(math.Round(float64(monthly) * factor))

	out := offer.Clone()
	out.Price = formatPrice(discountedDelivery)
	out.DeliveryPrice = formatPrice(discountedDelivery)
	out.MonthlyPrice = formatPrice(discountedMonthly)
	out.OriginalDeliveryPrice = formatPrice(delivery)
	out.OriginalMonthlyPrice = formatPrice(monthly)
	out.Discount = discount.Banner()

	features := make([]string, 0, len(offer.Features)+1)
	features = append(features, fmt.Sprintf("🎉 %s auto-applied!", discount.Banner()))
	features = append(features, offer.Features...)
	out.Features = features
	return out
}
