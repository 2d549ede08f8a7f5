package catalog

import (
	"fmt"
	"math"
	"sort"
)

// InventoryItem is a household item with the space it takes in a container.
// One unit is roughly 50 cubic feet.
type InventoryItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	SpaceUnits float64 `json:"space_units"`
}

// RoomCategory groups inventory items for the estimator.
type RoomCategory struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Items []InventoryItem `json:"items"`
}

var inventoryCategories = []RoomCategory{
	{ID: "living", Name: "Living Room", Items: []InventoryItem{
		{ID: "sofa", Name: "Sofa/Couch", SpaceUnits: 3},
		{ID: "loveseat", Name: "Loveseat", SpaceUnits: 2},
		{ID: "tv", Name: `TV (50"+)`, SpaceUnits: 1},
		{ID: "tv-stand", Name: "TV Stand", SpaceUnits: 1},
		{ID: "coffee-table", Name: "Coffee Table", SpaceUnits: 1},
		{ID: "bookshelf", Name: "Bookshelf", SpaceUnits: 2},
	}},
	{ID: "bedroom", Name: "Bedroom", Items: []InventoryItem{
		{ID: "king-bed", Name: "King Bed", SpaceUnits: 4},
		{ID: "queen-bed", Name: "Queen Bed", SpaceUnits: 3},
		{ID: "twin-bed", Name: "Twin Bed", SpaceUnits: 2},
		{ID: "dresser", Name: "Dresser", SpaceUnits: 2},
		{ID: "nightstand", Name: "Nightstand", SpaceUnits: 0.5},
		{ID: "wardrobe", Name: "Wardrobe/Armoire", SpaceUnits: 3},
	}},
	{ID: "kitchen", Name: "Kitchen & Dining", Items: []InventoryItem{
		{ID: "fridge", Name: "Refrigerator", SpaceUnits: 3},
		{ID: "dining-table", Name: "Dining Table", SpaceUnits: 2},
		{ID: "dining-chairs", Name: "Dining Chairs (set of 4)", SpaceUnits: 1},
		{ID: "microwave", Name: "Microwave", SpaceUnits: 0.5},
	}},
	{ID: "other", Name: "Other Items", Items: []InventoryItem{
		{ID: "washer", Name: "Washer", SpaceUnits: 2},
		{ID: "dryer", Name: "Dryer", SpaceUnits: 2},
		{ID: "bike", Name: "Bicycle", SpaceUnits: 1},
		{ID: "boxes-small", Name: "Small Boxes (10)", SpaceUnits: 1},
		{ID: "boxes-medium", Name: "Medium Boxes (10)", SpaceUnits: 2},
		{ID: "boxes-large", Name: "Large Boxes (10)", SpaceUnits: 3},
	}},
}

// InventoryCategories returns a deep copy of the estimator item table.
func InventoryCategories() []RoomCategory {
	out := make([]RoomCategory, len(inventoryCategories))
	for i, c := range inventoryCategories {
		out[i] = RoomCategory{ID: c.ID, Name: c.Name, Items: append([]InventoryItem(nil), c.Items...)}
	}
	return out
}

func inventoryItemByID(id string) (InventoryItem, bool) {
	for _, c := range inventoryCategories {
		for _, item := range c.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return InventoryItem{}, false
}

// Estimate is the result of totalling an inventory selection.
type Estimate struct {
	TotalUnits     float64 `json:"total_units"`
	Recommendation string  `json:"recommendation"`
	TierName       string  `json:"tier"`
	FillPercent    float64 `json:"fill_percent"`
}

// EstimateInventory totals item counts and recommends a tier. Unknown item
// ids and negative counts are errors; zero counts contribute nothing.
func (c *Catalog) EstimateInventory(counts map[string]int) (Estimate, error) {
	ids := make([]string, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var total float64
	for _, id := range ids {
		n := counts[id]
		if n < 0 {
			return Estimate{}, fmt.Errorf("catalog: negative count %d for item %q", n, id)
		}
		item, ok := inventoryItemByID(id)
		if !ok {
			return Estimate{}, fmt.Errorf("catalog: unknown inventory item %q", id)
		}
		total += float64(n) * item.SpaceUnits
	}

	tier := c.TierForVolumeUnits(total)
	fill := 0.0
	if tier.MaxUnits > 0 {
		fill = math.Min(100, total*c.buffer/tier.MaxUnits*100)
	}
	return Estimate{
		TotalUnits:     total,
		Recommendation: tier.Label,
		TierName:       tier.Name,
		FillPercent:    fill,
	}, nil
}
