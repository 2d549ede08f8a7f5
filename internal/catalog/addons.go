package catalog

// AddOn is an optional extra offered after the container is selected.
type AddOn struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	OriginalPrice string `json:"original_price,omitempty"`
	Description   string `json:"description"`
	Popular       bool   `json:"popular,omitempty"`
}

var addOns = []AddOn{
	{ID: "packing-kit", Name: "Premium Packing Kit", Price: "$49", OriginalPrice: "$79", Description: "20 boxes, tape, bubble wrap & markers", Popular: true},
	{ID: "protection-upgrade", Name: "Enhanced Protection", Price: "$29", Description: "Upgrade to $25,000 content coverage"},
	{ID: "extended-rental", Name: "Extra Month Rental", Price: "$99", OriginalPrice: "$149", Description: "Extend your rental by 30 days"},
	{ID: "loading-help", Name: "Loading Assistance", Price: "$199", Description: "2 movers for 2 hours to help load"},
	{ID: "furniture-pads", Name: "Extra Furniture Pads", Price: "$25", Description: "20 additional moving blankets"},
	{ID: "mattress-covers", Name: "Mattress & Sofa Covers", Price: "$35", Description: "Protect your furniture from dust & dirt"},
}

// AddOns returns a copy of the add-on table in display order.
func AddOns() []AddOn {
	return append([]AddOn(nil), addOns...)
}

// AddOnByID looks up an add-on.
func AddOnByID(id string) (AddOn, bool) {
	for _, a := range addOns {
		if a.ID == id {
			return a, true
		}
	}
	return AddOn{}, false
}
