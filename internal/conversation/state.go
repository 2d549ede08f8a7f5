package conversation

// State is the single active step of a booking conversation. It decides which
// widget the client shows and how free text is interpreted.
type State string

const (
	StateGreeting             State = "GREETING"
	StateReadyToStart         State = "READY_TO_START"
	StateAskZip               State = "ASK_ZIP"
	StateCheckingAvailability State = "CHECKING_AVAILABILITY"
	StateConfirmDatePicker    State = "CONFIRM_DATE_PICKER"
	StateAskDate              State = "ASK_DATE"
	StateAskSizeMethod        State = "ASK_SIZE_METHOD"
	StateAskInventory         State = "ASK_INVENTORY"
	StateAskSize              State = "ASK_SIZE"
	StateConfirmQuote         State = "CONFIRM_QUOTE"
	StateOfferPresented       State = "OFFER_PRESENTED"
	StateConfirmAddOns        State = "CONFIRM_ADDONS"
	StateAskAddOns            State = "ASK_ADDONS"
	StateConfirmation         State = "CONFIRMATION"
	StateCollectContact       State = "COLLECT_CONTACT"
	StateCompleted            State = "COMPLETED"
)

// Terminal reports whether the state is absorbing.
func (s State) Terminal() bool {
	return s == StateCompleted
}

// Fields are the customer details collected along the way. Values are only
// ever added or overwritten.
type Fields struct {
	OriginZip      string  `json:"origin_zip,omitempty"`
	DestinationZip string  `json:"destination_zip,omitempty"`
	Date           string  `json:"date,omitempty"`
	Size           string  `json:"size,omitempty"`
	InventoryUnits float64 `json:"inventory_units,omitempty"`
	Name           string  `json:"name,omitempty"`
	Email          string  `json:"email,omitempty"`
	Phone          string  `json:"phone,omitempty"`
}
