package models

type RequestType string

const (
	RequestTypeNone   RequestType = "None"
	RequestTypeHold   RequestType = "Hold"
	RequestTypeRecall RequestType = "Recall"
	RequestTypePage   RequestType = "Page"
)

// ParseRequestType maps a backend request-type string to the enum;
// unrecognized values become None.
func ParseRequestType(s string) RequestType {
	switch RequestType(s) {
	case RequestTypeHold, RequestTypeRecall, RequestTypePage:
		return RequestType(s)
	default:
		return RequestTypeNone
	}
}

// ItemStatus is the closed set of backend-reported item states.
type ItemStatus string

const (
	ItemStatusNone           ItemStatus = "None"
	ItemStatusAvailable      ItemStatus = "Available"
	ItemStatusAwaitingPickup ItemStatus = "Awaiting pickup"
	ItemStatusCheckedOut     ItemStatus = "Checked out"
	ItemStatusInTransit      ItemStatus = "In transit"
	ItemStatusMissing        ItemStatus = "Missing"
	ItemStatusPaged          ItemStatus = "Paged"
	ItemStatusOnOrder        ItemStatus = "On order"
	ItemStatusInProcess      ItemStatus = "In process"
)

// ParseItemStatus maps a backend status name to the closed enum;
// unrecognized values become None.
func ParseItemStatus(s string) ItemStatus {
	switch ItemStatus(s) {
	case ItemStatusAvailable, ItemStatusAwaitingPickup, ItemStatusCheckedOut,
		ItemStatusInTransit, ItemStatusMissing, ItemStatusPaged,
		ItemStatusOnOrder, ItemStatusInProcess:
		return ItemStatus(s)
	default:
		return ItemStatusNone
	}
}

// RequestTypeParameters is the ephemeral lookup key for a circulation-rules
// match. Built once per hold-creation attempt and discarded.
type RequestTypeParameters struct {
	MaterialTypeID string
	LoanTypeID     string
	LocationID     string
	PatronGroupID  string
	ItemStatus     ItemStatus
}

// RequestPolicy carries the ordered list of request types the matched
// circulation rule permits.
type RequestPolicy struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	RequestTypes []string `json:"requestTypes"`
}
