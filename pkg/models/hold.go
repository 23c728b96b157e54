package models

import "time"

type HoldStatus string

const (
	HoldStatusOpenNotYetFilled     HoldStatus = "Open - Not yet filled"
	HoldStatusOpenAwaitingPickup   HoldStatus = "Open - Awaiting pickup"
	HoldStatusOpenAwaitingDelivery HoldStatus = "Open - Awaiting delivery"
	HoldStatusOpenInTransit        HoldStatus = "Open - In transit"
	HoldStatusClosedFilled         HoldStatus = "Closed - Filled"
	HoldStatusClosedCancelled      HoldStatus = "Closed - Cancelled"
	HoldStatusClosedUnfilled       HoldStatus = "Closed - Unfilled"
	HoldStatusClosedPickupExpired  HoldStatus = "Closed - Pickup expired"
)

var holdStatuses = map[string]HoldStatus{
	string(HoldStatusOpenNotYetFilled):     HoldStatusOpenNotYetFilled,
	string(HoldStatusOpenAwaitingPickup):   HoldStatusOpenAwaitingPickup,
	string(HoldStatusOpenAwaitingDelivery): HoldStatusOpenAwaitingDelivery,
	string(HoldStatusOpenInTransit):        HoldStatusOpenInTransit,
	string(HoldStatusClosedFilled):         HoldStatusClosedFilled,
	string(HoldStatusClosedCancelled):      HoldStatusClosedCancelled,
	string(HoldStatusClosedUnfilled):       HoldStatusClosedUnfilled,
	string(HoldStatusClosedPickupExpired):  HoldStatusClosedPickupExpired,
}

// ParseHoldStatus maps a backend status string to the closed enum. The
// second return is false for anything outside the recognized set; callers
// must treat that as a validation failure, not default it away.
func ParseHoldStatus(s string) (HoldStatus, bool) {
	status, ok := holdStatuses[s]
	return status, ok
}

type Hold struct {
	RequestID                         string      `json:"requestId"`
	Item                              Item        `json:"item"`
	RequestType                       RequestType `json:"requestType,omitempty"`
	RequestDate                       time.Time   `json:"requestDate"`
	ExpirationDate                    *time.Time  `json:"expirationDate,omitempty"`
	PickupLocationID                  string      `json:"pickupLocationId,omitempty"`
	QueuePosition                     int         `json:"queuePosition,omitempty"`
	Status                            HoldStatus  `json:"status"`
	CancellationReasonID              string      `json:"cancellationReasonId,omitempty"`
	CanceledByUserID                  string      `json:"canceledByUserId,omitempty"`
	CancellationAdditionalInformation string      `json:"cancellationAdditionalInformation,omitempty"`
	CanceledDate                      *time.Time  `json:"canceledDate,omitempty"`
	PatronComments                    string      `json:"patronComments,omitempty"`
}

// HoldCreateInput is the caller-supplied part of a hold creation.
type HoldCreateInput struct {
	RequestDate          time.Time  `json:"requestDate"`
	ExpirationDate       *time.Time `json:"expirationDate,omitempty"`
	PickupServicePointID string     `json:"pickupLocationId" binding:"required"`
	PatronComments       string     `json:"patronComments,omitempty"`
}

// HoldCancellation is the caller-supplied part of a hold cancellation.
// The resulting hold takes all four fields from here, never from the
// original record.
type HoldCancellation struct {
	CancellationReasonID  string    `json:"cancellationReasonId" binding:"required"`
	CanceledByUserID      string    `json:"canceledByUserId" binding:"required"`
	CanceledDate          time.Time `json:"canceledDate"`
	AdditionalInformation string    `json:"cancellationAdditionalInformation,omitempty"`
}
