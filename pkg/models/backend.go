package models

import "time"

// Backend response shapes. These mirror the JSON the collaborating services
// return; each has exactly the fields this module reads.

type Metadata struct {
	CreatedDate     time.Time  `json:"createdDate"`
	CreatedByUserID string     `json:"createdByUserId,omitempty"`
	UpdatedDate     *time.Time `json:"updatedDate,omitempty"`
	UpdatedByUserID string     `json:"updatedByUserId,omitempty"`
}

type User struct {
	ID          string `json:"id"`
	Active      bool   `json:"active"`
	PatronGroup string `json:"patronGroup"`
	Barcode     string `json:"barcode,omitempty"`
}

type Contributor struct {
	Name string `json:"name"`
}

type NameRef struct {
	Name string `json:"name"`
}

type IDRef struct {
	ID string `json:"id"`
}

// InventoryItem is the /inventory/items record.
type InventoryItem struct {
	ID                string        `json:"id"`
	HoldingsRecordID  string        `json:"holdingsRecordId"`
	Title             string        `json:"title,omitempty"`
	Contributors      []Contributor `json:"contributorNames,omitempty"`
	Status            NameRef       `json:"status"`
	MaterialType      IDRef         `json:"materialType"`
	PermanentLoanType IDRef         `json:"permanentLoanType"`
	EffectiveLocation IDRef         `json:"effectiveLocation"`
}

// Instance is the /inventory/instances record.
type Instance struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Contributors []Contributor `json:"contributors"`
}

type Instances struct {
	Instances    []Instance `json:"instances"`
	TotalRecords int        `json:"totalRecords"`
}

// EmbeddedItem is the denormalized item fragment circulation embeds in
// loans and requests.
type EmbeddedItem struct {
	InstanceID   string        `json:"instanceId,omitempty"`
	Title        string        `json:"title,omitempty"`
	Barcode      string        `json:"barcode,omitempty"`
	Contributors []Contributor `json:"contributors,omitempty"`
}

type CirculationLoan struct {
	ID       string       `json:"id"`
	ItemID   string       `json:"itemId"`
	LoanDate time.Time    `json:"loanDate"`
	DueDate  *time.Time   `json:"dueDate,omitempty"`
	Item     EmbeddedItem `json:"item"`
}

type CirculationLoans struct {
	Loans        []CirculationLoan `json:"loans"`
	TotalRecords int               `json:"totalRecords"`
}

// CirculationRequest is the /circulation/requests record, used both as a
// response shape and as the creation/update payload.
type CirculationRequest struct {
	ID                                string        `json:"id,omitempty"`
	RequestType                       string        `json:"requestType,omitempty"`
	RequestLevel                      string        `json:"requestLevel,omitempty"`
	RequestDate                       time.Time     `json:"requestDate"`
	RequestExpirationDate             *time.Time    `json:"requestExpirationDate,omitempty"`
	RequesterID                       string        `json:"requesterId"`
	ItemID                            string        `json:"itemId,omitempty"`
	InstanceID                        string        `json:"instanceId,omitempty"`
	HoldingsRecordID                  string        `json:"holdingsRecordId,omitempty"`
	Item                              *EmbeddedItem `json:"item,omitempty"`
	Status                            string        `json:"status,omitempty"`
	Position                          int           `json:"position,omitempty"`
	PickupServicePointID              string        `json:"pickupServicePointId,omitempty"`
	FulfillmentPreference             string        `json:"fulfillmentPreference,omitempty"`
	PatronComments                    string        `json:"patronComments,omitempty"`
	CancellationReasonID              string        `json:"cancellationReasonId,omitempty"`
	CancelledByUserID                 string        `json:"cancelledByUserId,omitempty"`
	CancelledDate                     string        `json:"cancelledDate,omitempty"`
	CancellationAdditionalInformation string        `json:"cancellationAdditionalInformation,omitempty"`
}

type CirculationRequests struct {
	Requests     []CirculationRequest `json:"requests"`
	TotalRecords int                  `json:"totalRecords"`
}

// FeeAccount is one /accounts record (a fee/fine).
type FeeAccount struct {
	ID               string   `json:"id"`
	Amount           float64  `json:"amount"`
	Remaining        float64  `json:"remaining"`
	FeeFineType      string   `json:"feeFineType,omitempty"`
	PaymentStatus    *NameRef `json:"paymentStatus,omitempty"`
	Status           NameRef  `json:"status"`
	ItemID           string   `json:"itemId,omitempty"`
	HoldingsRecordID string   `json:"holdingsRecordId,omitempty"`
	Metadata         Metadata `json:"metadata"`
}

type FeeAccounts struct {
	Accounts     []FeeAccount `json:"accounts"`
	TotalRecords int          `json:"totalRecords"`
}

// RulesPolicyResult is the circulation-rules engine's answer for one
// parameter set.
type RulesPolicyResult struct {
	RequestPolicyID string `json:"requestPolicyId"`
}

// BatchRequestDetails is the details collection envelope.
type BatchRequestDetails struct {
	Details      []BatchRequestDetailsDto `json:"details"`
	TotalRecords int                      `json:"totalRecords"`
}

// CirculationSetting is one row of the circulation-settings collection used
// for the ECS-TLR feature lookup.
type CirculationSetting struct {
	ID    string                  `json:"id"`
	Name  string                  `json:"name"`
	Value CirculationSettingValue `json:"value"`
}

type CirculationSettingValue struct {
	Enabled bool `json:"enabled"`
}

type CirculationSettings struct {
	Settings     []CirculationSetting `json:"circulationSettings"`
	TotalRecords int                  `json:"totalRecords"`
}

// TlrSettings is the mod-tlr settings shape consulted when circulation
// settings carry no ECS-TLR row.
type TlrSettings struct {
	EcsTlrFeatureEnabled bool `json:"ecsTlrFeatureEnabled"`
}
