package models

import "time"

// Backend mediated-request statuses observed on batch records and their
// per-item detail rows. Free text from the backend's point of view; anything
// outside the completed set keeps a batch InProgress.
const (
	MediatedStatusPending    = "Pending"
	MediatedStatusInProgress = "In progress"
	MediatedStatusCompleted  = "Completed"
	MediatedStatusFailed     = "Failed"
)

type BatchStatusValue string

const (
	BatchStatusInProgress BatchStatusValue = "InProgress"
	BatchStatusCompleted  BatchStatusValue = "Completed"
)

// BatchRequestItem is one requested item in a caller-submitted batch.
type BatchRequestItem struct {
	ItemID               string `json:"itemId" binding:"required"`
	PickupServicePointID string `json:"pickupServicePointId" binding:"required"`
	PatronComments       string `json:"patronComments,omitempty"`
}

// BatchRequest is the caller's submission shape for a mediated batch.
type BatchRequest struct {
	Items          []BatchRequestItem `json:"items" binding:"required"`
	PatronComments string             `json:"patronComments,omitempty"`
}

type BatchRequestStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// BatchRequestDto is the backend's batch summary record.
type BatchRequestDto struct {
	ID                    string            `json:"id"`
	RequesterID           string            `json:"requesterId"`
	MediatedRequestStatus string            `json:"mediatedRequestStatus"`
	RequestDate           time.Time         `json:"requestDate"`
	Stats                 BatchRequestStats `json:"itemRequestStats"`
	PatronComments        string            `json:"patronComments,omitempty"`
	MediatedWorkflow      string            `json:"mediatedWorkflow,omitempty"`
	Metadata              Metadata          `json:"metadata"`
}

// BatchRequestDetailsDto is one per-item row of a batch's details
// collection.
type BatchRequestDetailsDto struct {
	BatchID               string   `json:"batchId"`
	ItemID                string   `json:"itemId"`
	RequesterID           string   `json:"requesterId"`
	PickupServicePointID  string   `json:"pickupServicePointId"`
	MediatedRequestStatus string   `json:"mediatedRequestStatus"`
	ConfirmedRequestID    string   `json:"confirmedRequestId,omitempty"`
	ErrorCode             string   `json:"errorCode,omitempty"`
	ErrorDetails          string   `json:"errorDetails,omitempty"`
	PatronComments        string   `json:"patronComments,omitempty"`
	Metadata              Metadata `json:"metadata"`
}

// BatchInstance is the caller-supplied instance reference for a status
// read; Title may be blank and then gets backfilled from inventory.
type BatchInstance struct {
	InstanceID string `json:"instanceId"`
	Title      string `json:"title,omitempty"`
}

// BatchStatusDetail is one row of the client-facing status breakdown.
type BatchStatusDetail struct {
	ItemID             string `json:"itemId"`
	PickupLocationID   string `json:"pickupLocationId"`
	InstanceID         string `json:"instanceId"`
	Title              string `json:"title,omitempty"`
	ConfirmedRequestID string `json:"confirmedRequestId,omitempty"`
	ErrorCode          string `json:"errorCode,omitempty"`
	ErrorDetails       string `json:"errorDetails,omitempty"`
}

// BatchRequestStatus is the stable client-facing status report.
type BatchRequestStatus struct {
	BatchRequestID        string              `json:"batchRequestId"`
	Status                BatchStatusValue    `json:"status"`
	SubmittedAt           time.Time           `json:"submittedAt"`
	CompletedAt           *time.Time          `json:"completedAt,omitempty"`
	ItemsTotal            int                 `json:"itemsTotal"`
	ItemsRequested        int                 `json:"itemsRequested"`
	ItemsPending          int                 `json:"itemsPending"`
	ItemsFailed           int                 `json:"itemsFailed"`
	ItemsPendingDetails   []BatchStatusDetail `json:"itemsPendingDetails"`
	ItemsFailedDetails    []BatchStatusDetail `json:"itemsFailedDetails"`
	ItemsRequestedDetails []BatchStatusDetail `json:"itemsRequestedDetails"`
}
