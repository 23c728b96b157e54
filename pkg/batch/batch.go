package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

const basePath = "/requests-mediated/batch-mediated-requests"

// Aggregator creates mediated batch requests and composes their status
// reports out of the summary record and the per-item details collection.
type Aggregator struct {
	gw *gateway.Client
}

func NewAggregator(gw *gateway.Client) *Aggregator {
	return &Aggregator{gw: gw}
}

type createItem struct {
	ItemID               string `json:"itemId"`
	PickupServicePointID string `json:"pickupServicePointId"`
	PatronComments       string `json:"patronComments,omitempty"`
}

type createPayload struct {
	RequesterID      string       `json:"requesterId"`
	MediatedWorkflow string       `json:"mediatedWorkflow"`
	PatronComments   string       `json:"patronComments,omitempty"`
	MediatedRequests []createItem `json:"mediatedRequests"`
}

// Create submits the caller's item list as one mediated batch. An empty
// response body from the backend is a mapping failure, not retried.
func (a *Aggregator) Create(ctx context.Context, request models.BatchRequest, requesterID string, headers map[string]string) (*models.BatchRequestDto, error) {
	if len(request.Items) == 0 {
		return nil, apierr.NewValidationError(
			"batch request must contain at least one item",
			apierr.Parameter{Key: "items", Value: "[]"})
	}

	payload := createPayload{
		RequesterID:      requesterID,
		MediatedWorkflow: "Batch requests",
		PatronComments:   request.PatronComments,
		MediatedRequests: make([]createItem, 0, len(request.Items)),
	}
	for _, item := range request.Items {
		payload.MediatedRequests = append(payload.MediatedRequests, createItem{
			ItemID:               item.ItemID,
			PickupServicePointID: item.PickupServicePointID,
			PatronComments:       item.PatronComments,
		})
	}

	var created models.BatchRequestDto
	if err := a.gw.PostJSON(ctx, basePath, payload, headers, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Status builds the client-facing report for one batch. The summary and
// details reads are independent and run in parallel; while the batch is
// still in progress the details collection is the fresher source, so its
// partition sizes overwrite the summary's counters.
func (a *Aggregator) Status(ctx context.Context, batchID string, instance models.BatchInstance, headers map[string]string) (*models.BatchRequestStatus, error) {
	if instance.InstanceID == "" {
		return nil, apierr.BadRequest("instanceId is required for a batch status read")
	}

	var (
		summary models.BatchRequestDto
		details models.BatchRequestDetails
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.gw.GetJSON(gctx, basePath+"/"+batchID, nil, headers, &summary)
	})
	g.Go(func() error {
		return a.gw.GetJSON(gctx, basePath+"/"+batchID+"/details", nil, headers, &details)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	status := &models.BatchRequestStatus{
		BatchRequestID: summary.ID,
		Status:         models.BatchStatusInProgress,
		SubmittedAt:    summary.RequestDate,
	}
	if summary.MediatedRequestStatus == models.MediatedStatusCompleted ||
		summary.MediatedRequestStatus == models.MediatedStatusFailed {
		status.Status = models.BatchStatusCompleted
		status.CompletedAt = summary.Metadata.UpdatedDate
		status.ItemsTotal = summary.Stats.Total
		status.ItemsFailed = summary.Stats.Failed
		status.ItemsPending = summary.Stats.Pending + summary.Stats.InProgress
		status.ItemsRequested = summary.Stats.Completed
	}

	pending, failed, requested := Partition(details.Details)
	status.ItemsPendingDetails = mapDetails(pending, instance.InstanceID)
	status.ItemsFailedDetails = mapDetails(failed, instance.InstanceID)
	status.ItemsRequestedDetails = mapDetails(requested, instance.InstanceID)

	if status.Status == models.BatchStatusInProgress {
		status.ItemsTotal = len(details.Details)
		status.ItemsPending = len(pending)
		status.ItemsFailed = len(failed)
		status.ItemsRequested = len(requested)
	}

	title := instance.Title
	if title == "" {
		var inv models.Instance
		if err := a.gw.GetJSON(ctx, "/inventory/instances/"+instance.InstanceID, nil, headers, &inv); err != nil {
			return nil, err
		}
		title = inv.Title
	}
	stampTitle(status.ItemsPendingDetails, title)
	stampTitle(status.ItemsFailedDetails, title)
	stampTitle(status.ItemsRequestedDetails, title)

	return status, nil
}

// Partition splits detail rows into pending-or-in-progress, failed, and
// completed-with-a-confirmed-request-id.
func Partition(details []models.BatchRequestDetailsDto) (pending, failed, requested []models.BatchRequestDetailsDto) {
	for _, row := range details {
		switch row.MediatedRequestStatus {
		case models.MediatedStatusPending, models.MediatedStatusInProgress:
			pending = append(pending, row)
		case models.MediatedStatusFailed:
			failed = append(failed, row)
		case models.MediatedStatusCompleted:
			if row.ConfirmedRequestID != "" {
				requested = append(requested, row)
			}
		}
	}
	return pending, failed, requested
}

func mapDetails(rows []models.BatchRequestDetailsDto, instanceID string) []models.BatchStatusDetail {
	mapped := make([]models.BatchStatusDetail, 0, len(rows))
	for _, row := range rows {
		mapped = append(mapped, models.BatchStatusDetail{
			ItemID:             row.ItemID,
			PickupLocationID:   row.PickupServicePointID,
			InstanceID:         instanceID,
			ConfirmedRequestID: row.ConfirmedRequestID,
			ErrorCode:          row.ErrorCode,
			ErrorDetails:       row.ErrorDetails,
		})
	}
	return mapped
}

func stampTitle(rows []models.BatchStatusDetail, title string) {
	for i := range rows {
		rows[i].Title = title
	}
}
