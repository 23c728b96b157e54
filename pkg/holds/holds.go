package holds

import (
	"context"
	"time"

	"github.com/folio-org/mod-patron-sub000/pkg/account"
	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

const (
	holdShelfFulfillment = "Hold Shelf"

	// cancelledDate wire format expected by circulation.
	cancelledDateLayout = "2006-01-02T15:04:05.000Z0700"
)

// TypeResolver answers which request type is permitted for a patron+item
// pair.
type TypeResolver interface {
	Resolve(ctx context.Context, patronID, itemID string, headers map[string]string) (models.RequestType, error)
}

// RoutingFlags selects between legacy instance holds and central ("ECS")
// title-level request routing.
type RoutingFlags interface {
	EcsTlrEnabled(ctx context.Context, headers map[string]string) bool
}

// Manager creates and cancels holds. Every operation is a single
// best-effort attempt against circulation; nothing here retries.
type Manager struct {
	gw       *gateway.Client
	resolver TypeResolver
	flags    RoutingFlags
}

func NewManager(gw *gateway.Client, resolver TypeResolver, flags RoutingFlags) *Manager {
	return &Manager{gw: gw, resolver: resolver, flags: flags}
}

// CreateItemHold resolves the permitted request type first and refuses the
// whole operation, without touching circulation, when nothing is permitted.
func (m *Manager) CreateItemHold(ctx context.Context, patronID, itemID string, input models.HoldCreateInput, headers map[string]string) (*models.Hold, error) {
	requestType, err := m.resolver.Resolve(ctx, patronID, itemID, headers)
	if err != nil {
		return nil, err
	}
	if requestType == models.RequestTypeNone {
		return nil, apierr.NewValidationError(
			"cannot create a hold request for this item",
			apierr.Parameter{Key: "itemId", Value: itemID})
	}

	payload := models.CirculationRequest{
		ItemID:                itemID,
		RequesterID:           patronID,
		RequestLevel:          "Item",
		RequestType:           string(requestType),
		RequestDate:           requestDate(input),
		RequestExpirationDate: input.ExpirationDate,
		FulfillmentPreference: holdShelfFulfillment,
		PickupServicePointID:  input.PickupServicePointID,
		PatronComments:        input.PatronComments,
	}

	var created models.CirculationRequest
	if err := m.gw.PostJSON(ctx, "/circulation/requests", payload, headers, &created); err != nil {
		return nil, err
	}
	return account.MapRequestToHold(created)
}

// CreateInstanceHold places a title-level hold. With the ECS-TLR feature
// enabled the request is tagged as a title-level page and posted to the
// external-request endpoint; otherwise a plain instance hold goes to the
// legacy endpoint.
func (m *Manager) CreateInstanceHold(ctx context.Context, patronID, instanceID string, input models.HoldCreateInput, headers map[string]string) (*models.Hold, error) {
	var (
		path    string
		payload models.CirculationRequest
	)
	if m.flags != nil && m.flags.EcsTlrEnabled(ctx, headers) {
		path = "/circulation/requests/external"
		payload = models.CirculationRequest{
			InstanceID:            instanceID,
			RequesterID:           patronID,
			RequestLevel:          "Title",
			RequestType:           string(models.RequestTypePage),
			RequestDate:           requestDate(input),
			RequestExpirationDate: input.ExpirationDate,
			FulfillmentPreference: holdShelfFulfillment,
			PickupServicePointID:  input.PickupServicePointID,
			PatronComments:        input.PatronComments,
		}
	} else {
		path = "/circulation/requests/instances"
		payload = models.CirculationRequest{
			InstanceID:            instanceID,
			RequesterID:           patronID,
			RequestDate:           requestDate(input),
			RequestExpirationDate: input.ExpirationDate,
			FulfillmentPreference: holdShelfFulfillment,
			PickupServicePointID:  input.PickupServicePointID,
			PatronComments:        input.PatronComments,
		}
	}

	var created models.CirculationRequest
	if err := m.gw.PostJSON(ctx, path, payload, headers, &created); err != nil {
		return nil, err
	}
	return account.MapRequestToHold(created)
}

// CancelHold fetches the existing request, strips the denormalized item
// fields circulation refuses on update, overlays the caller's cancellation
// fields, forces the closed-cancelled status and PUTs the record back. The
// returned hold is reconstructed locally; a successful PUT response body is
// typically empty and is not consulted.
func (m *Manager) CancelHold(ctx context.Context, holdID string, cancellation models.HoldCancellation, headers map[string]string) (*models.Hold, error) {
	var existing models.CirculationRequest
	if err := m.gw.GetJSON(ctx, "/circulation/requests/"+holdID, nil, headers, &existing); err != nil {
		return nil, err
	}

	updated := existing
	updated.InstanceID = ""
	if updated.Item != nil {
		stripped := *updated.Item
		stripped.InstanceID = ""
		stripped.Title = ""
		stripped.Contributors = nil
		updated.Item = &stripped
	}
	applyCancellation(&updated, cancellation)

	if _, err := m.gw.Put(ctx, "/circulation/requests/"+holdID, updated, headers); err != nil {
		return nil, err
	}

	applyCancellation(&existing, cancellation)
	hold, err := account.MapRequestToHold(existing)
	if err != nil {
		return nil, err
	}
	canceled := cancellation.CanceledDate
	hold.CanceledDate = &canceled
	return hold, nil
}

func applyCancellation(req *models.CirculationRequest, c models.HoldCancellation) {
	req.CancellationReasonID = c.CancellationReasonID
	req.CancelledByUserID = c.CanceledByUserID
	req.CancelledDate = c.CanceledDate.Format(cancelledDateLayout)
	req.CancellationAdditionalInformation = c.AdditionalInformation
	req.Status = string(models.HoldStatusClosedCancelled)
}

func requestDate(input models.HoldCreateInput) time.Time {
	if input.RequestDate.IsZero() {
		return time.Now().UTC()
	}
	return input.RequestDate
}
