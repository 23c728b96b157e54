package policy

import (
	"context"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

// compatibleStatuses is the request-type / item-status whitelist. Page is
// absent on purpose: production has never permitted it, and keeping the
// policy here means changing it is a table edit, not resolver surgery.
var compatibleStatuses = map[models.RequestType][]models.ItemStatus{
	models.RequestTypeHold: {
		models.ItemStatusCheckedOut,
		models.ItemStatusOnOrder,
		models.ItemStatusInProcess,
	},
	models.RequestTypeRecall: {
		models.ItemStatusCheckedOut,
		models.ItemStatusOnOrder,
		models.ItemStatusInProcess,
		models.ItemStatusPaged,
	},
}

// CanCreate reports whether a request of the given type may be created for
// an item in the given status.
func CanCreate(requestType models.RequestType, status models.ItemStatus) bool {
	if requestType == models.RequestTypeNone || status == models.ItemStatusNone {
		return false
	}
	for _, allowed := range compatibleStatuses[requestType] {
		if allowed == status {
			return true
		}
	}
	return false
}

// Resolver determines which kind of circulation request is permitted for a
// patron and item pair by combining the circulation-rules lookup with the
// compatibility table above.
type Resolver struct {
	gw *gateway.Client
}

func NewResolver(gw *gateway.Client) *Resolver {
	return &Resolver{gw: gw}
}

// Resolve returns the first policy-listed request type the item's status
// allows, or None when nothing is permitted.
func (r *Resolver) Resolve(ctx context.Context, patronID, itemID string, headers map[string]string) (models.RequestType, error) {
	var (
		user models.User
		item models.InventoryItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.gw.GetJSON(gctx, "/users/"+patronID, nil, headers, &user)
	})
	g.Go(func() error {
		return r.gw.GetJSON(gctx, "/inventory/items/"+itemID, nil, headers, &item)
	})
	if err := g.Wait(); err != nil {
		return models.RequestTypeNone, err
	}

	params := models.RequestTypeParameters{
		MaterialTypeID: item.MaterialType.ID,
		LoanTypeID:     item.PermanentLoanType.ID,
		LocationID:     item.EffectiveLocation.ID,
		PatronGroupID:  user.PatronGroup,
		ItemStatus:     models.ParseItemStatus(item.Status.Name),
	}

	requestPolicy, err := r.lookupPolicy(ctx, params, headers)
	if err != nil {
		return models.RequestTypeNone, err
	}

	for _, name := range requestPolicy.RequestTypes {
		requestType := models.ParseRequestType(name)
		if CanCreate(requestType, params.ItemStatus) {
			return requestType, nil
		}
	}
	return models.RequestTypeNone, nil
}

func (r *Resolver) lookupPolicy(ctx context.Context, params models.RequestTypeParameters, headers map[string]string) (*models.RequestPolicy, error) {
	query := url.Values{
		"item_type_id":   {params.MaterialTypeID},
		"loan_type_id":   {params.LoanTypeID},
		"patron_type_id": {params.PatronGroupID},
		"location_id":    {params.LocationID},
	}
	var result models.RulesPolicyResult
	if err := r.gw.GetJSON(ctx, "/circulation/rules/request-policy", query, headers, &result); err != nil {
		return nil, err
	}

	var requestPolicy models.RequestPolicy
	if err := r.gw.GetJSON(ctx, "/request-policy-storage/request-policies/"+result.RequestPolicyID, nil, headers, &requestPolicy); err != nil {
		return nil, err
	}
	return &requestPolicy, nil
}
