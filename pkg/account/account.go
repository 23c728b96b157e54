package account

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/folio-org/mod-patron-sub000/pkg/apierr"
	"github.com/folio-org/mod-patron-sub000/pkg/gateway"
	"github.com/folio-org/mod-patron-sub000/pkg/models"
)

// maxLimit asks the backend for every matching record.
const maxLimit = 2147483647

const currencyCode = "USD"

// Aggregator composes the unified patron account view out of the loans,
// requests and fee services. Read-only; each call builds everything fresh
// from backend responses.
type Aggregator struct {
	gw *gateway.Client
}

func NewAggregator(gw *gateway.Client) *Aggregator {
	return &Aggregator{gw: gw}
}

// GetAccount verifies the patron is active, then fetches loans, holds and
// charges in parallel. Counts are always populated from the backend's
// totalRecords; detail lists only when the matching include flag is set.
// Loans and holds are fetched with limit=1 when their list is suppressed;
// charges are always fetched in full because the charge total is a sum over
// every open fee, not a record count.
func (a *Aggregator) GetAccount(ctx context.Context, patronID string, includeLoans, includeHolds, includeCharges bool, headers map[string]string) (*models.Account, error) {
	var user models.User
	if err := a.gw.GetJSON(ctx, "/users/"+patronID, nil, headers, &user); err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apierr.BadRequest("patron %s is not active", patronID)
	}

	account := &models.Account{
		TotalCharges: models.TotalCharges{ISOCurrencyCode: currencyCode},
		Loans:        []models.Loan{},
		Holds:        []models.Hold{},
		Charges:      []models.Charge{},
	}

	var (
		loans    models.CirculationLoans
		holds    models.CirculationRequests
		accounts models.FeeAccounts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := url.Values{
			"query": {fmt.Sprintf("(userId==%s and status.name==Open)", patronID)},
			"limit": {countLimit(includeLoans)},
		}
		return a.gw.GetJSON(gctx, "/circulation/loans", query, headers, &loans)
	})
	g.Go(func() error {
		query := url.Values{
			"query": {fmt.Sprintf("(requesterId==%s and requestType==Hold and status==Open*)", patronID)},
			"limit": {countLimit(includeHolds)},
		}
		return a.gw.GetJSON(gctx, "/circulation/requests", query, headers, &holds)
	})
	g.Go(func() error {
		query := url.Values{
			"query": {fmt.Sprintf("(userId==%s and status.name==Open)", patronID)},
			"limit": {strconv.Itoa(maxLimit)},
		}
		return a.gw.GetJSON(gctx, "/accounts", query, headers, &accounts)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	account.TotalLoans = loans.TotalRecords
	if includeLoans {
		now := time.Now()
		for _, loan := range loans.Loans {
			account.Loans = append(account.Loans, mapLoan(loan, now))
		}
	}

	account.TotalHolds = holds.TotalRecords
	if includeHolds {
		for _, req := range holds.Requests {
			hold, err := MapRequestToHold(req)
			if err != nil {
				return nil, err
			}
			account.Holds = append(account.Holds, *hold)
		}
	}

	account.TotalChargesCount = accounts.TotalRecords
	for _, fee := range accounts.Accounts {
		account.TotalCharges.Amount += fee.Remaining
	}
	if includeCharges {
		for _, fee := range accounts.Accounts {
			account.Charges = append(account.Charges, mapCharge(fee))
		}
		if err := a.enrichChargeItems(ctx, account.Charges, accounts.Accounts, headers); err != nil {
			return nil, err
		}
	}

	return account, nil
}

func countLimit(include bool) string {
	if include {
		return strconv.Itoa(maxLimit)
	}
	return "1"
}

func mapLoan(loan models.CirculationLoan, now time.Time) models.Loan {
	return models.Loan{
		ID: loan.ID,
		Item: models.Item{
			ItemID:     loan.ItemID,
			InstanceID: loan.Item.InstanceID,
			Title:      loan.Item.Title,
			Author:     models.AuthorFromContributors(loan.Item.Contributors),
		},
		LoanDate: loan.LoanDate,
		DueDate:  loan.DueDate,
		// Snapshot at fetch time, never re-evaluated.
		Overdue: loan.DueDate != nil && loan.DueDate.Before(now),
	}
}

// MapRequestToHold projects a circulation request into the client-facing
// hold. A status outside the recognized set fails validation.
func MapRequestToHold(req models.CirculationRequest) (*models.Hold, error) {
	status, ok := models.ParseHoldStatus(req.Status)
	if !ok {
		return nil, apierr.NewValidationError(
			"unrecognized hold status",
			apierr.Parameter{Key: "status", Value: req.Status})
	}

	item := models.Item{
		ItemID:     req.ItemID,
		InstanceID: req.InstanceID,
	}
	if req.Item != nil {
		if item.InstanceID == "" {
			item.InstanceID = req.Item.InstanceID
		}
		item.Title = req.Item.Title
		item.Author = models.AuthorFromContributors(req.Item.Contributors)
	}

	hold := &models.Hold{
		RequestID:                         req.ID,
		Item:                              item,
		RequestType:                       models.ParseRequestType(req.RequestType),
		RequestDate:                       req.RequestDate,
		ExpirationDate:                    req.RequestExpirationDate,
		PickupLocationID:                  req.PickupServicePointID,
		QueuePosition:                     req.Position,
		Status:                            status,
		CancellationReasonID:              req.CancellationReasonID,
		CanceledByUserID:                  req.CancelledByUserID,
		CancellationAdditionalInformation: req.CancellationAdditionalInformation,
		PatronComments:                    req.PatronComments,
	}
	if req.CancelledDate != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z0700"} {
			if parsed, err := time.Parse(layout, req.CancelledDate); err == nil {
				hold.CanceledDate = &parsed
				break
			}
		}
	}
	return hold, nil
}

func mapCharge(fee models.FeeAccount) models.Charge {
	charge := models.Charge{
		ChargeAmount: models.TotalCharges{
			Amount:          fee.Remaining,
			ISOCurrencyCode: currencyCode,
		},
		Reason: fee.FeeFineType,
		State:  "Unknown",
	}
	if fee.PaymentStatus != nil && fee.PaymentStatus.Name != "" {
		charge.State = fee.PaymentStatus.Name
	}
	if !fee.Metadata.CreatedDate.IsZero() {
		created := fee.Metadata.CreatedDate
		charge.AccrualDate = &created
	}
	return charge
}

// enrichChargeItems resolves title and contributors for every charge that
// references an item: item by id, then the instance owning the item's
// holdings record. One lookup pair per distinct item, all concurrent.
func (a *Aggregator) enrichChargeItems(ctx context.Context, charges []models.Charge, fees []models.FeeAccount, headers map[string]string) error {
	distinct := make(map[string]bool)
	for _, fee := range fees {
		if fee.ItemID != "" {
			distinct[fee.ItemID] = true
		}
	}
	if len(distinct) == 0 {
		return nil
	}

	var mu sync.Mutex
	items := make(map[string]*models.Item, len(distinct))

	g, gctx := errgroup.WithContext(ctx)
	for itemID := range distinct {
		g.Go(func() error {
			item, err := a.lookupItem(gctx, itemID, headers)
			if err != nil {
				return err
			}
			mu.Lock()
			items[itemID] = item
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, fee := range fees {
		if item := items[fee.ItemID]; item != nil {
			charges[i].Item = item
		}
	}
	return nil
}

func (a *Aggregator) lookupItem(ctx context.Context, itemID string, headers map[string]string) (*models.Item, error) {
	var invItem models.InventoryItem
	if err := a.gw.GetJSON(ctx, "/inventory/items/"+itemID, nil, headers, &invItem); err != nil {
		return nil, err
	}
	if invItem.HoldingsRecordID == "" {
		return nil, apierr.BadRequest("item %s has no holdings record id", itemID)
	}

	query := url.Values{
		"query": {fmt.Sprintf("holdingsRecords.id==%s", invItem.HoldingsRecordID)},
		"limit": {"1"},
	}
	var instances models.Instances
	if err := a.gw.GetJSON(ctx, "/inventory/instances", query, headers, &instances); err != nil {
		return nil, err
	}

	item := &models.Item{
		ItemID: itemID,
		Title:  invItem.Title,
		Author: models.AuthorFromContributors(invItem.Contributors),
	}
	if len(instances.Instances) > 0 {
		instance := instances.Instances[0]
		item.InstanceID = instance.ID
		item.Title = instance.Title
		item.Author = models.AuthorFromContributors(instance.Contributors)
	}
	return item, nil
}
