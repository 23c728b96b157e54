package models

import (
	"strings"
	"time"
)

// Item is the projection of a backend item/instance pair that travels with
// loans, holds and charges. Never persisted, recomputed per request.
type Item struct {
	ItemID     string `json:"itemId,omitempty"`
	InstanceID string `json:"instanceId,omitempty"`
	Title      string `json:"title,omitempty"`
	Author     string `json:"author,omitempty"`
}

type Loan struct {
	ID       string     `json:"id"`
	Item     Item       `json:"item"`
	LoanDate time.Time  `json:"loanDate"`
	DueDate  *time.Time `json:"dueDate,omitempty"`
	Overdue  bool       `json:"overdue"`
}

type TotalCharges struct {
	Amount          float64 `json:"amount"`
	ISOCurrencyCode string  `json:"isoCurrencyCode"`
}

type Charge struct {
	Item         *Item        `json:"item,omitempty"`
	ChargeAmount TotalCharges `json:"chargeAmount"`
	AccrualDate  *time.Time   `json:"accrualDate,omitempty"`
	State        string       `json:"state"`
	Reason       string       `json:"reason,omitempty"`
}

// Account is the aggregate root composed per request. Lists are present but
// empty when the corresponding include flag was false; totals always carry
// the backend-reported values.
type Account struct {
	TotalCharges      TotalCharges `json:"totalCharges"`
	TotalChargesCount int          `json:"totalChargesCount"`
	Charges           []Charge     `json:"charges"`
	TotalLoans        int          `json:"totalLoans"`
	Loans             []Loan       `json:"loans"`
	TotalHolds        int          `json:"totalHolds"`
	Holds             []Hold       `json:"holds"`
}

// AuthorFromContributors derives the display author by joining contributor
// names with "; ".
func AuthorFromContributors(contributors []Contributor) string {
	names := make([]string, 0, len(contributors))
	for _, c := range contributors {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return strings.Join(names, "; ")
}
