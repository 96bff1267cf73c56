// Package filter evaluates declarative transaction filters.
package filter

import (
	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/ryanuber/go-glob"
)

// Filter is one entry of a filter dimension.
//
// The entry matches a transaction when the transaction is associated with
// the resource with ID. If ID is nil, the entry matches any association:
// every transaction for accounts, transactions with at least one category,
// a budget or a bill respectively for the other dimensions.
//
// Include set to false inverts the match, Negated inverts the result again.
// An entry only passes transactions dated within Timespan, or within the
// default timespan of the TransactionFilter if Timespan is nil.
type Filter struct {
	Negated  bool            `json:"negated" example:"false"`
	ID       *uint64         `json:"id" example:"3"`
	Include  bool            `json:"include" example:"true"`
	Timespan *types.Timespan `json:"timespan"`
}

// TransactionFilter selects transactions.
//
// A transaction passes if every non-empty dimension has at least one passing
// entry and its title matches TitlePattern. If all dimensions are empty,
// the default timespan alone decides.
type TransactionFilter struct {
	DefaultTimespan types.Timespan `json:"defaultTimespan"`
	Accounts        []Filter       `json:"accounts"`
	Categories      []Filter       `json:"categories"`
	Budgets         []Filter       `json:"budgets"`
	Bills           []Filter       `json:"bills"`
	TitlePattern    string         `json:"titlePattern" example:"*Rent*"` // Glob pattern for the title, * matches any string
}

// NeedsBills reports if the bills dimension is used.
func (f TransactionFilter) NeedsBills() bool {
	return len(f.Bills) > 0
}

// IsEmpty reports if no dimension has an entry.
func (f TransactionFilter) IsEmpty() bool {
	return len(f.Accounts) == 0 && len(f.Categories) == 0 && len(f.Budgets) == 0 && len(f.Bills) == 0
}

// Apply returns the transactions passing the filter in the order they were
// passed. bills is only used for the bills dimension.
func Apply(f TransactionFilter, transactions []models.Transaction, bills []models.Bill) []models.Transaction {
	e := newEvaluator(f, bills)

	result := make([]models.Transaction, 0)
	for _, t := range transactions {
		if e.passes(t) {
			result = append(result, t)
		}
	}
	return result
}

// Matches reports if the transaction passes the filter.
func Matches(f TransactionFilter, t models.Transaction, bills []models.Bill) bool {
	return newEvaluator(f, bills).passes(t)
}

type evaluator struct {
	filter TransactionFilter

	// billsOf maps transaction IDs to the IDs of the bills they are on
	billsOf map[uint64]map[uint64]bool
}

func newEvaluator(f TransactionFilter, bills []models.Bill) evaluator {
	e := evaluator{filter: f, billsOf: make(map[uint64]map[uint64]bool)}

	if !f.NeedsBills() {
		return e
	}

	for _, b := range bills {
		for _, t := range b.Transactions {
			if e.billsOf[t.TransactionID] == nil {
				e.billsOf[t.TransactionID] = make(map[uint64]bool)
			}
			e.billsOf[t.TransactionID][b.ID] = true
		}
	}

	return e
}

func (e evaluator) passes(t models.Transaction) bool {
	if e.filter.TitlePattern != "" && !glob.Glob(e.filter.TitlePattern, t.Title) {
		return false
	}

	if e.filter.IsEmpty() {
		return e.filter.DefaultTimespan.Contains(t.Date)
	}

	dimensions := []struct {
		entries []Filter
		match   func(id *uint64) bool
	}{
		{e.filter.Accounts, func(id *uint64) bool {
			return id == nil || t.Touches(*id)
		}},
		{e.filter.Categories, func(id *uint64) bool {
			if id == nil {
				return len(t.Categories) > 0
			}
			_, ok := t.Categories[*id]
			return ok
		}},
		{e.filter.Budgets, func(id *uint64) bool {
			return t.Budget != nil && (id == nil || t.Budget.BudgetID == *id)
		}},
		{e.filter.Bills, func(id *uint64) bool {
			if id == nil {
				return len(e.billsOf[t.ID]) > 0
			}
			return e.billsOf[t.ID][*id]
		}},
	}

	for _, d := range dimensions {
		if len(d.entries) == 0 {
			continue
		}

		if !e.anyPasses(d.entries, t, d.match) {
			return false
		}
	}

	return true
}

func (e evaluator) anyPasses(entries []Filter, t models.Transaction, match func(*uint64) bool) bool {
	for _, entry := range entries {
		value := match(entry.ID)
		if !entry.Include {
			value = !value
		}
		if entry.Negated {
			value = !value
		}

		timespan := e.filter.DefaultTimespan
		if entry.Timespan != nil {
			timespan = *entry.Timespan
		}

		if value && timespan.Contains(t.Date) {
			return true
		}
	}

	return false
}
