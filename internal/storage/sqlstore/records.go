package sqlstore

import (
	"time"

	"github.com/ledger-zero/backend/internal/models"
	"github.com/ledger-zero/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Amounts are stored as text. SQLite would convert decimal columns to
// floating point numbers.
//
// Times are stored as nanoseconds since the unix epoch so that range
// queries compare integers.

type databaseInfo struct {
	Tag   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

func (databaseInfo) TableName() string {
	return "database_info"
}

type accountRecord struct {
	ID             uint64 `gorm:"primaryKey"`
	Kind           string `gorm:"not null"`
	Name           string `gorm:"not null"`
	Note           string `gorm:"not null"`
	IBAN           string `gorm:"column:iban;not null"`
	BIC            string `gorm:"column:bic;not null"`
	OffsetAmount   string `gorm:"not null"`
	OffsetCurrency string `gorm:"not null"`
}

func (accountRecord) TableName() string {
	return "accounts"
}

type transactionRecord struct {
	ID                   uint64            `gorm:"primaryKey"`
	Amount               string            `gorm:"not null"`
	Currency             string            `gorm:"not null"`
	Title                string            `gorm:"not null"`
	Description          string            `gorm:"not null"`
	SourceAccountID      uint64            `gorm:"not null"`
	DestinationAccountID uint64            `gorm:"not null"`
	BudgetID             *uint64           // NULL if the transaction does not count towards a budget
	BudgetSign           int8              `gorm:"not null"`
	Date                 int64             `gorm:"not null"`
	Metadata             map[string]string `gorm:"serializer:json;type:text"`
}

func (transactionRecord) TableName() string {
	return "transactions"
}

type transactionCategoryRecord struct {
	TransactionID uint64     `gorm:"primaryKey;autoIncrement:false"`
	CategoryID    uint64     `gorm:"primaryKey;autoIncrement:false"`
	Sign          types.Sign `gorm:"not null"`
}

func (transactionCategoryRecord) TableName() string {
	return "transaction_category"
}

type budgetRecord struct {
	ID              uint64 `gorm:"primaryKey"`
	Name            string `gorm:"not null"`
	Description     string `gorm:"not null"`
	TotalAmount     string `gorm:"not null"`
	TotalCurrency   string `gorm:"not null"`
	RecurringKind   string `gorm:"not null"`
	RecurringDay    int    `gorm:"not null"`
	RecurringMonth  int    `gorm:"not null"`
	RecurringStart  int64  `gorm:"not null"`
	RecurringLength int    `gorm:"not null"`
}

func (budgetRecord) TableName() string {
	return "budgets"
}

type categoryRecord struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"not null"`
}

func (categoryRecord) TableName() string {
	return "categories"
}

type billRecord struct {
	ID            uint64 `gorm:"primaryKey"`
	Name          string `gorm:"not null"`
	Description   string `gorm:"not null"`
	ValueAmount   string `gorm:"not null"`
	ValueCurrency string `gorm:"not null"`
	Due           *int64
	Closed        bool `gorm:"not null"`
}

func (billRecord) TableName() string {
	return "bills"
}

type billTransactionRecord struct {
	BillID        uint64     `gorm:"primaryKey;autoIncrement:false"`
	TransactionID uint64     `gorm:"primaryKey;autoIncrement:false"`
	Sign          types.Sign `gorm:"not null"`
}

func (billTransactionRecord) TableName() string {
	return "bill_transaction"
}

func toNano(t time.Time) int64 {
	return t.UnixNano()
}

func fromNano(n int64) time.Time {
	return time.Unix(0, n).UTC()
}

func toCurrency(amount, code string) (types.Currency, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return types.Currency{}, err
	}

	return types.Currency{Amount: d, Code: code}.Canonical(), nil
}

func newAccountRecord(a models.Account) accountRecord {
	return accountRecord{
		ID:             a.ID,
		Kind:           string(a.Kind),
		Name:           a.Name,
		Note:           a.Note,
		IBAN:           a.IBAN,
		BIC:            a.BIC,
		OffsetAmount:   a.Offset.Amount.String(),
		OffsetCurrency: a.Offset.Code,
	}
}

func (r accountRecord) model() (models.Account, error) {
	offset, err := toCurrency(r.OffsetAmount, r.OffsetCurrency)
	if err != nil {
		return models.Account{}, err
	}

	return models.Account{
		ID:   r.ID,
		Kind: models.AccountKind(r.Kind),
		AccountCreate: models.AccountCreate{
			Name: r.Name,
			Note: r.Note,
			IBAN: r.IBAN,
			BIC:  r.BIC,
		},
		Offset: offset,
	}.Clone(), nil
}

func newTransactionRecord(t models.Transaction) (transactionRecord, []transactionCategoryRecord) {
	record := transactionRecord{
		ID:                   t.ID,
		Amount:               t.Amount.Amount.String(),
		Currency:             t.Amount.Code,
		Title:                t.Title,
		Description:          t.Description,
		SourceAccountID:      t.SourceAccountID,
		DestinationAccountID: t.DestinationAccountID,
		Date:                 toNano(t.Date),
		Metadata:             t.Metadata,
	}

	if t.Budget != nil {
		id := t.Budget.BudgetID
		record.BudgetID = &id
		record.BudgetSign = int8(t.Budget.Sign)
	}

	categories := make([]transactionCategoryRecord, 0, len(t.Categories))
	for id, sign := range t.Categories {
		categories = append(categories, transactionCategoryRecord{
			TransactionID: t.ID,
			CategoryID:    id,
			Sign:          sign,
		})
	}

	return record, categories
}

func (r transactionRecord) model(categories []transactionCategoryRecord) (models.Transaction, error) {
	amount, err := toCurrency(r.Amount, r.Currency)
	if err != nil {
		return models.Transaction{}, err
	}

	t := models.Transaction{
		ID: r.ID,
		TransactionCreate: models.TransactionCreate{
			Amount:               amount,
			Title:                r.Title,
			Description:          r.Description,
			SourceAccountID:      r.SourceAccountID,
			DestinationAccountID: r.DestinationAccountID,
			Date:                 fromNano(r.Date),
			Metadata:             r.Metadata,
			Categories:           make(map[uint64]types.Sign, len(categories)),
		},
	}

	if r.BudgetID != nil {
		t.Budget = &models.BudgetAssociation{
			BudgetID: *r.BudgetID,
			Sign:     types.Sign(r.BudgetSign),
		}
	}

	for _, c := range categories {
		t.Categories[c.CategoryID] = c.Sign
	}

	return t.Clone(), nil
}

func newBudgetRecord(b models.Budget) budgetRecord {
	record := budgetRecord{
		ID:              b.ID,
		Name:            b.Name,
		Description:     b.Description,
		TotalAmount:     b.Total.Amount.String(),
		TotalCurrency:   b.Total.Code,
		RecurringKind:   string(b.Recurring.Kind),
		RecurringDay:    b.Recurring.Day,
		RecurringMonth:  b.Recurring.Month,
		RecurringLength: b.Recurring.Length,
	}

	if b.Recurring.Kind == models.RecurringDays {
		record.RecurringStart = toNano(b.Recurring.Start)
	}

	return record
}

func (r budgetRecord) model() (models.Budget, error) {
	total, err := toCurrency(r.TotalAmount, r.TotalCurrency)
	if err != nil {
		return models.Budget{}, err
	}

	recurring := models.Recurring{
		Kind:   models.RecurringKind(r.RecurringKind),
		Day:    r.RecurringDay,
		Month:  r.RecurringMonth,
		Length: r.RecurringLength,
	}

	if recurring.Kind == models.RecurringDays {
		recurring.Start = fromNano(r.RecurringStart)
	}

	return models.Budget{
		ID: r.ID,
		BudgetCreate: models.BudgetCreate{
			Name:        r.Name,
			Description: r.Description,
			Total:       total,
			Recurring:   recurring,
		},
	}.Clone(), nil
}

func newBillRecord(b models.Bill) (billRecord, []billTransactionRecord) {
	record := billRecord{
		ID:            b.ID,
		Name:          b.Name,
		Description:   b.Description,
		ValueAmount:   b.Value.Amount.String(),
		ValueCurrency: b.Value.Code,
		Closed:        b.Closed,
	}

	if b.Due != nil {
		due := toNano(*b.Due)
		record.Due = &due
	}

	transactions := make([]billTransactionRecord, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		transactions = append(transactions, billTransactionRecord{
			BillID:        b.ID,
			TransactionID: t.TransactionID,
			Sign:          t.Sign,
		})
	}

	return record, transactions
}

func (r billRecord) model(transactions []billTransactionRecord) (models.Bill, error) {
	value, err := toCurrency(r.ValueAmount, r.ValueCurrency)
	if err != nil {
		return models.Bill{}, err
	}

	b := models.Bill{
		ID: r.ID,
		BillCreate: models.BillCreate{
			Name:         r.Name,
			Description:  r.Description,
			Value:        value,
			Transactions: make([]models.BillTransaction, 0, len(transactions)),
			Closed:       r.Closed,
		},
	}

	if r.Due != nil {
		due := fromNano(*r.Due)
		b.Due = &due
	}

	for _, t := range transactions {
		b.Transactions = append(b.Transactions, models.BillTransaction{
			TransactionID: t.TransactionID,
			Sign:          t.Sign,
		})
	}

	return b.Clone(), nil
}
