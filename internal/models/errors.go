package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound                 = errors.New("there is no")
	ErrValidation               = errors.New("the request is invalid")
	ErrRelatedTransactionsExist = errors.New("transactions referencing the account exist, the account can only be deleted together with them")
	ErrStorage                  = errors.New("an error occurred in the storage backend")
	ErrInvalidRecurrence        = errors.New("the budget recurrence is invalid")
)

var (
	ErrAmountNegative              = fmt.Errorf("%w: the amount must not be negative", ErrValidation)
	ErrSourceEqualsDestination     = fmt.Errorf("%w: source and destination accounts must be different", ErrValidation)
	ErrSignInvalid                 = fmt.Errorf("%w: every sign must be either positive or negative", ErrValidation)
	ErrCurrencyInvalid             = fmt.Errorf("%w: the currency code is not a valid ISO 4217 code", ErrValidation)
	ErrAccountKindInvalid          = fmt.Errorf("%w: the account kind must be either asset or book_checking", ErrValidation)
	ErrBillTransactionDuplicate    = fmt.Errorf("%w: a transaction can only be part of a bill once", ErrValidation)
	ErrAccountDoesNotExist         = fmt.Errorf("%w: the referenced account does not exist", ErrValidation)
	ErrCategoryDoesNotExist        = fmt.Errorf("%w: the referenced category does not exist", ErrValidation)
	ErrBudgetDoesNotExist          = fmt.Errorf("%w: the referenced budget does not exist", ErrValidation)
	ErrTransactionDoesNotExist     = fmt.Errorf("%w: the referenced transaction does not exist", ErrValidation)
	ErrAccountKindChange           = fmt.Errorf("%w: the kind of an account cannot be changed", ErrValidation)
	ErrCurrencyMismatch            = fmt.Errorf("%w: amounts that are summed up together must be in the same currency", ErrValidation)
	ErrDateOutOfRange              = fmt.Errorf("%w: dates must lie between the years 1678 and 2262", ErrValidation)
	ErrRecurrenceDayOutOfRange     = fmt.Errorf("%w: the day must be between 1 and 31", ErrInvalidRecurrence)
	ErrRecurrenceMonthOutOfRange   = fmt.Errorf("%w: the month must be between 1 and 12", ErrInvalidRecurrence)
	ErrRecurrenceDayNotInMonth     = fmt.Errorf("%w: the day does not exist in the month", ErrInvalidRecurrence)
	ErrRecurrenceLengthNotPositive = fmt.Errorf("%w: the period length must be at least one day", ErrInvalidRecurrence)
	ErrRecurrenceKindInvalid       = fmt.Errorf("%w: the kind must be one of day_in_month, days, yearly", ErrInvalidRecurrence)
	ErrRecurrenceOutOfRange        = fmt.Errorf("%w: the period lies outside of the representable date range", ErrInvalidRecurrence)
)

// NotFound returns an ErrNotFound error for the resource with the ID.
func NotFound(resource string, id uint64) error {
	return fmt.Errorf("%w %s with ID %d", ErrNotFound, resource, id)
}
