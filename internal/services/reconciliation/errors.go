package reconciliation

import "errors"

var (
	// ErrTransactionMatched is returned when a match is attempted against a
	// transaction that already has an approved match.
	ErrTransactionMatched = errors.New("transaction is already matched")

	// ErrReceiptConsumed is returned when the receipt is already part of an
	// approved match.
	ErrReceiptConsumed = errors.New("receipt is already matched")

	// ErrSuggestionResolved is returned when approving a suggestion that has
	// already been approved or rejected.
	ErrSuggestionResolved = errors.New("suggestion has already been reviewed")
)
