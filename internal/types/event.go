package types

// OutcomeEvent is a signature-verified provider notification, reduced to the
// fields the reconciler needs. For OutcomeIgnored kinds the reference fields
// may be empty; the reconciler never reads them in that case.
type OutcomeEvent struct {
	ID                string
	Kind              OutcomeKind
	ExternalPaymentID string
	OrderID           string
}
