package constants

// OutcomeStatus is the canonical per-record result of an import attempt.
type OutcomeStatus string

// Stable values (stored verbatim in the run ledger).
const (
	OutcomeSuccess  OutcomeStatus = "SUCCESS"  // created
	OutcomeVerified OutcomeStatus = "VERIFIED" // created and read-back matched
	OutcomeError    OutcomeStatus = "ERROR"    // rejected, mismatched, or unreachable
)

// PartStatus values accepted by the parts API.
const (
	PartStatusActive   = "active"
	PartStatusInactive = "inactive"
)

// DefaultUOM is the unit of measure applied to every imported part.
const DefaultUOM = "pcs"
