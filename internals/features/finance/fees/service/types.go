// file: internals/features/finance/fees/service/types.go
package service

import (
	"github.com/google/uuid"

	fees "schoolku_backend/internals/features/finance/fees/model"
)

/* =========================================================
   Engine domain types. The calculator works on these plain
   structs so it stays pure — no JSONB decoding, no queries.
========================================================= */

// ApplicableFee pairs a fee structure with its (active) fee type.
type ApplicableFee struct {
	Structure fees.FeeStructure
	Type      fees.FeeType
}

// DiscountGrant is an approved StudentDiscount joined with its rule,
// with the applies-to filter already decoded.
type DiscountGrant struct {
	DiscountID            uuid.UUID
	CalculationType       fees.DiscountCalculationType
	Value                 float64 // percent for percentage-type
	MaxDiscountCents      *int64
	AppliesToFeeTypeIDs   []uuid.UUID // nil = every fee type
	CalculatedAmountCents *int64      // fixed-type precomputed amount (cents)
}

// FeeLine is one computed breakdown entry.
type FeeLine struct {
	FeeStructureID  uuid.UUID `json:"fee_structure_id"`
	FeeTypeID       uuid.UUID `json:"fee_type_id"`
	FeeTypeName     string    `json:"fee_type_name"`
	FeeTypeCategory string    `json:"fee_type_category"`
	OriginalCents   int64     `json:"original_cents"`
	DiscountCents   int64     `json:"discount_cents"`
	FinalCents      int64     `json:"final_cents"`
	IsNewStudent    bool      `json:"is_new_student"`
}

// Breakdown is the result of the single-student compute step.
type Breakdown struct {
	StudentID    uuid.UUID `json:"student_id"`
	EnrollmentID uuid.UUID `json:"enrollment_id"`
	SchoolYearID uuid.UUID `json:"school_year_id"`
	IsNewStudent bool      `json:"is_new_student"`
	Lines        []FeeLine `json:"lines"`
}

// AssignResult reports an idempotent persist of a breakdown.
type AssignResult struct {
	Breakdown Breakdown `json:"breakdown"`
	Inserted  int       `json:"inserted"`
	Skipped   int       `json:"skipped"`
}

// BulkError attributes a bulk failure; StudentID is the literal
// "batch" when the final transaction failed as a whole.
type BulkError struct {
	StudentID string `json:"student_id"`
	Error     string `json:"error"`
}

// BulkResult aggregates a bulk run. Succeeded/failed are counted at
// the batch level: every processed student counts as succeeded when
// the transaction commits, even with zero new fee lines.
type BulkResult struct {
	Total     int         `json:"total"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
	Inserted  int         `json:"inserted"`
	Errors    []BulkError `json:"errors"`
}

// AutoAssignResult is the soft result of the enrollment-confirmation
// trigger; a failure here must never fail the enrollment itself.
type AutoAssignResult struct {
	Success      bool   `json:"success"`
	FeesAssigned int    `json:"fees_assigned"`
	Error        string `json:"error,omitempty"`
}
