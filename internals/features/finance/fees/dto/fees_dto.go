// file: internals/features/finance/fees/dto/fees_dto.go
package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	fees "schoolku_backend/internals/features/finance/fees/model"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
)

/* =========================
   FEE TYPES
========================= */

type FeeTypeCreateDTO struct {
	FeeTypeName     string `json:"fee_type_name" validate:"required,max=80"`
	FeeTypeCategory string `json:"fee_type_category" validate:"required,max=40"`
}

type FeeTypeUpdateDTO struct {
	FeeTypeName     *string `json:"fee_type_name,omitempty" validate:"omitempty,max=80"`
	FeeTypeCategory *string `json:"fee_type_category,omitempty" validate:"omitempty,max=40"`
	FeeTypeStatus   *string `json:"fee_type_status,omitempty" validate:"omitempty,oneof=active inactive"`
}

/* =========================
   FEE STRUCTURES
   Amounts cross the API in major units; storage is cents.
========================= */

type FeeStructureCreateDTO struct {
	FeeStructureSchoolYearID     uuid.UUID  `json:"fee_structure_school_year_id" validate:"required"`
	FeeStructureClassID          uuid.UUID  `json:"fee_structure_class_id" validate:"required"`
	FeeStructureSectionID        *uuid.UUID `json:"fee_structure_section_id,omitempty"`
	FeeStructureFeeTypeID        uuid.UUID  `json:"fee_structure_fee_type_id" validate:"required"`
	FeeStructureAmount           float64    `json:"fee_structure_amount" validate:"min=0"`
	FeeStructureNewStudentAmount *float64   `json:"fee_structure_new_student_amount,omitempty" validate:"omitempty,min=0"`
}

func (in FeeStructureCreateDTO) ToModel(schoolID uuid.UUID) fees.FeeStructure {
	m := fees.FeeStructure{
		FeeStructureSchoolID:     schoolID,
		FeeStructureSchoolYearID: in.FeeStructureSchoolYearID,
		FeeStructureClassID:      in.FeeStructureClassID,
		FeeStructureSectionID:    in.FeeStructureSectionID,
		FeeStructureFeeTypeID:    in.FeeStructureFeeTypeID,
		FeeStructureAmountCents:  feesvc.ToCents(in.FeeStructureAmount),
	}
	if in.FeeStructureNewStudentAmount != nil {
		cents := feesvc.ToCents(*in.FeeStructureNewStudentAmount)
		m.FeeStructureNewStudentAmountCents = &cents
	}
	return m
}

type FeeStructureUpdateDTO struct {
	FeeStructureAmount           *float64 `json:"fee_structure_amount,omitempty" validate:"omitempty,min=0"`
	FeeStructureNewStudentAmount *float64 `json:"fee_structure_new_student_amount,omitempty" validate:"omitempty,min=0"`
}

func (in FeeStructureUpdateDTO) Apply(m *fees.FeeStructure) {
	if in.FeeStructureAmount != nil {
		m.FeeStructureAmountCents = feesvc.ToCents(*in.FeeStructureAmount)
	}
	if in.FeeStructureNewStudentAmount != nil {
		cents := feesvc.ToCents(*in.FeeStructureNewStudentAmount)
		m.FeeStructureNewStudentAmountCents = &cents
	}
}

type FeeStructureResponse struct {
	fees.FeeStructure
	FeeStructureAmount           float64  `json:"fee_structure_amount"`
	FeeStructureNewStudentAmount *float64 `json:"fee_structure_new_student_amount,omitempty"`
}

func ToFeeStructureResponse(m fees.FeeStructure) FeeStructureResponse {
	out := FeeStructureResponse{
		FeeStructure:       m,
		FeeStructureAmount: feesvc.ToMajor(m.FeeStructureAmountCents),
	}
	if m.FeeStructureNewStudentAmountCents != nil {
		major := feesvc.ToMajor(*m.FeeStructureNewStudentAmountCents)
		out.FeeStructureNewStudentAmount = &major
	}
	return out
}

/* =========================
   DISCOUNTS
========================= */

type DiscountCreateDTO struct {
	DiscountName            string   `json:"discount_name" validate:"required,max=80"`
	DiscountType            string   `json:"discount_type" validate:"required,oneof=sibling scholarship staff_child manual"`
	DiscountCalculationType string   `json:"discount_calculation_type" validate:"required,oneof=percentage fixed"`
	DiscountValue           float64  `json:"discount_value" validate:"min=0"`
	DiscountMaxAmount       *float64 `json:"discount_max_amount,omitempty" validate:"omitempty,min=0"`

	// nil = applies to every fee type
	DiscountAppliesToFeeTypeIDs []uuid.UUID `json:"discount_applies_to_fee_type_ids,omitempty"`

	DiscountAutoApply        bool `json:"discount_auto_apply"`
	DiscountRequiresApproval bool `json:"discount_requires_approval"`
}

func (in DiscountCreateDTO) ToModel(schoolID uuid.UUID) (fees.Discount, error) {
	m := fees.Discount{
		DiscountSchoolID:         schoolID,
		DiscountName:             in.DiscountName,
		DiscountType:             fees.DiscountType(in.DiscountType),
		DiscountCalculationType:  fees.DiscountCalculationType(in.DiscountCalculationType),
		DiscountValue:            in.DiscountValue,
		DiscountAutoApply:        in.DiscountAutoApply,
		DiscountRequiresApproval: in.DiscountRequiresApproval,
		DiscountStatus:           fees.DiscountStatusActive,
	}
	if in.DiscountMaxAmount != nil {
		cents := feesvc.ToCents(*in.DiscountMaxAmount)
		m.DiscountMaxCents = &cents
	}
	if in.DiscountAppliesToFeeTypeIDs != nil {
		raw, err := json.Marshal(in.DiscountAppliesToFeeTypeIDs)
		if err != nil {
			return m, err
		}
		m.DiscountAppliesToFeeTypeIDs = datatypes.JSON(raw)
	}
	return m, nil
}

/* =========================
   STUDENT DISCOUNTS
========================= */

type StudentDiscountCreateDTO struct {
	StudentDiscountStudentID        uuid.UUID `json:"student_discount_student_id" validate:"required"`
	StudentDiscountDiscountID       uuid.UUID `json:"student_discount_discount_id" validate:"required"`
	StudentDiscountSchoolYearID     uuid.UUID `json:"student_discount_school_year_id" validate:"required"`
	StudentDiscountCalculatedAmount *float64  `json:"student_discount_calculated_amount,omitempty" validate:"omitempty,min=0"`
}

type StudentDiscountDecisionDTO struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected revoked"`
}

/* =========================
   ASSIGNMENT REQUESTS
========================= */

type AssignStudentFeesDTO struct {
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
	SchoolYearID *uuid.UUID `json:"school_year_id,omitempty"` // nil = active year
	DryRun       bool       `json:"dry_run"`                  // compute only, persist nothing
}

type BulkAssignFeesDTO struct {
	StudentIDs       []uuid.UUID `json:"student_ids" validate:"required,min=1,max=1000"`
	SchoolYearID     *uuid.UUID  `json:"school_year_id,omitempty"`
	ClassID          *uuid.UUID  `json:"class_id,omitempty"`
	StrictEnrollment bool        `json:"strict_enrollment"`
}

type ApplySiblingDiscountDTO struct {
	StudentID    uuid.UUID  `json:"student_id" validate:"required"`
	SchoolYearID *uuid.UUID `json:"school_year_id,omitempty"`
}

/* =========================
   BREAKDOWN RESPONSES
   Cents stay in the payload; majors are added for display.
========================= */

type FeeLineResponse struct {
	feesvc.FeeLine
	OriginalAmount float64 `json:"original_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

func ToFeeLineResponses(lines []feesvc.FeeLine) []FeeLineResponse {
	out := make([]FeeLineResponse, 0, len(lines))
	for _, ln := range lines {
		out = append(out, FeeLineResponse{
			FeeLine:        ln,
			OriginalAmount: feesvc.ToMajor(ln.OriginalCents),
			DiscountAmount: feesvc.ToMajor(ln.DiscountCents),
			FinalAmount:    feesvc.ToMajor(ln.FinalCents),
		})
	}
	return out
}

type BreakdownResponse struct {
	StudentID    uuid.UUID         `json:"student_id"`
	EnrollmentID uuid.UUID         `json:"enrollment_id"`
	SchoolYearID uuid.UUID         `json:"school_year_id"`
	IsNewStudent bool              `json:"is_new_student"`
	Lines        []FeeLineResponse `json:"lines"`
}

func ToBreakdownResponse(bd feesvc.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		StudentID:    bd.StudentID,
		EnrollmentID: bd.EnrollmentID,
		SchoolYearID: bd.SchoolYearID,
		IsNewStudent: bd.IsNewStudent,
		Lines:        ToFeeLineResponses(bd.Lines),
	}
}
