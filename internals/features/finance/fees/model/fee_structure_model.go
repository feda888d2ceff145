// file: internals/features/finance/fees/model/fee_structure_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — fee_structures
   School-year/class/section-scoped price rule for
   one fee type. Section NULL = applies to every
   section of the class. Amounts are stored in
   minor units (cents) — see service/money.go.
============================================== */

type FeeStructure struct {
	// PK
	FeeStructureID uuid.UUID `gorm:"column:fee_structure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_structure_id"`

	// Tenant & period
	FeeStructureSchoolID     uuid.UUID `gorm:"column:fee_structure_school_id;type:uuid;not null;index:idx_fee_structures_tenant_year,priority:1" json:"fee_structure_school_id"`
	FeeStructureSchoolYearID uuid.UUID `gorm:"column:fee_structure_school_year_id;type:uuid;not null;index:idx_fee_structures_tenant_year,priority:2" json:"fee_structure_school_year_id"`

	// Scope
	FeeStructureClassID   uuid.UUID  `gorm:"column:fee_structure_class_id;type:uuid;not null;index" json:"fee_structure_class_id"`
	FeeStructureSectionID *uuid.UUID `gorm:"column:fee_structure_section_id;type:uuid;index" json:"fee_structure_section_id,omitempty"`

	// Billed type
	FeeStructureFeeTypeID uuid.UUID `gorm:"column:fee_structure_fee_type_id;type:uuid;not null;index" json:"fee_structure_fee_type_id"`

	// Amounts (minor units)
	FeeStructureAmountCents           int64  `gorm:"column:fee_structure_amount_cents;type:bigint;not null;check:fee_structure_amount_cents>=0" json:"fee_structure_amount_cents"`
	FeeStructureNewStudentAmountCents *int64 `gorm:"column:fee_structure_new_student_amount_cents;type:bigint;check:fee_structure_new_student_amount_cents>=0" json:"fee_structure_new_student_amount_cents,omitempty"`

	// Audit
	FeeStructureCreatedAt time.Time      `gorm:"column:fee_structure_created_at;type:timestamptz;not null;autoCreateTime" json:"fee_structure_created_at"`
	FeeStructureUpdatedAt time.Time      `gorm:"column:fee_structure_updated_at;type:timestamptz;not null;autoUpdateTime" json:"fee_structure_updated_at"`
	FeeStructureDeletedAt gorm.DeletedAt `gorm:"column:fee_structure_deleted_at;type:timestamptz;index" json:"-"`
}

func (FeeStructure) TableName() string { return "fee_structures" }

// BaseAmountCents picks the new-student price when configured.
func (m FeeStructure) BaseAmountCents(isNewStudent bool) int64 {
	if isNewStudent && m.FeeStructureNewStudentAmountCents != nil {
		return *m.FeeStructureNewStudentAmountCents
	}
	return m.FeeStructureAmountCents
}
