// file: internals/features/finance/fees/model/student_fee_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — student fee status
============================== */

type StudentFeeStatus string

const (
	StudentFeeStatusPending   StudentFeeStatus = "pending"
	StudentFeeStatusPaid      StudentFeeStatus = "paid"
	StudentFeeStatusPartial   StudentFeeStatus = "partial"
	StudentFeeStatusWaived    StudentFeeStatus = "waived"
	StudentFeeStatusCancelled StudentFeeStatus = "cancelled"
)

/* ==============================================
   MODEL — student_fees (the billed ledger line)
   Created only by the assignment pipelines; the
   payment subsystem later decrements balance.
   uniq_enrollment_fee_structure is the conflict
   target for the idempotent insert paths.
============================================== */

type StudentFee struct {
	// PK
	StudentFeeID uuid.UUID `gorm:"column:student_fee_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_fee_id"`

	// Tenant & subject
	StudentFeeSchoolID  uuid.UUID `gorm:"column:student_fee_school_id;type:uuid;not null;index" json:"student_fee_school_id"`
	StudentFeeStudentID uuid.UUID `gorm:"column:student_fee_student_id;type:uuid;not null;index" json:"student_fee_student_id"`

	// Source refs
	StudentFeeEnrollmentID   uuid.UUID `gorm:"column:student_fee_enrollment_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_fee_structure,priority:1" json:"student_fee_enrollment_id"`
	StudentFeeFeeStructureID uuid.UUID `gorm:"column:student_fee_fee_structure_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_fee_structure,priority:2" json:"student_fee_fee_structure_id"`

	// Amounts (minor units)
	StudentFeeOriginalCents int64 `gorm:"column:student_fee_original_cents;type:bigint;not null;check:student_fee_original_cents>=0" json:"student_fee_original_cents"`
	StudentFeeDiscountCents int64 `gorm:"column:student_fee_discount_cents;type:bigint;not null;default:0;check:student_fee_discount_cents>=0" json:"student_fee_discount_cents"`
	StudentFeeFinalCents    int64 `gorm:"column:student_fee_final_cents;type:bigint;not null;check:student_fee_final_cents>=0" json:"student_fee_final_cents"`
	StudentFeeBalanceCents  int64 `gorm:"column:student_fee_balance_cents;type:bigint;not null;check:student_fee_balance_cents>=0" json:"student_fee_balance_cents"`

	// Pricing context at assignment time
	StudentFeeIsNewStudent bool `gorm:"column:student_fee_is_new_student;type:boolean;not null;default:false" json:"student_fee_is_new_student"`

	StudentFeeStatus StudentFeeStatus `gorm:"column:student_fee_status;type:varchar(20);not null;default:'pending';index" json:"student_fee_status"`

	// Audit
	StudentFeeCreatedAt time.Time      `gorm:"column:student_fee_created_at;type:timestamptz;not null;autoCreateTime;index" json:"student_fee_created_at"`
	StudentFeeUpdatedAt time.Time      `gorm:"column:student_fee_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_fee_updated_at"`
	StudentFeeDeletedAt gorm.DeletedAt `gorm:"column:student_fee_deleted_at;type:timestamptz;index" json:"-"`
}

func (StudentFee) TableName() string { return "student_fees" }

func (m *StudentFee) BeforeCreate(tx *gorm.DB) error {
	if m.StudentFeeStatus == "" {
		m.StudentFeeStatus = StudentFeeStatusPending
	}
	// a fresh ledger line owes its full final amount
	if m.StudentFeeBalanceCents == 0 && m.StudentFeeStatus == StudentFeeStatusPending {
		m.StudentFeeBalanceCents = m.StudentFeeFinalCents
	}
	return nil
}
