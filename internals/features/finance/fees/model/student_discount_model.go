// file: internals/features/finance/fees/model/student_discount_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — student discount status
============================== */

type StudentDiscountStatus string

const (
	StudentDiscountStatusPending  StudentDiscountStatus = "pending"
	StudentDiscountStatusApproved StudentDiscountStatus = "approved"
	StudentDiscountStatusRejected StudentDiscountStatus = "rejected"
	StudentDiscountStatusRevoked  StudentDiscountStatus = "revoked"
)

/* ==============================================
   MODEL — student_discounts (approval ledger)
   Only approved rows feed the breakdown
   calculator. One row per student/discount/year.
============================================== */

type StudentDiscount struct {
	// PK
	StudentDiscountID uuid.UUID `gorm:"column:student_discount_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_discount_id"`

	// Tenant & subject
	StudentDiscountSchoolID     uuid.UUID `gorm:"column:student_discount_school_id;type:uuid;not null;index" json:"student_discount_school_id"`
	StudentDiscountStudentID    uuid.UUID `gorm:"column:student_discount_student_id;type:uuid;not null;index;uniqueIndex:uniq_student_discount,priority:1" json:"student_discount_student_id"`
	StudentDiscountDiscountID   uuid.UUID `gorm:"column:student_discount_discount_id;type:uuid;not null;index;uniqueIndex:uniq_student_discount,priority:2" json:"student_discount_discount_id"`
	StudentDiscountSchoolYearID uuid.UUID `gorm:"column:student_discount_school_year_id;type:uuid;not null;index;uniqueIndex:uniq_student_discount,priority:3" json:"student_discount_school_year_id"`

	// Fixed-amount discounts carry their precomputed value here
	// (minor units); 0/NULL for percentage-type, resolved per fee line.
	StudentDiscountCalculatedAmountCents *int64 `gorm:"column:student_discount_calculated_amount_cents;type:bigint;check:student_discount_calculated_amount_cents>=0" json:"student_discount_calculated_amount_cents,omitempty"`

	StudentDiscountStatus StudentDiscountStatus `gorm:"column:student_discount_status;type:varchar(20);not null;default:'pending';index" json:"student_discount_status"`

	// Audit
	StudentDiscountCreatedAt time.Time      `gorm:"column:student_discount_created_at;type:timestamptz;not null;autoCreateTime" json:"student_discount_created_at"`
	StudentDiscountUpdatedAt time.Time      `gorm:"column:student_discount_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_discount_updated_at"`
	StudentDiscountDeletedAt gorm.DeletedAt `gorm:"column:student_discount_deleted_at;type:timestamptz;index" json:"-"`
}

func (StudentDiscount) TableName() string { return "student_discounts" }
