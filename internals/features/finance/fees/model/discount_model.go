// file: internals/features/finance/fees/model/discount_model.go
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* ==============================
   ENUMS — discount
============================== */

type DiscountType string

const (
	DiscountTypeSibling     DiscountType = "sibling"
	DiscountTypeScholarship DiscountType = "scholarship"
	DiscountTypeStaffChild  DiscountType = "staff_child"
	DiscountTypeManual      DiscountType = "manual"
)

type DiscountCalculationType string

const (
	DiscountCalculationPercentage DiscountCalculationType = "percentage"
	DiscountCalculationFixed      DiscountCalculationType = "fixed"
)

type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "active"
	DiscountStatusInactive DiscountStatus = "inactive"
)

/* ==============================================
   MODEL — discounts (reduction rules)
   AppliesToFeeTypeIDs NULL = applies to every
   fee type. Value semantics: percentage-of-base
   (whole percent, may carry decimals) for
   percentage type; major-unit amount for fixed.
============================================== */

type Discount struct {
	// PK
	DiscountID uuid.UUID `gorm:"column:discount_id;type:uuid;default:gen_random_uuid();primaryKey" json:"discount_id"`

	// Tenant
	DiscountSchoolID uuid.UUID `gorm:"column:discount_school_id;type:uuid;not null;index" json:"discount_school_id"`

	DiscountName            string                  `gorm:"column:discount_name;type:varchar(80);not null" json:"discount_name"`
	DiscountType            DiscountType            `gorm:"column:discount_type;type:varchar(20);not null;index" json:"discount_type"`
	DiscountCalculationType DiscountCalculationType `gorm:"column:discount_calculation_type;type:varchar(20);not null" json:"discount_calculation_type"`
	DiscountValue           float64                 `gorm:"column:discount_value;type:numeric(12,2);not null;check:discount_value>=0" json:"discount_value"`

	// Optional cap on the computed reduction (minor units)
	DiscountMaxCents *int64 `gorm:"column:discount_max_cents;type:bigint;check:discount_max_cents>=0" json:"discount_max_cents,omitempty"`

	// JSONB array of fee_type ids; NULL = all fee types
	DiscountAppliesToFeeTypeIDs datatypes.JSON `gorm:"column:discount_applies_to_fee_type_ids;type:jsonb" json:"discount_applies_to_fee_type_ids,omitempty"`

	DiscountAutoApply        bool           `gorm:"column:discount_auto_apply;type:boolean;not null;default:false;index" json:"discount_auto_apply"`
	DiscountRequiresApproval bool           `gorm:"column:discount_requires_approval;type:boolean;not null;default:true" json:"discount_requires_approval"`
	DiscountStatus           DiscountStatus `gorm:"column:discount_status;type:varchar(20);not null;default:'active';index" json:"discount_status"`

	// Audit
	DiscountCreatedAt time.Time      `gorm:"column:discount_created_at;type:timestamptz;not null;autoCreateTime" json:"discount_created_at"`
	DiscountUpdatedAt time.Time      `gorm:"column:discount_updated_at;type:timestamptz;not null;autoUpdateTime" json:"discount_updated_at"`
	DiscountDeletedAt gorm.DeletedAt `gorm:"column:discount_deleted_at;type:timestamptz;index" json:"-"`
}

func (Discount) TableName() string { return "discounts" }

// AppliesTo decodes the JSONB fee-type filter. nil slice = all types.
func (m Discount) AppliesTo() ([]uuid.UUID, error) {
	if len(m.DiscountAppliesToFeeTypeIDs) == 0 {
		return nil, nil
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(m.DiscountAppliesToFeeTypeIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
