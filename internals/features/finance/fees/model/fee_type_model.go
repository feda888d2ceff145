// file: internals/features/finance/fees/model/fee_type_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — fee type status
============================== */

type FeeTypeStatus string

const (
	FeeTypeStatusActive   FeeTypeStatus = "active"
	FeeTypeStatusInactive FeeTypeStatus = "inactive"
)

/* ==============================================
   MODEL — fee_types (billable categories)
   Only active types are billed.
============================================== */

type FeeType struct {
	// PK
	FeeTypeID uuid.UUID `gorm:"column:fee_type_id;type:uuid;default:gen_random_uuid();primaryKey" json:"fee_type_id"`

	// Tenant
	FeeTypeSchoolID uuid.UUID `gorm:"column:fee_type_school_id;type:uuid;not null;index;uniqueIndex:uniq_fee_type_name,priority:1" json:"fee_type_school_id"`

	FeeTypeName     string        `gorm:"column:fee_type_name;type:varchar(80);not null;uniqueIndex:uniq_fee_type_name,priority:2" json:"fee_type_name"`
	FeeTypeCategory string        `gorm:"column:fee_type_category;type:varchar(40);not null;index" json:"fee_type_category"` // tuition/transport/uniform/...
	FeeTypeStatus   FeeTypeStatus `gorm:"column:fee_type_status;type:varchar(20);not null;default:'active';index" json:"fee_type_status"`

	// Audit
	FeeTypeCreatedAt time.Time      `gorm:"column:fee_type_created_at;type:timestamptz;not null;autoCreateTime" json:"fee_type_created_at"`
	FeeTypeUpdatedAt time.Time      `gorm:"column:fee_type_updated_at;type:timestamptz;not null;autoUpdateTime" json:"fee_type_updated_at"`
	FeeTypeDeletedAt gorm.DeletedAt `gorm:"column:fee_type_deleted_at;type:timestamptz;index" json:"-"`
}

func (FeeType) TableName() string { return "fee_types" }
