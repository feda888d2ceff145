// file: internals/features/school/academics/model/school_year_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — school_years
   At most one active year per school (partial
   unique index created in the SQL migration).
============================================== */

type SchoolYear struct {
	// PK
	SchoolYearID uuid.UUID `gorm:"column:school_year_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_year_id"`

	// Tenant
	SchoolYearSchoolID uuid.UUID `gorm:"column:school_year_school_id;type:uuid;not null;index" json:"school_year_school_id"`

	SchoolYearName      string    `gorm:"column:school_year_name;type:varchar(40);not null" json:"school_year_name"` // e.g. 2026/2027
	SchoolYearStartDate time.Time `gorm:"column:school_year_start_date;type:date;not null" json:"school_year_start_date"`
	SchoolYearEndDate   time.Time `gorm:"column:school_year_end_date;type:date;not null" json:"school_year_end_date"`
	SchoolYearIsActive  bool      `gorm:"column:school_year_is_active;type:boolean;not null;default:false;index" json:"school_year_is_active"`

	// Audit
	SchoolYearCreatedAt time.Time      `gorm:"column:school_year_created_at;type:timestamptz;not null;autoCreateTime" json:"school_year_created_at"`
	SchoolYearUpdatedAt time.Time      `gorm:"column:school_year_updated_at;type:timestamptz;not null;autoUpdateTime" json:"school_year_updated_at"`
	SchoolYearDeletedAt gorm.DeletedAt `gorm:"column:school_year_deleted_at;type:timestamptz;index" json:"-"`
}

func (SchoolYear) TableName() string { return "school_years" }
