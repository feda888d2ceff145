// file: internals/features/school/enrollments/model/enrollment_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================
   ENUM — enrollment status
============================== */

type EnrollmentStatus string

const (
	EnrollmentStatusPending     EnrollmentStatus = "pending"
	EnrollmentStatusConfirmed   EnrollmentStatus = "confirmed"
	EnrollmentStatusCancelled   EnrollmentStatus = "cancelled"
	EnrollmentStatusTransferred EnrollmentStatus = "transferred"
)

/* ==============================================
   MODEL — enrollments
   Only confirmed rows are fee-eligible. A student
   is "new" when their all-time confirmed count
   (including the current row) is <= 1.
============================================== */

type Enrollment struct {
	// PK
	EnrollmentID uuid.UUID `gorm:"column:enrollment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"enrollment_id"`

	// Tenant & subject
	EnrollmentSchoolID  uuid.UUID `gorm:"column:enrollment_school_id;type:uuid;not null;index" json:"enrollment_school_id"`
	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_student_year,priority:1" json:"enrollment_student_id"`

	// Placement
	EnrollmentSchoolYearID uuid.UUID  `gorm:"column:enrollment_school_year_id;type:uuid;not null;index;uniqueIndex:uniq_enrollment_student_year,priority:2" json:"enrollment_school_year_id"`
	EnrollmentClassID      uuid.UUID  `gorm:"column:enrollment_class_id;type:uuid;not null;index" json:"enrollment_class_id"`
	EnrollmentSectionID    *uuid.UUID `gorm:"column:enrollment_section_id;type:uuid;index" json:"enrollment_section_id,omitempty"`

	// Status
	EnrollmentStatus      EnrollmentStatus `gorm:"column:enrollment_status;type:varchar(20);not null;default:'pending';index" json:"enrollment_status"`
	EnrollmentConfirmedAt *time.Time       `gorm:"column:enrollment_confirmed_at;type:timestamptz" json:"enrollment_confirmed_at,omitempty"`

	// Audit
	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;type:timestamptz;not null;autoCreateTime;index" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;type:timestamptz;index" json:"-"`
}

func (Enrollment) TableName() string { return "enrollments" }
