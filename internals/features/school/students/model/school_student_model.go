// file: internals/features/school/students/model/school_student_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — school_students
============================================== */

type SchoolStudent struct {
	// PK
	SchoolStudentID uuid.UUID `gorm:"column:school_student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"school_student_id"`

	// Tenant
	SchoolStudentSchoolID uuid.UUID `gorm:"column:school_student_school_id;type:uuid;not null;index;uniqueIndex:uniq_student_code,priority:1" json:"school_student_school_id"`

	// Optional linked account
	SchoolStudentUserID *uuid.UUID `gorm:"column:school_student_user_id;type:uuid;index" json:"school_student_user_id,omitempty"`

	SchoolStudentName     string `gorm:"column:school_student_name;type:varchar(120);not null" json:"school_student_name"`
	SchoolStudentCode     string `gorm:"column:school_student_code;type:varchar(40);not null;uniqueIndex:uniq_student_code,priority:2" json:"school_student_code"` // NIS
	SchoolStudentIsActive bool   `gorm:"column:school_student_is_active;type:boolean;not null;default:true;index" json:"school_student_is_active"`

	// Audit
	SchoolStudentCreatedAt time.Time      `gorm:"column:school_student_created_at;type:timestamptz;not null;autoCreateTime" json:"school_student_created_at"`
	SchoolStudentUpdatedAt time.Time      `gorm:"column:school_student_updated_at;type:timestamptz;not null;autoUpdateTime" json:"school_student_updated_at"`
	SchoolStudentDeletedAt gorm.DeletedAt `gorm:"column:school_student_deleted_at;type:timestamptz;index" json:"-"`
}

func (SchoolStudent) TableName() string { return "school_students" }

/* ==============================================
   MODEL — school_student_parents
   Links a student to a guardian account. Sibling
   detection joins students through shared parents.
============================================== */

type StudentParent struct {
	StudentParentID       uuid.UUID `gorm:"column:student_parent_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_parent_id"`
	StudentParentSchoolID uuid.UUID `gorm:"column:student_parent_school_id;type:uuid;not null;index" json:"student_parent_school_id"`

	StudentParentStudentID uuid.UUID `gorm:"column:student_parent_student_id;type:uuid;not null;index;uniqueIndex:uniq_student_parent,priority:1" json:"student_parent_student_id"`
	StudentParentUserID    uuid.UUID `gorm:"column:student_parent_user_id;type:uuid;not null;index;uniqueIndex:uniq_student_parent,priority:2" json:"student_parent_user_id"`

	StudentParentRelation *string `gorm:"column:student_parent_relation;type:varchar(20)" json:"student_parent_relation,omitempty"` // father/mother/guardian

	StudentParentCreatedAt time.Time      `gorm:"column:student_parent_created_at;type:timestamptz;not null;autoCreateTime" json:"student_parent_created_at"`
	StudentParentDeletedAt gorm.DeletedAt `gorm:"column:student_parent_deleted_at;type:timestamptz;index" json:"-"`
}

func (StudentParent) TableName() string { return "school_student_parents" }
