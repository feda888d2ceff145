// file: internals/features/school/academics/model/class_section_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ==============================================
   MODEL — classes (grade level, e.g. "Kelas 7")
============================================== */

type Class struct {
	ClassID       uuid.UUID `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"column:class_school_id;type:uuid;not null;index;uniqueIndex:uniq_class_slug,priority:1" json:"class_school_id"`

	ClassName string `gorm:"column:class_name;type:varchar(80);not null" json:"class_name"`
	ClassSlug string `gorm:"column:class_slug;type:varchar(80);not null;uniqueIndex:uniq_class_slug,priority:2" json:"class_slug"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;type:timestamptz;index" json:"-"`
}

func (Class) TableName() string { return "classes" }

/* ==============================================
   MODEL — sections (series inside a class, e.g. "7A")
============================================== */

type Section struct {
	SectionID       uuid.UUID `gorm:"column:section_id;type:uuid;default:gen_random_uuid();primaryKey" json:"section_id"`
	SectionSchoolID uuid.UUID `gorm:"column:section_school_id;type:uuid;not null;index" json:"section_school_id"`
	SectionClassID  uuid.UUID `gorm:"column:section_class_id;type:uuid;not null;index;uniqueIndex:uniq_section_slug,priority:1" json:"section_class_id"`

	SectionName string `gorm:"column:section_name;type:varchar(80);not null" json:"section_name"`
	SectionSlug string `gorm:"column:section_slug;type:varchar(80);not null;uniqueIndex:uniq_section_slug,priority:2" json:"section_slug"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;type:timestamptz;not null;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;type:timestamptz;not null;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;type:timestamptz;index" json:"-"`
}

func (Section) TableName() string { return "sections" }
