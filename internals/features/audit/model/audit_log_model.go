// file: internals/features/audit/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	// PK
	AuditLogID uuid.UUID `gorm:"column:audit_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"audit_log_id"`

	// Tenant & actor (actor nil = system-invoked, e.g. auto-assignment)
	AuditLogSchoolID uuid.UUID  `gorm:"column:audit_log_school_id;type:uuid;not null;index" json:"audit_log_school_id"`
	AuditLogUserID   *uuid.UUID `gorm:"column:audit_log_user_id;type:uuid;index" json:"audit_log_user_id,omitempty"`

	// What happened
	AuditLogAction    string     `gorm:"column:audit_log_action;type:varchar(60);not null;index" json:"audit_log_action"`
	AuditLogTableName string     `gorm:"column:audit_log_table_name;type:varchar(60);not null;index" json:"audit_log_table_name"`
	AuditLogRecordID  *uuid.UUID `gorm:"column:audit_log_record_id;type:uuid;index" json:"audit_log_record_id,omitempty"`

	// Snapshot of the written values
	AuditLogNewValues datatypes.JSON `gorm:"column:audit_log_new_values;type:jsonb" json:"audit_log_new_values,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;type:timestamptz;not null;autoCreateTime;index" json:"audit_log_created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
