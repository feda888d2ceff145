// file: internals/features/audit/service/audit_writer.go
package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "schoolku_backend/internals/features/audit/model"
)

/* =========================================================
   Best-effort audit writer. A failed audit write is logged
   and swallowed — it must never roll back the primary
   operation it documents.
========================================================= */

type Writer struct {
	DB *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{DB: db}
}

func (w *Writer) Log(ctx context.Context, schoolID uuid.UUID, userID *uuid.UUID, action, tableName string, recordID *uuid.UUID, newValues any) {
	if w == nil || w.DB == nil {
		return
	}

	var payload []byte
	if newValues != nil {
		b, err := json.Marshal(newValues)
		if err != nil {
			log.Printf("[AUDIT] marshal err action=%s table=%s: %v", action, tableName, err)
		} else {
			payload = b
		}
	}

	entry := auditModel.AuditLog{
		AuditLogSchoolID:  schoolID,
		AuditLogUserID:    userID,
		AuditLogAction:    action,
		AuditLogTableName: tableName,
		AuditLogRecordID:  recordID,
		AuditLogNewValues: payload,
	}
	if err := w.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("[AUDIT] write err action=%s table=%s: %v", action, tableName, err)
	}
}
