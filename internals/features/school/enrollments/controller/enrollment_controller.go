// file: internals/features/school/enrollments/controller/enrollment_controller.go
package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/features/school/enrollments/dto"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type EnrollmentHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
	Engine    *feesvc.Engine
}

func isUniqueViolation(err error) bool {
	return err != nil &&
		(strings.Contains(err.Error(), "duplicate key value") ||
			strings.Contains(err.Error(), "unique constraint"))
}

// =======================================================
// CREATE (pending)
// =======================================================

func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "enrollments", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.EnrollmentCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := in.ToModel(schoolID)
	if err := h.DB.Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "student already enrolled for this school year")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "enrollments", &m.EnrollmentID, m)

	return helper.JsonCreated(c, "enrollment created", m)
}

// =======================================================
// CONFIRM — flips status and fires the fee auto-assign
// trigger. The trigger outcome is embedded in the response
// but never fails the confirmation.
// =======================================================

func (h *EnrollmentHandler) ConfirmEnrollment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "enrollments", helperAuth.ActionUpdate); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m enrollments.Enrollment
	if err := h.DB.First(&m, "enrollment_id = ? AND enrollment_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.EnrollmentStatus != enrollments.EnrollmentStatusPending {
		return helper.JsonError(c, fiber.StatusConflict, "only pending enrollments can be confirmed")
	}

	now := time.Now()
	m.EnrollmentStatus = enrollments.EnrollmentStatusConfirmed
	m.EnrollmentConfirmedAt = &now
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "confirm", "enrollments", &m.EnrollmentID, m)

	auto := h.Engine.AutoAssignOnEnrollment(c.UserContext(), m.EnrollmentID)

	return helper.JsonUpdated(c, "enrollment confirmed", dto.ConfirmEnrollmentResponse{
		Enrollment: m,
		AutoAssign: auto,
	})
}

// =======================================================
// CANCEL
// =======================================================

func (h *EnrollmentHandler) CancelEnrollment(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "enrollments", helperAuth.ActionUpdate); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var m enrollments.Enrollment
	if err := h.DB.First(&m, "enrollment_id = ? AND enrollment_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if m.EnrollmentStatus == enrollments.EnrollmentStatusCancelled {
		return helper.JsonError(c, fiber.StatusConflict, "enrollment already cancelled")
	}

	m.EnrollmentStatus = enrollments.EnrollmentStatusCancelled
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "cancel", "enrollments", &m.EnrollmentID, m)

	return helper.JsonUpdated(c, "enrollment cancelled", m)
}

// =======================================================
// LIST (filter by year / class / status)
// =======================================================

func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "enrollments", helperAuth.ActionRead); err != nil {
		return err
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&enrollments.Enrollment{}).Where("enrollment_school_id = ?", schoolID)
	if yearID, err := helper.ParseUUIDQuery(c, "school_year_id"); err == nil && yearID != nil {
		q = q.Where("enrollment_school_year_id = ?", *yearID)
	}
	if classID, err := helper.ParseUUIDQuery(c, "class_id"); err == nil && classID != nil {
		q = q.Where("enrollment_class_id = ?", *classID)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("enrollment_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []enrollments.Enrollment
	if err := q.Order("enrollment_created_at DESC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "enrollments", rows, helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}
