// file: internals/features/finance/fees/controller/student_fee_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	fees "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type StudentFeeHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

// =======================================================
// ADMIN LIST (paginated, filterable)
// =======================================================

func (h *StudentFeeHandler) ListStudentFees(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "student_fees", helperAuth.ActionRead); err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&fees.StudentFee{}).Where("student_fee_school_id = ?", schoolID)
	if studentID, err := helper.ParseUUIDQuery(c, "student_id"); err == nil && studentID != nil {
		q = q.Where("student_fee_student_id = ?", *studentID)
	}
	if enrollmentID, err := helper.ParseUUIDQuery(c, "enrollment_id"); err == nil && enrollmentID != nil {
		q = q.Where("student_fee_enrollment_id = ?", *enrollmentID)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("student_fee_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []fees.StudentFee
	if err := q.Order("student_fee_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "student fees", rows, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// =======================================================
// USER — my fees (token must carry a student binding)
// =======================================================

func (h *StudentFeeHandler) ListMyFees(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.EnsureMemberSchool(c, schoolID); err != nil {
		return err
	}

	studentID, ok := helperAuth.GetStudentID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusForbidden, "token carries no student binding")
	}

	q := h.DB.Where("student_fee_school_id = ? AND student_fee_student_id = ?", schoolID, studentID)
	if s := c.Query("status"); s != "" {
		q = q.Where("student_fee_status = ?", s)
	}

	var rows []fees.StudentFee
	if err := q.Order("student_fee_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var totalBalance int64
	for _, r := range rows {
		totalBalance += r.StudentFeeBalanceCents
	}

	return helper.JsonOK(c, "my fees", fiber.Map{
		"items":               rows,
		"total_balance_cents": totalBalance,
	})
}
