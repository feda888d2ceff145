// file: internals/features/finance/fees/controller/student_discount_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	fees "schoolku_backend/internals/features/finance/fees/model"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* =========================================================
   Student-discount grants: manual grant + the approval
   workflow (approve / reject / revoke). Auto-apply sibling
   grants go through the engine in assignment_controller.go.
========================================================= */

type StudentDiscountHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
}

// =======================================================
// GRANT (manual)
// =======================================================

func (h *StudentDiscountHandler) GrantDiscount(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.StudentDiscountCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var rule fees.Discount
	if err := h.DB.First(&rule, "discount_id = ? AND discount_school_id = ?", in.StudentDiscountDiscountID, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "discount not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if rule.DiscountStatus != fees.DiscountStatusActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "discount is inactive")
	}

	status := fees.StudentDiscountStatusApproved
	if rule.DiscountRequiresApproval {
		status = fees.StudentDiscountStatusPending
	}

	row := fees.StudentDiscount{
		StudentDiscountSchoolID:     schoolID,
		StudentDiscountStudentID:    in.StudentDiscountStudentID,
		StudentDiscountDiscountID:   in.StudentDiscountDiscountID,
		StudentDiscountSchoolYearID: in.StudentDiscountSchoolYearID,
		StudentDiscountStatus:       status,
	}
	if in.StudentDiscountCalculatedAmount != nil {
		cents := feesvc.ToCents(*in.StudentDiscountCalculatedAmount)
		row.StudentDiscountCalculatedAmountCents = &cents
	} else if rule.DiscountCalculationType == fees.DiscountCalculationFixed {
		cents := feesvc.ToCents(rule.DiscountValue)
		row.StudentDiscountCalculatedAmountCents = &cents
	}

	if err := h.DB.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, feesvc.ErrDiscountAlreadyApplied.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "student_discounts", &row.StudentDiscountID, row)

	return helper.JsonCreated(c, "discount granted", row)
}

// =======================================================
// DECIDE (approve / reject / revoke)
// =======================================================

func (h *StudentDiscountHandler) DecideDiscount(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionApprove); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in dto.StudentDiscountDecisionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var row fees.StudentDiscount
	if err := h.DB.First(&row, "student_discount_id = ? AND student_discount_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "student discount not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	next := fees.StudentDiscountStatus(in.Decision)
	switch next {
	case fees.StudentDiscountStatusApproved, fees.StudentDiscountStatusRejected:
		if row.StudentDiscountStatus != fees.StudentDiscountStatusPending {
			return helper.JsonError(c, fiber.StatusConflict, "only pending grants can be decided")
		}
	case fees.StudentDiscountStatusRevoked:
		if row.StudentDiscountStatus != fees.StudentDiscountStatusApproved {
			return helper.JsonError(c, fiber.StatusConflict, "only approved grants can be revoked")
		}
	}

	row.StudentDiscountStatus = next
	if err := h.DB.Save(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, in.Decision, "student_discounts", &row.StudentDiscountID, in)

	return helper.JsonUpdated(c, "student discount "+in.Decision, row)
}

// =======================================================
// LIST (filter by status / student / year)
// =======================================================

// user endpoint; token must carry a student binding
func (h *StudentDiscountHandler) ListMyDiscounts(c *fiber.Ctx) error {
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

	var rows []fees.StudentDiscount
	if err := h.DB.
		Where("student_discount_school_id = ? AND student_discount_student_id = ?", schoolID, studentID).
		Order("student_discount_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "my discounts", rows)
}

func (h *StudentDiscountHandler) ListStudentDiscounts(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionRead); err != nil {
		return err
	}

	q := h.DB.Where("student_discount_school_id = ?", schoolID)
	if s := c.Query("status"); s != "" {
		q = q.Where("student_discount_status = ?", s)
	}
	if studentID, err := helper.ParseUUIDQuery(c, "student_id"); err == nil && studentID != nil {
		q = q.Where("student_discount_student_id = ?", *studentID)
	}
	if yearID, err := helper.ParseUUIDQuery(c, "school_year_id"); err == nil && yearID != nil {
		q = q.Where("student_discount_school_year_id = ?", *yearID)
	}

	var rows []fees.StudentDiscount
	if err := q.Order("student_discount_created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "student discounts", rows)
}
