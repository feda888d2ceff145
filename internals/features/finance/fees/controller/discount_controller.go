// file: internals/features/finance/fees/controller/discount_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	fees "schoolku_backend/internals/features/finance/fees/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type DiscountHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
}

// =======================================================
// CREATE
// =======================================================

func (h *DiscountHandler) CreateDiscount(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.DiscountCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if in.DiscountCalculationType == string(fees.DiscountCalculationPercentage) && in.DiscountValue > 100 {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "percentage value must be <= 100")
	}

	m, err := in.ToModel(schoolID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid applies-to list")
	}
	if err := h.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "create", "discounts", &m.DiscountID, m)

	return helper.JsonCreated(c, "discount created", m)
}

// =======================================================
// SET STATUS (activate / deactivate)
// =======================================================

func (h *DiscountHandler) SetDiscountStatus(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionUpdate); err != nil {
		return err
	}

	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var in struct {
		DiscountStatus string `json:"discount_status" validate:"required,oneof=active inactive"`
	}
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var m fees.Discount
	if err := h.DB.First(&m, "discount_id = ? AND discount_school_id = ?", id, schoolID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "discount not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	m.DiscountStatus = fees.DiscountStatus(in.DiscountStatus)
	if err := h.DB.Save(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "update", "discounts", &m.DiscountID, in)

	return helper.JsonUpdated(c, "discount status updated", m)
}

// =======================================================
// LIST
// =======================================================

func (h *DiscountHandler) ListDiscounts(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionRead); err != nil {
		return err
	}

	q := h.DB.Where("discount_school_id = ?", schoolID)
	if t := c.Query("type"); t != "" {
		q = q.Where("discount_type = ?", t)
	}
	if c.QueryBool("active_only", false) {
		q = q.Where("discount_status = ?", fees.DiscountStatusActive)
	}

	var rows []fees.Discount
	if err := q.Order("discount_name").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "discounts", rows)
}
