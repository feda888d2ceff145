// file: internals/features/finance/fees/controller/assignment_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	"schoolku_backend/internals/features/finance/fees/dto"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

/* =========================================================
   Assignment endpoints. Thin translation layer: parse,
   gate, call the engine, map sentinel errors to HTTP.
========================================================= */

type AssignmentHandler struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Audit     *auditSvc.Writer
	Engine    *feesvc.Engine
}

func engineErrorToHTTP(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, feesvc.ErrNoActiveSchoolYear),
		errors.Is(err, feesvc.ErrNoSiblingDiscountConfigured):
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, feesvc.ErrStudentNotEnrolled),
		errors.Is(err, feesvc.ErrNoParentLinked),
		errors.Is(err, feesvc.ErrNoSiblingEnrolled):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, feesvc.ErrDiscountAlreadyApplied):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, feesvc.ErrValidation), errors.Is(err, feesvc.ErrNoSchoolContext):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
}

func derefOrNil(p *uuid.UUID) uuid.UUID {
	if p == nil {
		return uuid.Nil
	}
	return *p
}

// =======================================================
// PREVIEW — compute only, nothing written
// =======================================================

func (h *AssignmentHandler) PreviewStudentFees(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "student_fees", helperAuth.ActionRead); err != nil {
		return err
	}

	studentID, err := helper.ParseUUIDParam(c, "student_id")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid student_id")
	}
	yearID := uuid.Nil
	if id, err := helper.ParseUUIDQuery(c, "school_year_id"); err == nil && id != nil {
		yearID = *id
	}

	bd, err := h.Engine.ComputeFeesForStudent(c.UserContext(), schoolID, studentID, yearID)
	if err != nil {
		return engineErrorToHTTP(c, err)
	}
	return helper.JsonOK(c, "fee breakdown", dto.ToBreakdownResponse(*bd))
}

// =======================================================
// ASSIGN — single student (dry_run supported)
// =======================================================

func (h *AssignmentHandler) AssignStudentFees(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "student_fees", helperAuth.ActionAssign); err != nil {
		return err
	}

	var in dto.AssignStudentFeesDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	if in.DryRun {
		bd, err := h.Engine.ComputeFeesForStudent(c.UserContext(), schoolID, in.StudentID, derefOrNil(in.SchoolYearID))
		if err != nil {
			return engineErrorToHTTP(c, err)
		}
		return helper.JsonOK(c, "fee breakdown (dry run)", dto.ToBreakdownResponse(*bd))
	}

	res, err := h.Engine.AssignFeesToStudent(c.UserContext(), schoolID, in.StudentID, derefOrNil(in.SchoolYearID))
	if err != nil {
		return engineErrorToHTTP(c, err)
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "assign", "student_fees", &in.StudentID, fiber.Map{
		"inserted": res.Inserted,
		"skipped":  res.Skipped,
	})

	return helper.JsonCreated(c, "fees assigned", fiber.Map{
		"breakdown": dto.ToBreakdownResponse(res.Breakdown),
		"inserted":  res.Inserted,
		"skipped":   res.Skipped,
	})
}

// =======================================================
// BULK ASSIGN
// =======================================================

func (h *AssignmentHandler) BulkAssignFees(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "student_fees", helperAuth.ActionAssign); err != nil {
		return err
	}

	var in dto.BulkAssignFeesDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.Engine.BulkAssignFees(c.UserContext(), feesvc.BulkRequest{
		SchoolID:         schoolID,
		SchoolYearID:     derefOrNil(in.SchoolYearID),
		StudentIDs:       in.StudentIDs,
		ClassID:          in.ClassID,
		StrictEnrollment: in.StrictEnrollment,
	})
	if err != nil {
		return engineErrorToHTTP(c, err)
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "bulk_assign", "student_fees", nil, fiber.Map{
		"total":     res.Total,
		"succeeded": res.Succeeded,
		"failed":    res.Failed,
		"inserted":  res.Inserted,
	})

	return helper.JsonOK(c, "bulk assignment finished", res)
}

// =======================================================
// SIBLING DISCOUNT — auto-apply resolver
// =======================================================

func (h *AssignmentHandler) ApplySiblingDiscount(c *fiber.Ctx) error {
	schoolID, err := helperAuth.MustSchoolID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid school_id")
	}
	if err := helperAuth.RequirePermission(c, schoolID, "discounts", helperAuth.ActionCreate); err != nil {
		return err
	}

	var in dto.ApplySiblingDiscountDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := h.Validator.Struct(in); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.Engine.ApplySiblingDiscount(c.UserContext(), schoolID, in.StudentID, derefOrNil(in.SchoolYearID))
	if err != nil {
		return engineErrorToHTTP(c, err)
	}

	userID, _ := helperAuth.GetUserID(c)
	h.Audit.Log(c.UserContext(), schoolID, &userID, "sibling_apply", "student_discounts",
		&res.StudentDiscount.StudentDiscountID, res)

	return helper.JsonCreated(c, "sibling discount applied", res)
}
