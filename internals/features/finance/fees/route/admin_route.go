package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	feesCtrl "schoolku_backend/internals/features/finance/fees/controller"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	"schoolku_backend/internals/middlewares"
)

func FeesAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditSvc.Writer, engine *feesvc.Engine) {
	ft := &feesCtrl.FeeTypeHandler{DB: db, Validator: v, Audit: audit}
	fs := &feesCtrl.FeeStructureHandler{DB: db, Validator: v, Audit: audit}
	dc := &feesCtrl.DiscountHandler{DB: db, Validator: v, Audit: audit}
	sd := &feesCtrl.StudentDiscountHandler{DB: db, Validator: v, Audit: audit}
	as := &feesCtrl.AssignmentHandler{DB: db, Validator: v, Audit: audit, Engine: engine}
	sf := &feesCtrl.StudentFeeHandler{DB: db, Validator: v}

	{
		// =========================
		// Fee catalog
		// =========================
		admin.Post("/fee-types", ft.CreateFeeType)
		admin.Patch("/fee-types/:id", ft.UpdateFeeType)
		admin.Get("/fee-types", ft.ListFeeTypes)

		admin.Post("/fee-structures", fs.CreateFeeStructure)
		admin.Patch("/fee-structures/:id", fs.UpdateFeeStructure)
		admin.Get("/fee-structures", fs.ListFeeStructures)

		// =========================
		// Discounts & grants
		// =========================
		admin.Post("/discounts", dc.CreateDiscount)
		admin.Patch("/discounts/:id/status", dc.SetDiscountStatus)
		admin.Get("/discounts", dc.ListDiscounts)

		admin.Post("/student-discounts", sd.GrantDiscount)
		admin.Patch("/student-discounts/:id/decision", sd.DecideDiscount)
		admin.Get("/student-discounts", sd.ListStudentDiscounts)
		admin.Post("/student-discounts/sibling", as.ApplySiblingDiscount)

		// =========================
		// Assignment & ledger
		// =========================
		admin.Get("/students/:student_id/fees/preview", as.PreviewStudentFees)
		admin.Post("/student-fees/assign", as.AssignStudentFees)
		admin.Post("/student-fees/bulk-assign", middlewares.BulkAssignRateLimiter(), as.BulkAssignFees)
		admin.Get("/student-fees", sf.ListStudentFees)
	}
}
