package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditSvc "schoolku_backend/internals/features/audit/service"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	enrollCtrl "schoolku_backend/internals/features/school/enrollments/controller"
)

func EnrollmentsAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate, audit *auditSvc.Writer, engine *feesvc.Engine) {
	h := &enrollCtrl.EnrollmentHandler{DB: db, Validator: v, Audit: audit, Engine: engine}

	{
		admin.Post("/enrollments", h.CreateEnrollment)
		admin.Get("/enrollments", h.ListEnrollments)
		admin.Post("/enrollments/:id/confirm", h.ConfirmEnrollment)
		admin.Post("/enrollments/:id/cancel", h.CancelEnrollment)
	}
}
