// file: internals/route/index.go
package route

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	auditSvc "schoolku_backend/internals/features/audit/service"
	feesRoute "schoolku_backend/internals/features/finance/fees/route"
	feesvc "schoolku_backend/internals/features/finance/fees/service"
	academicsRoute "schoolku_backend/internals/features/school/academics/route"
	academicsSvc "schoolku_backend/internals/features/school/academics/service"
	enrollRoute "schoolku_backend/internals/features/school/enrollments/route"
	studentsRoute "schoolku_backend/internals/features/school/students/route"
	schoolkuMiddleware "schoolku_backend/internals/middlewares/auth_school"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	v := validator.New()
	audit := auditSvc.NewWriter(db)

	// Redis is optional; a nil cache degrades to direct reads.
	var yc *academicsSvc.YearCache
	if configs.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
		})
		yc = academicsSvc.NewYearCache(rdb)
		log.Println("[INFO] Active-year cache backed by Redis at", configs.RedisAddr)
	}

	engine := feesvc.NewEngine(feesvc.NewGormStore(db, yc))

	authJWT := schoolkuMiddleware.AuthJWT(schoolkuMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// ===================== ADMIN (per school) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a/:school_id", authJWT)

	academicsRoute.AcademicsAdminRoutes(admin, db, v, audit, yc)
	studentsRoute.StudentsAdminRoutes(admin, db, v, audit)
	enrollRoute.EnrollmentsAdminRoutes(admin, db, v, audit, engine)
	feesRoute.FeesAdminRoutes(admin, db, v, audit, engine)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up USER group...")
	user := app.Group("/api/u/:school_id", authJWT)

	feesRoute.FeesUserRoutes(user, db, v)
}
