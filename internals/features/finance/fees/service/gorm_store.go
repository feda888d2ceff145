// file: internals/features/finance/fees/service/gorm_store.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	fees "schoolku_backend/internals/features/finance/fees/model"
	academicsSvc "schoolku_backend/internals/features/school/academics/service"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

const insertChunkSize = 100

type GormStore struct {
	DB        *gorm.DB
	YearCache *academicsSvc.YearCache // optional
}

func NewGormStore(db *gorm.DB, yc *academicsSvc.YearCache) *GormStore {
	return &GormStore{DB: db, YearCache: yc}
}

var _ Store = (*GormStore)(nil)

/* =========================
   School year
========================= */

func (s *GormStore) ActiveSchoolYearID(ctx context.Context, schoolID uuid.UUID) (uuid.UUID, error) {
	if id, ok := s.YearCache.Get(ctx, schoolID); ok {
		return id, nil
	}

	var row struct {
		ID uuid.UUID
	}
	err := s.DB.WithContext(ctx).Table("school_years").
		Select("school_year_id AS id").
		Where("school_year_school_id = ? AND school_year_is_active = TRUE AND school_year_deleted_at IS NULL", schoolID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrNoActiveSchoolYear
		}
		return uuid.Nil, err
	}
	s.YearCache.Set(ctx, schoolID, row.ID)
	return row.ID, nil
}

func (s *GormStore) SchoolYearExists(ctx context.Context, schoolID, schoolYearID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Table("school_years").
		Where("school_year_id = ? AND school_year_school_id = ? AND school_year_deleted_at IS NULL", schoolYearID, schoolID).
		Count(&n).Error
	return n > 0, err
}

/* =========================
   Enrollment store
========================= */

func (s *GormStore) ConfirmedEnrollment(ctx context.Context, schoolID, studentID, schoolYearID uuid.UUID) (*enrollments.Enrollment, error) {
	var m enrollments.Enrollment
	err := s.DB.WithContext(ctx).
		Where("enrollment_school_id = ? AND enrollment_student_id = ? AND enrollment_school_year_id = ? AND enrollment_status = ?",
			schoolID, studentID, schoolYearID, enrollments.EnrollmentStatusConfirmed).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotEnrolled
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ConfirmedEnrollmentByID(ctx context.Context, enrollmentID uuid.UUID) (*enrollments.Enrollment, error) {
	var m enrollments.Enrollment
	err := s.DB.WithContext(ctx).
		Where("enrollment_id = ? AND enrollment_status = ?", enrollmentID, enrollments.EnrollmentStatusConfirmed).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotEnrolled
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ConfirmedEnrollmentCounts(ctx context.Context, studentIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	type row struct {
		StudentID uuid.UUID
		N         int64
	}
	var rows []row
	err := s.DB.WithContext(ctx).Table("enrollments").
		Select("enrollment_student_id AS student_id, COUNT(1) AS n").
		Where("enrollment_student_id IN ? AND enrollment_status = ? AND enrollment_deleted_at IS NULL",
			studentIDs, enrollments.EnrollmentStatusConfirmed).
		Group("enrollment_student_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.StudentID] = r.N
	}
	return out, nil
}

func (s *GormStore) ConfirmedEnrollments(ctx context.Context, schoolID, schoolYearID uuid.UUID, studentIDs []uuid.UUID) ([]enrollments.Enrollment, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var rows []enrollments.Enrollment
	err := s.DB.WithContext(ctx).
		Where("enrollment_school_id = ? AND enrollment_school_year_id = ? AND enrollment_student_id IN ? AND enrollment_status = ?",
			schoolID, schoolYearID, studentIDs, enrollments.EnrollmentStatusConfirmed).
		Find(&rows).Error
	return rows, err
}

/* =========================
   Fee catalog
========================= */

func (s *GormStore) ApplicableFees(ctx context.Context, schoolID, schoolYearID uuid.UUID, classIDs []uuid.UUID) ([]ApplicableFee, error) {
	if len(classIDs) == 0 {
		return nil, nil
	}

	var structures []fees.FeeStructure
	err := s.DB.WithContext(ctx).
		Where("fee_structure_school_id = ? AND fee_structure_school_year_id = ? AND fee_structure_class_id IN ?",
			schoolID, schoolYearID, classIDs).
		Find(&structures).Error
	if err != nil {
		return nil, err
	}
	if len(structures) == 0 {
		return nil, nil
	}

	typeIDs := make([]uuid.UUID, 0, len(structures))
	seen := map[uuid.UUID]bool{}
	for _, fs := range structures {
		if !seen[fs.FeeStructureFeeTypeID] {
			seen[fs.FeeStructureFeeTypeID] = true
			typeIDs = append(typeIDs, fs.FeeStructureFeeTypeID)
		}
	}

	var types []fees.FeeType
	err = s.DB.WithContext(ctx).
		Where("fee_type_id IN ? AND fee_type_status = ?", typeIDs, fees.FeeTypeStatusActive).
		Find(&types).Error
	if err != nil {
		return nil, err
	}
	typeByID := make(map[uuid.UUID]fees.FeeType, len(types))
	for _, t := range types {
		typeByID[t.FeeTypeID] = t
	}

	out := make([]ApplicableFee, 0, len(structures))
	for _, fs := range structures {
		t, ok := typeByID[fs.FeeStructureFeeTypeID]
		if !ok {
			continue // inactive fee type is not billed
		}
		out = append(out, ApplicableFee{Structure: fs, Type: t})
	}
	return out, nil
}

/* =========================
   Discount ledger
========================= */

func (s *GormStore) ApprovedGrants(ctx context.Context, schoolID, schoolYearID uuid.UUID, studentIDs []uuid.UUID) (map[uuid.UUID][]DiscountGrant, error) {
	out := make(map[uuid.UUID][]DiscountGrant, len(studentIDs))
	if len(studentIDs) == 0 {
		return out, nil
	}

	var sds []fees.StudentDiscount
	err := s.DB.WithContext(ctx).
		Where("student_discount_school_id = ? AND student_discount_school_year_id = ? AND student_discount_student_id IN ? AND student_discount_status = ?",
			schoolID, schoolYearID, studentIDs, fees.StudentDiscountStatusApproved).
		Find(&sds).Error
	if err != nil {
		return nil, err
	}
	if len(sds) == 0 {
		return out, nil
	}

	discountIDs := make([]uuid.UUID, 0, len(sds))
	seen := map[uuid.UUID]bool{}
	for _, sd := range sds {
		if !seen[sd.StudentDiscountDiscountID] {
			seen[sd.StudentDiscountDiscountID] = true
			discountIDs = append(discountIDs, sd.StudentDiscountDiscountID)
		}
	}

	var rules []fees.Discount
	err = s.DB.WithContext(ctx).
		Where("discount_id IN ? AND discount_status = ?", discountIDs, fees.DiscountStatusActive).
		Find(&rules).Error
	if err != nil {
		return nil, err
	}
	ruleByID := make(map[uuid.UUID]fees.Discount, len(rules))
	for _, r := range rules {
		ruleByID[r.DiscountID] = r
	}

	for _, sd := range sds {
		rule, ok := ruleByID[sd.StudentDiscountDiscountID]
		if !ok {
			continue // rule deactivated since approval
		}
		appliesTo, err := rule.AppliesTo()
		if err != nil {
			return nil, fmt.Errorf("discount %s applies-to: %w", rule.DiscountID, err)
		}
		out[sd.StudentDiscountStudentID] = append(out[sd.StudentDiscountStudentID], DiscountGrant{
			DiscountID:            rule.DiscountID,
			CalculationType:       rule.DiscountCalculationType,
			Value:                 rule.DiscountValue,
			MaxDiscountCents:      rule.DiscountMaxCents,
			AppliesToFeeTypeIDs:   appliesTo,
			CalculatedAmountCents: sd.StudentDiscountCalculatedAmountCents,
		})
	}
	return out, nil
}

/* =========================
   Student fee ledger
========================= */

func (s *GormStore) ExistingFeePairs(ctx context.Context, enrollmentIDs []uuid.UUID) (map[FeePair]bool, error) {
	out := map[FeePair]bool{}
	if len(enrollmentIDs) == 0 {
		return out, nil
	}

	type row struct {
		EnrollmentID   uuid.UUID
		FeeStructureID uuid.UUID
	}
	var rows []row
	err := s.DB.WithContext(ctx).Table("student_fees").
		Select("student_fee_enrollment_id AS enrollment_id, student_fee_fee_structure_id AS fee_structure_id").
		Where("student_fee_enrollment_id IN ? AND student_fee_deleted_at IS NULL", enrollmentIDs).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[FeePair{EnrollmentID: r.EnrollmentID, FeeStructureID: r.FeeStructureID}] = true
	}
	return out, nil
}

// InsertStudentFees writes rows in fixed-size chunks inside one
// transaction, ignoring unique-index conflicts. A failed chunk rolls
// the whole transaction back.
func (s *GormStore) InsertStudentFees(ctx context.Context, rows []fees.StudentFee) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	inserted := 0
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for start := 0; start < len(rows); start += insertChunkSize {
			end := start + insertChunkSize
			if end > len(rows) {
				end = len(rows)
			}
			chunk := rows[start:end]

			res := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "student_fee_enrollment_id"},
					{Name: "student_fee_fee_structure_id"},
				},
				DoNothing: true,
			}).Create(&chunk)
			if res.Error != nil {
				return res.Error
			}
			inserted += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBatchInsert, err)
	}
	return inserted, nil
}

/* =========================
   Sibling discount resolver
========================= */

func (s *GormStore) AutoApplySiblingDiscount(ctx context.Context, schoolID uuid.UUID) (*fees.Discount, error) {
	var m fees.Discount
	err := s.DB.WithContext(ctx).
		Where("discount_school_id = ? AND discount_type = ? AND discount_auto_apply = TRUE AND discount_status = ?",
			schoolID, fees.DiscountTypeSibling, fees.DiscountStatusActive).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSiblingDiscountConfigured
		}
		return nil, err
	}
	return &m, nil
}

func (s *GormStore) ParentUserIDs(ctx context.Context, studentID uuid.UUID) ([]uuid.UUID, error) {
	type row struct {
		ID uuid.UUID
	}
	var rows []row
	err := s.DB.WithContext(ctx).Table("school_student_parents").
		Select("student_parent_user_id AS id").
		Where("student_parent_student_id = ? AND student_parent_deleted_at IS NULL", studentID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out, nil
}

// EnrolledSiblingCount counts distinct students sharing any of the
// parent accounts, confirmed-enrolled in the year, excluding self.
func (s *GormStore) EnrolledSiblingCount(ctx context.Context, schoolID, schoolYearID, studentID uuid.UUID, parentUserIDs []uuid.UUID) (int64, error) {
	if len(parentUserIDs) == 0 {
		return 0, nil
	}
	var n int64
	err := s.DB.WithContext(ctx).Table("school_student_parents").
		Joins("JOIN enrollments ON enrollment_student_id = student_parent_student_id").
		Where("student_parent_user_id IN ? AND student_parent_student_id <> ? AND student_parent_deleted_at IS NULL", parentUserIDs, studentID).
		Where("enrollment_school_id = ? AND enrollment_school_year_id = ? AND enrollment_status = ? AND enrollment_deleted_at IS NULL",
			schoolID, schoolYearID, enrollments.EnrollmentStatusConfirmed).
		Distinct("student_parent_student_id").
		Count(&n).Error
	return n, err
}

func (s *GormStore) StudentDiscountExists(ctx context.Context, studentID, discountID, schoolYearID uuid.UUID) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&fees.StudentDiscount{}).
		Where("student_discount_student_id = ? AND student_discount_discount_id = ? AND student_discount_school_year_id = ?",
			studentID, discountID, schoolYearID).
		Count(&n).Error
	return n > 0, err
}

func (s *GormStore) InsertStudentDiscount(ctx context.Context, row *fees.StudentDiscount) error {
	return s.DB.WithContext(ctx).Create(row).Error
}
