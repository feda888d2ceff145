// file: internals/features/finance/fees/service/pipeline_test.go
package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fees "schoolku_backend/internals/features/finance/fees/model"
	enrollments "schoolku_backend/internals/features/school/enrollments/model"
)

type fixture struct {
	store    *memoryStore
	engine   *Engine
	schoolID uuid.UUID
	yearID   uuid.UUID
	classID  uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemoryStore(),
		schoolID: uuid.New(),
		yearID:   uuid.New(),
		classID:  uuid.New(),
	}
	f.store.activeYears[f.schoolID] = f.yearID
	f.engine = NewEngine(f.store)
	return f
}

// enroll adds a confirmed current-year enrollment and sets the
// student's all-time confirmed count.
func (f *fixture) enroll(studentID uuid.UUID, allTime int64) uuid.UUID {
	id := uuid.New()
	f.store.enrollRows = append(f.store.enrollRows, enrollments.Enrollment{
		EnrollmentID:           id,
		EnrollmentSchoolID:     f.schoolID,
		EnrollmentStudentID:    studentID,
		EnrollmentSchoolYearID: f.yearID,
		EnrollmentClassID:      f.classID,
		EnrollmentStatus:       enrollments.EnrollmentStatusConfirmed,
	})
	f.store.allTimeCount[studentID] = allTime
	return id
}

func (f *fixture) addFee(feeTypeID uuid.UUID, amountCents int64, newStudentCents *int64) {
	af := applicableFee(feeTypeID, amountCents, newStudentCents)
	af.Structure.FeeStructureSchoolID = f.schoolID
	af.Structure.FeeStructureSchoolYearID = f.yearID
	af.Structure.FeeStructureClassID = f.classID
	f.store.applicable = append(f.store.applicable, af)
}

func TestComputeFeesForStudent(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	enrID := f.enroll(student, 3)
	f.addFee(uuid.New(), 50000_00, nil)
	f.addFee(uuid.New(), 30000_00, nil)

	bd, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)

	assert.Equal(t, enrID, bd.EnrollmentID)
	assert.Equal(t, f.yearID, bd.SchoolYearID)
	assert.False(t, bd.IsNewStudent)
	require.Len(t, bd.Lines, 2)
	assert.Equal(t, int64(50000_00), bd.Lines[0].FinalCents)
}

func TestComputeFeesForStudent_NotEnrolled(t *testing.T) {
	f := newFixture()

	_, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrStudentNotEnrolled)
}

func TestComputeFeesForStudent_NoActiveYear(t *testing.T) {
	f := newFixture()
	delete(f.store.activeYears, f.schoolID)

	_, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNoActiveSchoolYear)
}

func TestComputeFeesForStudent_ExplicitYear(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 2)
	f.addFee(uuid.New(), 100_00, nil)

	bd, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, f.yearID)
	require.NoError(t, err)
	assert.Equal(t, f.yearID, bd.SchoolYearID)
}

func TestComputeFeesForStudent_ForeignYearRejected(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 2)
	f.addFee(uuid.New(), 100_00, nil)

	// a year owned by another school never resolves
	foreignYear := uuid.New()
	f.store.yearSchools[foreignYear] = uuid.New()

	_, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, foreignYear)
	assert.ErrorIs(t, err, ErrNoActiveSchoolYear)

	// same for a year id that does not exist at all
	_, err = f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, uuid.New())
	assert.ErrorIs(t, err, ErrNoActiveSchoolYear)
}

func TestComputeFeesForStudent_NoSchoolContext(t *testing.T) {
	f := newFixture()

	_, err := f.engine.ComputeFeesForStudent(context.Background(), uuid.Nil, uuid.New(), uuid.Nil)
	assert.ErrorIs(t, err, ErrNoSchoolContext)
}

func TestComputeFeesForStudent_FirstEnrollmentIsNew(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 1) // only the current enrollment
	f.addFee(uuid.New(), 50000_00, i64(60000_00))

	bd, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, bd.IsNewStudent)
	assert.Equal(t, int64(60000_00), bd.Lines[0].OriginalCents)
}

func TestComputeFeesForStudent_SectionScope(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	sectionA := uuid.New()
	sectionB := uuid.New()

	enrID := f.enroll(student, 2)
	for i := range f.store.enrollRows {
		if f.store.enrollRows[i].EnrollmentID == enrID {
			f.store.enrollRows[i].EnrollmentSectionID = &sectionA
		}
	}

	f.addFee(uuid.New(), 100_00, nil) // class-wide
	f.addFee(uuid.New(), 200_00, nil)
	f.store.applicable[1].Structure.FeeStructureSectionID = &sectionA
	f.addFee(uuid.New(), 300_00, nil)
	f.store.applicable[2].Structure.FeeStructureSectionID = &sectionB // other section

	bd, err := f.engine.ComputeFeesForStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, bd.Lines, 2)
	assert.Equal(t, int64(100_00), bd.Lines[0].OriginalCents)
	assert.Equal(t, int64(200_00), bd.Lines[1].OriginalCents)
}

func TestAssignFeesToStudent_Idempotent(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 2)
	f.addFee(uuid.New(), 50000_00, nil)
	f.addFee(uuid.New(), 30000_00, nil)

	first, err := f.engine.AssignFeesToStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)
	assert.Equal(t, 0, first.Skipped)

	// repeat call writes nothing
	second, err := f.engine.AssignFeesToStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	assert.Len(t, f.store.feeRows, 2)
}

func TestAssignFeesToStudent_LedgerRow(t *testing.T) {
	f := newFixture()
	student := uuid.New()
	f.enroll(student, 2)
	f.addFee(uuid.New(), 10000_00, nil)
	f.store.grants[student] = []DiscountGrant{{
		DiscountID:      uuid.New(),
		CalculationType: fees.DiscountCalculationPercentage,
		Value:           10,
	}}

	_, err := f.engine.AssignFeesToStudent(context.Background(), f.schoolID, student, uuid.Nil)
	require.NoError(t, err)

	require.Len(t, f.store.feeRows, 1)
	row := f.store.feeRows[0]
	assert.Equal(t, int64(10000_00), row.StudentFeeOriginalCents)
	assert.Equal(t, int64(1000_00), row.StudentFeeDiscountCents)
	assert.Equal(t, int64(9000_00), row.StudentFeeFinalCents)
	// a fresh line owes its full final amount
	assert.Equal(t, row.StudentFeeFinalCents, row.StudentFeeBalanceCents)
}
