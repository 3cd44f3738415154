package repos_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/data/repos/testutil"
	"github.com/uniquest/uniquest-backend/internal/types"
)

func seedEnrollment(t *testing.T, ctx context.Context, f *testFixture) *types.Enrollment {
	t.Helper()

	students, err := f.students.Create(ctx, f.tx, []*types.Student{{
		FullName: "Иван Петров",
		Email:    uuid.NewString() + "@example.com",
	}})
	if err != nil {
		t.Fatalf("create student: %v", err)
	}
	courses, err := f.courses.Create(ctx, f.tx, []*types.Course{{
		Code: uuid.NewString(),
		Name: "Базы данных",
	}})
	if err != nil {
		t.Fatalf("create course: %v", err)
	}
	enrollments, err := f.enrollments.Create(ctx, f.tx, []*types.Enrollment{{
		StudentID: students[0].ID,
		CourseID:  courses[0].ID,
	}})
	if err != nil {
		t.Fatalf("create enrollment: %v", err)
	}
	return enrollments[0]
}

type testFixture struct {
	tx          *gorm.DB
	students    repos.StudentRepo
	courses     repos.CourseRepo
	enrollments repos.EnrollmentRepo
	grades      repos.GradeRepo
	profiles    repos.LearningProfileRepo
	predictions repos.ExamPredictionRepo
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)
	return &testFixture{
		tx:          tx,
		students:    repos.NewStudentRepo(db, log),
		courses:     repos.NewCourseRepo(db, log),
		enrollments: repos.NewEnrollmentRepo(db, log),
		grades:      repos.NewGradeRepo(db, log),
		profiles:    repos.NewLearningProfileRepo(db, log),
		predictions: repos.NewExamPredictionRepo(db, log),
	}
}

func TestGradesOrderedByGradedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	enr := seedEnrollment(t, ctx, f)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if _, err := f.grades.Create(ctx, f.tx, []*types.Grade{
		{EnrollmentID: enr.ID, AssignmentName: "Домашнее задание 2", Value: 75, GradedAt: base.AddDate(0, 0, 7)},
		{EnrollmentID: enr.ID, AssignmentName: "Домашнее задание 1", Value: 60, GradedAt: base},
		{EnrollmentID: enr.ID, AssignmentName: "Midterm Exam", Value: 82, GradedAt: base.AddDate(0, 0, 14)},
	}); err != nil {
		t.Fatalf("create grades: %v", err)
	}

	got, err := f.grades.GetByEnrollmentIDs(ctx, f.tx, []uuid.UUID{enr.ID})
	if err != nil {
		t.Fatalf("fetch grades: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 grades, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].GradedAt.Before(got[i-1].GradedAt) {
			t.Fatalf("grades out of order at index %d", i)
		}
	}
	if got[0].AssignmentName != "Домашнее задание 1" {
		t.Fatalf("expected oldest grade first, got %q", got[0].AssignmentName)
	}
}

func TestGradeLetterDerivedOnCreate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	enr := seedEnrollment(t, ctx, f)

	rows, err := f.grades.Create(ctx, f.tx, []*types.Grade{
		{EnrollmentID: enr.ID, Value: 91, GradedAt: time.Now()},
		{EnrollmentID: enr.ID, Value: 55, LetterGrade: "C", GradedAt: time.Now()},
	})
	if err != nil {
		t.Fatalf("create grades: %v", err)
	}
	if rows[0].LetterGrade != "A" {
		t.Fatalf("expected derived A, got %q", rows[0].LetterGrade)
	}
	if rows[1].LetterGrade != "C" {
		t.Fatalf("explicit letter must survive, got %q", rows[1].LetterGrade)
	}
}

func TestEnrollmentLookupByPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	enr := seedEnrollment(t, ctx, f)

	got, err := f.enrollments.GetByStudentAndCourse(ctx, f.tx, enr.StudentID, enr.CourseID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got == nil || got.ID != enr.ID {
		t.Fatalf("expected enrollment %s, got %+v", enr.ID, got)
	}

	missing, err := f.enrollments.GetByStudentAndCourse(ctx, f.tx, enr.StudentID, uuid.New())
	if err != nil {
		t.Fatalf("lookup missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown course, got %+v", missing)
	}
}

func TestExamPredictionUpsertKeepsOneRowPerPair(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	enr := seedEnrollment(t, ctx, f)

	row := &types.ExamPrediction{
		StudentID:             enr.StudentID,
		CourseID:              enr.CourseID,
		PredictedScore:        64.5,
		SuccessProbability:    49,
		CurrentAvg:            62,
		AttendanceRate:        80,
		AssignmentCompletion:  70,
		RecommendedStudyHours: 11,
		FocusTopics:           datatypes.JSON([]byte(`["SQL"]`)),
		RiskFactors:           datatypes.JSON([]byte(`["Низкий средний балл"]`)),
		Confidence:            75,
	}
	if err := f.predictions.UpsertByStudentAndCourse(ctx, f.tx, row); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &types.ExamPrediction{
		StudentID:             enr.StudentID,
		CourseID:              enr.CourseID,
		PredictedScore:        71.2,
		SuccessProbability:    62.4,
		CurrentAvg:            68,
		AttendanceRate:        85,
		AssignmentCompletion:  80,
		RecommendedStudyHours: 10,
		Confidence:            75,
	}
	if err := f.predictions.UpsertByStudentAndCourse(ctx, f.tx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	if err := f.tx.Model(&types.ExamPrediction{}).
		Where("student_id = ? AND course_id = ?", enr.StudentID, enr.CourseID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per pair, got %d", count)
	}

	got, err := f.predictions.GetByStudentAndCourse(ctx, f.tx, enr.StudentID, enr.CourseID)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got.PredictedScore != 71.2 {
		t.Fatalf("expected updated score 71.2, got %v", got.PredictedScore)
	}
}

func TestLearningProfileUpsertByStudent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	enr := seedEnrollment(t, ctx, f)

	first := &types.SmartLearningProfile{
		StudentID:          enr.StudentID,
		LearningStyle:      "visual",
		PreferredStudyTime: "morning",
		LearningVelocity:   1.2,
		RetentionRate:      0.7,
		AnalyzedAt:         time.Now().UTC(),
	}
	if err := f.profiles.UpsertByStudent(ctx, f.tx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &types.SmartLearningProfile{
		StudentID:          enr.StudentID,
		LearningStyle:      "kinesthetic",
		PreferredStudyTime: "evening",
		LearningVelocity:   0.9,
		RetentionRate:      0.7,
		AnalyzedAt:         time.Now().UTC(),
	}
	if err := f.profiles.UpsertByStudent(ctx, f.tx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := f.profiles.GetByStudentIDs(ctx, f.tx, []uuid.UUID{enr.StudentID})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one profile, got %d", len(got))
	}
	if got[0].LearningStyle != "kinesthetic" {
		t.Fatalf("expected updated style, got %q", got[0].LearningStyle)
	}
}
