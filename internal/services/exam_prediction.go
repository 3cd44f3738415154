package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	pkgerrors "github.com/uniquest/uniquest-backend/internal/pkg/errors"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

// Defaults stand in for missing data so a thin history still produces a
// prediction instead of an error.
const (
	defaultCurrentAvg   = 70.0
	defaultAttendance   = 70.0
	defaultCompletion   = 70.0
	examTrendMinSamples = 3
	examTrendWindow     = 5
	defaultTopicLabel   = "Общее"
)

type ExamPredictionService interface {
	Predict(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, examDate *time.Time) (*types.ExamPrediction, error)
}

type examPredictionService struct {
	db             *gorm.DB
	log            *logger.Logger
	weights        heuristics.HeuristicWeights
	enrollmentRepo repos.EnrollmentRepo
	gradeRepo      repos.GradeRepo
	attendanceRepo repos.AttendanceRepo
	lectureRepo    repos.LectureRepo
	assignmentRepo repos.AssignmentRepo
	predictionRepo repos.ExamPredictionRepo
}

func NewExamPredictionService(
	db *gorm.DB,
	log *logger.Logger,
	weights heuristics.HeuristicWeights,
	enrollmentRepo repos.EnrollmentRepo,
	gradeRepo repos.GradeRepo,
	attendanceRepo repos.AttendanceRepo,
	lectureRepo repos.LectureRepo,
	assignmentRepo repos.AssignmentRepo,
	predictionRepo repos.ExamPredictionRepo,
) ExamPredictionService {
	return &examPredictionService{
		db:             db,
		log:            log.With("service", "ExamPredictionService"),
		weights:        weights,
		enrollmentRepo: enrollmentRepo,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
		lectureRepo:    lectureRepo,
		assignmentRepo: assignmentRepo,
		predictionRepo: predictionRepo,
	}
}

func (s *examPredictionService) Predict(ctx context.Context, tx *gorm.DB, studentID, courseID uuid.UUID, examDate *time.Time) (*types.ExamPrediction, error) {
	enrollment, err := s.enrollmentRepo.GetByStudentAndCourse(ctx, tx, studentID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, fmt.Errorf("%w: no enrollment for student %s in course %s", pkgerrors.ErrNotFound, studentID, courseID)
	}

	grades, err := s.gradeRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.GetByEnrollmentIDs(ctx, tx, []uuid.UUID{enrollment.ID})
	if err != nil {
		return nil, err
	}
	lectures, err := s.lectureRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
	if err != nil {
		return nil, err
	}

	inputs := buildExamInputs(grades, attendance, lectures, assignments)
	outcome := heuristics.PredictExam(s.weights, inputs, topicGrades(grades))

	focusTopics, err := json.Marshal(outcome.FocusTopics)
	if err != nil {
		return nil, err
	}
	riskFactors, err := json.Marshal(outcome.RiskFactors)
	if err != nil {
		return nil, err
	}

	prediction := &types.ExamPrediction{
		StudentID:             studentID,
		CourseID:              courseID,
		PredictedScore:        outcome.PredictedScore,
		SuccessProbability:    outcome.SuccessProbability,
		CurrentAvg:            inputs.CurrentAvg,
		AttendanceRate:        inputs.AttendanceRate,
		AssignmentCompletion:  inputs.AssignmentCompletion,
		RecommendedStudyHours: outcome.RecommendedStudyHours,
		FocusTopics:           datatypes.JSON(focusTopics),
		RiskFactors:           datatypes.JSON(riskFactors),
		Confidence:            s.weights.StoredConfidence,
		ExamDate:              examDate,
	}
	if err := s.predictionRepo.UpsertByStudentAndCourse(ctx, tx, prediction); err != nil {
		return nil, err
	}
	s.log.Info("Exam success predicted",
		"student_id", studentID,
		"course_id", courseID,
		"predicted_score", outcome.PredictedScore,
		"success_probability", outcome.SuccessProbability,
	)
	return prediction, nil
}

func buildExamInputs(grades []*types.Grade, attendance []*types.Attendance, lectures []*types.Lecture, assignments []*types.Assignment) heuristics.ExamInputs {
	in := heuristics.ExamInputs{
		CurrentAvg:           defaultCurrentAvg,
		AttendanceRate:       defaultAttendance,
		AssignmentCompletion: defaultCompletion,
	}

	if len(grades) > 0 {
		var sum float64
		for _, g := range grades {
			sum += g.Value
		}
		in.CurrentAvg = sum / float64(len(grades))
	}

	// Attendance rate is against the course's lecture count, not the
	// attendance rows. No lectures keeps the default.
	if len(lectures) > 0 {
		var present int
		for _, a := range attendance {
			if a.Present {
				present++
			}
		}
		in.AttendanceRate = float64(present) / float64(len(lectures)) * 100
	}

	// Completion counts assignments with at least one graded submission.
	if len(assignments) > 0 {
		graded := make(map[uuid.UUID]bool)
		for _, g := range grades {
			if g.AssignmentID != nil {
				graded[*g.AssignmentID] = true
			}
		}
		var completed int
		for _, a := range assignments {
			if graded[a.ID] {
				completed++
			}
		}
		in.AssignmentCompletion = float64(completed) / float64(len(assignments)) * 100
	}

	if len(grades) >= examTrendMinSamples {
		scores := make([]float64, 0, examTrendWindow)
		start := len(grades) - examTrendWindow
		if start < 0 {
			start = 0
		}
		for _, g := range grades[start:] {
			scores = append(scores, g.Value)
		}
		in.Trend = heuristics.Slope(scores)
	}
	return in
}

func topicGrades(grades []*types.Grade) map[string][]float64 {
	byTopic := make(map[string][]float64)
	for _, g := range grades {
		topic := g.Topic
		if topic == "" {
			topic = defaultTopicLabel
		}
		byTopic[topic] = append(byTopic[topic], g.Value)
	}
	return byTopic
}
