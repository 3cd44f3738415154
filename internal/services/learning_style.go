package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/uniquest/uniquest-backend/internal/data/repos"
	"github.com/uniquest/uniquest-backend/internal/heuristics"
	"github.com/uniquest/uniquest-backend/internal/platform/logger"
	"github.com/uniquest/uniquest-backend/internal/types"
)

// LearningStyleService recomputes the smart learning profile on demand.
// There is no invalidation: callers see the state as of the last run.
type LearningStyleService interface {
	Analyze(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (*types.SmartLearningProfile, error)
}

type learningStyleService struct {
	db             *gorm.DB
	log            *logger.Logger
	weights        heuristics.HeuristicWeights
	gradeRepo      repos.GradeRepo
	attendanceRepo repos.AttendanceRepo
	profileRepo    repos.LearningProfileRepo
}

func NewLearningStyleService(
	db *gorm.DB,
	log *logger.Logger,
	weights heuristics.HeuristicWeights,
	gradeRepo repos.GradeRepo,
	attendanceRepo repos.AttendanceRepo,
	profileRepo repos.LearningProfileRepo,
) LearningStyleService {
	return &learningStyleService{
		db:             db,
		log:            log.With("service", "LearningStyleService"),
		weights:        weights,
		gradeRepo:      gradeRepo,
		attendanceRepo: attendanceRepo,
		profileRepo:    profileRepo,
	}
}

func (s *learningStyleService) Analyze(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (*types.SmartLearningProfile, error) {
	grades, err := s.gradeRepo.GetByStudentIDs(ctx, tx, []uuid.UUID{studentID})
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendanceRepo.GetByStudentIDs(ctx, tx, []uuid.UUID{studentID})
	if err != nil {
		return nil, err
	}

	// Assignment-linked grades are the practice group; the rest are
	// lecture grades.
	var practiceScores, lectureScores, chronological []float64
	for _, g := range grades {
		if g.AssignmentID != nil {
			practiceScores = append(practiceScores, g.Value)
		} else {
			lectureScores = append(lectureScores, g.Value)
		}
		chronological = append(chronological, g.Value)
	}

	hours := make([]int, 0, len(attendance))
	for _, a := range attendance {
		hours = append(hours, heuristics.AttendanceHour(a.Date))
	}

	profile := &types.SmartLearningProfile{
		StudentID:          studentID,
		LearningStyle:      heuristics.ClassifyStyle(s.weights, practiceScores, lectureScores),
		PreferredStudyTime: heuristics.PreferredStudyTime(hours),
		LearningVelocity:   heuristics.LearningVelocity(chronological),
		RetentionRate:      heuristics.DefaultRetention,
		AnalyzedAt:         time.Now().UTC(),
	}
	if err := s.profileRepo.UpsertByStudent(ctx, tx, profile); err != nil {
		return nil, err
	}
	s.log.Info("Learning profile analyzed",
		"student_id", studentID,
		"style", profile.LearningStyle,
		"preferred_time", profile.PreferredStudyTime,
		"velocity", profile.LearningVelocity,
	)
	return profile, nil
}
