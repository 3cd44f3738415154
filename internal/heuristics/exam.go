package heuristics

import (
	"math"
	"sort"
)

// ExamInputs are the observed signals the exam-success rule combines.
// Callers apply their own defaults for missing data before building this.
type ExamInputs struct {
	CurrentAvg           float64
	AttendanceRate       float64
	AssignmentCompletion float64
	// Trend is the raw grade slope in points per grade, not normalized.
	Trend float64
}

type ExamOutcome struct {
	PredictedScore        float64
	SuccessProbability    float64
	RecommendedStudyHours int
	RiskFactors           []string
	FocusTopics           []string
}

// PredictExam combines the inputs with the configured weights into a
// 0-100 predicted score and its derived fields. Topic focus comes from
// topicGrades: topics whose mean falls under the weak threshold, capped
// at five.
func PredictExam(w HeuristicWeights, in ExamInputs, topicGrades map[string][]float64) ExamOutcome {
	score := PredictedScore(w, in)
	return ExamOutcome{
		PredictedScore:        score,
		SuccessProbability:    SuccessProbability(score),
		RecommendedStudyHours: RecommendedStudyHours(w, score),
		RiskFactors:           RiskFactors(w, in),
		FocusTopics:           WeakTopics(w, topicGrades),
	}
}

// PredictedScore is the weighted sum over normalized inputs. The trend is
// squashed to [-1,1] by dividing by 10, then shifted to [0,1] so a flat
// trend contributes half its weight.
func PredictedScore(w HeuristicWeights, in ExamInputs) float64 {
	normTrend := clamp(in.Trend/10, -1, 1)
	return (in.CurrentAvg/100*w.AvgWeight +
		in.AttendanceRate/100*w.AttendanceWeight +
		in.AssignmentCompletion/100*w.CompletionWeight +
		(normTrend+1)/2*w.TrendWeight) * 100
}

// SuccessProbability rescales the predicted score so that 40 maps to 0
// and 90 maps to 100. Not a calibrated probability.
func SuccessProbability(predictedScore float64) float64 {
	return clamp((predictedScore-40)*2, 0, 100)
}

func RecommendedStudyHours(w HeuristicWeights, predictedScore float64) int {
	hours := int(math.Floor((100 - predictedScore) * w.HoursPerDeficit))
	if hours < w.MinStudyHours {
		return w.MinStudyHours
	}
	return hours
}

func RiskFactors(w HeuristicWeights, in ExamInputs) []string {
	var factors []string
	if in.CurrentAvg < w.LowAverage {
		factors = append(factors, "Низкий средний балл")
	}
	if in.AttendanceRate < w.LowAttendance {
		factors = append(factors, "Низкая посещаемость")
	}
	if in.AssignmentCompletion < w.LowCompletion {
		factors = append(factors, "Неполное выполнение заданий")
	}
	if in.Trend < w.FallingTrend {
		factors = append(factors, "Снижающаяся успеваемость")
	}
	return factors
}

// WeakTopics lists topics whose mean grade is under the weak threshold,
// alphabetical for stable output, capped at five.
func WeakTopics(w HeuristicWeights, topicGrades map[string][]float64) []string {
	var weak []string
	for topic, scores := range topicGrades {
		if len(scores) == 0 {
			continue
		}
		if mean(scores) < w.WeakTopicThreshold {
			weak = append(weak, topic)
		}
	}
	sort.Strings(weak)
	if len(weak) > 5 {
		weak = weak[:5]
	}
	return weak
}
