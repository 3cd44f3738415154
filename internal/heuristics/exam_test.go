package heuristics

import (
	"reflect"
	"testing"
)

func TestPredictedScoreWeighting(t *testing.T) {
	w := DefaultWeights()

	// Perfect inputs with a strongly rising trend hit the ceiling.
	top := PredictedScore(w, ExamInputs{CurrentAvg: 100, AttendanceRate: 100, AssignmentCompletion: 100, Trend: 10})
	if top != 100 {
		t.Fatalf("best-case score = %v, want 100", top)
	}

	// A flat trend contributes half its weight.
	flat := PredictedScore(w, ExamInputs{CurrentAvg: 80, AttendanceRate: 80, AssignmentCompletion: 80, Trend: 0})
	want := (0.8*0.40 + 0.8*0.25 + 0.8*0.20 + 0.5*0.15) * 100
	if diff := flat - want; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("flat-trend score = %v, want %v", flat, want)
	}
}

func TestSuccessProbabilityMonotoneAndClamped(t *testing.T) {
	prev := -1.0
	for score := -20.0; score <= 120; score += 0.5 {
		p := SuccessProbability(score)
		if p < 0 || p > 100 {
			t.Fatalf("probability %v out of range for score %v", p, score)
		}
		if p < prev {
			t.Fatalf("probability decreased: %v -> %v at score %v", prev, p, score)
		}
		prev = p
	}
	if SuccessProbability(39) != 0 {
		t.Fatalf("score below 40 must map to 0, got %v", SuccessProbability(39))
	}
	if SuccessProbability(95) != 100 {
		t.Fatalf("score above 90 must map to 100, got %v", SuccessProbability(95))
	}
	if SuccessProbability(65) != 50 {
		t.Fatalf("score 65 must map to 50, got %v", SuccessProbability(65))
	}
}

func TestRiskFactors(t *testing.T) {
	w := DefaultWeights()

	none := RiskFactors(w, ExamInputs{CurrentAvg: 85, AttendanceRate: 90, AssignmentCompletion: 95, Trend: 1})
	if len(none) != 0 {
		t.Fatalf("healthy inputs produced risk factors: %v", none)
	}

	all := RiskFactors(w, ExamInputs{CurrentAvg: 50, AttendanceRate: 60, AssignmentCompletion: 40, Trend: -5})
	if len(all) != 4 {
		t.Fatalf("got %d risk factors, want 4: %v", len(all), all)
	}
}

func TestWeakTopicsSortedAndCapped(t *testing.T) {
	w := DefaultWeights()
	grades := map[string][]float64{
		"Графы":      {40, 50},
		"Деревья":    {55},
		"Рекурсия":   {58, 59},
		"Сортировки": {90, 95},
		"Хеширование": {30},
		"Массивы":    {45},
		"Строки":     {50},
	}
	weak := WeakTopics(w, grades)
	if len(weak) != 5 {
		t.Fatalf("got %d weak topics, want cap of 5: %v", len(weak), weak)
	}
	want := []string{"Графы", "Деревья", "Массивы", "Рекурсия", "Строки"}
	if !reflect.DeepEqual(weak, want) {
		t.Fatalf("weak topics = %v, want %v", weak, want)
	}
}

func TestRecommendedStudyHoursFloor(t *testing.T) {
	w := DefaultWeights()
	if got := RecommendedStudyHours(w, 95); got != 10 {
		t.Fatalf("near-perfect score hours = %d, want floor 10", got)
	}
	if got := RecommendedStudyHours(w, 20); got != 24 {
		t.Fatalf("score 20 hours = %d, want 24", got)
	}
}

func TestPredictExamComposes(t *testing.T) {
	w := DefaultWeights()
	out := PredictExam(w, ExamInputs{CurrentAvg: 50, AttendanceRate: 60, AssignmentCompletion: 60, Trend: -3},
		map[string][]float64{"Графы": {40}})
	if out.SuccessProbability != SuccessProbability(out.PredictedScore) {
		t.Fatalf("probability not derived from score: %+v", out)
	}
	if len(out.RiskFactors) != 4 {
		t.Fatalf("risk factors = %v", out.RiskFactors)
	}
	if len(out.FocusTopics) != 1 || out.FocusTopics[0] != "Графы" {
		t.Fatalf("focus topics = %v", out.FocusTopics)
	}
}
