package heuristics

import (
	"testing"
	"time"
)

func TestDaysUntilFloorsAtAWeek(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	if got := DaysUntil(now, now.AddDate(0, 0, 10)); got != 10 {
		t.Fatalf("days = %d, want 10", got)
	}
	if got := DaysUntil(now, now); got != 7 {
		t.Fatalf("same-day target days = %d, want 7", got)
	}
	if got := DaysUntil(now, now.AddDate(0, 0, -3)); got != 7 {
		t.Fatalf("past target days = %d, want 7", got)
	}
}

func TestTopicPriorities(t *testing.T) {
	got := TopicPriorities(map[string][]float64{
		"Графы":      {40, 40}, // weak, priority 6
		"Сортировки": {95},     // strong, floors at 1
	}, nil)
	if got["Графы"] != 6 {
		t.Fatalf("weak topic priority = %d, want 6", got["Графы"])
	}
	if got["Сортировки"] != 1 {
		t.Fatalf("strong topic priority = %d, want 1", got["Сортировки"])
	}

	uniform := TopicPriorities(nil, []string{"Лекция 1", "Лекция 2"})
	if len(uniform) != 2 || uniform["Лекция 1"] != 5 || uniform["Лекция 2"] != 5 {
		t.Fatalf("uniform fallback = %v", uniform)
	}
}

func TestSessionDurationByStyle(t *testing.T) {
	cases := map[string]int{
		StyleVisual:      45,
		StyleKinesthetic: 30,
		StyleReading:     60,
		StyleMixed:       45,
		"unknown":        45,
	}
	for style, want := range cases {
		if got := SessionDuration(style); got != want {
			t.Fatalf("%s: duration = %d, want %d", style, got, want)
		}
	}
}

func TestBuildPlanEveryDayGetsATopic(t *testing.T) {
	w := DefaultWeights()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	plan := BuildPlan(w, PlanInput{
		Now:        now,
		TargetDate: now.AddDate(0, 0, 14),
		Style:      StyleKinesthetic,
		TotalHours: 28,
		// Fewer topics than days forces the round-robin to wrap.
		TopicGrades: map[string][]float64{
			"Графы":    {45},
			"Деревья":  {55},
			"Рекурсия": {85},
		},
	})
	if plan.DaysUntil != 14 || len(plan.DailySchedule) != 14 {
		t.Fatalf("schedule spans %d days, want 14", len(plan.DailySchedule))
	}
	if plan.SessionDuration != 30 {
		t.Fatalf("kinesthetic duration = %d, want 30", plan.SessionDuration)
	}
	// 28h over 14 days at 30min sessions is 4 sessions a day.
	if plan.SessionsPerDay != 4 {
		t.Fatalf("sessions per day = %d, want 4", plan.SessionsPerDay)
	}
	for i, day := range plan.DailySchedule {
		if len(day.Topics) == 0 {
			t.Fatalf("day %d has no topics", i)
		}
		if len(day.Sessions) != 4 {
			t.Fatalf("day %d has %d sessions, want 4", i, len(day.Sessions))
		}
		for _, s := range day.Sessions {
			if s.Topic == "" {
				t.Fatalf("day %d has a session without a topic", i)
			}
		}
	}
	// Weakest topic carries the highest priority and lands on day 0.
	if plan.DailySchedule[0].Topics[0] != "Графы" {
		t.Fatalf("day 0 topic = %v, want Графы first", plan.DailySchedule[0].Topics)
	}
}

func TestBuildPlanMilestonesAtQuartiles(t *testing.T) {
	w := DefaultWeights()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	plan := BuildPlan(w, PlanInput{
		Now:        now,
		TargetDate: now.AddDate(0, 0, 8),
		Style:      StyleVisual,
		TotalHours: 16,
		TopicGrades: map[string][]float64{
			"А": {50}, "Б": {55}, "В": {60}, "Г": {65},
		},
	})
	if len(plan.Milestones) != 4 {
		t.Fatalf("got %d milestones, want 4", len(plan.Milestones))
	}
	if plan.Milestones[3].Date != now.AddDate(0, 0, 8).Format("2006-01-02") {
		t.Fatalf("final milestone date = %s", plan.Milestones[3].Date)
	}
	if len(plan.Milestones[3].Topics) != 4 {
		t.Fatalf("final milestone must cover all topics, got %v", plan.Milestones[3].Topics)
	}
	if plan.Milestones[0].Goal != "Завершить 25% подготовки" {
		t.Fatalf("milestone goal = %q", plan.Milestones[0].Goal)
	}
}

func TestBuildPlanUsesFallbackHoursAndReviewTopic(t *testing.T) {
	w := DefaultWeights()
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	plan := BuildPlan(w, PlanInput{
		Now:        now,
		TargetDate: now.AddDate(0, 0, 5),
		Style:      StyleMixed,
	})
	if plan.TotalHours != 20 {
		t.Fatalf("fallback hours = %d, want 20", plan.TotalHours)
	}
	for i, day := range plan.DailySchedule {
		if len(day.Topics) != 1 || day.Topics[0] != "Повторение" {
			t.Fatalf("day %d topics = %v, want review fallback", i, day.Topics)
		}
	}
}
