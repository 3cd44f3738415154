package heuristics

import (
	"fmt"
	"sort"
	"time"
)

const (
	// Fallback topic when a course has neither grades nor lecture titles.
	reviewTopic = "Повторение"

	defaultTopicPriority = 5
	fallbackDays         = 7
	firstSessionHour     = 9
	sessionGapHours      = 3
	dayTopicCap          = 3
)

type PlanInput struct {
	Now        time.Time
	TargetDate time.Time
	Style      string
	// TotalHours usually comes from the exam prediction; 0 derives a
	// fallback from the timeline length.
	TotalHours    int
	TopicGrades   map[string][]float64
	LectureTitles []string
}

type PlanSession struct {
	Time     string `json:"time"`
	Duration int    `json:"duration"`
	Topic    string `json:"topic"`
	Type     string `json:"type"`
}

type PlanDay struct {
	Date     string        `json:"date"`
	Sessions []PlanSession `json:"sessions"`
	Topics   []string      `json:"topics"`
}

type PlanMilestone struct {
	Date   string   `json:"date"`
	Goal   string   `json:"goal"`
	Topics []string `json:"topics"`
}

type Plan struct {
	DaysUntil       int
	TotalHours      int
	SessionDuration int
	SessionsPerDay  int
	DailySchedule   []PlanDay
	TopicsPriority  map[string]int
	Milestones      []PlanMilestone
}

// DaysUntil counts whole days to the target. A target today or in the
// past is treated as a week out rather than rejected.
func DaysUntil(now, target time.Time) int {
	days := int(target.Sub(now).Hours() / 24)
	if days < 1 {
		return fallbackDays
	}
	return days
}

// TopicPriorities rates each graded topic 1-10, weaker topics higher.
// Without grade history every lecture title gets a uniform mid priority.
func TopicPriorities(topicGrades map[string][]float64, lectureTitles []string) map[string]int {
	priorities := make(map[string]int)
	for topic, scores := range topicGrades {
		if len(scores) == 0 {
			continue
		}
		p := int((100 - mean(scores)) / 10)
		if p < 1 {
			p = 1
		}
		priorities[topic] = p
	}
	if len(priorities) == 0 {
		for _, title := range lectureTitles {
			priorities[title] = defaultTopicPriority
		}
	}
	return priorities
}

// SessionDuration picks a session length in minutes for a learning style.
func SessionDuration(style string) int {
	switch style {
	case StyleVisual:
		return 45
	case StyleKinesthetic:
		return 30
	case StyleReading:
		return 60
	default:
		return 45
	}
}

// BuildPlan lays the topics out over the timeline. Topics are sorted by
// priority descending and dealt round-robin across days, wrapping when
// there are fewer topics than days, so every day gets at least one topic.
func BuildPlan(w HeuristicWeights, in PlanInput) Plan {
	days := DaysUntil(in.Now, in.TargetDate)

	totalHours := in.TotalHours
	if totalHours <= 0 {
		totalHours = days * 2
		if totalHours < 20 {
			totalHours = 20
		}
	}

	priorities := TopicPriorities(in.TopicGrades, in.LectureTitles)
	topics := sortTopicsByPriority(priorities)
	if len(topics) == 0 {
		topics = []string{reviewTopic}
	}

	duration := SessionDuration(in.Style)
	hoursPerDay := float64(totalHours) / float64(days)
	sessionsPerDay := int(hoursPerDay * 60 / float64(duration))
	if sessionsPerDay < 1 {
		sessionsPerDay = 1
	}

	schedule := make([]PlanDay, 0, days)
	for day := 0; day < days; day++ {
		dayTopics := topicsForDay(topics, day, days)
		planDay := PlanDay{
			Date:   in.Now.AddDate(0, 0, day).Format("2006-01-02"),
			Topics: capTopics(dayTopics, dayTopicCap),
		}
		for s := 0; s < sessionsPerDay; s++ {
			planDay.Sessions = append(planDay.Sessions, PlanSession{
				Time:     fmt.Sprintf("%d:00", firstSessionHour+s*sessionGapHours),
				Duration: duration,
				Topic:    dayTopics[s%len(dayTopics)],
				Type:     "study",
			})
		}
		schedule = append(schedule, planDay)
	}

	return Plan{
		DaysUntil:       days,
		TotalHours:      totalHours,
		SessionDuration: duration,
		SessionsPerDay:  sessionsPerDay,
		DailySchedule:   schedule,
		TopicsPriority:  priorities,
		Milestones:      buildMilestones(in.Now, days, topics),
	}
}

// topicsForDay deals topic i to day i mod days; with fewer topics than
// days the deal wraps so no day is left empty.
func topicsForDay(sorted []string, day, days int) []string {
	var out []string
	for i, topic := range sorted {
		if i%days == day {
			out = append(out, topic)
		}
	}
	if len(out) == 0 {
		out = []string{sorted[day%len(sorted)]}
	}
	return out
}

func capTopics(topics []string, n int) []string {
	if len(topics) > n {
		return topics[:n]
	}
	return topics
}

func buildMilestones(now time.Time, days int, sorted []string) []PlanMilestone {
	quarter := days / 4
	milestones := make([]PlanMilestone, 0, 4)
	for i := 1; i <= 4; i++ {
		covered := sorted[:i*len(sorted)/4]
		milestones = append(milestones, PlanMilestone{
			Date:   now.AddDate(0, 0, quarter*i).Format("2006-01-02"),
			Goal:   fmt.Sprintf("Завершить %d%% подготовки", i*25),
			Topics: covered,
		})
	}
	return milestones
}

func sortTopicsByPriority(priorities map[string]int) []string {
	topics := make([]string, 0, len(priorities))
	for topic := range priorities {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if priorities[topics[i]] != priorities[topics[j]] {
			return priorities[topics[i]] > priorities[topics[j]]
		}
		return topics[i] < topics[j]
	})
	return topics
}
