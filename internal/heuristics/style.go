package heuristics

import "time"

// Learning styles and study-time buckets stored on the profile.
const (
	StyleVisual      = "visual"
	StyleKinesthetic = "kinesthetic"
	StyleReading     = "reading"
	StyleMixed       = "mixed"

	TimeMorning   = "morning"
	TimeAfternoon = "afternoon"
	TimeEvening   = "evening"
	TimeNight     = "night"
)

const (
	DefaultVelocity  = 1.0
	DefaultRetention = 0.7
	velocityWindow   = 5
)

// ClassifyStyle compares practice (assignment-linked) grades to lecture
// grades. A group has to beat the other by more than the configured gap,
// and both groups need data, before the style leaves "mixed".
func ClassifyStyle(w HeuristicWeights, practiceScores, lectureScores []float64) string {
	if len(practiceScores) == 0 || len(lectureScores) == 0 {
		return StyleMixed
	}
	practiceAvg := mean(practiceScores)
	lectureAvg := mean(lectureScores)
	switch {
	case practiceAvg > lectureAvg+w.StyleGap:
		return StyleKinesthetic
	case lectureAvg > practiceAvg+w.StyleGap:
		return StyleVisual
	default:
		return StyleMixed
	}
}

// AttendanceHour extracts the hour of day from an attendance timestamp.
// Date-only records carry a zero clock; those collapse to noon, so
// bulk-imported attendance lands in the afternoon bucket.
func AttendanceHour(t time.Time) int {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return 12
	}
	return t.Hour()
}

// PreferredStudyTime buckets the average attendance hour. No records
// defaults to afternoon.
func PreferredStudyTime(hours []int) string {
	if len(hours) == 0 {
		return TimeAfternoon
	}
	var sum int
	for _, h := range hours {
		sum += h
	}
	avg := float64(sum) / float64(len(hours))
	switch {
	case avg >= 6 && avg < 12:
		return TimeMorning
	case avg >= 12 && avg < 18:
		return TimeAfternoon
	case avg >= 18 && avg < 24:
		return TimeEvening
	default:
		return TimeNight
	}
}

// LearningVelocity maps the grade trend over the last five chronological
// scores to a pace multiplier: 1.0 is nominal, clamped to [0.5, 2.0].
func LearningVelocity(chronological []float64) float64 {
	if len(chronological) < 2 {
		return DefaultVelocity
	}
	recent := chronological
	if len(recent) > velocityWindow {
		recent = recent[len(recent)-velocityWindow:]
	}
	return clamp(1.0+Slope(recent)/20, 0.5, 2.0)
}
