package domain

import "math"

type StudentSummary struct {
	Student    Student
	Present    int
	Partial    int
	Absent     int
	Days       int
	Percentage float64
}

// LatestByStudent keeps the most recent record per student. Ties keep the later entry.
func LatestByStudent(records []Record) map[StudentID]Record {
	latest := make(map[StudentID]Record, len(records))
	for _, record := range records {
		current, ok := latest[record.StudentID]
		if ok && record.RecordedAt.Before(current.RecordedAt) {
			continue
		}
		latest[record.StudentID] = record
	}

	return latest
}

// Summarize counts one status per student per day (latest wins). Partial days
// count half towards the percentage.
func Summarize(roster []Student, records []Record) []StudentSummary {
	type dayKey struct {
		student StudentID
		date    string
	}

	daily := make(map[dayKey]Record, len(records))
	for _, record := range records {
		key := dayKey{student: record.StudentID, date: record.Date}
		current, ok := daily[key]
		if ok && record.RecordedAt.Before(current.RecordedAt) {
			continue
		}
		daily[key] = record
	}

	byStudent := make(map[StudentID]*StudentSummary, len(roster))
	summaries := make([]StudentSummary, len(roster))
	for i, student := range roster {
		summaries[i].Student = student
		byStudent[student.ID] = &summaries[i]
	}

	for key, record := range daily {
		summary, ok := byStudent[key.student]
		if !ok {
			continue
		}
		summary.Days++
		switch record.Status {
		case StatusPresent:
			summary.Present++
		case StatusPartial:
			summary.Partial++
		default:
			summary.Absent++
		}
	}

	for i := range summaries {
		if summaries[i].Days == 0 {
			continue
		}
		attended := float64(summaries[i].Present) + float64(summaries[i].Partial)/2
		summaries[i].Percentage = math.Round(attended/float64(summaries[i].Days)*1000) / 10
	}

	return summaries
}
