package domain

import "time"

// Reconcile derives exactly one record per roster member from the accepted
// recognitions: present when the member's name was recognized above threshold,
// absent otherwise. Prior state is never consulted.
func Reconcile(roster []Student, recognitions []Recognition, date string, threshold float64, recordedAt time.Time) map[StudentID]Record {
	recognized := make(map[string]struct{}, len(recognitions))
	for _, recognition := range recognitions {
		if recognition.Confidence <= threshold {
			continue
		}
		recognized[IdentityKey(recognition.Identity)] = struct{}{}
	}

	records := make(map[StudentID]Record, len(roster))
	for _, student := range roster {
		status := StatusAbsent
		if _, ok := recognized[IdentityKey(student.Name)]; ok {
			status = StatusPresent
		}

		records[student.ID] = Record{
			StudentID:  student.ID,
			Date:       date,
			Status:     status,
			RecordedAt: recordedAt,
		}
	}

	return records
}

func CountStatuses(records map[StudentID]Record) (present, absent int) {
	for _, record := range records {
		switch record.Status {
		case StatusPresent, StatusPartial:
			present++
		default:
			absent++
		}
	}

	return present, absent
}
