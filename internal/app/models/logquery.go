package models

import "time"

// LogQuery narrows a user's exercise log. From and To are inclusive calendar dates,
// Limit truncates the filtered log.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// Matches reports whether the exercise date is inside [From, To]
func (q LogQuery) Matches(e Exercise) bool {
	date := CivilDate(e.Date)
	if q.From != nil && date.Before(CivilDate(*q.From)) {
		return false
	}
	if q.To != nil && date.After(CivilDate(*q.To)) {
		return false
	}

	return true
}

// Apply filters exercises by date and then truncates them to Limit.
// The input order is preserved.
func (q LogQuery) Apply(exercises []Exercise) []Exercise {
	result := make([]Exercise, 0, len(exercises))
	for _, e := range exercises {
		if q.Matches(e) {
			result = append(result, e)
		}
	}
	if q.Limit != nil && *q.Limit < len(result) {
		result = result[:max(*q.Limit, 0)]
	}

	return result
}
