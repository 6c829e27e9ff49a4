package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ilya-burinskiy/webapis/internal/app/models"
)

func TestLogQueryApply(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	intPtr := func(v int) *int { return &v }
	timePtr := func(v time.Time) *time.Time { return &v }

	exercises := []models.Exercise{
		{ID: 1, Description: "a", Date: day(3)},
		{ID: 2, Description: "b", Date: day(1)},
		{ID: 3, Description: "c", Date: day(2).Add(15 * time.Hour)},
		{ID: 4, Description: "d", Date: day(5)},
	}

	testCases := []struct {
		name  string
		query models.LogQuery
		want  []int
	}{
		{name: "keeps everything without filters", query: models.LogQuery{}, want: []int{1, 2, 3, 4}},
		{name: "from is inclusive", query: models.LogQuery{From: timePtr(day(3))}, want: []int{1, 4}},
		{name: "to is inclusive on calendar date", query: models.LogQuery{To: timePtr(day(2))}, want: []int{2, 3}},
		{name: "limit truncates after filtering", query: models.LogQuery{From: timePtr(day(2)), Limit: intPtr(2)}, want: []int{1, 3}},
		{name: "limit bigger than log", query: models.LogQuery{Limit: intPtr(10)}, want: []int{1, 2, 3, 4}},
		{name: "zero limit", query: models.LogQuery{Limit: intPtr(0)}, want: []int{}},
		{name: "empty range", query: models.LogQuery{From: timePtr(day(6)), Limit: intPtr(1)}, want: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ids := make([]int, 0)
			for _, e := range tc.query.Apply(exercises) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestExerciseFormattedDate(t *testing.T) {
	e := models.Exercise{Date: time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Mon Jan 01 1990", e.FormattedDate())
}

func TestCivilDateKeepsLocalCalendarDate(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	t.Run("early morning east of UTC", func(t *testing.T) {
		// 2024-06-02 21:30 UTC
		date := models.CivilDate(time.Date(2024, time.June, 3, 0, 30, 0, 0, moscow))
		assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), date)
	})
	t.Run("utc time", func(t *testing.T) {
		date := models.CivilDate(time.Date(2024, time.June, 3, 23, 59, 59, 0, time.UTC))
		assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), date)
	})
}
