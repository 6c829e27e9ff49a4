package models

import (
	"strconv"
	"time"
)

const (
	// Layout of dates accepted from clients
	DateLayout = "2006-01-02"
	// Layout of dates rendered in exercise responses
	ExerciseDateLayout = "Mon Jan 02 2006"
)

// User of the exercise tracker
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// IDString returns the user id the way clients see it
func (u User) IDString() string {
	return strconv.Itoa(u.ID)
}

// Exercise is a single activity record owned by a user
type Exercise struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
}

// FormattedDate renders the exercise date as "Mon Jan 02 2006"
func (e Exercise) FormattedDate() string {
	return e.Date.Format(ExerciseDateLayout)
}

// CivilDate returns midnight UTC of the calendar date t has in its own location
func CivilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
