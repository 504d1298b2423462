package domain

// ISO 8601 weekday constants and mappings
const (
	Monday    = 1
	Tuesday   = 2
	Wednesday = 3
	Thursday  = 4
	Friday    = 5
	Saturday  = 6
	Sunday    = 7
)

// WeekdayNames maps ISO 8601 weekday numbers to their English names
var WeekdayNames = map[int]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// DefaultActiveDays runs the backup every day of the week; the rotation only
// advances on days the scheduler actually fires, so skipping days stretches
// the whole ladder rather than a single slot.
var DefaultActiveDays = []int{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DefaultScheduleTime is when the daily backup fires, in local HH:MM.
const DefaultScheduleTime = "01:30"
