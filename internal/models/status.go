package models

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func (s Status) Label() string {
	switch s {
	case StatusOpen:
		return "Åpen"
	case StatusInProgress:
		return "Under arbeid"
	case StatusDone:
		return "Lukket"
	}
	return string(s)
}
