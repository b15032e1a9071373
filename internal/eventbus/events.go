package eventbus

import "time"

const (
	TimeEntryCreatedType EventType = "timeentry.created"
)

type TimeEntryCreated struct {
	EntryId   int
	UserId    int
	ProjectId int
	IssueId   int
	Hours     float64
	SpentOn   time.Time
}
