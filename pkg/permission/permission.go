package permission

// Capability names checked against a requester.
const (
	ViewEveryProjectSpentTime = "view_every_project_spent_time"
	ViewOthersSpentTime       = "view_others_spent_time"
	EditOthersSpentTime       = "edit_others_spent_time"
)
