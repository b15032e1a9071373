package activity

// Activity is the kind of work a time entry is logged against
// (development, design, support...). The set is configured per installation.
type Activity struct {
	Id       int
	Name     string
	Position int
}
