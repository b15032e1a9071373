package user

// Status of a user account. Only active users show up in the full-visibility
// report scope.
type Status string

const (
	StatusActive Status = "active"
	StatusLocked Status = "locked"
)

type User struct {
	Id          int
	Uid         string
	Username    string
	DisplayName string
	Status      Status
}

func (u User) IsActive() bool {
	return u.Status == StatusActive
}
