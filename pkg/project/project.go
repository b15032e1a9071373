package project

type Project struct {
	Id         int
	Name       string
	Identifier string
	// LogTimeEnabled tells whether the time-logging module is enabled on
	// this project at all. Per-user access still requires membership.
	LogTimeEnabled bool
}
