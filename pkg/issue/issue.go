package issue

type Issue struct {
	Id        int
	ProjectId int
	Subject   string
	Open      bool
}
