package visibility

// Kind tags how wide a requester may look at other members' time entries.
type Kind string

const (
	// Full covers every active user in the installation.
	Full Kind = "full"
	// Coworkers covers all members of the projects the requester belongs to.
	Coworkers Kind = "coworkers"
	// SelfOnly covers the requester alone.
	SelfOnly Kind = "self"
)

// Scope is the resolved, immutable set of users whose entries the requester
// may query. It is computed per request and never persisted.
type Scope struct {
	Kind    Kind
	UserIds []int
}

func (s Scope) Contains(userId int) bool {
	for _, id := range s.UserIds {
		if id == userId {
			return true
		}
	}
	return false
}

// Restrict intersects the scope with an explicitly requested set of users.
// An empty request keeps the full scope.
func (s Scope) Restrict(requested []int) []int {
	if len(requested) == 0 {
		return s.UserIds
	}
	ids := make([]int, 0, len(requested))
	for _, id := range requested {
		if s.Contains(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
