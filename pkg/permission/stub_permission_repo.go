package permission

import "context"

type StubRepo struct {
	grants map[int][]string
}

func NewStubRepo() *StubRepo {
	return &StubRepo{grants: map[int][]string{}}
}

func (s *StubRepo) Grant(userId int, capability string) {
	s.grants[userId] = append(s.grants[userId], capability)
}

func (s *StubRepo) HasCapability(ctx context.Context, userId int, capability string) (bool, error) {
	for _, granted := range s.grants[userId] {
		if granted == capability {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubRepo) Cleanup() {
	s.grants = map[int][]string{}
}
