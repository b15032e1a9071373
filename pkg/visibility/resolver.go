package visibility

import (
	"context"

	"github.com/spenttime/spenttime/pkg/permission"
	"github.com/spenttime/spenttime/pkg/project"
	"github.com/spenttime/spenttime/pkg/user"
)

// CapabilityChecker is the slice of the permission store the resolver needs.
type CapabilityChecker interface {
	HasCapability(ctx context.Context, userId int, capability string) (bool, error)
}

// UserDirectory lists the users eligible for the full-visibility tier.
type UserDirectory interface {
	FindActiveUsers(ctx context.Context) ([]user.User, error)
}

// MembershipDirectory walks project memberships for the co-worker tier.
type MembershipDirectory interface {
	ProjectsOfUser(ctx context.Context, userId int) ([]project.Project, error)
	MemberIds(ctx context.Context, projectId int) ([]int, error)
}

// Resolver computes the visibility scope of a requester. It is a read-only
// query against the user/project/permission stores; the result always
// contains the requester.
type Resolver struct {
	caps        CapabilityChecker
	users       UserDirectory
	memberships MembershipDirectory
}

func NewResolver(caps CapabilityChecker, users UserDirectory, memberships MembershipDirectory) *Resolver {
	return &Resolver{caps: caps, users: users, memberships: memberships}
}

func (r *Resolver) Resolve(ctx context.Context, requester user.User) (Scope, error) {
	viewEvery, err := r.caps.HasCapability(ctx, requester.Id, permission.ViewEveryProjectSpentTime)
	if err != nil {
		return Scope{}, err
	}
	if viewEvery {
		return r.fullScope(ctx, requester)
	}

	viewOthers, err := r.caps.HasCapability(ctx, requester.Id, permission.ViewOthersSpentTime)
	if err != nil {
		return Scope{}, err
	}
	if viewOthers {
		return r.coworkerScope(ctx, requester)
	}

	return Scope{Kind: SelfOnly, UserIds: []int{requester.Id}}, nil
}

func (r *Resolver) fullScope(ctx context.Context, requester user.User) (Scope, error) {
	active, err := r.users.FindActiveUsers(ctx)
	if err != nil {
		return Scope{}, err
	}
	ids := make([]int, 0, len(active))
	seen := map[int]bool{}
	for _, u := range active {
		ids = append(ids, u.Id)
		seen[u.Id] = true
	}
	if !seen[requester.Id] {
		ids = append(ids, requester.Id)
	}
	return Scope{Kind: Full, UserIds: ids}, nil
}

func (r *Resolver) coworkerScope(ctx context.Context, requester user.User) (Scope, error) {
	projects, err := r.memberships.ProjectsOfUser(ctx, requester.Id)
	if err != nil {
		return Scope{}, err
	}
	ids := make([]int, 0, 10)
	seen := map[int]bool{}
	for _, p := range projects {
		memberIds, err := r.memberships.MemberIds(ctx, p.Id)
		if err != nil {
			return Scope{}, err
		}
		for _, id := range memberIds {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	if !seen[requester.Id] {
		ids = append(ids, requester.Id)
	}
	return Scope{Kind: Coworkers, UserIds: ids}, nil
}
