package user

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey struct{}

var userKey contextKey

// ErrNoUser is returned when a request context carries no authenticated user.
var ErrNoUser = errors.New("user not found")

// WithUser attaches u to the context. The middleware resolves the X-User-Id
// header into this; services read it back via CurrentUser or CurrentId.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// CurrentUser returns the user attached to the context, or ErrNoUser.
func CurrentUser(ctx context.Context) (User, error) {
	u, ok := ctx.Value(userKey).(User)
	if !ok {
		log.Trace("no user attached to context")
		return User{}, ErrNoUser
	}
	return u, nil
}

// CurrentId returns the id of the user attached to the context.
func CurrentId(ctx context.Context) (int, error) {
	u, err := CurrentUser(ctx)
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}
