package behavior_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bjaus/mediator"
	"github.com/bjaus/mediator/api"
)

type getUser struct {
	mediator.Returns[string]
	ID string
}

type createUser struct {
	mediator.Returns[api.Result]
	Name string
}

var errStore = errors.New("store unavailable")

// newMediator wires bh around handlers for getUser and createUser. getUser
// fails with errStore for ID "err"; createUser answers with a problem for an
// empty name.
func newMediator(t *testing.T, bh ...mediator.Behavior[any, any]) *mediator.Mediator {
	t.Helper()
	b := mediator.NewBuilder()
	for _, h := range bh {
		mediator.AddBehavior(b, h)
	}
	mediator.RegisterFunc(b, func(_ context.Context, q *getUser) (string, error) {
		if q.ID == "err" {
			return "", errStore
		}
		return "user-" + q.ID, nil
	})
	mediator.RegisterFunc(b, func(_ context.Context, q *createUser) (api.Result, error) {
		if q.Name == "" {
			return api.Fail(api.BadRequest("name is required", nil)), nil
		}
		return api.Succeed(api.Created{Value: q.Name}), nil
	})
	m, err := b.Build()
	require.NoError(t, err)
	return m
}
