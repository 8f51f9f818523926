package mediator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/next-trace/scg-mediator/contract/cqrs"
	berr "github.com/next-trace/scg-mediator/contract/errors"
	"github.com/next-trace/scg-mediator/mediator"
)

func TestSetup_FirstBehaviorIsOutermost(t *testing.T) {
	var trace []string

	r := mediator.NewRegistry(nil)
	require.NoError(t, mediator.Setup(r,
		[]mediator.Handler{mediator.Command[createUser](createUserHandler{})},
		mediator.WithBehaviors(stamp[outer]{name: "outer", trace: &trace}, stamp[inner]{name: "inner", trace: &trace}),
	))

	require.NoError(t, mediator.NewSender(r, nil).SendCommand(t.Context(),
		createUser{CommandBase: cqrs.NewCommand(), UserName: "Alice"}))

	assert.Equal(t, []string{"outer", "inner"}, trace)
	assert.Equal(t, []string{"outer", "inner"}, r.Registrations()[0].Decorators)
}

func TestSetup_PerContractDecorationIsInnermost(t *testing.T) {
	var trace []string

	r := mediator.NewRegistry(nil)
	require.NoError(t, mediator.Setup(r,
		[]mediator.Handler{
			mediator.Command[createUser](createUserHandler{}),
			mediator.Query[getUser, user](getUserHandler{}),
		},
		mediator.WithBehaviors(stamp[outer]{name: "outer", trace: &trace}),
		mediator.WithDecoration(mediator.QueryContract[getUser, user](), stamp[inner]{name: "inner", trace: &trace}),
	))

	regs := r.Registrations()
	assert.Equal(t, []string{"outer"}, regs[0].Decorators)
	assert.Equal(t, []string{"outer", "inner"}, regs[1].Decorators)
}

func TestSetup_RepeatedDiscoveryAndFailuresAreIsolated(t *testing.T) {
	rec, log := newRecorder()
	r := mediator.NewRegistry(log)

	err := mediator.Setup(r,
		[]mediator.Handler{
			mediator.Command[createUser](createUserHandler{}),
			mediator.Command[createUser](createUserHandler{}),
			mediator.Command[createUser](otherCreateUserHandler{}),
			mediator.Query[getUser, user](getUserHandler{}),
		},
		mediator.WithBehaviors(mediator.Logging(nil)),
		mediator.WithDecoration(mediator.NotificationContract[userCreated](), mediator.Tracing(nil)),
	)

	require.ErrorIs(t, err, berr.ErrHandlerExists)
	require.ErrorIs(t, err, berr.ErrDecorationConflict)

	assert.Equal(t, 2, r.Len())
	assert.True(t, r.Sealed())
	assert.Equal(t, 2, rec.count("handler registered"))
	assert.Equal(t, 2, rec.count("decorator applied"))
	assert.Equal(t, 1, rec.count("handler registration failed"))
}

func TestSetup_WithoutSeal(t *testing.T) {
	r := mediator.NewRegistry(nil)
	require.NoError(t, mediator.Setup(r, nil, mediator.WithoutSeal()))
	assert.False(t, r.Sealed())

	require.NoError(t, mediator.Setup(r, []mediator.Handler{mediator.Query[getUser, user](getUserHandler{})}))
	assert.True(t, r.Sealed())

	err := mediator.Setup(r, []mediator.Handler{mediator.Command[createUser](createUserHandler{})})
	require.ErrorIs(t, err, berr.ErrRegistrySealed)
}
