package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/get-eventually/go-command/command"
)

// CommandFactory builds the Command under test, bound to the scenario Repository.
type CommandFactory func(repository Repository) command.Command

// ScenarioInit is the entrypoint of the Command scenario API.
//
// A Command scenario can either set the Clients stored in the Repository
// by using Given(), or test a "clean-slate" scenario by using When() directly.
type ScenarioInit struct{}

// Scenario is a scenario type to test the effects of a Command on
// a Repository, when invoked through a command.Manager.
func Scenario() ScenarioInit {
	return ScenarioInit{}
}

// Given sets the Clients stored in the Repository before the Command is invoked.
func (ScenarioInit) Given(clients ...*Client) ScenarioGiven {
	return ScenarioGiven{given: clients}
}

// When provides the Command to invoke.
func (ScenarioInit) When(factory CommandFactory) ScenarioWhen {
	return ScenarioWhen{when: factory}
}

// ScenarioGiven is the state of the scenario once the initial
// Repository content has been provided.
type ScenarioGiven struct {
	given []*Client
}

// When provides the Command to invoke.
func (sc ScenarioGiven) When(factory CommandFactory) ScenarioWhen {
	return ScenarioWhen{
		ScenarioGiven: sc,
		when:          factory,
	}
}

// ScenarioWhen is the state of the scenario once the initial Repository
// content and the Command to invoke have been provided.
type ScenarioWhen struct {
	ScenarioGiven

	when CommandFactory
}

// Then sets a positive expectation on the scenario outcome: the Command
// is invoked successfully, and the Repository holds exactly the Clients provided.
func (sc ScenarioWhen) Then(clients ...*Client) ScenarioThen {
	return ScenarioThen{
		ScenarioWhen: sc,
		then:         clients,
	}
}

// ThenError sets a negative expectation on the scenario outcome,
// to fail the invocation with an error matching the one provided, using errors.Is().
func (sc ScenarioWhen) ThenError(err error) ScenarioThen {
	return ScenarioThen{
		ScenarioWhen: sc,
		thenError:    err,
		wantError:    true,
	}
}

// ThenFails sets a negative expectation on the scenario outcome,
// with no particular assertion on the error returned.
func (sc ScenarioWhen) ThenFails() ScenarioThen {
	return ScenarioThen{
		ScenarioWhen: sc,
		wantError:    true,
	}
}

// ScenarioThen is the state of the scenario once the preconditions
// and expectations have been fully specified.
type ScenarioThen struct {
	ScenarioWhen

	then      []*Client
	thenError error
	wantError bool
}

// AssertOn runs the scenario on a fresh InMemoryRepository.
//
// On a successful invocation, the Command is also undone through the
// command.Manager, and the Repository is expected to be back to the
// Given state. On a failed invocation, the Repository is expected
// to be left untouched.
func (sc ScenarioThen) AssertOn(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	repository := NewInMemoryRepository()

	for _, c := range sc.given {
		if !assert.NoError(t, repository.Add(ctx, c)) {
			return
		}
	}

	given := repository.Clients()
	manager := command.NewManager()

	err := manager.Invoke(ctx, sc.when(repository))

	if !sc.wantError {
		if !assert.NoError(t, err) {
			return
		}

		assert.ElementsMatch(t, sc.then, repository.Clients())
		assert.NoError(t, manager.Undo(ctx))
		assert.Equal(t, given, repository.Clients())

		return
	}

	if !assert.Error(t, err) {
		return
	}

	if sc.thenError != nil {
		assert.ErrorIs(t, err, sc.thenError)
	}

	assert.Empty(t, manager.History())
	assert.Equal(t, given, repository.Clients())
}
