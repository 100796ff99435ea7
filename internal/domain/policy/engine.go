// Package policy decides what each agent does next and applies the state
// changes that keep the world consistent with that choice.
package policy

import (
	"errors"

	"gridwright/internal/domain/world"

	"github.com/cloudwego/hertz/pkg/common/hlog"
)

var ErrAgentNotFound = errors.New("agent not found")

// Logger is the subset of hlog.FullLogger the policies write to.
type Logger interface {
	Debugf(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

// Behavior is one agent type's decision rule.
type Behavior interface {
	Decide(s *world.State, a *world.Agent) Action
}

type Engine struct {
	Tuning world.Tuning
	Log    Logger
}

func NewEngine(tuning world.Tuning) Engine {
	return Engine{Tuning: tuning, Log: hlog.DefaultLogger()}
}

// Decide returns the next action for agentID and commits its side effects to s.
// The only error is ErrAgentNotFound; every other outcome is an Action, NONE
// included. s must not be touched by anyone else until Decide returns.
func (e Engine) Decide(s *world.State, agentID int) (Action, error) {
	a, ok := s.Agent(agentID)
	if !ok {
		return None(), ErrAgentNotFound
	}
	return e.behaviorFor(a.Kind).Decide(s, a), nil
}

func (e Engine) behaviorFor(kind world.AgentKind) Behavior {
	log := e.logger()
	switch kind {
	case world.AgentEngineer:
		return engineer{tuning: e.Tuning, log: log}
	case world.AgentFactory:
		return factory{tuning: e.Tuning, log: log}
	default:
		return idle{log: log}
	}
}

func (e Engine) logger() Logger {
	if e.Log == nil {
		return hlog.DefaultLogger()
	}
	return e.Log
}

type idle struct{ log Logger }

func (b idle) Decide(_ *world.State, a *world.Agent) Action {
	b.log.Debugf("agent %d (%s) has no behavior, idling", a.ID, a.RawType)
	return None()
}
