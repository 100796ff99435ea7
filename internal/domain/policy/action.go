package policy

import "gridwright/internal/domain/world"

type ActionKind string

const (
	ActionNone               ActionKind = "NONE"
	ActionExplore            ActionKind = "EXPLORE"
	ActionDeploy             ActionKind = "DEPLOY"
	ActionMove               ActionKind = "MOVE"
	ActionBuildBot           ActionKind = "BUILD_BOT"
	ActionAssemblePowerPlant ActionKind = "ASSEMBLE_POWER_PLANT"
)

// Action is the one thing an agent does this round. PowerType is set for
// DEPLOY and ASSEMBLE_POWER_PLANT; Offset, relative to the agent, for DEPLOY,
// MOVE and BUILD_BOT.
type Action struct {
	Kind      ActionKind
	PowerType world.PowerPlantKind
	Offset    *world.Point
}

func None() Action { return Action{Kind: ActionNone} }

func explore() Action { return Action{Kind: ActionExplore} }

func deploy(kind world.PowerPlantKind, offset world.Point) Action {
	return Action{Kind: ActionDeploy, PowerType: kind, Offset: &offset}
}

func move(offset world.Point) Action {
	return Action{Kind: ActionMove, Offset: &offset}
}

func buildBot(offset world.Point) Action {
	return Action{Kind: ActionBuildBot, Offset: &offset}
}

func assemble(kind world.PowerPlantKind) Action {
	return Action{Kind: ActionAssemblePowerPlant, PowerType: kind}
}
