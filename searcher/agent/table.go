package agent

import (
	"tiles/game"
	"tiles/qlearn"
)

type tableAgent struct {
	table *qlearn.Table
}

// NewTableAgent returns an agent that plays the highest-valued action of a
// trained table. Unseen states fall back to the first direction.
func NewTableAgent(table *qlearn.Table) Agent {
	return tableAgent{table: table}
}

func (a tableAgent) FindMove(b *game.Board) (game.Direction, bool) {
	return qlearn.Greedy(a.table.Values(b.Key())), true
}

func (a tableAgent) Name() string {
	return "qtable"
}
