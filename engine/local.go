package engine

import (
	"time"

	"tiles/experiments/metrics"
	"tiles/game"
	"tiles/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Local drives one session with one agent in the current goroutine.
type Local struct {
	session  *game.Session
	agent    agent.Agent
	maxMoves int
}

func LocalEngine(session *game.Session, a agent.Agent, maxMoves int) *Local {
	if session == nil || a == nil {
		panic("engine needs a session and an agent")
	}
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}
	return &Local{
		session:  session,
		agent:    a,
		maxMoves: maxMoves,
	}
}

func (e *Local) Session() *game.Session {
	return e.session
}

// Run asks the agent for a move, applies it (spawning a tile when the board
// changes) and repeats until the game is over or maxMoves is reached.
func (e *Local) Run() (metrics.GameMetric, []metrics.MoveMetric) {
	start := time.Now()
	var moveMetrics []metrics.MoveMetric
	fallbacks := 0

	log.Debug().Msgf("agent %s is starting", e.agent.Name())

	for step := 1; !e.session.IsGameOver() && step <= e.maxMoves; step++ {
		board := e.session.Board()
		move, searchMetric, ok := e.findMove(board)

		if !ok || !isLegal(board, move) {
			legal := game.LegalMoves(board)
			if len(legal) == 0 { // Only an empty board can get here
				log.Warn().Msg("no legal move on a board that is not game over")
				break
			}
			log.Warn().Msgf("agent %s proposed %v (ok=%t) which does not change the board => playing %s",
				e.agent.Name(), move, ok, legal[0])
			move = legal[0]
			fallbacks++
		}

		result := e.session.Move(move)
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Direction:    move.String(),
			ScoreDelta:   result.ScoreDelta,
			SearchMetric: searchMetric,
		})
	}

	end := time.Now()
	final := e.session.Board()
	gameMetric := metrics.GameMetric{
		Agent:     e.agent.Name(),
		Score:     e.session.Score(),
		MaxTile:   final.MaxTile(),
		Moves:     e.session.Moves(),
		Fallbacks: fallbacks,
		GameOver:  e.session.IsGameOver(),
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	}

	if gameMetric.GameOver {
		log.Debug().Msgf("game over after %d moves with score %d", gameMetric.Moves, gameMetric.Score)
	} else {
		log.Debug().Msgf("stopped after %d moves (game not over)", gameMetric.Moves)
	}
	return gameMetric, moveMetrics
}

func (e *Local) findMove(b *game.Board) (game.Direction, metrics.SearchMetric, bool) {
	if s, ok := e.agent.(agent.Searcher); ok {
		move, found, metric := s.Search(b)
		return move, metric, found
	}

	start := time.Now()
	move, found := e.agent.FindMove(b)
	return move, metrics.SearchMetric{Duration: time.Since(start)}, found
}

func isLegal(b *game.Board, d game.Direction) bool {
	if !d.Valid() {
		return false
	}
	_, result := game.Simulate(b, d)
	return result.Changed
}
