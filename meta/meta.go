// meta/meta.go
package meta

// BOARD_SIZE is the default board width and height.
const BOARD_SIZE = 4

// SEARCH_DEPTH is the default expectimax depth in player moves.
const SEARCH_DEPTH = 3

// GO_ROUTINES bounds the concurrent top-level expectimax branches.
const GO_ROUTINES = 4

// EPISODES is the default number of training games.
const EPISODES = 1000

// MAX_STEPS caps a training episode, no-ops included.
const MAX_STEPS = 5000

// EVAL_GAMES is the default number of evaluation games.
const EVAL_GAMES = 10

// MAX_MOVES caps an evaluation game.
const MAX_MOVES = 100000

const TABLE_PATH = "qtable.json"
