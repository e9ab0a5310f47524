package game

// Session is a single game: a board, its running score and the spawner that
// adds tiles after each successful move. It is not safe for concurrent use.
type Session struct {
	board   *Board
	spawner Spawner
	score   int
	moves   int
}

// NewGame starts a game on an empty size x size board with two spawned tiles.
func NewGame(size int, spawner Spawner) (*Session, error) {
	board, err := NewBoard(size)
	if err != nil {
		return nil, err
	}
	s := &Session{board: board, spawner: spawner}
	s.spawnInitial()
	return s, nil
}

// NewSession resumes a game from an existing board and score.
func NewSession(board *Board, score int, spawner Spawner) *Session {
	return &Session{board: board.Clone(), spawner: spawner, score: score}
}

func (s *Session) spawnInitial() {
	s.spawner.Spawn(s.board)
	s.spawner.Spawn(s.board)
}

// Move applies d and spawns a tile if the board changed.
func (s *Session) Move(d Direction) MoveResult {
	result := Apply(s.board, d)
	if result.Changed {
		s.score += result.ScoreDelta
		s.moves++
		s.spawner.Spawn(s.board)
	}
	return result
}

// Board returns a copy of the current board.
func (s *Session) Board() *Board {
	return s.board.Clone()
}

func (s *Session) Score() int {
	return s.score
}

// Moves counts the moves that changed the board.
func (s *Session) Moves() int {
	return s.moves
}

func (s *Session) IsGameOver() bool {
	return !CanMove(s.board)
}

// Reset clears the board and score and spawns two new tiles.
func (s *Session) Reset() {
	for i := range s.board.cells {
		s.board.cells[i] = 0
	}
	s.score = 0
	s.moves = 0
	s.spawnInitial()
}
