package game

import (
	"fmt"
	"strings"
	"tiles/utils"
)

// Direction is a sliding direction. The enumeration order is also the order
// in which searchers try moves, so it doubles as the tie-breaking order.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NumDirections is the number of legal directions (and the width of a Q-value vector).
const NumDirections = 4

var Directions = []Direction{Up, Down, Left, Right}

var directionNames = []string{"Up", "Down", "Left", "Right"}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// ParseDirection accepts a direction name (case-insensitive) or its first letter.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	for i, name := range directionNames {
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:1]) {
			return Directions[i], nil
		}
	}
	if i := utils.FindIndex([]string{"k", "j", "h", "l"}, strings.ToLower(s)); i >= 0 {
		return Directions[i], nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}
