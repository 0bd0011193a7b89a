// meta/meta.go
package meta

import "time"

// MAP_SIZE defines the side length of the square board.
const MAP_SIZE = 8

// TURNS defines the number of moves each chicken gets per match.
const TURNS = 40

// TURDS defines the number of turds each chicken may drop per match.
const TURDS = 5

// TRAPDOORS defines the number of hidden trapdoors, one per coloring.
const TRAPDOORS = 2

// BLOCKED_BONUS defines the eggs awarded to the opponent of a chicken with no legal move.
const BLOCKED_BONUS = 5

// TIME_BANK defines each player's thinking time for the whole match.
const TIME_BANK = 360 * time.Second

// MAX_DEPTH defines the deepest iterative deepening iteration.
const MAX_DEPTH = 8
