package game

// Result is the outcome of a game relative to the side to move.
type Result int

const (
	None       Result = iota // Game still in progress
	PlayerWins               // Mover won
	EnemyWins                // Opponent won
	Tie
)

func (r Result) String() string {
	switch r {
	case PlayerWins:
		return "player"
	case EnemyWins:
		return "enemy"
	case Tie:
		return "tie"
	default:
		return "none"
	}
}

// State is the forecastable view of a board that the searcher consumes.
// State should be immutable - Forecast and ReversePerspective always return a new value
// and never change the receiver. Player() is always the side whose moves LegalMoves()
// enumerates; Forecast never changes it, only ReversePerspective does.
type State interface {
	LegalMoves() []Move
	Forecast(Move) (State, bool)
	ReversePerspective() State
	IsTerminal() bool
	Winner() Result

	Size() int
	Player() Chicken
	Enemy() Chicken
	IsOccupied(Loc) bool      // Square holds an egg or a turd of either side
	InEnemyTurdZone(Loc) bool // Square is on or next to one of the opponent's turds
	FoundTrapdoors() []Loc
}

// Hazards is the read side of an agent's trapdoor memory.
type Hazards interface {
	Confirmed(Loc) bool
	Near(Loc) bool // Next to a square where a trapdoor was felt
	Suspicion(Loc) int
}

// Context carries the search-local information the evaluator may use besides the state.
type Context struct {
	Hazards Hazards    // nil when nothing has been sensed yet
	Visited VisitedSet // Squares the root player crossed along the explored line
	Revisit bool       // The root player's last move returned to a square already in Visited
	Origin  Loc        // Real location of the root player this turn
	Felt    bool       // A trapdoor was felt at Origin this turn
}

// Evaluate scores a state from the perspective of its mover, higher is better.
type Evaluate func(State, Context) float64
