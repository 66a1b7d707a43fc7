package engine

// EventKind identifies an event type for subscription.
type EventKind int

const (
	EventQueueUpdated EventKind = iota
	EventHoldUpdated
	EventMatrixUpdated
	EventLevelUpdated
	EventTetrominoUpdated
	EventSoftDrop
	EventHardDrop
	EventLinesClearing
	EventLinesCleared
	EventTSpin
	EventToppedOut
	EventPointsChanged
	EventLinesChanged
	EventScoreLevelChanged
	EventLeaderboardUpdated
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventQueueUpdated:
		return "QueueUpdated"
	case EventHoldUpdated:
		return "HoldUpdated"
	case EventMatrixUpdated:
		return "MatrixUpdated"
	case EventLevelUpdated:
		return "LevelUpdated"
	case EventTetrominoUpdated:
		return "TetrominoUpdated"
	case EventSoftDrop:
		return "SoftDrop"
	case EventHardDrop:
		return "HardDrop"
	case EventLinesClearing:
		return "LinesClearing"
	case EventLinesCleared:
		return "LinesCleared"
	case EventTSpin:
		return "TSpin"
	case EventToppedOut:
		return "ToppedOut"
	case EventPointsChanged:
		return "PointsChanged"
	case EventLinesChanged:
		return "LinesChanged"
	case EventScoreLevelChanged:
		return "ScoreLevelChanged"
	case EventLeaderboardUpdated:
		return "LeaderboardUpdated"
	default:
		return "Unknown"
	}
}

// Event is implemented by every event emitted by the engine.
type Event interface {
	Kind() EventKind
}

// QueueUpdated is emitted when the preview queue changes.
type QueueUpdated struct {
	Playfield *Playfield
	Queue     []Shape
}

func (QueueUpdated) Kind() EventKind { return EventQueueUpdated }

// HoldUpdated is emitted when the hold slot changes.
type HoldUpdated struct {
	Playfield *Playfield
	Shape     Shape
}

func (HoldUpdated) Kind() EventKind { return EventHoldUpdated }

// MatrixUpdated is emitted after the locked grid changes.
type MatrixUpdated struct {
	Playfield *Playfield
}

func (MatrixUpdated) Kind() EventKind { return EventMatrixUpdated }

// LevelUpdated is emitted when the playfield's level changes.
type LevelUpdated struct {
	Playfield *Playfield
	Level     int
}

func (LevelUpdated) Kind() EventKind { return EventLevelUpdated }

// TetrominoUpdated is emitted after the active piece spawns, moves or rotates.
type TetrominoUpdated struct {
	Playfield *Playfield
	WillLock  bool // piece is resting on an obstruction
}

func (TetrominoUpdated) Kind() EventKind { return EventTetrominoUpdated }

// SoftDropped is emitted for each successful soft drop.
type SoftDropped struct {
	Playfield *Playfield
}

func (SoftDropped) Kind() EventKind { return EventSoftDrop }

// HardDropped is emitted for each cell a hard drop advances.
type HardDropped struct {
	Playfield *Playfield
}

func (HardDropped) Kind() EventKind { return EventHardDrop }

// LinesClearing is emitted before full rows are removed so a renderer can
// animate them.
type LinesClearing struct {
	Playfield *Playfield
	Rows      []int
	TSpin     TSpin
}

func (LinesClearing) Kind() EventKind { return EventLinesClearing }

// LinesCleared is emitted after full rows are removed.
type LinesCleared struct {
	Playfield *Playfield
	Count     int
	TSpin     TSpin
}

func (LinesCleared) Kind() EventKind { return EventLinesCleared }

// TSpinPerformed is emitted when a piece locks with T-spin credit.
type TSpinPerformed struct {
	Playfield    *Playfield
	TSpin        TSpin
	LinesCleared int
}

func (TSpinPerformed) Kind() EventKind { return EventTSpin }

// ToppedOut is emitted once when the game ends.
type ToppedOut struct {
	Playfield *Playfield
}

func (ToppedOut) Kind() EventKind { return EventToppedOut }

// PointsChanged is emitted by Score.
type PointsChanged struct {
	Score  *Score
	Points int
}

func (PointsChanged) Kind() EventKind { return EventPointsChanged }

// LinesChanged is emitted by Score.
type LinesChanged struct {
	Score *Score
	Lines int
}

func (LinesChanged) Kind() EventKind { return EventLinesChanged }

// ScoreLevelChanged is emitted by Score.
type ScoreLevelChanged struct {
	Score *Score
	Level int
}

func (ScoreLevelChanged) Kind() EventKind { return EventScoreLevelChanged }

// LeaderboardUpdated is emitted after a successful submission or load.
type LeaderboardUpdated struct {
	Leaderboard *Leaderboard
}

func (LeaderboardUpdated) Kind() EventKind { return EventLeaderboardUpdated }

// Listener receives events synchronously at emission time.
type Listener func(Event)

// Subscriber is anything listeners can be attached to.
type Subscriber interface {
	On(kind EventKind, fn Listener)
}

// Emitter keeps ordered listener lists per event kind.
// The zero value is ready to use.
type Emitter struct {
	listeners map[EventKind][]Listener
}

// On appends fn to the listeners for kind.
func (e *Emitter) On(kind EventKind, fn Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[EventKind][]Listener)
	}
	e.listeners[kind] = append(e.listeners[kind], fn)
}

// Off removes every listener for kind.
func (e *Emitter) Off(kind EventKind) {
	delete(e.listeners, kind)
}

// Emit calls each listener for the event's kind in subscription order.
func (e *Emitter) Emit(ev Event) {
	for _, fn := range e.listeners[ev.Kind()] {
		fn(ev)
	}
}
