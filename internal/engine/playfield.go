package engine

import (
	"math/rand"
	"time"
)

// Command is a zero-argument input issued to a Playfield.
type Command int

const (
	CommandNone Command = iota
	CommandMoveLeft
	CommandMoveRight
	CommandSoftDrop
	CommandHardDrop
	CommandRotateLeft
	CommandRotateRight
	CommandHold
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandMoveLeft:
		return "MoveLeft"
	case CommandMoveRight:
		return "MoveRight"
	case CommandSoftDrop:
		return "SoftDrop"
	case CommandHardDrop:
		return "HardDrop"
	case CommandRotateLeft:
		return "RotateLeft"
	case CommandRotateRight:
		return "RotateRight"
	case CommandHold:
		return "Hold"
	default:
		return "None"
	}
}

// Playfield owns the grid, the active piece, the hold slot and the preview
// queue, and advances them under gravity and lock delay. It is not safe for
// concurrent use.
type Playfield struct {
	Emitter

	cols               int
	rows               int
	firstVisibleRow    int
	queueSize          int
	lockDelay          time.Duration
	maxLockDelayResets int
	linesPerLevel      int
	startLevel         int
	speeds             speedTable

	provider  ShapeProvider
	matrix    Matrix
	tetromino *Tetromino
	held      Shape
	canHold   bool
	queue     []Shape

	level     int
	lines     int
	toppedOut bool

	nextStep        time.Duration
	lockDelayResets int
	willLock        bool
	tSpin           TSpin
}

// Option configures a Playfield at construction.
type Option func(*Playfield)

// WithShapeProvider replaces the default bag randomizer.
func WithShapeProvider(provider ShapeProvider) Option {
	return func(p *Playfield) {
		p.provider = provider
	}
}

// WithSeed seeds the default bag randomizer.
func WithSeed(seed int64) Option {
	return func(p *Playfield) {
		p.provider = NewRandomizer(rand.New(rand.NewSource(seed)))
	}
}

// NewPlayfield validates cfg and returns a playfield with its first piece
// spawned at cfg.StartLevel.
func NewPlayfield(cfg Config, opts ...Option) (*Playfield, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	p := &Playfield{
		cols:               cfg.Cols,
		rows:               cfg.Rows,
		firstVisibleRow:    cfg.FirstVisibleRow,
		queueSize:          cfg.QueueSize,
		lockDelay:          cfg.LockDelay,
		maxLockDelayResets: cfg.MaxLockDelayResets,
		linesPerLevel:      cfg.LinesPerLevel,
		startLevel:         cfg.StartLevel,
		speeds:             newSpeedTable(cfg.LevelSpeeds),
		matrix:             NewMatrix(cfg.Cols, cfg.Rows),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.provider == nil {
		p.provider = NewRandomizer(rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	p.Reset(cfg.StartLevel)
	return p, nil
}

// Cols returns the grid width.
func (p *Playfield) Cols() int { return p.cols }

// Rows returns the grid height including the hidden buffer.
func (p *Playfield) Rows() int { return p.rows }

// FirstVisibleRow returns the first row shown to the player.
func (p *Playfield) FirstVisibleRow() int { return p.firstVisibleRow }

// QueueSize returns the configured preview length.
func (p *Playfield) QueueSize() int { return p.queueSize }

// Tetromino returns the active piece. Callers must not mutate it.
func (p *Playfield) Tetromino() *Tetromino { return p.tetromino }

// HeldShape returns the shape in the hold slot, or ShapeNone.
func (p *Playfield) HeldShape() Shape { return p.held }

// CanHold reports whether hold is available for the current piece.
func (p *Playfield) CanHold() bool { return p.canHold && !p.toppedOut }

// Level returns the current level.
func (p *Playfield) Level() int { return p.level }

// Lines returns the lines cleared since the last reset.
func (p *Playfield) Lines() int { return p.lines }

// ToppedOut reports whether the game has ended.
func (p *Playfield) ToppedOut() bool { return p.toppedOut }

// WillLock reports whether the active piece is resting on an obstruction.
func (p *Playfield) WillLock() bool { return p.willLock }

// LastTSpin returns the T-spin credit carried by the active piece.
func (p *Playfield) LastTSpin() TSpin { return p.tSpin }

// NextStep returns the time left until the next automatic step.
func (p *Playfield) NextStep() time.Duration { return p.nextStep }

// Queue returns a copy of the preview queue, next piece first.
func (p *Playfield) Queue() []Shape {
	q := make([]Shape, len(p.queue))
	copy(q, p.queue)
	return q
}

// Matrix returns a copy of the grid, optionally with the active piece
// stamped in.
func (p *Playfield) Matrix(includePiece bool) Matrix {
	m := p.matrix.Clone()
	if includePiece && p.tetromino != nil {
		m.SetValues(p.tetromino.Positions(), p.tetromino.Shape, 0, 0)
	}
	return m
}

// Reset clears the grid, hold slot and queue and spawns a new piece at
// the given level.
func (p *Playfield) Reset(level int) {
	if level < 1 {
		level = 1
	}
	p.matrix.Clear(ShapeNone)
	p.startLevel = level
	p.level = level
	p.lines = 0
	p.toppedOut = false
	p.held = ShapeNone
	p.tSpin = TSpinNone

	p.provider.Reset()
	p.queue = p.queue[:0]
	p.fillQueue()

	p.Emit(MatrixUpdated{Playfield: p})
	p.Emit(HoldUpdated{Playfield: p, Shape: p.held})
	p.Emit(QueueUpdated{Playfield: p, Queue: p.Queue()})
	p.Emit(LevelUpdated{Playfield: p, Level: p.level})

	p.Spawn(ShapeNone)
}

func (p *Playfield) fillQueue() {
	for len(p.queue) < p.queueSize {
		p.queue = append(p.queue, p.provider.Next())
	}
}

// nextShape draws the head of the queue and replenishes it.
func (p *Playfield) nextShape() Shape {
	if p.queueSize == 0 {
		return p.provider.Next()
	}
	shape := p.queue[0]
	p.queue = append(p.queue[:0], p.queue[1:]...)
	p.fillQueue()
	p.Emit(QueueUpdated{Playfield: p, Queue: p.Queue()})
	return shape
}

// Spawn creates the next active piece. ShapeNone draws from the queue.
// The piece appears above the visible area and drops into view; if its
// spawn cells are blocked the game tops out.
func (p *Playfield) Spawn(shape Shape) {
	if !shape.Valid() {
		shape = p.nextShape()
	}

	t := NewTetromino(shape)
	t.MoveToSpawnPosition(p.cols/2, p.firstVisibleRow-1)
	p.tetromino = t

	if p.matrix.Obstructed(t.Positions(), 0, 0) {
		p.topOut()
		return
	}

	p.spawnDrop()
	p.nextStep = p.DropFrequency(p.level)
	p.lockDelayResets = 0
	p.tSpin = TSpinNone
	p.canHold = true
	// A piece spawning onto the stack gets the same lock delay as one that
	// landed.
	p.willLock = false
	p.updateLockDelay()
}

// spawnDrop lowers a fresh piece while any of its cells is hidden.
func (p *Playfield) spawnDrop() {
	for p.aboveVisible(p.tetromino.Positions(), false) && p.canMove(0, 1) {
		p.tetromino.Move(0, 1)
	}
}

// aboveVisible reports whether any (or, with all set, every) point lies
// above the first visible row.
func (p *Playfield) aboveVisible(points []Point, all bool) bool {
	for _, pt := range points {
		above := pt.Y < p.firstVisibleRow
		if all && !above {
			return false
		}
		if !all && above {
			return true
		}
	}
	return all
}

// Hold swaps the active piece into the hold slot. It is allowed once per
// spawned piece.
func (p *Playfield) Hold() bool {
	if p.toppedOut || !p.canHold {
		return false
	}

	current := p.tetromino.Shape
	held := p.held
	p.held = current
	p.Emit(HoldUpdated{Playfield: p, Shape: p.held})

	p.Spawn(held)
	p.canHold = false
	return true
}

func (p *Playfield) canMove(dx, dy int) bool {
	return !p.matrix.Obstructed(p.tetromino.PeekPositions(0, dx, dy), 0, 0)
}

// TryMove shifts the active piece when the destination is free. A
// successful move cancels any pending T-spin credit.
func (p *Playfield) TryMove(dx, dy int) bool {
	if p.toppedOut || !p.canMove(dx, dy) {
		return false
	}
	p.tetromino.Move(dx, dy)
	p.tSpin = TSpinNone
	p.updateLockDelay()
	return true
}

// MoveLeft shifts the piece one column left.
func (p *Playfield) MoveLeft() bool { return p.TryMove(-1, 0) }

// MoveRight shifts the piece one column right.
func (p *Playfield) MoveRight() bool { return p.TryMove(1, 0) }

// TryRotate rotates the active piece by delta degrees using SRS kicks.
// On success the T-spin state is recomputed from the kick used.
func (p *Playfield) TryRotate(delta int) bool {
	if p.toppedOut {
		return false
	}
	rotation, kick := GetRotation(delta, p.tetromino, p.matrix)
	if rotation == 0 {
		return false
	}
	p.tetromino.Rotate(rotation)
	p.tetromino.Move(kick.X, kick.Y)
	p.tSpin = GetTSpin(p.tetromino, p.matrix, kick)
	p.updateLockDelay()
	return true
}

// RotateLeft turns the piece counter-clockwise.
func (p *Playfield) RotateLeft() bool { return p.TryRotate(RotateLeft) }

// RotateRight turns the piece clockwise.
func (p *Playfield) RotateRight() bool { return p.TryRotate(RotateRight) }

// updateLockDelay re-evaluates whether the piece rests on something. While
// resting, each action re-arms the step timer to the lock delay until the
// per-piece reset budget runs out. Leaving the resting state restores the
// normal drop interval.
func (p *Playfield) updateLockDelay() {
	willLock := !p.canMove(0, 1)
	if willLock {
		if p.lockDelayResets < p.maxLockDelayResets {
			p.lockDelayResets++
			p.nextStep = p.lockDelay
		}
	} else if p.willLock {
		p.nextStep = p.DropFrequency(p.level)
	}
	p.willLock = willLock
	p.Emit(TetrominoUpdated{Playfield: p, WillLock: willLock})
}

// SoftDrop moves the piece down one row.
func (p *Playfield) SoftDrop() bool {
	if !p.TryMove(0, 1) {
		return false
	}
	p.Emit(SoftDropped{Playfield: p})
	return true
}

// HardDrop drops the piece to its landing row and locks it.
func (p *Playfield) HardDrop() {
	if p.toppedOut {
		return
	}
	for p.TryMove(0, 1) {
		p.Emit(HardDropped{Playfield: p})
	}
	p.Lock()
}

// Execute dispatches an inbound command.
func (p *Playfield) Execute(cmd Command) bool {
	switch cmd {
	case CommandMoveLeft:
		return p.MoveLeft()
	case CommandMoveRight:
		return p.MoveRight()
	case CommandSoftDrop:
		return p.SoftDrop()
	case CommandHardDrop:
		if p.toppedOut {
			return false
		}
		p.HardDrop()
		return true
	case CommandRotateLeft:
		return p.RotateLeft()
	case CommandRotateRight:
		return p.RotateRight()
	case CommandHold:
		return p.Hold()
	default:
		return false
	}
}

// Lock stamps the active piece into the grid, clears full rows and spawns
// the next piece. A piece locking entirely above the visible area tops out.
func (p *Playfield) Lock() {
	if p.toppedOut {
		return
	}

	points := p.tetromino.Positions()
	if p.aboveVisible(points, true) {
		p.topOut()
		return
	}

	p.matrix.SetValues(points, p.tetromino.Shape, 0, 0)
	tSpin := p.tSpin

	rows := p.matrix.FullRows()
	if tSpin != TSpinNone {
		p.Emit(TSpinPerformed{Playfield: p, TSpin: tSpin, LinesCleared: len(rows)})
	}
	if len(rows) > 0 {
		p.Emit(LinesClearing{Playfield: p, Rows: rows, TSpin: tSpin})
		p.matrix.RemoveRows(rows)
		p.Emit(LinesCleared{Playfield: p, Count: len(rows), TSpin: tSpin})
		p.addLines(len(rows))
	}
	p.Emit(MatrixUpdated{Playfield: p})

	p.Spawn(ShapeNone)
}

// addLines advances the level once enough lines have accumulated.
func (p *Playfield) addLines(count int) {
	p.lines += count
	level := p.startLevel
	if p.linesPerLevel > 0 {
		level = max(level, p.lines/p.linesPerLevel+1)
	}
	if level != p.level {
		p.level = level
		p.Emit(LevelUpdated{Playfield: p, Level: level})
	}
}

func (p *Playfield) topOut() {
	if p.toppedOut {
		return
	}
	p.toppedOut = true
	p.Emit(ToppedOut{Playfield: p})
}

// Step moves the piece down one row, locking it when it cannot move.
func (p *Playfield) Step() {
	if p.toppedOut {
		return
	}
	if !p.TryMove(0, 1) {
		p.Lock()
	}
}

// Update advances the gravity timer by elapsed and performs at most one
// automatic step.
func (p *Playfield) Update(elapsed time.Duration) {
	if p.toppedOut {
		return
	}
	p.nextStep -= elapsed
	if p.nextStep <= 0 {
		p.nextStep = p.DropFrequency(p.level)
		p.Step()
	}
}

// Ghost returns a copy of the active piece moved to its landing row.
func (p *Playfield) Ghost() *Tetromino {
	ghost := p.tetromino.Clone()
	for !p.matrix.Obstructed(ghost.PeekPositions(0, 0, 1), 0, 0) {
		ghost.Move(0, 1)
	}
	return ghost
}

// DropFrequency returns the step interval for level, taken from the
// largest configured threshold not above it.
func (p *Playfield) DropFrequency(level int) time.Duration {
	return p.speeds.lookup(level)
}
