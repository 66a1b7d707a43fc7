package engine

// Point values. Per-T-spin tables are indexed by TSpin.
var (
	pointsSingle = [3]int{100, 200, 800}
	pointsDouble = [3]int{300, 400, 1200}
	pointsTriple = [3]int{500, 500, 1600}
	pointsTSpin  = [3]int{0, 100, 400}
)

const (
	pointsTetris   = 800
	pointsSoftDrop = 1
	pointsHardDrop = 2
)

// Stats is a snapshot of a finished or running game.
type Stats struct {
	Points int `json:"points"`
	Lines  int `json:"lines"`
	Level  int `json:"level"`
}

// Score accumulates points, lines and level from playfield events.
type Score struct {
	Emitter

	points        int
	lines         int
	level         int
	startLevel    int
	linesPerLevel int
	backToBack    bool
}

// NewScore returns a score at level 1.
func NewScore() *Score {
	s := &Score{linesPerLevel: DefaultLinesPerLevel}
	s.Reset(1)
	return s
}

// SetLinesPerLevel changes how many cleared lines advance one level.
// Non-positive values are ignored.
func (s *Score) SetLinesPerLevel(n int) {
	if n > 0 {
		s.linesPerLevel = n
	}
}

// Reset zeroes points and lines and starts at level.
func (s *Score) Reset(level int) {
	if level < 1 {
		level = 1
	}
	s.points = 0
	s.lines = 0
	s.level = level
	s.startLevel = level
	s.backToBack = false
	s.Emit(PointsChanged{Score: s, Points: s.points})
	s.Emit(ScoreLevelChanged{Score: s, Level: s.level})
	s.Emit(LinesChanged{Score: s, Lines: s.lines})
}

// Bind subscribes the score to a playfield's drop, T-spin and line events.
func (s *Score) Bind(src Subscriber) {
	src.On(EventLinesCleared, func(ev Event) {
		e := ev.(LinesCleared)
		s.ClearLines(e.Count, e.TSpin)
	})
	src.On(EventTSpin, func(ev Event) {
		if e := ev.(TSpinPerformed); e.LinesCleared == 0 {
			s.TSpin(e.TSpin)
		}
	})
	src.On(EventSoftDrop, func(Event) { s.SoftDrop() })
	src.On(EventHardDrop, func(Event) { s.HardDrop() })
}

// Points returns the current point total.
func (s *Score) Points() int { return s.points }

// Lines returns the cleared line total.
func (s *Score) Lines() int { return s.lines }

// Level returns the current level.
func (s *Score) Level() int { return s.level }

// BackToBack reports whether the next line clear earns the bonus.
func (s *Score) BackToBack() bool { return s.backToBack }

// Stats returns the current totals.
func (s *Score) Stats() Stats {
	return Stats{Points: s.points, Lines: s.lines, Level: s.level}
}

// SoftDrop awards the soft drop bonus.
func (s *Score) SoftDrop() {
	s.addPoints(pointsSoftDrop)
}

// HardDrop awards the hard drop bonus for one cell.
func (s *Score) HardDrop() {
	s.addPoints(pointsHardDrop)
}

// TSpin awards a T-spin that cleared no lines. A spin counts as a
// difficult action for back-to-back.
func (s *Score) TSpin(kind TSpin) {
	if kind == TSpinNone {
		return
	}
	s.addPoints(pointsTSpin[kind] * s.level)
	s.backToBack = true
}

// ClearLines awards a line clear of count rows and advances lines and level.
func (s *Score) ClearLines(count int, kind TSpin) {
	if count <= 0 {
		return
	}
	if kind < TSpinNone || kind > TSpinFull {
		kind = TSpinNone
	}

	var base int
	switch {
	case count >= 4:
		base = pointsTetris
	case count == 3:
		base = pointsTriple[kind]
	case count == 2:
		base = pointsDouble[kind]
	default:
		base = pointsSingle[kind]
	}

	points := base * s.level
	if s.backToBack {
		points = points * 3 / 2
	}
	s.addPoints(points)
	s.backToBack = count >= 4 || kind != TSpinNone
	s.addLines(count)
}

func (s *Score) addPoints(n int) {
	s.points += n
	s.Emit(PointsChanged{Score: s, Points: s.points})
}

func (s *Score) addLines(n int) {
	s.lines += n
	s.Emit(LinesChanged{Score: s, Lines: s.lines})

	level := max(s.startLevel, s.lines/s.linesPerLevel+1)
	if level != s.level {
		s.level = level
		s.Emit(ScoreLevelChanged{Score: s, Level: s.level})
	}
}
