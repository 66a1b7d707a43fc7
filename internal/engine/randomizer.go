package engine

// ShapeProvider supplies the sequence of shapes a playfield spawns.
type ShapeProvider interface {
	Next() Shape
	Reset()
}

// Source is the random source used by Randomizer. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Randomizer is a 7-bag shape provider: every run of seven draws since the
// bag was last empty contains each shape exactly once.
type Randomizer struct {
	src Source
	bag []Shape
}

// NewRandomizer creates a bag randomizer that draws from src.
func NewRandomizer(src Source) *Randomizer {
	return &Randomizer{
		src: src,
		bag: make([]Shape, 0, len(AllShapes)),
	}
}

// Next removes and returns a uniformly chosen shape from the bag,
// refilling it first when empty.
func (r *Randomizer) Next() Shape {
	if len(r.bag) == 0 {
		r.bag = append(r.bag, AllShapes...)
	}
	i := r.src.Intn(len(r.bag))
	shape := r.bag[i]
	r.bag = append(r.bag[:i], r.bag[i+1:]...)
	return shape
}

// Reset empties the bag so the next draw starts a fresh shuffle.
func (r *Randomizer) Reset() {
	r.bag = r.bag[:0]
}

// Remaining returns how many shapes are left in the current bag.
func (r *Randomizer) Remaining() int {
	return len(r.bag)
}
