package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW    int   // Screen width in characters
	ScreenH    int   // Screen height in characters
	TickRate   int   // Simulation ticks per second (default 60)
	Seed       int64 // RNG seed for deterministic gameplay
	StartLevel int   // Level a new game starts at (0 means 1)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   60,
		Seed:       0, // 0 means use current time in platform layer
		StartLevel: 1,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int           // Current score
	Lines    int           // Lines cleared
	Level    int           // Current level
	GameOver bool          // Whether the game has ended
	Cleared  bool          // Whether the game ended by reaching its goal
	Paused   bool          // Whether the game is paused
	Elapsed  time.Duration // Play time, excluding pauses
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
