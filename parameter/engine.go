package parameter

import "time"

// Game Loop & Engine Timing
const (
	// PhysicsStepInterval is the fixed simulation step (60 Hz)
	PhysicsStepInterval = time.Second / 60

	// FrameUpdateInterval is the rendering frame interval (~30 FPS, terminal bound)
	FrameUpdateInterval = 33 * time.Millisecond

	// MaxStepsPerTick caps catch-up steps after a stall so the loop never spirals
	MaxStepsPerTick = 5

	// InputChannelSize is the buffer between the terminal poller goroutine and the loop
	InputChannelSize = 256
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)
