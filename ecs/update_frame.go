package ecs

// UpdateFrame is handed to every system during one Scheduler pass.
type UpdateFrame struct {
	DeltaTime float64
	// Tick counts completed scheduler passes, starting at 0.
	Tick     uint64
	Commands *Commands
	Storage  *Storage
}
