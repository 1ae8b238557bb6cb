package ecs

// System is one step of a tick. Exported Query and Singleton fields are bound
// to the scheduler's storage on Register; any other fields persist between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// UpdateFrame is what a system sees during one tick.
type UpdateFrame struct {
	// DeltaTime is the elapsed time since the previous tick, in seconds.
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
