package ecs

// System is a unit of per-frame behavior. Systems are plain structs: any
// Query or Singleton field is wired to the storage when the system is
// registered with a Scheduler, and every other field keeps its value
// between frames.
type System interface {
	Execute(frame *UpdateFrame)
}
