package engine

// System represents one step of per-frame behavior. Implementations can declare
// Resource fields, which the Scheduler binds on registration, as well as custom
// state fields that persist between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
