package gl

// Subsystem is an external collaborator (matrix stacks, lighting, texture
// units, ...) attached to the context lifecycle. Init runs during New after
// the queue exists and before GL defaults are applied. Subsystems holding
// resources implement io.Closer; Close is called from Context.Close.
type Subsystem interface {
	Init(c *Context) error
}

// SubsystemFunc adapts a function to Subsystem.
type SubsystemFunc func(c *Context) error

func (f SubsystemFunc) Init(c *Context) error { return f(c) }

// Subsystems lists the collaborators in initialization order. Nil entries
// are skipped.
type Subsystems struct {
	Matrix     Subsystem
	Lighting   Subsystem
	Texture    Subsystem
	Rendermode Subsystem
	Array      Subsystem
	Primitive  Subsystem
	Pixel      Subsystem
	List       Subsystem
	Buffer     Subsystem
}

type namedSubsystem struct {
	name string
	hook Subsystem
}

func (s Subsystems) initOrder() []namedSubsystem {
	return compact([]namedSubsystem{
		{"matrix", s.Matrix},
		{"lighting", s.Lighting},
		{"texture", s.Texture},
		{"rendermode", s.Rendermode},
		{"array", s.Array},
		{"primitive", s.Primitive},
		{"pixel", s.Pixel},
		{"list", s.List},
		{"buffer", s.Buffer},
	})
}

// closeOrder lists the subsystems that hold resources, releasing the ones
// built on top of others first.
func (s Subsystems) closeOrder() []namedSubsystem {
	return compact([]namedSubsystem{
		{"buffer", s.Buffer},
		{"list", s.List},
		{"primitive", s.Primitive},
		{"texture", s.Texture},
	})
}

func compact(subs []namedSubsystem) []namedSubsystem {
	out := subs[:0]
	for _, sub := range subs {
		if sub.hook != nil {
			out = append(out, sub)
		}
	}
	return out
}
