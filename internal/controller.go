package internal

// Controller is one unit of page logic. Invoke runs once per request and
// returns the Response to merge into the page.
type Controller interface {
	Invoke(c Context) (Response, error)
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(c Context) (Response, error)

func (f ControllerFunc) Invoke(c Context) (Response, error) {
	return f(c)
}

// ControllerConstructor builds a fresh controller for one request scope.
// Controllers implementing io.Closer are closed when the scope ends.
type ControllerConstructor func() (Controller, error)

// Func wraps a stateless controller function as a constructor.
func Func(fn func(c Context) (Response, error)) ControllerConstructor {
	ctrl := ControllerFunc(fn)
	return func() (Controller, error) { return ctrl, nil }
}

// ControllerDescriptor is the registration record for a controller.
// An empty Action marks a default controller that runs on every request.
// An empty Mode means the controller is not mode gated.
type ControllerDescriptor struct {
	New     ControllerConstructor
	Name    string
	Action  string
	Mode    string
	ID      int
	Default bool
}

// ControllerOption configures a descriptor at registration.
type ControllerOption func(*ControllerDescriptor)

// Action keys the controller to a route action.
func Action(action string) ControllerOption {
	return func(d *ControllerDescriptor) { d.Action = action }
}

// Mode restricts an action controller to one route mode.
func Mode(mode string) ControllerOption {
	return func(d *ControllerDescriptor) { d.Mode = mode }
}

// Name sets the name used in logs, metrics and errors.
func Name(name string) ControllerOption {
	return func(d *ControllerDescriptor) { d.Name = name }
}

// NewDescriptor builds a descriptor from a constructor and options.
func NewDescriptor(ctor ControllerConstructor, opts ...ControllerOption) ControllerDescriptor {
	d := ControllerDescriptor{New: ctor}
	for _, opt := range opts {
		opt(&d)
	}
	d.Default = d.Action == ""
	return d
}
