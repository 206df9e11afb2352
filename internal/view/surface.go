package view

import "html/template"

// Action is a user intent bound to a surface at render time. The value
// carries input for parameterized intents (form field text, an item ID);
// button-like intents ignore it.
type Action func(value string)

// Surface is a rendered view: markup plus the named intents a user can
// invoke on it, and the validation affordance for form steps.
type Surface struct {
	Name    string
	HTML    template.HTML
	Valid   bool
	Message string

	actions map[string]Action
}

func newSurface(name string) *Surface {
	return &Surface{Name: name, Valid: true, actions: make(map[string]Action)}
}

func (s *Surface) bind(name string, fn Action) {
	s.actions[name] = fn
}

// Act invokes the named intent, reporting whether the surface knows it.
func (s *Surface) Act(name, value string) bool {
	fn, ok := s.actions[name]
	if !ok {
		return false
	}
	fn(value)
	return true
}

// SetValidation updates only the enable/disable affordance and its message,
// leaving the rendered markup untouched.
func (s *Surface) SetValidation(valid bool, message string) {
	s.Valid = valid
	s.Message = message
}
