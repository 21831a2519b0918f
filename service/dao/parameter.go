package dao

// Parameter narrows List results; the criteria package names the recognised ones.
type Parameter struct {
	Name  string
	Value interface{}
}

// NewParameter creates a parameter; with several values an entity matches any of them.
func NewParameter(name string, values ...string) *Parameter {
	if len(values) == 1 {
		return &Parameter{Name: name, Value: values[0]}
	}
	return &Parameter{Name: name, Value: values}
}

// Values returns the parameter value as a list; unsupported values yield nil.
func (p *Parameter) Values() []string {
	switch actual := p.Value.(type) {
	case string:
		return []string{actual}
	case []string:
		return actual
	}
	return nil
}
