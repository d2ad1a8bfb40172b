package project

// Plugin is a declared build plugin with optional configuration and
// goal-bound executions.
type Plugin struct {
	Group         string            `yaml:"group"`
	Name          string            `yaml:"name"`
	Configuration map[string]string `yaml:"configuration,omitempty"`
	Executions    []Execution       `yaml:"executions,omitempty"`
}

// Execution binds goals of a plugin to an execution-level configuration.
type Execution struct {
	ID            string            `yaml:"id,omitempty"`
	Goals         []string          `yaml:"goals"`
	Configuration map[string]string `yaml:"configuration,omitempty"`
}

// HasGoal returns true if the execution declares the given goal.
func (e Execution) HasGoal(goal string) bool {
	for _, g := range e.Goals {
		if g == goal {
			return true
		}
	}
	return false
}

// Config returns the named configuration value, or "" when unset.
func (p Plugin) Config(key string) string {
	return p.Configuration[key]
}

// Config returns the named execution configuration value, or "" when unset.
func (e Execution) Config(key string) string {
	return e.Configuration[key]
}
