// Package invoke plans and executes the checker compiler invocation: it
// orchestrates version detection, compatibility decisions, artifact
// resolution and Lombok substitution into one ordered argument list, runs
// it as a subprocess, and interprets the outcome.
package invoke

import "strings"

// Section identifies one fixed-purpose segment of the argument list. The
// compiler frontend rejects many valid-looking but misordered invocations,
// so the relative order of sections is enforced by this enumeration, not by
// call-site discipline: appending happens per section, assembly always
// walks sections in declaration order.
type Section int

const (
	// SectionExecutable is the compiler executable path.
	SectionExecutable Section = iota
	// SectionModuleVisibility holds the module export/open startup flags,
	// parsed by the frontend before anything processor-related.
	SectionModuleVisibility
	// SectionFrontendOverride prepends the alternate compiler frontend to
	// the runtime's bootstrap search path.
	SectionFrontendOverride
	// SectionClasspath is the classpath reference-file argument.
	SectionClasspath
	// SectionMainSelector selects the compiler entry point when the
	// executable is a bare JVM rather than javac.
	SectionMainSelector
	// SectionProcessorPath points the frontend at the checker jars.
	SectionProcessorPath
	// SectionProcessorSelector names the processors to run.
	SectionProcessorSelector
	// SectionProcMode restricts the run to annotation processing.
	SectionProcMode
	// SectionAnnotatedStdlib prepends the annotated JDK overlay.
	SectionAnnotatedStdlib
	// SectionExtraArgs carries user-supplied compiler arguments.
	SectionExtraArgs
	// SectionSources is the source-list reference-file argument.
	SectionSources

	sectionCount
)

// Plan is an ordered compiler invocation under construction. It is built
// fresh per run and discarded after execution.
type Plan struct {
	sections [sectionCount][]string
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{}
}

// Add appends arguments to a section. The section's position in the final
// argument list is fixed regardless of insertion order.
func (p *Plan) Add(s Section, args ...string) {
	p.sections[s] = append(p.sections[s], args...)
}

// Args assembles the full argument list in section order.
func (p *Plan) Args() []string {
	var out []string
	for _, section := range p.sections {
		out = append(out, section...)
	}
	return out
}

// String renders the invocation as a shell-pasteable multi-line command
// with line continuations, for diagnostic reproduction.
func (p *Plan) String() string {
	args := p.Args()
	if len(args) == 0 {
		return ""
	}
	return strings.Join(args, " \\\n    ")
}
