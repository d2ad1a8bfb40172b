package version

import (
	"context"
	"fmt"
	"strings"

	"github.com/checkward/checkward/internal/domain/project"
	"github.com/checkward/checkward/internal/ports"
)

// Build properties consulted for the configured source level.
const (
	propCompilerSource = "maven.compiler.source"
	propCompilerTarget = "maven.compiler.target"
)

// minSupported is the hard floor for both source and runtime versions.
const minSupported = 8

// Detector resolves the configured source version and the runtime version
// that will execute the compiler.
type Detector struct {
	runner ports.ProcessRunner
	log    ports.Logger
}

// NewDetector creates a Detector. The runner is used only for the
// probe fallback when no toolchain version is declared.
func NewDetector(runner ports.ProcessRunner, log ports.Logger) *Detector {
	return &Detector{runner: runner, log: log}
}

// SourceVersion reads the configured source level, falling back from the
// compiler-source property to the compiler-target property.
func (d *Detector) SourceVersion(p *project.Context) int {
	if raw, ok := p.Property(propCompilerSource); ok {
		return Major(raw)
	}
	if raw, ok := p.Property(propCompilerTarget); ok {
		return Major(raw)
	}
	return Unknown
}

// RuntimeVersion resolves the version of the JDK that will run the compiler:
// the declared toolchain version when that capability is present, otherwise
// the version reported by probing the executable itself.
func (d *Detector) RuntimeVersion(ctx context.Context, p *project.Context, executable string) int {
	if tc := p.Toolchain(); tc != nil {
		if raw, ok := tc.Version(); ok {
			return Major(raw)
		}
	}
	return d.probe(ctx, executable)
}

// Resolve determines both versions once and rejects the run when the
// supported floor cannot be confirmed for either of them.
func (d *Detector) Resolve(ctx context.Context, p *project.Context, executable string) (Pair, error) {
	pair := Pair{
		Source:  d.SourceVersion(p),
		Runtime: d.RuntimeVersion(ctx, p, executable),
	}

	if pair.Source < minSupported {
		return pair, fmt.Errorf("source version %s is below the supported minimum of %d", describe(pair.Source), minSupported)
	}
	if pair.Runtime < minSupported {
		return pair, fmt.Errorf("runtime version %s is below the supported minimum of %d", describe(pair.Runtime), minSupported)
	}

	d.log.Debug(ctx, "resolved versions",
		ports.F("source", pair.Source), ports.F("runtime", pair.Runtime))
	return pair, nil
}

func describe(v int) string {
	if v == Unknown {
		return "(undetermined)"
	}
	return fmt.Sprintf("%d", v)
}

// probe runs `<executable> -version` and extracts the first version-looking
// token. javac prints `javac 17.0.1`; java prints `openjdk version "17.0.1"`.
func (d *Detector) probe(ctx context.Context, executable string) int {
	if d.runner == nil || executable == "" {
		return Unknown
	}

	var tokens []string
	result, err := d.runner.Run(ctx, []string{executable, "-version"}, func(line string) {
		tokens = append(tokens, strings.Fields(line)...)
	})
	if err != nil || !result.Success() {
		d.log.Debug(ctx, "runtime version probe failed", ports.F("executable", executable))
		return Unknown
	}

	for _, tok := range tokens {
		tok = strings.Trim(tok, `"`)
		if tok == "" || tok[0] < '0' || tok[0] > '9' {
			continue
		}
		if v := Major(tok); v != Unknown {
			return v
		}
	}
	return Unknown
}
