// Package compat holds the pure decision tables mapping source, runtime and
// checker versions to the support artifacts and flags an invocation needs.
// Nothing in this package performs I/O.
package compat

import "github.com/checkward/checkward/internal/domain/version"

// Decision is the compatibility branch for one invocation.
type Decision struct {
	NeedsAlternateFrontend bool
	NeedsAnnotatedStdlib   bool
	NeedsModuleVisibility  bool
}

// Decide derives the compatibility branch from the resolved version pair and
// the parsed checker version. checkerOK reports whether the checker version
// parsed; the two overlay rules deliberately fall back in opposite
// directions when it did not (see each rule).
func Decide(pair version.Pair, checker version.Checker, checkerOK bool) Decision {
	return Decision{
		NeedsAlternateFrontend: needsAlternateFrontend(pair, checker, checkerOK),
		NeedsAnnotatedStdlib:   needsAnnotatedStdlib(pair, checker, checkerOK),
		NeedsModuleVisibility:  pair.Runtime >= 9,
	}
}

// needsAlternateFrontend reports whether the drop-in compiler frontend must
// be prepended to the bootstrap path: only on a runtime-8/source-8 build with
// a checker at or above 2.11. An unparseable checker version defaults to
// required; skipping a needed override breaks the build in far more
// confusing ways than prepending an unneeded one.
func needsAlternateFrontend(pair version.Pair, checker version.Checker, checkerOK bool) bool {
	if pair.Runtime != 8 || pair.Source != 8 {
		return false
	}
	if !checkerOK {
		return true
	}
	return checker.Major >= 3 || (checker.Major == 2 && checker.Minor >= 11)
}

// needsAnnotatedStdlib reports whether the annotated JDK overlay must be
// prepended: only on a runtime-8/source-8 build with a checker at or below
// 3.3. An unparseable checker version defaults to not required; the overlay
// only exists for old checkers and an unknown version is assumed current.
// This asymmetry with the frontend rule is intentional.
func needsAnnotatedStdlib(pair version.Pair, checker version.Checker, checkerOK bool) bool {
	if pair.Runtime != 8 || pair.Source != 8 {
		return false
	}
	if !checkerOK {
		return false
	}
	return checker.Major < 3 || (checker.Major == 3 && checker.Minor <= 3)
}

// moduleVisibilityArgs are the startup flags exposing the compiler frontend's
// internal packages to the checker on runtimes >= 9. The frontend parses
// them before anything processor-related, so they sit in their own early
// plan section.
var moduleVisibilityArgs = []string{
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.api=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.code=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.file=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.main=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.model=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.parser=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.processing=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.tree=ALL-UNNAMED",
	"-J--add-exports=jdk.compiler/com.sun.tools.javac.util=ALL-UNNAMED",
	"-J--add-opens=jdk.compiler/com.sun.tools.javac.comp=ALL-UNNAMED",
}

// ModuleVisibilityArgs returns a copy of the module export and open flags.
func ModuleVisibilityArgs() []string {
	out := make([]string, len(moduleVisibilityArgs))
	copy(out, moduleVisibilityArgs)
	return out
}
