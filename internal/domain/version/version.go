// Package version normalizes Java and Checker Framework version strings and
// detects the source and runtime versions governing an invocation.
package version

import (
	"strconv"
	"strings"
)

// Unknown is the sentinel for a version that could not be determined.
// Callers must treat it as "requirement cannot be verified", never as zero.
const Unknown = -1

// Major extracts the major Java version from a raw version string.
//
//	"1.8"     -> 8
//	"8"       -> 8  (bare legacy form, normalized to "1.8" first)
//	"17.0.1"  -> 17
//	"11-ea"   -> 11
//	"9+10"    -> 9
//
// Returns Unknown for empty or unparseable input.
func Major(raw string) int {
	v := strings.TrimSpace(raw)
	if v == "" {
		return Unknown
	}

	// Bare legacy forms predate the version-scheme change at Java 9.
	switch v {
	case "5", "6", "7", "8":
		v = "1." + v
	}

	if strings.HasPrefix(v, "1.") {
		v = v[2:]
	}

	end := len(v)
	for i, r := range v {
		if r == '.' || r == '-' || r == '+' {
			end = i
			break
		}
	}

	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return Unknown
	}
	return n
}

// Checker is a parsed Checker Framework version.
type Checker struct {
	Major int
	Minor int
}

// ParseChecker parses "X.Y" or "X.Y.Z..." into major and minor components.
// Single-component or non-numeric strings are unparseable (ok=false).
func ParseChecker(raw string) (Checker, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Checker{}, false
	}
	parts := strings.Split(raw, ".")
	if len(parts) < 2 {
		return Checker{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Checker{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Checker{}, false
	}
	return Checker{Major: major, Minor: minor}, true
}

// Pair carries the two versions every compatibility decision depends on.
// Both are resolved exactly once, before any decision, and never recomputed.
type Pair struct {
	Source  int
	Runtime int
}
