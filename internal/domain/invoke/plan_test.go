package invoke

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlan_ArgsFollowSectionOrder(t *testing.T) {
	t.Parallel()

	plan := NewPlan()
	// Deliberately inserted out of order.
	plan.Add(SectionSources, "@/tmp/sources")
	plan.Add(SectionProcessorSelector, "-processor", "a.B")
	plan.Add(SectionExecutable, "javac")
	plan.Add(SectionProcMode, "-proc:only")
	plan.Add(SectionClasspath, "@/tmp/classpath")

	assert.Equal(t, []string{
		"javac",
		"@/tmp/classpath",
		"-processor", "a.B",
		"-proc:only",
		"@/tmp/sources",
	}, plan.Args())
}

func TestPlan_AddAppendsWithinSection(t *testing.T) {
	t.Parallel()

	plan := NewPlan()
	plan.Add(SectionExtraArgs, "-Afirst")
	plan.Add(SectionExtraArgs, "-Asecond", "-Athird")

	assert.Equal(t, []string{"-Afirst", "-Asecond", "-Athird"}, plan.Args())
}

func TestPlan_String(t *testing.T) {
	t.Parallel()

	assert.Empty(t, NewPlan().String())

	plan := NewPlan()
	plan.Add(SectionExecutable, "javac")
	plan.Add(SectionProcMode, "-proc:only")
	assert.Equal(t, "javac \\\n    -proc:only", plan.String())
}
