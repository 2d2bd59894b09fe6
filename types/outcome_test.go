package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOutcome(t *testing.T) {
	tests := []struct {
		name     string
		phase    Phase
		raw      RawOutcome
		expected Outcome
	}{
		{"passed call", PhaseCall, RawPassed, OutcomePassed},
		{"failed call", PhaseCall, RawFailed, OutcomeFailed},
		{"skipped call", PhaseCall, RawSkipped, OutcomeSkipped},
		{"failed setup is an error", PhaseSetup, RawFailed, OutcomeError},
		{"failed teardown is an error", PhaseTeardown, RawFailed, OutcomeError},
		{"skipped setup", PhaseSetup, RawSkipped, OutcomeSkipped},
		{"passed setup", PhaseSetup, RawPassed, OutcomePassed},
		{"unknown raw outcome", PhaseCall, RawOutcome("exploded"), OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyOutcome(tt.phase, tt.raw))
		})
	}
}

func TestNewResultStripsEscapeSequences(t *testing.T) {
	result := NewResult(PhaseReport{
		Phase:   PhaseCall,
		Outcome: RawPassed,
		Stdout:  "\x1b[31mred\x1b[0m output",
		Stderr:  "\x1b[1mbold\x1b[0m",
		Logs:    "plain",
	})

	require.NotNil(t, result)
	assert.Equal(t, OutcomePassed, result.Outcome)
	assert.Equal(t, "red output", result.Stdout)
	assert.Equal(t, "bold", result.Stderr)
	assert.Equal(t, "plain", result.Logs)
}

func TestNewResultSkipDetail(t *testing.T) {
	result := NewResult(PhaseReport{
		Phase:    PhaseSetup,
		Outcome:  RawSkipped,
		LongText: "Skipped: not supported here",
		Detail:   SkipDetail{File: "test_feature.py", Line: 12, Reason: "not supported here"},
	})

	assert.Equal(t, OutcomeSkipped, result.Outcome)
	assert.Equal(t, "not supported here", result.Summary)
	assert.Equal(t, "test_feature.py:12: not supported here", result.Message)
}

func TestNewResultCrashDetail(t *testing.T) {
	t.Run("failure in call phase", func(t *testing.T) {
		result := NewResult(PhaseReport{
			Phase:    PhaseCall,
			Outcome:  RawFailed,
			LongText: "Traceback (most recent call last):\n  assert False",
			Detail:   CrashDetail{Message: "assert False"},
		})

		assert.Equal(t, OutcomeFailed, result.Outcome)
		assert.Equal(t, "assert False", result.Summary)
		assert.Equal(t, "Traceback (most recent call last):\n  assert False", result.Message)
	})

	t.Run("failure in setup phase names the phase", func(t *testing.T) {
		result := NewResult(PhaseReport{
			Phase:    PhaseSetup,
			Outcome:  RawFailed,
			LongText: "fixture blew up",
			Detail:   CrashDetail{Message: "fixture blew up"},
		})

		assert.Equal(t, OutcomeError, result.Outcome)
		assert.Equal(t, `failed on setup with "fixture blew up"`, result.Summary)
	})
}

func TestNewResultWithoutDetail(t *testing.T) {
	t.Run("plain long text", func(t *testing.T) {
		result := NewResult(PhaseReport{
			Phase:    PhaseCall,
			Outcome:  RawFailed,
			LongText: "something went wrong",
		})

		assert.Equal(t, "something went wrong", result.Summary)
		assert.Equal(t, "something went wrong", result.Message)
	})

	t.Run("passed has no summary", func(t *testing.T) {
		result := NewResult(PhaseReport{
			Phase:    PhaseCall,
			Outcome:  RawPassed,
			Duration: 1.5,
		})

		assert.Empty(t, result.Summary)
		assert.Empty(t, result.Message)
		assert.Equal(t, 1.5, result.Duration)
	})
}
