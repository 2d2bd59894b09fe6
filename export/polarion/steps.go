package polarion

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/testout/testout/docmeta"
	"github.com/testout/testout/types"
)

// StepPair is one numbered step matched with its expected result. One side
// may be empty when only steps or only results were provided.
type StepPair struct {
	Step   string
	Result string
}

// stepMarker matches the start of a numbered block line.
var stepMarker = regexp.MustCompile(`^(\d+)\.(.*)$`)

type numberedBlock struct {
	index int
	text  string
}

// parseNumberedBlocks splits a field value into numbered blocks. A block
// starts at a line matching `N.` and runs until the next such line; blank
// lines do not terminate a block. Each block is dedented and trimmed.
func parseNumberedBlocks(value string) []numberedBlock {
	var blocks []numberedBlock

	lines := strings.Split(value, "\n")
	for i := 0; i < len(lines); i++ {
		m := stepMarker.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		index, err := strconv.Atoi(strings.TrimSpace(m[1]))
		if err != nil {
			continue
		}

		text := []string{m[2]}
		for i+1 < len(lines) && !stepMarker.MatchString(lines[i+1]) {
			text = append(text, lines[i+1])
			i++
		}

		blocks = append(blocks, numberedBlock{
			index: index,
			text:  docmeta.Normalize(strings.Join(text, "\n")),
		})
	}

	return blocks
}

// PairSteps parses the resolved steps and expected results values and
// pairs them positionally. Pairing is strict: when both sides are present
// their lengths must match and the parsed indices must agree position by
// position. No sorting or deduplication happens. id names the item in
// errors.
func PairSteps(id, steps, results string) ([]StepPair, error) {
	stepBlocks := parseNumberedBlocks(steps)
	resultBlocks := parseNumberedBlocks(results)

	switch {
	case len(stepBlocks) == 0 && len(resultBlocks) == 0:
		return nil, nil

	case len(resultBlocks) == 0:
		pairs := make([]StepPair, 0, len(stepBlocks))
		for _, block := range stepBlocks {
			pairs = append(pairs, StepPair{Step: block.text})
		}
		return pairs, nil

	case len(stepBlocks) == 0:
		pairs := make([]StepPair, 0, len(resultBlocks))
		for _, block := range resultBlocks {
			pairs = append(pairs, StepPair{Result: block.text})
		}
		return pairs, nil
	}

	if len(stepBlocks) != len(resultBlocks) {
		return nil, types.NewValidationError("number of steps and results do not match in %s", id)
	}

	pairs := make([]StepPair, 0, len(stepBlocks))
	for i, step := range stepBlocks {
		result := resultBlocks[i]
		if step.index != result.index {
			return nil, types.NewValidationError(
				"step index does not match expected result in %s (%d != %d)", id, step.index, result.index)
		}
		pairs = append(pairs, StepPair{Step: step.text, Result: result.text})
	}

	return pairs, nil
}
