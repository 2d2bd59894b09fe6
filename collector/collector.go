// Package collector holds the per-session registry of collected test items.
// It is populated from the host framework's collection and result hooks and
// is the single source of truth consumed by all exporters.
package collector

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"

	"github.com/testout/testout/docmeta"
	"github.com/testout/testout/types"
)

// Mode indicates whether the session executes tests or only collects them.
type Mode string

const (
	ModeRun     Mode = "run"
	ModeCollect Mode = "collect"
)

// ItemSource is everything the host framework knows about an item at
// collection time.
type ItemSource struct {
	ID       string
	Name     string
	Package  string
	Module   string
	Class    string
	Location types.Location
	Docs     docmeta.DocChain
	Markers  []types.Marker
	Params   []types.Param
}

// NewItemRecord builds the canonical record for a collected item. The
// documentation chain is flattened oldest scope first and the merged
// annotations are extracted so the innermost scope wins.
func NewItemRecord(src ItemSource) *types.ItemRecord {
	docs := src.Docs.Flatten()

	return &types.ItemRecord{
		ID:          src.ID,
		Name:        src.Name,
		Package:     src.Package,
		Module:      src.Module,
		Class:       src.Class,
		Location:    src.Location,
		Description: docmeta.Normalize(src.Docs.Own),
		Docstrings:  docs,
		Meta:        docmeta.Merge(docs),
		Markers:     src.Markers,
		Params:      src.Params,
		Extra:       make(map[string]map[string]string),
	}
}

// Collection is the ordered registry of all item records for one session.
// It is mutated only from the host's hook callbacks, which are never
// concurrent for a given item, and becomes immutable once sealed.
type Collection struct {
	mode   Mode
	runID  string
	order  []string
	items  map[string]*types.ItemRecord
	sealed bool
	log    log.Logger
}

// New creates an empty collection for one session.
func New(mode Mode, logger log.Logger) *Collection {
	if logger == nil {
		logger = log.New()
	}

	return &Collection{
		mode:  mode,
		runID: uuid.New().String(),
		items: make(map[string]*types.ItemRecord),
		log:   logger,
	}
}

// Mode returns the session mode.
func (c *Collection) Mode() Mode {
	return c.mode
}

// RunID returns the generated identifier of this session, used for logging
// and metrics labels.
func (c *Collection) RunID() string {
	return c.runID
}

// Collect builds a record from the source and adds it to the registry.
func (c *Collection) Collect(src ItemSource) (*types.ItemRecord, error) {
	item := NewItemRecord(src)
	if err := c.Add(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Add inserts a record, preserving insertion order. Re-adding an existing
// id replaces the record but keeps its original position.
func (c *Collection) Add(item *types.ItemRecord) error {
	if c.sealed {
		return fmt.Errorf("collection is sealed, cannot add %q", item.ID)
	}
	if item.ID == "" {
		return fmt.Errorf("item id must not be empty")
	}

	if _, exists := c.items[item.ID]; !exists {
		c.order = append(c.order, item.ID)
	}
	c.items[item.ID] = item

	c.log.Debug("Item collected", "id", item.ID, "name", item.Name)
	return nil
}

// Item returns the record for the given id.
func (c *Collection) Item(id string) (*types.ItemRecord, bool) {
	item, ok := c.items[id]
	return item, ok
}

// Items returns all records in insertion order.
func (c *Collection) Items() []*types.ItemRecord {
	items := make([]*types.ItemRecord, 0, len(c.order))
	for _, id := range c.order {
		items = append(items, c.items[id])
	}
	return items
}

// Len returns the number of collected items.
func (c *Collection) Len() int {
	return len(c.order)
}

// RecordPhase applies one phase report to an item's result. The update
// policy across phases:
//
//   - setup results are recorded only when the phase failed or skipped, so
//     a successful setup never masks the call outcome
//   - call results always overwrite
//   - teardown results overwrite only when a result already exists and the
//     teardown failed; a teardown failure without a prior result is dropped
func (c *Collection) RecordPhase(id string, report types.PhaseReport) error {
	if c.sealed {
		return fmt.Errorf("collection is sealed, cannot record phase for %q", id)
	}

	item, ok := c.items[id]
	if !ok {
		return fmt.Errorf("unknown item %q", id)
	}

	switch report.Phase {
	case types.PhaseSetup:
		if report.Outcome == types.RawFailed || report.Outcome == types.RawSkipped {
			item.Result = types.NewResult(report)
		}
	case types.PhaseCall:
		item.Result = types.NewResult(report)
	case types.PhaseTeardown:
		if item.Result != nil && report.Outcome == types.RawFailed {
			item.Result = types.NewResult(report)
		} else if item.Result == nil && report.Outcome == types.RawFailed {
			c.log.Debug("Dropping teardown failure without prior result", "id", id)
		}
	default:
		return fmt.Errorf("unknown phase %q for item %q", report.Phase, id)
	}

	return nil
}

// Seal marks the collection immutable. Exporters run against a sealed
// collection at session end.
func (c *Collection) Seal() {
	c.sealed = true
}
