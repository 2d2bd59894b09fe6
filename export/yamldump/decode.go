package yamldump

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/types"
)

type itemDoc struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Package  string `yaml:"package"`
	Module   string `yaml:"module"`
	Class    string `yaml:"class"`
	Location struct {
		File string `yaml:"file"`
		Line *int   `yaml:"line"`
		Name string `yaml:"name"`
	} `yaml:"location"`
	Docstring []string          `yaml:"docstring"`
	Meta      map[string]string `yaml:"meta"`
	Markers   []struct {
		Name   string         `yaml:"name"`
		Args   []any          `yaml:"args"`
		Kwargs map[string]any `yaml:"kwargs"`
	} `yaml:"markers"`
	Result *struct {
		Outcome string `yaml:"outcome"`
		Stdout  string `yaml:"stdout"`
		Stderr  string `yaml:"stderr"`
		Logs    string `yaml:"logs"`
	} `yaml:"result"`
	Extra map[string]map[string]string `yaml:"extra"`
}

// Load reads a structured dump written by this generator and rebuilds the
// collection, preserving the dumped item order. Duration, summary and
// message are not part of the dump format and are left at their zero
// values.
func Load(path string, logger log.Logger) (*collector.Collection, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewConfigurationError(fmt.Errorf("unable to open dump %q: %w", path, err))
	}

	var doc struct {
		Mode  string    `yaml:"mode"`
		Items yaml.Node `yaml:"items"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, types.NewConfigurationError(fmt.Errorf("unable to parse dump %q: %w", path, err))
	}

	var mode collector.Mode
	switch doc.Mode {
	case string(collector.ModeRun):
		mode = collector.ModeRun
	case string(collector.ModeCollect):
		mode = collector.ModeCollect
	default:
		return nil, types.NewConfigurationError(fmt.Errorf("unknown mode %q in dump %q", doc.Mode, path))
	}

	data := collector.New(mode, logger)

	if doc.Items.Kind == 0 {
		return data, nil
	}
	if doc.Items.Kind != yaml.MappingNode {
		return nil, types.NewConfigurationError(fmt.Errorf("items must be a mapping in dump %q", path))
	}

	for i := 0; i+1 < len(doc.Items.Content); i += 2 {
		var it itemDoc
		if err := doc.Items.Content[i+1].Decode(&it); err != nil {
			return nil, types.NewConfigurationError(
				fmt.Errorf("invalid item %q in dump %q: %w", doc.Items.Content[i].Value, path, err))
		}

		item := decodeItem(it)
		if item.ID == "" {
			item.ID = doc.Items.Content[i].Value
		}

		if err := data.Add(item); err != nil {
			return nil, types.NewConfigurationError(err)
		}
	}

	return data, nil
}

func decodeItem(it itemDoc) *types.ItemRecord {
	item := &types.ItemRecord{
		ID:      it.ID,
		Name:    it.Name,
		Package: it.Package,
		Module:  it.Module,
		Class:   it.Class,
		Location: types.Location{
			File: it.Location.File,
			Line: it.Location.Line,
			Name: it.Location.Name,
		},
		Docstrings: it.Docstring,
		Meta:       it.Meta,
		Extra:      it.Extra,
	}

	if item.Meta == nil {
		item.Meta = make(map[string]string)
	}
	if item.Extra == nil {
		item.Extra = make(map[string]map[string]string)
	}

	for _, marker := range it.Markers {
		item.Markers = append(item.Markers, types.Marker{
			Name:   marker.Name,
			Args:   marker.Args,
			Kwargs: marker.Kwargs,
		})
	}

	if it.Result != nil {
		item.Result = &types.Result{
			Outcome: types.Outcome(it.Result.Outcome),
			Stdout:  it.Result.Stdout,
			Stderr:  it.Result.Stderr,
			Logs:    it.Result.Logs,
		}
	}

	return item
}
