// Package testout gathers metadata and outcomes about test items during a
// run and renders them into structured output formats: a yaml dump, the
// Polarion importer documents and a console summary.
//
// The plugin is driven synchronously from the host framework's hook
// points: item-collected, phase-result-ready and session-end. All state
// lives in an explicit collection created at session start; there are no
// hidden singletons.
package testout

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/export"
	"github.com/testout/testout/export/polarion"
	"github.com/testout/testout/export/summary"
	"github.com/testout/testout/export/yamldump"
	"github.com/testout/testout/metrics"
	"github.com/testout/testout/types"
)

// CollectHook lets a collaborator enrich a freshly collected item, e.g.
// by attaching extension data.
type CollectHook func(item *types.ItemRecord)

// Plugin wires the collection and the static list of generators to the
// host framework's hooks.
type Plugin struct {
	log        log.Logger
	tracer     trace.Tracer
	generators []export.Generator
	hooks      []CollectHook
	data       *collector.Collection
}

// NewPlugin creates a plugin with the default generators.
func NewPlugin(logger log.Logger) *Plugin {
	if logger == nil {
		logger = log.New()
	}

	return &Plugin{
		log:    logger,
		tracer: otel.Tracer("testout"),
		generators: []export.Generator{
			yamldump.New(logger),
			polarion.New(logger),
			summary.New(logger),
		},
	}
}

// Flags returns the combined flag surface of all generators.
func (p *Plugin) Flags() []cli.Flag {
	var all []cli.Flag
	for _, generator := range p.generators {
		all = append(all, generator.Flags()...)
	}
	return all
}

// Configure configures every generator from the parsed options. It runs
// once, before collection starts.
func (p *Plugin) Configure(cliCtx *cli.Context) error {
	for _, generator := range p.generators {
		if err := generator.Configure(cliCtx); err != nil {
			return fmt.Errorf("failed to configure %s exporter: %w", generator.Name(), err)
		}
	}
	return nil
}

// StartSession creates the collection for one session.
func (p *Plugin) StartSession(mode collector.Mode) *collector.Collection {
	p.data = collector.New(mode, p.log)
	p.log.Debug("Session started", "run_id", p.data.RunID(), "mode", mode)
	return p.data
}

// UseData adopts an existing collection, e.g. one rebuilt from a dump.
func (p *Plugin) UseData(data *collector.Collection) {
	p.data = data
}

// Data returns the current collection.
func (p *Plugin) Data() *collector.Collection {
	return p.data
}

// OnItemCollected registers a collaborator hook run for every collected
// item.
func (p *Plugin) OnItemCollected(hook CollectHook) {
	p.hooks = append(p.hooks, hook)
}

// ItemCollected records one collected item and runs the collaborator
// hooks on it.
func (p *Plugin) ItemCollected(src collector.ItemSource) (*types.ItemRecord, error) {
	if p.data == nil {
		return nil, fmt.Errorf("session has not been started")
	}

	item, err := p.data.Collect(src)
	if err != nil {
		return nil, err
	}

	for _, hook := range p.hooks {
		hook(item)
	}

	return item, nil
}

// PhaseReport applies one phase result to the named item.
func (p *Plugin) PhaseReport(id string, report types.PhaseReport) error {
	if p.data == nil {
		return fmt.Errorf("session has not been started")
	}
	return p.data.RecordPhase(id, report)
}

// SessionFinish seals the collection and runs every generator against it.
// Generation is single-pass and fail-fast: the first error aborts and
// propagates to the caller.
func (p *Plugin) SessionFinish(ctx context.Context) error {
	if p.data == nil {
		return fmt.Errorf("session has not been started")
	}

	p.data.Seal()
	p.recordRunMetrics()

	for _, generator := range p.generators {
		genCtx, span := p.tracer.Start(ctx, "generate/"+generator.Name())

		start := time.Now()
		err := generator.Generate(genCtx, p.data)
		metrics.RecordExport(p.data.RunID(), generator.Name(), time.Since(start))

		if err != nil {
			span.RecordError(err)
			span.End()
			metrics.RecordError(generator.Name())
			return fmt.Errorf("%s exporter failed: %w", generator.Name(), err)
		}
		span.End()
	}

	p.log.Debug("Session finished", "run_id", p.data.RunID(), "items", p.data.Len())
	return nil
}

func (p *Plugin) recordRunMetrics() {
	counts := make(map[types.Outcome]int)
	withoutResult := 0
	for _, item := range p.data.Items() {
		if item.Result == nil {
			withoutResult++
			continue
		}
		counts[item.Result.Outcome]++
	}
	metrics.RecordRun(p.data.RunID(), counts, withoutResult)
}
