// Package yamldump renders the collected items into a structured yaml
// dump: top-level mode plus an ordered mapping of item id to item fields.
// Multi-line strings are written as literal blocks.
package yamldump

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/testout/testout/collector"
	"github.com/testout/testout/flags"
	"github.com/testout/testout/types"
)

const OutputFlagName = "output-yaml"

// Generator writes the structured yaml dump.
type Generator struct {
	path string
	log  log.Logger
}

// New creates a yaml dump generator.
func New(logger log.Logger) *Generator {
	if logger == nil {
		logger = log.New()
	}
	return &Generator{log: logger}
}

func (g *Generator) Name() string {
	return "yaml"
}

func (g *Generator) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    OutputFlagName,
			EnvVars: flags.PrefixEnvVar("OUTPUT_YAML"),
			Usage:   "Path to the output yaml file",
		},
	}
}

func (g *Generator) Configure(cliCtx *cli.Context) error {
	g.path = cliCtx.String(OutputFlagName)
	return nil
}

func (g *Generator) Generate(_ context.Context, data *collector.Collection) error {
	if g.path == "" {
		g.log.Debug("No yaml output path configured, skipping dump")
		return nil
	}

	out, err := yaml.Marshal(buildDoc(data))
	if err != nil {
		return fmt.Errorf("failed to marshal yaml dump: %w", err)
	}

	if err := os.WriteFile(g.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write yaml dump %s: %w", g.path, err)
	}

	g.log.Debug("Wrote yaml dump", "path", g.path, "items", data.Len())
	return nil
}

// buildDoc builds the document as an explicit node tree so the item
// insertion order survives marshalling.
func buildDoc(data *collector.Collection) *yaml.Node {
	items := mapping()
	for _, item := range data.Items() {
		items.Content = append(items.Content, scalar(item.ID), itemNode(item))
	}

	return mapping(
		scalar("mode"), scalar(string(data.Mode())),
		scalar("items"), items,
	)
}

func itemNode(item *types.ItemRecord) *yaml.Node {
	return mapping(
		scalar("id"), scalar(item.ID),
		scalar("name"), scalar(item.Name),
		scalar("package"), optScalar(item.Package),
		scalar("module"), scalar(item.Module),
		scalar("class"), optScalar(item.Class),
		scalar("location"), locationNode(item.Location),
		scalar("docstring"), stringSeq(item.Docstrings),
		scalar("meta"), stringMap(item.Meta),
		scalar("markers"), markersNode(item.Markers),
		scalar("result"), resultNode(item.Result),
		scalar("extra"), extraNode(item.Extra),
	)
}

func locationNode(loc types.Location) *yaml.Node {
	line := nullNode()
	if loc.Line != nil {
		line = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(*loc.Line)}
	}

	return mapping(
		scalar("file"), scalar(loc.File),
		scalar("line"), line,
		scalar("name"), scalar(loc.Name),
	)
}

func markersNode(markers []types.Marker) *yaml.Node {
	seq := sequence()
	for _, marker := range markers {
		args := sequence()
		for _, arg := range marker.Args {
			args.Content = append(args.Content, anyNode(arg))
		}

		kwargs := mapping()
		for _, name := range sortedKeys(marker.Kwargs) {
			kwargs.Content = append(kwargs.Content, scalar(name), anyNode(marker.Kwargs[name]))
		}

		seq.Content = append(seq.Content, mapping(
			scalar("name"), scalar(marker.Name),
			scalar("args"), args,
			scalar("kwargs"), kwargs,
		))
	}
	return seq
}

func resultNode(result *types.Result) *yaml.Node {
	if result == nil {
		return nullNode()
	}

	return mapping(
		scalar("outcome"), scalar(string(result.Outcome)),
		scalar("stdout"), scalar(result.Stdout),
		scalar("stderr"), scalar(result.Stderr),
		scalar("logs"), scalar(result.Logs),
	)
}

func extraNode(extra map[string]map[string]string) *yaml.Node {
	node := mapping()
	for _, namespace := range sortedKeys(extra) {
		node.Content = append(node.Content, scalar(namespace), stringMap(extra[namespace]))
	}
	return node
}

func stringMap(values map[string]string) *yaml.Node {
	node := mapping()
	for _, name := range sortedKeys(values) {
		node.Content = append(node.Content, scalar(name), scalar(values[name]))
	}
	return node
}

func stringSeq(values []string) *yaml.Node {
	seq := sequence()
	for _, value := range values {
		seq.Content = append(seq.Content, scalar(value))
	}
	return seq
}

// scalar returns a string node, using literal block style for multi-line
// values.
func scalar(value string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if strings.Contains(value, "\n") {
		node.Style = yaml.LiteralStyle
	}
	return node
}

func optScalar(value string) *yaml.Node {
	if value == "" {
		return nullNode()
	}
	return scalar(value)
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func anyNode(value any) *yaml.Node {
	if s, ok := value.(string); ok {
		return scalar(s)
	}

	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return scalar(fmt.Sprintf("%v", value))
	}
	return node
}

func mapping(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Content: content}
}

func sequence(content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Content: content}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
