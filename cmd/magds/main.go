// Command magds is a thin CLI shell around the pkg/magds library: every
// subcommand loads a dataset, builds an in-process Store, does one thing
// to it, and exits. There is no server process and no on-disk graph state
// to connect to — per spec.md §6 the core is a library, not a service —
// so unlike qubicDB-qubicdb/cmd/qubicdb-cli's admin client this CLI never
// makes an HTTP call against itself; serve-mcp is the only subcommand that
// opens a listener, and it serves the MCP tool API rather than an admin
// API.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/asagraphs/magds/pkg/config"
	"github.com/asagraphs/magds/pkg/core"
	"github.com/asagraphs/magds/pkg/ingest"
	"github.com/asagraphs/magds/pkg/magds"
	"github.com/asagraphs/magds/pkg/mcpapi"
	"github.com/asagraphs/magds/pkg/predict"
)

// cli holds the state shared across subcommands: the resolved
// configuration and the CLI-flag overrides collected by the root
// command's persistent flags.
type cli struct {
	cfg *config.Config

	configPath string
	overrides  config.CLIOverrides
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "magds:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	var (
		horizontalEpsilon    float64
		defaultFeatureWeight float32
		maxNeurons           int
		inferenceSampleSize  int
		mcpEnabled           bool
		mcpPath              string
		mcpRateLimitRPS      float64
		mcpRateLimitBurst    int
	)

	root := &cobra.Command{
		Use:   "magds",
		Short: "MAGDS — multi-associative graph data structure engine",
		Long:  "A standalone CLI over the MAGDS in-memory engine: ingest tabular data, query and predict against it, or expose it over MCP.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(c.configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("horizontal-epsilon") {
				c.overrides.HorizontalEpsilon = &horizontalEpsilon
			}
			if flags.Changed("default-feature-weight") {
				c.overrides.DefaultFeatureWeight = &defaultFeatureWeight
			}
			if flags.Changed("max-neurons") {
				c.overrides.MaxNeurons = &maxNeurons
			}
			if flags.Changed("inference-sample-size") {
				c.overrides.InferenceSampleSize = &inferenceSampleSize
			}
			if flags.Changed("mcp-enabled") {
				c.overrides.MCPEnabled = &mcpEnabled
			}
			if flags.Changed("mcp-path") {
				c.overrides.MCPPath = &mcpPath
			}
			if flags.Changed("mcp-rate-limit-rps") {
				c.overrides.MCPRateLimitRPS = &mcpRateLimitRPS
			}
			if flags.Changed("mcp-rate-limit-burst") {
				c.overrides.MCPRateLimitBurst = &mcpRateLimitBurst
			}
			cfg.ApplyCLIOverrides(&c.overrides)

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			c.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().Float64Var(&horizontalEpsilon, "horizontal-epsilon", 0, "override engine.horizontalEpsilon")
	root.PersistentFlags().Float32Var(&defaultFeatureWeight, "default-feature-weight", 0, "override engine.defaultFeatureWeight")
	root.PersistentFlags().IntVar(&maxNeurons, "max-neurons", 0, "override engine.maxNeurons")
	root.PersistentFlags().IntVar(&inferenceSampleSize, "inference-sample-size", 0, "override ingest.inferenceSampleSize")
	root.PersistentFlags().BoolVar(&mcpEnabled, "mcp-enabled", false, "override mcp.enabled")
	root.PersistentFlags().StringVar(&mcpPath, "mcp-path", "", "override mcp.path")
	root.PersistentFlags().Float64Var(&mcpRateLimitRPS, "mcp-rate-limit-rps", 0, "override mcp.rateLimitRPS")
	root.PersistentFlags().IntVar(&mcpRateLimitBurst, "mcp-rate-limit-burst", 0, "override mcp.rateLimitBurst")

	root.AddCommand(
		newIngestCmd(c),
		newSensorCmd(c),
		newPredictCmd(c),
		newScoreCmd(c),
		newServeMCPCmd(c),
	)
	return root
}

// loadStore reads a CSV file at path into a ColumnarTable named tableName
// and ingests it into a fresh Store.
func (c *cli) loadStore(path, tableName string) (*magds.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	nullTokens, sampleSize := c.cfg.Ingest.ToIngestOptions()
	table, err := ingest.FromCSV(tableName, f, ingest.Options{
		NullTokens:          nullTokens,
		InferenceSampleSize: sampleSize,
	})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	store := magds.New()
	if err := store.Ingest(table); err != nil {
		return nil, fmt.Errorf("ingesting %s: %w", path, err)
	}
	return store, nil
}

func newIngestCmd(c *cli) *cobra.Command {
	var file, name string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a CSV file and report how many object neurons it produced",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			if name == "" {
				base := filepath.Base(file)
				name = strings.TrimSuffix(base, filepath.Ext(base))
			}

			store, err := c.loadStore(file, name)
			if err != nil {
				return err
			}

			fmt.Printf("ingested %q: %d object neurons\n", name, store.NeuronCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file to ingest (required)")
	cmd.Flags().StringVar(&name, "name", "", "dataset name (defaults to the file's base name)")
	return cmd
}

func newSensorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sensor",
		Short: "Inspect or mutate a single sensor graph",
	}
	cmd.AddCommand(newSensorInsertCmd(c), newSensorSearchCmd(c))
	return cmd
}

func newSensorInsertCmd(c *cli) *cobra.Command {
	var train, name, value string

	cmd := &cobra.Command{
		Use:   "insert",
		Short: "Insert a value into a sensor, creating or incrementing its neuron",
		RunE: func(cmd *cobra.Command, args []string) error {
			if train == "" || name == "" || value == "" {
				return errors.New("--train, --name, and --value are all required")
			}
			store, err := c.loadStore(train, "train")
			if err != nil {
				return err
			}
			s, ok := store.Sensor(name)
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
			}
			v, err := core.FromText(value, s.DataType())
			if err != nil {
				return err
			}
			n, err := store.SensorInsert(name, v)
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s: id=%s counter=%d distinct=%d\n", name, v.String(), n.ID(), n.Counter(), s.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "CSV file to build the sensor graph from (required)")
	cmd.Flags().StringVar(&name, "name", "", "sensor (attribute) name (required)")
	cmd.Flags().StringVar(&value, "value", "", "value text to insert (required)")
	return cmd
}

func newSensorSearchCmd(c *cli) *cobra.Command {
	var train, name, value string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search a sensor for a value, optionally falling back to the nearest key",
		RunE: func(cmd *cobra.Command, args []string) error {
			if train == "" || name == "" || value == "" {
				return errors.New("--train, --name, and --value are all required")
			}
			store, err := c.loadStore(train, "train")
			if err != nil {
				return err
			}
			s, ok := store.Sensor(name)
			if !ok {
				return fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
			}
			v, err := core.FromText(value, s.DataType())
			if err != nil {
				return err
			}

			var n *core.BaseNeuron
			var found bool
			if fuzzy {
				n, found, err = store.SensorSearchFuzzy(name, v)
			} else {
				n, found, err = store.SensorSearch(name, v)
			}
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("%s = %s: not found\n", name, v.String())
				return nil
			}
			fmt.Printf("%s = %s: id=%s counter=%d\n", name, v.String(), n.ID(), n.Counter())
			return nil
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "CSV file to build the sensor graph from (required)")
	cmd.Flags().StringVar(&name, "name", "", "sensor (attribute) name (required)")
	cmd.Flags().StringVar(&value, "value", "", "value text to search for (required)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "fall back to the nearest key on a miss")
	return cmd
}

func newPredictCmd(c *cli) *cobra.Command {
	var train, target string
	var features []string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict a target attribute from a set of feature values",
		RunE: func(cmd *cobra.Command, args []string) error {
			if train == "" || target == "" {
				return errors.New("--train and --target are required")
			}
			store, err := c.loadStore(train, "train")
			if err != nil {
				return err
			}

			typed := make(map[string]core.TaggedValue, len(features))
			for _, kv := range features {
				name, text, ok := strings.Cut(kv, "=")
				if !ok {
					return fmt.Errorf("--feature %q must be name=value", kv)
				}
				s, ok := store.Sensor(name)
				if !ok {
					return fmt.Errorf("%w: %s", core.ErrUnknownSensor, name)
				}
				v, err := core.FromText(text, s.DataType())
				if err != nil {
					return fmt.Errorf("feature %s: %w", name, err)
				}
				typed[name] = v
			}

			value, probability, err := predict.Predict(store, typed, target, fuzzy)
			if err != nil {
				return err
			}
			fmt.Printf("%s = %s (probability=%.4f)\n", target, value.String(), probability)
			return nil
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "CSV file to build the engine from (required)")
	cmd.Flags().StringVar(&target, "target", "", "attribute to predict (required)")
	cmd.Flags().StringArrayVar(&features, "feature", nil, "feature as name=value, repeatable")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "allow fuzzy matching on continuous/discrete features")
	return cmd
}

func newScoreCmd(c *cli) *cobra.Command {
	var train, test, target string
	var fuzzy bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score prediction accuracy of --target over a held-out test set",
		RunE: func(cmd *cobra.Command, args []string) error {
			if train == "" || test == "" || target == "" {
				return errors.New("--train, --test, and --target are all required")
			}
			trainStore, err := c.loadStore(train, "train")
			if err != nil {
				return err
			}
			testStore, err := c.loadStore(test, "test")
			if err != nil {
				return err
			}

			rmse, meanProbability, err := predict.PredictionScore(trainStore, testStore, target, fuzzy)
			if err != nil {
				return err
			}
			fmt.Printf("rmse=%.4f mean_probability=%.4f\n", rmse, meanProbability)
			return nil
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "training CSV file (required)")
	cmd.Flags().StringVar(&test, "test", "", "held-out CSV file to score against (required)")
	cmd.Flags().StringVar(&target, "target", "", "attribute to predict (required)")
	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "allow fuzzy matching on continuous/discrete features")
	return cmd
}

func newServeMCPCmd(c *cli) *cobra.Command {
	var train, addr, apiKey string

	cmd := &cobra.Command{
		Use:   "serve-mcp",
		Short: "Ingest a CSV file and serve it over MCP until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if train == "" {
				return errors.New("--train is required")
			}
			store, err := c.loadStore(train, "train")
			if err != nil {
				return err
			}

			mcpCfg := mcpapi.Config{
				APIKey:         apiKey,
				Stateless:      true,
				RateLimitRPS:   c.cfg.MCP.RateLimitRPS,
				RateLimitBurst: c.cfg.MCP.RateLimitBurst,
			}
			handler, err := mcpapi.NewHandler(mcpCfg, &mcpapi.StoreBackend{Store: store})
			if err != nil {
				return err
			}

			mux := http.NewServeMux()
			mux.Handle(c.cfg.MCP.Path, handler)

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}
			fmt.Printf("serving MCP on %s%s (%d object neurons loaded)\n", addr, c.cfg.MCP.Path, store.NeuronCount())
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&train, "train", "", "CSV file to ingest before serving (required)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "require this value in the X-API-Key header or Authorization: Bearer")
	return cmd
}
