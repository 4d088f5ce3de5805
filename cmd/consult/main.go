package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"consult/cmd/consult/chat"
	"consult/internal/artifact"
	"consult/internal/config"
	"consult/internal/diagram"
	"consult/internal/gateway"
	"consult/internal/logging"
	"consult/internal/parser"
	"consult/internal/persona"
	"consult/internal/thread"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger for one-shot subcommands; the TUI uses the categorized
	// file logger instead so stderr stays clean.
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "consult",
	Short: "consult - multi-expert consultation interface",
	Long: `consult is a terminal interface for consulting a panel of expert
personas backed by an LLM. Each expert keeps an independent conversation
thread and a workspace of generated artifacts: architecture diagrams,
HTML mockups, and written guidance.

Run without arguments to start the interactive interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive mode has its own UI; no stderr logger there.
		if cmd.Use == "consult" && cmd.CalledAs() == "consult" {
			return nil
		}
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one expert a single question and print the reply",
	Long: `Runs a single consultation turn outside the TUI. The reply's prose is
printed to stdout; artifact blocks are written to the export directory.

Example:
  consult ask --persona architect-1 "How should I shard this database?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List the available expert personas",
	RunE:  runPersonas,
}

var askPersona string

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.consult/config.yaml)")
	askCmd.Flags().StringVar(&askPersona, "persona", "", "persona id (default: first in catalog)")
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(personasCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}

// loadRegistry resolves the persona catalog: file when configured,
// built-ins otherwise.
func loadRegistry(cfg *config.Config) (*persona.Registry, error) {
	return persona.LoadOrBuiltin(cfg.PersonasPath)
}

func runInteractive() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Initialize(filepath.Join(config.StateDir(), "logs"), cfg.Logging.DebugMode, cfg.Logging.Level); err != nil {
		fmt.Fprintf(os.Stderr, "file logging disabled: %v\n", err)
	}
	defer logging.Shutdown()
	logging.Boot("consult starting, provider=%s model=%s", cfg.LLM.Provider, cfg.LLM.Model)

	ctx := context.Background()
	client, err := gateway.NewClient(ctx, cfg)
	if err != nil {
		return err
	}

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	var updates <-chan *persona.Registry
	if cfg.PersonasPath != "" {
		watcher, werr := persona.WatchCatalog(cfg.PersonasPath)
		if werr != nil {
			logging.BootError("catalog watch disabled: %v", werr)
		} else {
			defer watcher.Close()
			updates = watcher.Updates()
		}
	}

	return chat.Run(chat.Config{
		App:            *cfg,
		Registry:       registry,
		Gateway:        gateway.New(client),
		Engine:         diagram.NewBrowserEngine(),
		CatalogUpdates: updates,
	})
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	question := strings.Join(args, " ")

	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	p, ok := registry.Get(askPersona)
	if !ok {
		if askPersona != "" {
			return fmt.Errorf("unknown persona %q, run 'consult personas'", askPersona)
		}
		p = registry.All()[0]
	}

	ctx := cmd.Context()
	client, err := gateway.NewClient(ctx, cfg)
	if err != nil {
		return err
	}
	gw := gateway.New(client)

	logger.Debug("ask", zap.String("persona", p.ID), zap.Int("question_len", len(question)))
	raw, err := gw.Consult(ctx, p, nil, question)
	if err != nil {
		return err
	}

	res := parser.Parse(raw)
	fmt.Println(res.Display)

	if len(res.Blocks) > 0 {
		dir := filepath.Join(config.StateDir(), "exports", p.ID)
		arts := make([]thread.Artifact, 0, len(res.Blocks))
		for i, b := range res.Blocks {
			arts = append(arts, thread.NewArtifact(b.Type, b.Content, fmt.Sprintf("answer-%d", i+1)))
		}
		if err := artifact.ExportAll(dir, arts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d artifact(s) to %s\n", len(arts), dir)
	}
	return nil
}

func runPersonas(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	fmt.Println("Global experts:")
	for _, p := range registry.GlobalExperts() {
		fmt.Printf("  %-24s %s — %s\n", p.ID, p.Name, p.Role)
	}
	for _, org := range registry.Organizations() {
		fmt.Printf("\n%s — %s\n", org.Name, org.Description)
		for _, p := range org.Members {
			fmt.Printf("  %-24s %s — %s\n", p.ID, p.Name, p.Role)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
