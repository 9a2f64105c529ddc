package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	"github.com/rxtech-lab/argo-ta/internal/datasource"
	"github.com/rxtech-lab/argo-ta/internal/logger"
	"github.com/rxtech-lab/argo-ta/internal/replay"
	"github.com/rxtech-lab/argo-ta/pkg/codec"
	"github.com/rxtech-lab/argo-ta/pkg/strategy"
	"github.com/rxtech-lab/argo-ta/pkg/types"
)

// loadStrategy reads a strategy document from disk. The encoding comes from
// the --format flag when set, otherwise from the file extension.
func loadStrategy(cmd *cli.Command, path string) (*strategy.Strategy, codec.Format, error) {
	format := codec.Format(cmd.String("format"))
	if format == "" {
		inferred, err := codec.FormatFromPath(path)
		if err != nil {
			return nil, "", err
		}

		format = inferred
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read strategy file: %w", err)
	}

	s, err := codec.DecodeStrategy(data, format)
	if err != nil {
		return nil, "", err
	}

	return s, format, nil
}

// buildLogger picks the production or development logger.
func buildLogger(verbose bool) (*logger.Logger, error) {
	if verbose {
		return logger.NewDevelopmentLogger()
	}

	return logger.NewLogger()
}

// replayAction streams a candle CSV through a strategy file and prints the
// verdict summary. A config file supplies the paths when given; direct flags
// override its values.
func replayAction(ctx context.Context, cmd *cli.Command) error {
	cfg := &replay.Config{
		StrategyPath: cmd.String("strategy"),
		DataPath:     cmd.String("data"),
		MaxWarmUp:    int(cmd.Int("max-warm-up")),
	}

	if configPath := cmd.String("config"); configPath != "" {
		loaded, err := replay.LoadConfig(configPath)
		if err != nil {
			return err
		}

		if cfg.StrategyPath == "" {
			cfg.StrategyPath = loaded.StrategyPath
		}

		if cfg.DataPath == "" {
			cfg.DataPath = loaded.DataPath
		}

		if cfg.MaxWarmUp == 0 {
			cfg.MaxWarmUp = loaded.MaxWarmUp
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	s, format, err := loadStrategy(cmd, cfg.StrategyPath)
	if err != nil {
		return err
	}

	source, err := datasource.NewCSVSource(cfg.DataPath)
	if err != nil {
		return err
	}

	appLogger, err := buildLogger(cmd.Bool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer appLogger.Sync()

	runner := replay.NewRunner(s, source, appLogger)
	runner.MaxWarmUp = cfg.MaxWarmUp

	bar := progressbar.Default(int64(source.Len()))
	bar.Describe(fmt.Sprintf("Replaying %s (%s strategy)", cfg.DataPath, format))

	runner.OnStep = func(_ int, _ optional.Option[types.Action]) {
		bar.Add(1)
	}

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nrun %s: %d observations, %d warming up\n", result.RunID, len(result.Steps), result.WarmUp)

	for _, action := range types.AllActions {
		if count := result.Counts[action]; count > 0 {
			fmt.Printf("  %-12s %d\n", action, count)
		}
	}

	return nil
}

// validateAction loads a strategy file and reports structural defects.
func validateAction(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("strategy")

	s, format, err := loadStrategy(cmd, path)
	if err != nil {
		return err
	}

	fmt.Printf("%s: valid %s strategy, warm-up period %d\n", path, format, s.Period())

	return nil
}

// schemaAction prints the JSON schema of the replay config.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	schema, err := (&replay.Config{}).GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

func newRootCommand() *cli.Command {
	formatFlag := &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   fmt.Sprintf("Strategy file encoding (one of %v); inferred from the extension when omitted", codec.Formats()),
	}

	cmd := &cli.Command{
		Name:  "ta",
		Usage: "Evaluate technical indicator strategies against historical candles",
		Commands: []*cli.Command{
			{
				Name:  "replay",
				Usage: "Replay a candle CSV through a strategy and summarize the verdicts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to a replay config YAML supplying the strategy and data paths",
					},
					&cli.StringFlag{
						Name:    "strategy",
						Aliases: []string{"s"},
						Usage:   "Path to the serialized strategy document (overrides the config)",
					},
					&cli.StringFlag{
						Name:    "data",
						Aliases: []string{"d"},
						Usage:   "Path to the candle CSV file (overrides the config)",
					},
					&cli.IntFlag{
						Name:  "max-warm-up",
						Usage: "Abort if the strategy is still warming up after this many observations (0 disables)",
						Value: 0,
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Aliases: []string{"v"},
						Usage:   "Use the human-readable development logger",
					},
					formatFlag,
				},
				Action: replayAction,
			},
			{
				Name:  "validate",
				Usage: "Check a strategy file for structural defects",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Path to the serialized strategy document",
						Required: true,
					},
					formatFlag,
				},
				Action: validateAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the replay config",
				Action: schemaAction,
			},
		},
	}

	return cmd
}

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
