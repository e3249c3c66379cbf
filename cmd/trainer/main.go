// Command trainer runs the training pipeline and the hyperparameter
// search from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/talenthunt/talenthunt/embedding"
	"github.com/talenthunt/talenthunt/events"
	"github.com/talenthunt/talenthunt/index"
	"github.com/talenthunt/talenthunt/logger"
	"github.com/talenthunt/talenthunt/optimize"
	"github.com/talenthunt/talenthunt/pipeline"
	"github.com/talenthunt/talenthunt/tracking"
)

func main() {
	root := &cobra.Command{
		Use:           "trainer",
		Short:         "Train and tune the talent-matching embedding model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("data-dir", "", "override the data directory layout root")

	root.AddCommand(newTrainCommand(), newOptimizeCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newTrainCommand() *cobra.Command {
	params := pipeline.DefaultParams()

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run the four-stage training pipeline once",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			defer deps.close()

			result, err := deps.pipe.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Printf("run %s finished\n", result.RunID)
			for name, value := range result.Metrics {
				fmt.Printf("  %s = %.4f\n", name, value)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&params.ModelName, "model-name", params.ModelName, "embedding model to train with")
	cmd.Flags().IntVar(&params.BatchSize, "batch-size", params.BatchSize, "encoding batch size")
	return cmd
}

func newOptimizeCommand() *cobra.Command {
	var trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search model name and batch size over sequential trials",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := buildDeps(cmd)
			if err != nil {
				return err
			}
			defer deps.close()

			cfg := optimize.NewConfig()
			if trials > 0 {
				cfg.Trials = trials
			}
			if seed != 0 {
				cfg.Seed = seed
			}

			opt, err := optimize.NewOptimizer(cfg, deps.pipe, deps.store, deps.log)
			if err != nil {
				return err
			}

			study, err := opt.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("study %s: best value %.4f with model=%s batch=%d over %d trials\n",
				study.Name, study.BestValue,
				study.BestParams.ModelName, study.BestParams.BatchSize,
				len(study.Trials))
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 0, "number of trials (default from OPTIMIZE_TRIALS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "sampler seed (default: time-based)")
	return cmd
}

// deps is the manually wired object graph for one CLI invocation.
type deps struct {
	log   *logger.Logger
	store tracking.Store
	pipe  *pipeline.Pipeline

	events *events.Client
}

func (d *deps) close() {
	if d.events != nil {
		d.events.Close()
	}
	d.log.Zap.Sync()
}

func buildDeps(cmd *cobra.Command) (*deps, error) {
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		os.Setenv("DATA_DIR", dir)
	}

	log := logger.NewLoggerClient(logger.NewConfig())

	store, err := tracking.NewStore(tracking.NewConfig(), log)
	if err != nil {
		return nil, err
	}

	registry, err := embedding.NewRegistry(embedding.NewConfig())
	if err != nil {
		return nil, err
	}

	pipe := pipeline.NewPipeline(pipeline.NewConfig(), store, registry, log)

	idx, err := index.NewIndex(index.NewConfig(), log)
	if err != nil {
		return nil, err
	}
	if idx != nil {
		pipe.WithVectorSink(idx)
	}

	client, err := events.NewClient(events.NewConfig(), log)
	if err != nil {
		return nil, err
	}
	if client != nil {
		pipe.WithPublisher(events.NewPublisher(client))
	}

	return &deps{log: log, store: store, pipe: pipe, events: client}, nil
}
