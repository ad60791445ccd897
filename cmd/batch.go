package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/meridian-health/triage-cli/internal/model"
	"github.com/meridian-health/triage-cli/internal/specialty"
)

var (
	batchSpecialty string
	batchRulesOnly bool
	batchOut       string
	batchLimit     int
)

var batchCmd = &cobra.Command{
	Use:   "batch <messages-file>",
	Short: "Parse a file of triage messages, one per line",
	Long:  "Reads one raw message per line and writes one JSON result per line, preserving input order.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initParseEnv(ctx, batchRulesOnly)
		if err != nil {
			return err
		}
		defer env.Close()

		messages, err := readMessages(args[0], batchLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if batchOut != "" {
			f, err := os.Create(batchOut)
			if err != nil {
				return eris.Wrapf(err, "batch: create %s", batchOut)
			}
			defer f.Close()
			out = f
		}

		specialtyID := batchSpecialty
		if specialtyID == "" {
			specialtyID = cfg.Parser.DefaultSpecialty
		}
		profile := env.Profiles.Get(specialtyID)

		outcomes, err := processBatch(ctx, env, messages, profile, cfg.Batch.MaxConcurrent, cfg.Batch.RatePerSecond)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(out)
		for _, outcome := range outcomes {
			if err := enc.Encode(outcome); err != nil {
				return eris.Wrap(err, "batch: encode result")
			}
		}
		return nil
	},
}

// readMessages loads non-blank lines from the given file, up to limit.
func readMessages(path string, limit int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		messages = append(messages, line)
		if limit > 0 && len(messages) >= limit {
			break
		}
	}
	return messages, eris.Wrapf(scanner.Err(), "batch: scan %s", path)
}

// processBatch parses messages concurrently, pacing model calls with the
// rate limiter. Results come back in input order; individual failures never
// happen since the service always falls back to the rule chain.
func processBatch(ctx context.Context, env *parseEnv, messages []string, profile specialty.Profile, concurrency int, perSecond float64) ([]model.ParseOutcome, error) {
	if len(messages) == 0 {
		zap.L().Info("no messages to process")
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("messages", len(messages)),
		zap.Int("concurrency", concurrency),
		zap.String("specialty", profile.ID),
	)

	limiter := rate.NewLimiter(rate.Limit(perSecond), 1)
	outcomes := make([]model.ParseOutcome, len(messages))
	var done atomic.Int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, raw := range messages {
		g.Go(func() error {
			if err := limiter.Wait(gctx); err != nil {
				return eris.Wrap(err, "batch: rate limit wait")
			}

			outcome := env.Service.Parse(gctx, raw, profile)
			reconcileDoctor(gctx, env.Store, &outcome)

			mu.Lock()
			outcomes[i] = outcome
			mu.Unlock()
			done.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete", zap.Int64("processed", done.Load()))
	return outcomes, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchSpecialty, "specialty", "", "specialty profile (default from config)")
	batchCmd.Flags().BoolVar(&batchRulesOnly, "rules-only", false, "skip model extraction and use the rule chain")
	batchCmd.Flags().StringVar(&batchOut, "out", "", "write results to a file instead of stdout")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of messages to process (0 = all)")
	rootCmd.AddCommand(batchCmd)
}
