package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meridian-health/triage-cli/internal/directory"
	"github.com/meridian-health/triage-cli/internal/model"
)

var (
	parseSpecialty string
	parseRulesOnly bool
	parseFile      string
)

var parseCmd = &cobra.Command{
	Use:   "parse [message]",
	Short: "Parse a single triage message into structured fields",
	Long:  "Reads the message from the argument, --file, or stdin, and prints the extracted fields as JSON.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readMessage(args, parseFile, cmd.InOrStdin())
		if err != nil {
			return err
		}

		env, err := initParseEnv(cmd.Context(), parseRulesOnly)
		if err != nil {
			return err
		}
		defer env.Close()

		specialtyID := parseSpecialty
		if specialtyID == "" {
			specialtyID = cfg.Parser.DefaultSpecialty
		}
		profile := env.Profiles.Get(specialtyID)

		outcome := env.Service.Parse(cmd.Context(), raw, profile)
		reconcileDoctor(cmd.Context(), env.Store, &outcome)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(outcome), "parse: encode result")
	},
}

// readMessage resolves the message text from an argument, a file, or stdin,
// in that order of precedence.
func readMessage(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) == 1 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", eris.Wrapf(err, "parse: read %s", file)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", eris.Wrap(err, "parse: read stdin")
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", eris.New("parse: no message provided")
	}
	return string(data), nil
}

// reconcileDoctor replaces the extracted surname with its canonical
// directory spelling when the directory knows it, and reports whether the
// surname was found.
func reconcileDoctor(ctx context.Context, store directory.Store, outcome *model.ParseOutcome) bool {
	if outcome.Fields.AttendingDoctor == "" {
		return false
	}
	canonical, ok := directory.Reconcile(ctx, store, outcome.Fields.AttendingDoctor)
	if ok && canonical != outcome.Fields.AttendingDoctor {
		zap.L().Debug("doctor reconciled",
			zap.String("extracted", outcome.Fields.AttendingDoctor),
			zap.String("canonical", canonical),
		)
		outcome.Fields.AttendingDoctor = canonical
	}
	return ok
}

func init() {
	parseCmd.Flags().StringVar(&parseSpecialty, "specialty", "", "specialty profile (default from config)")
	parseCmd.Flags().BoolVar(&parseRulesOnly, "rules-only", false, "skip model extraction and use the rule chain")
	parseCmd.Flags().StringVar(&parseFile, "file", "", "read the message from a file")
	rootCmd.AddCommand(parseCmd)
}
