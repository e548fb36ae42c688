package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/export"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/sheets"
)

// Export formats.
const (
	formatCSV    = "csv"
	formatSheets = "sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV or Google Sheets",
		Long: `Export transactions, newest first.

CSV columns are Date,Name,Category,Type,Amount with dates as YYYY-MM-DD and
amounts with two decimals. Use --output - to write to stdout.

The sheets format writes a summary and all transactions to a Google
spreadsheet; run "accountant auth sheets" first or configure a service
account.`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().String("format", formatCSV, "export format (csv, sheets)")
	cmd.Flags().StringP("output", "o", export.DefaultFilename, "CSV output file, - for stdout")
	addFilterFlags(cmd)
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.warnIfCorrupt(cmd)

	txns := sess.store.Filter(filter)
	if len(txns) == 0 {
		return common.NewUserError("No transactions to export.", common.ErrNoTransactions)
	}

	switch format {
	case formatCSV:
		return exportCSV(cmd, export.InLocation(txns, sess.location), output)

	case formatSheets:
		cfg := sess.settings.Sheets
		if err := cfg.Validate(); err != nil {
			return common.NewUserError("Google Sheets is not configured", fmt.Errorf("%w: %v", common.ErrMissingConfig, err))
		}
		writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
		if err != nil {
			return err
		}

		report := sheets.NewReport(txns, time.Now().In(sess.location), sess.location)
		if err := writer.Write(ctx, report); err != nil {
			return fmt.Errorf("failed to export to Google Sheets: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
			fmt.Sprintf("Exported %d transactions to spreadsheet %q", len(txns), cfg.SpreadsheetName)))
		return nil

	default:
		return common.NewUserError(
			fmt.Sprintf("unknown export format %q (want %s or %s)", format, formatCSV, formatSheets),
			common.ErrInvalidConfig)
	}
}

func exportCSV(cmd *cobra.Command, txns []model.Transaction, output string) error {
	var w io.Writer = cmd.OutOrStdout()
	if output != "-" {
		f, err := os.Create(output) // #nosec G304
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", output, err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				slog.Error("failed to close export file", "error", closeErr)
			}
		}()
		w = f
	}

	if err := export.WriteCSV(w, txns); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	if output != "-" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(txns), output)))
	}
	return nil
}
