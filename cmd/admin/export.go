package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/programme-lv/contactform/conf"
	"github.com/programme-lv/contactform/leads"
	"github.com/programme-lv/contactform/logger"
	"github.com/programme-lv/contactform/s3bucket"
	"github.com/spf13/cobra"
)

type exportFlags struct {
	bucket   string
	year     int
	month    int
	out      string
	region   string
	logLevel string
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export one month of submissions to an .xlsx file",
		Long: "Export one month of submissions to an .xlsx file.\n\n" +
			"Without --year and --month the current UTC month is exported. " +
			"Prints a JSON summary on stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := leads.ExportRequest{OutPath: flags.out}
			if cmd.Flags().Changed("year") {
				req.Year = &flags.year
			}
			if cmd.Flags().Changed("month") {
				req.Month = &flags.month
			}
			return runExport(cmd, flags, req)
		},
	}

	cmd.Flags().StringVarP(&flags.bucket, "bucket", "b", "", "S3 bucket (default $AWS_S3_BUCKET)")
	cmd.Flags().IntVarP(&flags.year, "year", "y", 0, "year to export, requires --month")
	cmd.Flags().IntVarP(&flags.month, "month", "m", 0, "month to export (1-12), requires --year")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output .xlsx path (default contact_leads/leads-YYYY-MM.xlsx)")
	cmd.Flags().StringVarP(&flags.region, "region", "r", "", "AWS region (default $AWS_REGION)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "log level")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags, req leads.ExportRequest) error {
	cfg, err := conf.Load(conf.LoadOptions{DotEnvFiles: []string{".env"}})
	if err != nil {
		return err
	}

	reader := cfg.Reader
	if flags.region != "" {
		reader.Region = flags.region
	}
	req.Bucket = reader.Bucket
	if flags.bucket != "" {
		req.Bucket = flags.bucket
	}
	req.OutDir = cfg.Export.OutDir

	ctx := logger.WithLogger(cmd.Context(), logger.NewStderrLogger(flags.logLevel, false))

	exporter := leads.NewExporter(func(ctx context.Context, bucket string) (leads.ObjectStore, error) {
		storage := reader
		storage.Bucket = bucket
		return s3bucket.NewS3Bucket(ctx, storage)
	})

	summary, err := exporter.ExportMonth(ctx, req)
	if err != nil {
		return err
	}

	out, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
