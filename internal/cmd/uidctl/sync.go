package uidctl

import (
	"fmt"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/raise-sistemas/jsr-uid/internal/uid/outbound"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Read the trusted time and print it in unix milliseconds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, _ := cmd.Flags().GetString("url")
			timeout, _ := cmd.Flags().GetDuration("timeout")
			retries, _ := cmd.Flags().GetUint64("max-retries")

			client := outbound.NewTraceClient(outbound.TraceConfig{
				URL:        url,
				Timeout:    timeout,
				MaxRetries: retries,
			})

			sec, err := client.UnixSeconds(cmd.Context())
			if err != nil {
				return err
			}
			ms, err := pkguid.UnixSecondsToMillis(sec)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", ms, time.UnixMilli(ms).UTC().Format(time.RFC3339Nano))
			return nil
		},
	}

	cmd.Flags().String("url", outbound.DefaultTraceURL, "Trace endpoint returning a ts= line")
	cmd.Flags().Duration("timeout", 5*time.Second, "Timeout of a single request")
	cmd.Flags().Uint64("max-retries", 3, "Retries after the first failed request")
	return cmd
}
