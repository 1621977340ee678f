package uidctl

import (
	"encoding/json"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/spf13/cobra"
)

type decoded struct {
	ID             string `json:"id"`
	Timestamp      int64  `json:"timestamp"`
	Time           string `json:"time"`
	ApplicationTag int64  `json:"application_tag"`
	WorkerTag      int64  `json:"worker_tag"`
	Counter        int64  `json:"counter"`
}

func newDecodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <id>...",
		Short: "Print the fields of each ID as a JSON line",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base36, _ := cmd.Flags().GetBool("base36")

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, arg := range args {
				parse := pkguid.ParseID
				if base36 {
					parse = pkguid.ParseBase36
				}

				id, err := parse(arg)
				if err != nil {
					return err
				}

				parts := id.Parts()
				if err := enc.Encode(decoded{
					ID:             id.String(),
					Timestamp:      parts.Timestamp,
					Time:           parts.Time().Format(time.RFC3339Nano),
					ApplicationTag: parts.ApplicationTag,
					WorkerTag:      parts.WorkerTag,
					Counter:        parts.Counter,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().Bool("base36", false, "Arguments are base 36")
	return cmd
}
