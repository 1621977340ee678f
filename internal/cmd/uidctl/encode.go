package uidctl

import (
	"errors"
	"fmt"
	"time"

	"github.com/raise-sistemas/jsr-uid/internal/pkg/pkguid"
	"github.com/spf13/cobra"
)

type pinnedClock int64

func (c pinnedClock) Now() time.Time {
	return time.UnixMilli(int64(c))
}

func newEncodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Generate IDs with the given tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			at, _ := cmd.Flags().GetInt64("at")
			count, _ := cmd.Flags().GetInt("count")
			base36, _ := cmd.Flags().GetBool("base36")

			if count < 1 {
				return errors.New("--count must be at least 1")
			}

			var gen *pkguid.Generator
			if cmd.Flags().Changed("at") {
				gen = pkguid.NewGenerator(pinnedClock(at))
			} else {
				gen = pkguid.NewGenerator(nil)
			}

			if err := setTag(cmd, "app", gen.SetApplicationTag); err != nil {
				return err
			}
			if err := setTag(cmd, "worker", gen.SetWorkerTag); err != nil {
				return err
			}

			ids, err := encode(cmd, gen, at, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, id := range ids {
				if base36 {
					fmt.Fprintln(out, id.Base36())
					continue
				}
				fmt.Fprintln(out, id.String())
			}
			return nil
		},
	}

	cmd.Flags().Int64("at", 0, "Timestamp in unix milliseconds (default: now)")
	cmd.Flags().Int("count", 1, "Number of IDs to generate")
	cmd.Flags().Float64("app", 0, "Application tag: a fraction in (0,1) or an integer (default: random)")
	cmd.Flags().Float64("worker", 0, "Worker tag: a fraction in (0,1) or an integer (default: random)")
	cmd.Flags().Bool("base36", false, "Print IDs in base 36")
	return cmd
}

// encode pins every ID to at when --at is given; otherwise it follows the
// clock and waits out exhausted milliseconds.
func encode(cmd *cobra.Command, gen *pkguid.Generator, at int64, count int) ([]pkguid.ID, error) {
	if !cmd.Flags().Changed("at") {
		return gen.NextNID(cmd.Context(), count)
	}

	ids := make([]pkguid.ID, 0, count)
	for i := 0; i < count; i++ {
		id, err := gen.EncodeID(at)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func setTag(cmd *cobra.Command, flag string, set func(float64) error) error {
	v, _ := cmd.Flags().GetFloat64(flag)
	if !cmd.Flags().Changed(flag) {
		r, err := pkguid.RandomFraction()
		if err != nil {
			return err
		}
		v = r
	}

	if err := set(v); err != nil {
		return fmt.Errorf("--%s: %w", flag, err)
	}
	return nil
}
