package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temporal-go/tcore"
)

var unitNames = map[string]tcore.Unit{
	"nanosecond":  tcore.UnitNanosecond,
	"microsecond": tcore.UnitMicrosecond,
	"millisecond": tcore.UnitMillisecond,
	"second":      tcore.UnitSecond,
	"minute":      tcore.UnitMinute,
	"hour":        tcore.UnitHour,
	"day":         tcore.UnitDay,
	"week":        tcore.UnitWeek,
	"month":       tcore.UnitMonth,
	"year":        tcore.UnitYear,
}

var modeNames = map[string]tcore.RoundingMode{
	"ceil":        tcore.ModeCeil,
	"floor":       tcore.ModeFloor,
	"expand":      tcore.ModeExpand,
	"trunc":       tcore.ModeTrunc,
	"half-ceil":   tcore.ModeHalfCeil,
	"half-floor":  tcore.ModeHalfFloor,
	"half-expand": tcore.ModeHalfExpand,
	"half-trunc":  tcore.ModeHalfTrunc,
	"half-even":   tcore.ModeHalfEven,
}

func newRoundCommand() *cobra.Command {
	var smallestUnit string
	var increment int64
	var mode string
	var relativeTo string

	cmd := &cobra.Command{
		Use:   "round <iso-duration>",
		Short: "Round an ISO 8601 duration to a unit/increment/mode",
		Long: `round parses an ISO 8601 duration string and rounds it to the
nearest multiple of --increment of --smallest-unit under --mode,
following the nine-mode lattice Duration.Round implements.

Rounding to Week or above, or rounding a duration that already carries
a nonzero calendar field, requires --relative-to (a PlainDate string)
to balance the result through the calendar.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, ok := unitNames[smallestUnit]
			if !ok {
				return fmt.Errorf("unknown --smallest-unit %q: want one of %s", smallestUnit, strings.Join(unitKeys(), ", "))
			}
			roundMode, ok := modeNames[mode]
			if !ok {
				return fmt.Errorf("unknown --mode %q: want one of %s", mode, strings.Join(modeKeys(), ", "))
			}
			return runRound(args[0], unit, increment, roundMode, relativeTo)
		},
	}
	cmd.Flags().StringVar(&smallestUnit, "smallest-unit", "second", "unit to round to")
	cmd.Flags().Int64Var(&increment, "increment", 1, "rounding increment")
	cmd.Flags().StringVar(&mode, "mode", "half-expand", "rounding mode")
	cmd.Flags().StringVar(&relativeTo, "relative-to", "", "PlainDate string anchoring Week/Month/Year rounding")
	return cmd
}

func runRound(durationStr string, unit tcore.Unit, increment int64, mode tcore.RoundingMode, relativeTo string) error {
	dur, err := tcore.ParseDuration(durationStr)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", durationStr, err)
	}

	opts := tcore.RoundTo{SmallestUnit: unit, RoundingIncrement: increment, RoundingMode: mode}
	if relativeTo != "" {
		anchor, err := tcore.ParsePlainDate(relativeTo)
		if err != nil {
			return fmt.Errorf("parsing --relative-to %q: %w", relativeTo, err)
		}
		opts.RelativeTo = &anchor
		log.WithField("relativeTo", anchor.String()).Debug("tcorecheck: rounding relative to anchor date")
	}

	rounded, err := dur.Round(opts)
	if err != nil {
		return err
	}
	fmt.Println(rounded.String())
	return nil
}

func unitKeys() []string {
	keys := make([]string, 0, len(unitNames))
	for k := range unitNames {
		keys = append(keys, k)
	}
	return keys
}

func modeKeys() []string {
	keys := make([]string, 0, len(modeNames))
	for k := range modeNames {
		keys = append(keys, k)
	}
	return keys
}
