package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temporal-go/tcore"
	"github.com/temporal-go/tcore/internal/ixdtf"
	"github.com/temporal-go/tcore/internal/tzprovider"
)

func newParseCommand() *cobra.Command {
	var tzSources []string
	var offsetDisambig string

	cmd := &cobra.Command{
		Use:   "parse <ixdtf-string>",
		Short: "Parse an IXDTF string and print the resolved value",
		Long: `parse classifies an IXDTF string the way tcore's own entry points
do (PlainDate, PlainDateTime, Instant, or ZonedDateTime, by which of the
time/offset/zone-annotation parts it carries) and prints the resolved
value's canonical string form and fields.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			od, err := parseOffsetDisambiguation(offsetDisambig)
			if err != nil {
				return err
			}
			return runParse(args[0], tzSources, od)
		},
	}
	cmd.Flags().StringSliceVar(&tzSources, "tzdata", nil, "extra zoneinfo directories to search before the system default")
	cmd.Flags().StringVar(&offsetDisambig, "offset-disambiguation", "reject", "how to reconcile a numeric offset against a named zone (use, prefer, ignore, reject)")
	return cmd
}

func runParse(s string, tzSources []string, od tcore.OffsetDisambiguation) error {
	log.WithField("input", s).Debug("tcorecheck: classifying IXDTF string")

	classification, err := ixdtf.ParseDateTime(s)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", s, err)
	}

	switch {
	case classification.TimeZone != "":
		log.WithField("zone", classification.TimeZone).Debug("tcorecheck: string carries a time-zone annotation")
		provider, err := tzprovider.NewFilesystemProvider(tzSources...)
		if err != nil {
			return err
		}
		zdt, err := tcore.ParseZonedDateTime(s, tcore.Constrain, tcore.Compatible, od, provider)
		if err != nil {
			return err
		}
		str, err := zdt.String(provider)
		if err != nil {
			return err
		}
		off, err := zdt.OffsetNanoseconds(provider)
		if err != nil {
			return err
		}
		fmt.Printf("kind: ZonedDateTime\n")
		fmt.Printf("value: %s\n", str)
		fmt.Printf("offsetNanoseconds: %d\n", off)

	case classification.HasZ || classification.OffsetNanoseconds != nil:
		i, err := tcore.ParseInstant(s)
		if err != nil {
			return err
		}
		fmt.Printf("kind: Instant\n")
		fmt.Printf("value: %s\n", i.String())
		fmt.Printf("epochNanoseconds: %s\n", i.EpochNanoseconds().String())

	case classification.HasTime:
		dt, err := tcore.ParsePlainDateTime(s)
		if err != nil {
			return err
		}
		fmt.Printf("kind: PlainDateTime\n")
		fmt.Printf("value: %s\n", dt.String())

	default:
		d, err := tcore.ParsePlainDate(s)
		if err != nil {
			return err
		}
		fmt.Printf("kind: PlainDate\n")
		fmt.Printf("value: %s\n", d.String())
	}
	return nil
}

func parseOffsetDisambiguation(s string) (tcore.OffsetDisambiguation, error) {
	switch s {
	case "use":
		return tcore.OffsetUse, nil
	case "prefer":
		return tcore.OffsetPrefer, nil
	case "ignore":
		return tcore.OffsetIgnore, nil
	case "reject":
		return tcore.OffsetReject, nil
	default:
		return 0, fmt.Errorf("unknown offset-disambiguation %q: want one of use, prefer, ignore, reject", s)
	}
}
