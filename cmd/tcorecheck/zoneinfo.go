package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/temporal-go/tcore"
	"github.com/temporal-go/tcore/internal/calendar"
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/tzprovider"
)

func newZoneinfoCommand() *cobra.Command {
	var tzSources []string
	var at string
	var list string

	cmd := &cobra.Command{
		Use:   "zoneinfo [identifier]",
		Short: "Inspect a time zone's offset, POSIX footer, and wall-clock projection",
		Long: `zoneinfo resolves identifier (an IANA zone name or a fixed offset
such as "+05:30") against a FilesystemProvider reading TZif data from
disk, and prints the offset and wall-clock date/time in effect at --at
(an Instant string, default now).

With --list=<dir> it instead walks a zoneinfo source directory and
prints every zone identifier found there, without resolving anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list != "" {
				return runZoneinfoList(list)
			}
			if len(args) != 1 {
				return fmt.Errorf("zoneinfo requires an identifier argument unless --list is given")
			}
			return runZoneinfo(args[0], tzSources, at)
		},
	}
	cmd.Flags().StringSliceVar(&tzSources, "tzdata", nil, "extra zoneinfo directories to search before the system default")
	cmd.Flags().StringVar(&at, "at", "", "Instant string to resolve the zone at (default: now)")
	cmd.Flags().StringVar(&list, "list", "", "list every zone identifier under this zoneinfo directory instead of resolving one")
	return cmd
}

func runZoneinfoList(source string) error {
	names, err := tzprovider.ListZones(source)
	if err != nil {
		return fmt.Errorf("listing zones under %q: %w", source, err)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	log.WithField("count", len(names)).WithField("source", source).Info("tcorecheck: listed zoneinfo directory")
	return nil
}

func runZoneinfo(identifier string, tzSources []string, at string) error {
	provider, err := tzprovider.NewFilesystemProvider(tzSources...)
	if err != nil {
		return err
	}

	instant, err := resolveAtInstant(at)
	if err != nil {
		return err
	}

	zone, err := resolveZone(identifier)
	if err != nil {
		return err
	}
	zdt := tcore.NewZonedDateTime(instant, zone, calendar.Iso)

	off, err := zdt.OffsetNanoseconds(provider)
	if err != nil {
		return fmt.Errorf("resolving offset for %q: %w", identifier, err)
	}
	wall, err := zdt.ToPlainDateTime(provider)
	if err != nil {
		return err
	}
	hoursInDay, err := zdt.HoursInDay(provider)
	if err != nil {
		return err
	}

	fmt.Printf("identifier: %s\n", identifier)
	fmt.Printf("offsetNanoseconds: %d\n", off)
	fmt.Printf("wallDateTime: %s\n", wall.String())
	fmt.Printf("hoursInDay: %g\n", hoursInDay.Float64())

	if posix, ok, err := provider.PosixTZFor(identifier); err == nil && ok {
		fmt.Printf("posixFooter: %s\n", posix)
	}
	return nil
}

// resolveZone recognizes a fixed "+HH:MM"/"-HH:MM" offset identifier
// directly, the way zoneddatetime.go's zoneFromAnnotation does for a
// parsed IXDTF annotation body; anything else is treated as an IANA
// identifier resolved lazily through the Provider.
func resolveZone(identifier string) (tcore.Zone, error) {
	if len(identifier) == 6 && (identifier[0] == '+' || identifier[0] == '-') && identifier[3] == ':' {
		h, errH := strconv.Atoi(identifier[1:3])
		m, errM := strconv.Atoi(identifier[4:6])
		if errH == nil && errM == nil {
			total := int64(h*3600+m*60) * 1_000_000_000
			if identifier[0] == '-' {
				total = -total
			}
			return tcore.ZoneFromOffsetNanoseconds(total)
		}
	}
	return tcore.ZoneFromIANAIdentifier(identifier), nil
}

func resolveAtInstant(at string) (tcore.Instant, error) {
	if at == "" {
		return tcore.FromEpochNanoseconds(int128.FromInt64(time.Now().UnixNano()))
	}
	return tcore.ParseInstant(at)
}
