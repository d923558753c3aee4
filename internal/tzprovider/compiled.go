package tzprovider

import (
	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/terr"
	"github.com/temporal-go/tcore/internal/tz"
)

// CompiledZone is one zone's worth of data embedded at build time: a
// sorted transition table plus the POSIX TZ string used to extrapolate
// past the final transition.
type CompiledZone struct {
	Identifier  string
	Transitions []tz.Transition // ascending EpochNanoseconds
	PosixTZ     string
}

// CompiledProvider implements tz.Provider entirely from an in-memory
// table built ahead of time (spec.md §6.1's "compiled-data provider").
// Unlike FilesystemProvider it does no I/O and needs no cache, since
// the whole table already lives in memory; it is still built through a
// constructor rather than exposed as package state, keeping every
// Provider instance independent per spec.md §5.
type CompiledProvider struct {
	zones   map[string]CompiledZone
	aliases aliasTable
}

// utcZone is the one zone every CompiledProvider serves unconditionally,
// so that a caller who only ever uses Offset zones, or only asks for
// "UTC", never needs to supply a table at all.
var utcZone = CompiledZone{
	Identifier: "UTC",
	Transitions: []tz.Transition{
		{EpochNanoseconds: int128.FromInt64(0), OffsetNanoseconds: 0, IsDST: false},
	},
	PosixTZ: "UTC0",
}

// NewCompiledProvider builds a CompiledProvider serving the given
// zones (indexed by Identifier) plus the built-in UTC entry.
func NewCompiledProvider(zones ...CompiledZone) (*CompiledProvider, error) {
	aliases, err := loadAliasTable()
	if err != nil {
		return nil, err
	}
	table := map[string]CompiledZone{utcZone.Identifier: utcZone}
	for _, z := range zones {
		if z.Identifier == "" {
			return nil, terr.Typef("tzprovider: compiled zone missing an identifier")
		}
		table[z.Identifier] = z
	}
	return &CompiledProvider{zones: table, aliases: aliases}, nil
}

func (p *CompiledProvider) NormalizeIdentifier(name string) (normalized string, isIANA bool, primary string, err error) {
	target, ok := p.aliases.resolve(name)
	if !ok {
		return name, false, name, nil
	}
	return target, true, target, nil
}

func (p *CompiledProvider) TransitionsFor(zoneID string, fromNs, toNs int128.Int128) ([]tz.Transition, error) {
	z, ok := p.zones[zoneID]
	if !ok {
		return nil, terr.Genericf("tzprovider: no compiled data for zone %q", zoneID)
	}
	var out []tz.Transition
	lastBefore := -1
	for i, t := range z.Transitions {
		if t.EpochNanoseconds.Cmp(fromNs) < 0 {
			lastBefore = i
			continue
		}
		if t.EpochNanoseconds.Cmp(toNs) > 0 {
			break
		}
		if lastBefore >= 0 {
			out = append(out, z.Transitions[lastBefore])
			lastBefore = -1
		}
		out = append(out, t)
	}
	return out, nil
}

func (p *CompiledProvider) PosixTZFor(zoneID string) (string, bool, error) {
	z, ok := p.zones[zoneID]
	if !ok {
		return "", false, terr.Genericf("tzprovider: no compiled data for zone %q", zoneID)
	}
	if z.PosixTZ == "" {
		return "", false, nil
	}
	return z.PosixTZ, true, nil
}
