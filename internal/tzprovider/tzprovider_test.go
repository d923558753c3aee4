package tzprovider

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/temporal-go/tcore/internal/int128"
)

// buildV1TZif hand-assembles a minimal valid v1 TZif block: one
// transition at epoch 0 into a single fixed UTC+0 type, per tzfile(5).
func buildV1TZif() []byte {
	buf := make([]byte, 44)
	copy(buf[0:4], tzifMagic)
	buf[4] = 0x00 // version: plain v1
	binary.BigEndian.PutUint32(buf[20:24], 0) // isutcnt
	binary.BigEndian.PutUint32(buf[24:28], 0) // isstdcnt
	binary.BigEndian.PutUint32(buf[28:32], 0) // leapcnt
	binary.BigEndian.PutUint32(buf[32:36], 1) // timecnt
	binary.BigEndian.PutUint32(buf[36:40], 1) // typecnt
	binary.BigEndian.PutUint32(buf[40:44], 4) // charcnt

	body := make([]byte, 0, 15)
	transitionTime := make([]byte, 4)
	binary.BigEndian.PutUint32(transitionTime, 0) // epoch 0
	body = append(body, transitionTime...)
	body = append(body, 0x00)             // transition type index
	offset := make([]byte, 4)
	binary.BigEndian.PutUint32(offset, 0) // UTC offset seconds
	body = append(body, offset...)
	body = append(body, 0x00, 0x00) // isdst, abbrind
	body = append(body, []byte("UTC\x00")...)

	return append(buf, body...)
}

func TestParseTZifV1Basic(t *testing.T) {
	parsed, err := parseTZif(buildV1TZif())
	require.NoError(t, err)
	require.Len(t, parsed.transitionTimes, 1)
	assert.Equal(t, int64(0), parsed.transitionTimes[0])
	assert.Equal(t, uint8(0), parsed.transitionTypes[0])
	require.Len(t, parsed.types, 1)
	assert.Equal(t, int32(0), parsed.types[0].utOffsetSeconds)
	assert.False(t, parsed.types[0].isDST)
	assert.Empty(t, parsed.posixFooter)
}

func TestParseTZifBadMagicFails(t *testing.T) {
	_, err := parseTZif(make([]byte, 44))
	assert.Error(t, err)
}

func TestTransitionsInRangeIncludesPredecessor(t *testing.T) {
	parsed := parsedTZif{
		transitionTimes: []int64{0, 1_000_000, 2_000_000},
		transitionTypes: []uint8{0, 1, 0},
		types: []localTimeType{
			{utOffsetSeconds: 0},
			{utOffsetSeconds: 3600, isDST: true},
		},
	}
	// Transition times are seconds; converted to nanoseconds they land at
	// 0, 1e15, and 2e15. A window starting between the 1st and 2nd
	// transition and ending between the 2nd and 3rd should surface the
	// 1st transition (as the in-effect predecessor) plus the 2nd.
	out, err := parsed.transitionsInRange(int128.FromInt64(500_000_000_000_000), int128.FromInt64(1_500_000_000_000_000))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(0), mustI64(out[0].EpochNanoseconds))
	assert.Equal(t, int64(1_000_000)*1_000_000_000, mustI64(out[1].EpochNanoseconds))
}

func mustI64(v int128.Int128) int64 {
	n, _ := v.Int64()
	return n
}

func TestAliasTableResolvesKnownAlias(t *testing.T) {
	table, err := loadAliasTable()
	require.NoError(t, err)
	primary, isIANA := table.resolve("US/Eastern")
	assert.True(t, isIANA)
	assert.Equal(t, "America/New_York", primary)
}

func TestAliasTableLeavesUnknownIANAIdentifierAlone(t *testing.T) {
	table, err := loadAliasTable()
	require.NoError(t, err)
	primary, isIANA := table.resolve("Europe/Berlin")
	assert.True(t, isIANA)
	assert.Equal(t, "Europe/Berlin", primary)
}

func TestAliasTableRejectsLowercaseShape(t *testing.T) {
	table, err := loadAliasTable()
	require.NoError(t, err)
	_, isIANA := table.resolve("not-a-zone-name")
	assert.False(t, isIANA)
}

func TestCompiledProviderServesUTCByDefault(t *testing.T) {
	p, err := NewCompiledProvider()
	require.NoError(t, err)
	transitions, err := p.TransitionsFor("UTC", int128.FromInt64(-1), int128.FromInt64(1))
	require.NoError(t, err)
	require.NotEmpty(t, transitions)
	assert.Equal(t, int64(0), transitions[0].OffsetNanoseconds)

	posix, ok, err := p.PosixTZFor("UTC")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "UTC0", posix)
}

func TestCompiledProviderUnknownZoneFails(t *testing.T) {
	p, err := NewCompiledProvider()
	require.NoError(t, err)
	_, err = p.TransitionsFor("Nowhere/Imaginary", int128.FromInt64(0), int128.FromInt64(1))
	assert.Error(t, err)
}
