package tzprovider

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temporal-go/tcore/internal/terr"
)

// aliasTableYAML is the link set (RFC 9557's "primary" identifier per
// alias) used by NormalizeIdentifier. It is a small, commonly-needed
// subset of IANA's backward file, kept as embedded YAML (nornicdb's
// convention for small bundled tables) rather than a Go map literal so
// it reads as data, not code.
const aliasTableYAML = `
US/Eastern: America/New_York
US/Central: America/Chicago
US/Mountain: America/Denver
US/Pacific: America/Los_Angeles
US/Arizona: America/Phoenix
US/Hawaii: Pacific/Honolulu
US/Alaska: America/Anchorage
GB: Europe/London
GB-Eire: Europe/London
Europe/Kiev: Europe/Kyiv
Asia/Calcutta: Asia/Kolkata
Asia/Saigon: Asia/Ho_Chi_Minh
Asia/Katmandu: Asia/Kathmandu
UCT: UTC
Universal: UTC
Zulu: UTC
Greenwich: UTC
`

type aliasTable map[string]string

func loadAliasTable() (aliasTable, error) {
	var m aliasTable
	if err := yaml.Unmarshal([]byte(aliasTableYAML), &m); err != nil {
		return nil, terr.Assertf("tzprovider: malformed built-in alias table: %v", err)
	}
	normalized := make(aliasTable, len(m))
	for k, v := range m {
		normalized[k] = v
	}
	return normalized, nil
}

// resolve follows a single level of indirection through the alias
// table (the table's targets are themselves canonical, so one hop
// suffices) and reports whether name was IANA-identifier-shaped at all.
func (t aliasTable) resolve(name string) (primary string, isIANA bool) {
	if name == "" {
		return "", false
	}
	if target, ok := t[name]; ok {
		return target, true
	}
	if looksLikeIANAIdentifier(name) {
		return name, true
	}
	return name, false
}

// looksLikeIANAIdentifier applies the same coarse shape check the
// teacher's readTzDataFromDisk walk uses to skip non-zone files: at
// least one "/"-separated segment, no extension, not all-lowercase
// leading character (IANA zone names start with an uppercase letter or
// digit, e.g. "UTC", "Etc/GMT+0").
func looksLikeIANAIdentifier(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(name, ".") {
		return false
	}
	first := name[0]
	return !(first >= 'a' && first <= 'z')
}
