package tzprovider

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/temporal-go/tcore/internal/int128"
	"github.com/temporal-go/tcore/internal/terr"
	"github.com/temporal-go/tcore/internal/tz"
)

// defaultZoneSources mirrors the well-known system zoneinfo search
// path. The teacher reaches the stdlib's private time.zoneSources
// through a go:linkname (unsafe.go); this package avoids that fragile
// dependency on an unexported runtime symbol and instead lists the
// same directories tzdata packages install to on every major distro.
var defaultZoneSources = []string{
	"/usr/share/zoneinfo",
	"/usr/share/lib/zoneinfo",
	"/usr/lib/zoneinfo",
	"/usr/lib/locale/TZ/",
}

// FilesystemProvider implements tz.Provider by reading TZif files from
// disk the way go-chrono/chrono's zones.go walks a zoneinfo tree,
// caching each parsed zone behind an instance-level mutex (never a
// package-level singleton, per spec.md §5's "no process-wide mutable
// state" rule — the teacher's loadZones uses a sync.Once package
// global instead).
type FilesystemProvider struct {
	sources []string
	aliases aliasTable
	log     *logrus.Logger

	mu    sync.RWMutex
	cache map[string]parsedTZif
}

// NewFilesystemProvider builds a FilesystemProvider. If extraSources is
// non-empty those directories are tried first, then $ZONEINFO, then
// defaultZoneSources.
func NewFilesystemProvider(extraSources ...string) (*FilesystemProvider, error) {
	aliases, err := loadAliasTable()
	if err != nil {
		return nil, err
	}
	sources := append([]string{}, extraSources...)
	if env := os.Getenv("ZONEINFO"); env != "" {
		sources = append(sources, env)
	}
	sources = append(sources, defaultZoneSources...)

	return &FilesystemProvider{
		sources: sources,
		aliases: aliases,
		log:     logrus.New(),
		cache:   make(map[string]parsedTZif),
	}, nil
}

func (p *FilesystemProvider) NormalizeIdentifier(name string) (normalized string, isIANA bool, primary string, err error) {
	target, ok := p.aliases.resolve(name)
	if !ok {
		return name, false, name, nil
	}
	return target, true, target, nil
}

func (p *FilesystemProvider) TransitionsFor(zoneID string, fromNs, toNs int128.Int128) ([]tz.Transition, error) {
	parsed, err := p.load(zoneID)
	if err != nil {
		return nil, err
	}
	return parsed.transitionsInRange(fromNs, toNs)
}

func (p *FilesystemProvider) PosixTZFor(zoneID string) (string, bool, error) {
	parsed, err := p.load(zoneID)
	if err != nil {
		return "", false, err
	}
	if parsed.posixFooter == "" {
		return "", false, nil
	}
	return parsed.posixFooter, true, nil
}

func (p *FilesystemProvider) load(zoneID string) (parsedTZif, error) {
	p.mu.RLock()
	cached, ok := p.cache[zoneID]
	p.mu.RUnlock()
	if ok {
		return cached, nil
	}

	data, err := p.readFile(zoneID)
	if err != nil {
		return parsedTZif{}, err
	}
	parsed, err := parseTZif(data)
	if err != nil {
		return parsedTZif{}, err
	}

	p.mu.Lock()
	p.cache[zoneID] = parsed
	p.mu.Unlock()
	p.log.WithField("zone", zoneID).Debug("tzprovider: loaded and cached zone")
	return parsed, nil
}

func (p *FilesystemProvider) readFile(zoneID string) ([]byte, error) {
	if strings.Contains(zoneID, "..") {
		return nil, terr.Syntaxf("tzprovider: invalid zone identifier %q", zoneID)
	}
	var firstErr error
	for _, source := range p.sources {
		candidate := filepath.Join(source, filepath.FromSlash(zoneID))
		data, err := os.ReadFile(candidate)
		if err == nil {
			return data, nil
		}
		if firstErr == nil && !os.IsNotExist(err) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, terr.Genericf("tzprovider: reading zone %q: %v", zoneID, firstErr)
	}
	return nil, terr.Genericf("tzprovider: zone %q not found in any configured source", zoneID)
}

// ListZones walks a zoneinfo source directory the way the teacher's
// readTzDataFromDisk does (skipping files with a dotted extension or a
// lowercase-leading name, which are never zone data), returning every
// zone identifier discovered.
func ListZones(source string) ([]string, error) {
	var names []string
	err := filepath.Walk(source, func(path string, info fs.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		name, relErr := filepath.Rel(source, path)
		if relErr != nil {
			return relErr
		}
		name = filepath.ToSlash(name)
		if name == "" || strings.Contains(name, ".") {
			return nil
		}
		if name[0] >= 'a' && name[0] <= 'z' {
			return nil
		}
		names = append(names, name)
		return nil
	})
	return names, err
}
