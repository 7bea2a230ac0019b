package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"fftcli/internal/config"
	"fftcli/pkg/contracts/domain"
)

// ExtractFile represents one discovered monthly extract workbook.
type ExtractFile struct {
	Path    string
	Name    string
	Service domain.ServiceType
	Period  string
	Size    int64
	ModTime time.Time
}

// periodPattern pulls the YYYYMM stamp out of an extract filename.
var periodPattern = regexp.MustCompile(`(20\d{2})(0[1-9]|1[0-2])`)

// Discovery provides extract discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindExtracts finds every extract workbook for one survey stream in
// the directory, oldest first.
func (d *Discovery) FindExtracts(dir string, svcCfg config.ServiceTypeConfig) ([]ExtractFile, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	pattern, err := regexp.Compile("(?i)^" + svcCfg.ExtractPattern + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid extract pattern for %s: %w", svcCfg.Service, err)
	}

	var found []ExtractFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "~$") || !pattern.MatchString(name) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		found = append(found, ExtractFile{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Service: svcCfg.Service,
			Period:  periodFromName(name),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Period != found[j].Period {
			return found[i].Period < found[j].Period
		}
		return found[i].ModTime.Before(found[j].ModTime)
	})

	return found, nil
}

// FindLatestExtract returns the newest extract for one survey stream,
// or false when the stream has no file this month.
func (d *Discovery) FindLatestExtract(dir string, svcCfg config.ServiceTypeConfig) (ExtractFile, bool, error) {
	found, err := d.FindExtracts(dir, svcCfg)
	if err != nil {
		return ExtractFile{}, false, err
	}
	if len(found) == 0 {
		return ExtractFile{}, false, nil
	}
	return found[len(found)-1], true, nil
}

// FindLatestExtracts returns the newest extract per survey stream.
// Streams with no extract present are simply absent from the result;
// the batch carries on with whatever arrived this month.
func (d *Discovery) FindLatestExtracts(dir string) (map[domain.ServiceType]ExtractFile, error) {
	out := make(map[domain.ServiceType]ExtractFile)
	for _, svcCfg := range config.AllServiceConfigs() {
		latest, ok, err := d.FindLatestExtract(dir, svcCfg)
		if err != nil {
			return nil, err
		}
		if ok {
			out[svcCfg.Service] = latest
		}
	}
	return out, nil
}

// periodFromName extracts the reporting period ("2026-07") from an
// extract filename, empty when the name carries no period stamp.
func periodFromName(name string) string {
	m := periodPattern.FindStringSubmatch(name)
	if m == nil {
		return ""
	}
	return m[1] + "-" + m[2]
}
