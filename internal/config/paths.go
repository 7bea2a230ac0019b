package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains the resolved application paths. All paths are
// relative to the executable directory, never the current working
// directory, so the binaries behave the same from dev and dist trees.
type Paths struct {
	ExecutableDir string
	DataDir       string
	ExtractsDir   string
	ReportsDir    string
	LogsDir       string
}

// GetPaths returns the application paths relative to the executable
// location.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %w", err)
	}
	exeDir := filepath.Dir(exe)

	return &Paths{
		ExecutableDir: exeDir,
		DataDir:       filepath.Join(exeDir, DefaultDataDir),
		ExtractsDir:   filepath.Join(exeDir, DefaultExtractsDir),
		ReportsDir:    filepath.Join(exeDir, DefaultReportsDir),
		LogsDir:       filepath.Join(exeDir, DefaultLogsDir),
	}, nil
}

// EnsureDirectories creates the data, extracts, reports and logs
// directories if they do not exist.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.ExtractsDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetLogPath returns the path of a log file inside the logs directory.
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetReportPath returns the path of a report file inside the reports
// directory.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}
