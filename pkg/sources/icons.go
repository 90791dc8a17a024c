package sources

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
)

const iconSize = "64"

// Icons extracts application icons as base64 encoded PNG data
type Icons struct {
	runner  Runner
	enabled bool
}

// NewIcons creates an icon extractor. Extraction only works where the
// platform ships the bundle tools.
func NewIcons(runner Runner) *Icons {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Icons{runner: runner, enabled: currentPlatform.iconExtraction}
}

// Extract returns the icon of the application bundle at appPath. It is best
// effort: any failure simply reports no icon.
func (i *Icons) Extract(ctx context.Context, appPath string) (string, bool) {
	if !i.enabled {
		return "", false
	}

	stdout, _, err := i.runner.Output(ctx, "defaults", "read", filepath.Join(appPath, "Contents", "Info"), "CFBundleIconFile")
	if err != nil {
		return "", false
	}
	name := strings.TrimSuffix(strings.TrimSpace(string(stdout)), ".icns")
	if name == "" {
		return "", false
	}

	icns := filepath.Join(appPath, "Contents", "Resources", name+".icns")
	if _, err := os.Stat(icns); err != nil {
		return "", false
	}

	tmp, err := os.CreateTemp("", "grinta-icon-*.png")
	if err != nil {
		return "", false
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if _, _, err := i.runner.Output(ctx, "sips", "-s", "format", "png", "-Z", iconSize, icns, "--out", tmpPath); err != nil {
		return "", false
	}

	data, err := os.ReadFile(tmpPath)
	if err != nil || len(data) == 0 {
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}
