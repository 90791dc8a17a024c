package sources

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/grinta-launcher/grinta/pkg/models"
)

// Applications lists installed applications from a set of directories
type Applications struct {
	dirs      []string
	extension string
	icons     *Icons
}

// NewApplications creates an application lister. An empty dirs uses the
// platform defaults. When icons is non-nil every app gets a base64 icon.
func NewApplications(dirs []string, icons *Icons) *Applications {
	if len(dirs) == 0 {
		dirs = DefaultAppDirs()
	}
	return &Applications{
		dirs:      dirs,
		extension: currentPlatform.appExtension,
		icons:     icons,
	}
}

// List scans every directory. Missing directories are skipped.
func (a *Applications) List(ctx context.Context) ([]models.Item, error) {
	if a.extension == "" {
		return nil, ErrUnsupported
	}

	var items []models.Item
	for _, dir := range a.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return items, err
		}

		for _, entry := range entries {
			if ctx.Err() != nil {
				return items, ctx.Err()
			}
			if !strings.EqualFold(filepath.Ext(entry.Name()), a.extension) {
				continue
			}
			path := filepath.Join(dir, entry.Name())

			var item models.Item
			var ok bool
			if a.extension == ".desktop" {
				item, ok = desktopEntry(path)
			} else {
				item, ok = bundleEntry(path), true
			}
			if !ok {
				continue
			}
			if a.icons != nil {
				if icon, found := a.icons.Extract(ctx, path); found {
					item.Base64Icon = icon
				}
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Label) < strings.ToLower(items[j].Label)
	})
	return items, nil
}

// bundleEntry maps an application bundle such as Safari.app
func bundleEntry(path string) models.Item {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return models.NewItem(name, models.VariantApp, path)
}

// desktopEntry parses the [Desktop Entry] group of a freedesktop file.
// Hidden entries and non-applications are skipped.
func desktopEntry(path string) (models.Item, bool) {
	f, err := os.Open(path)
	if err != nil {
		return models.Item{}, false
	}
	defer f.Close()

	var name, entryType string
	inEntry := false
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Name":
			name = strings.TrimSpace(value)
		case "Type":
			entryType = strings.TrimSpace(value)
		case "NoDisplay", "Hidden":
			if strings.EqualFold(strings.TrimSpace(value), "true") {
				return models.Item{}, false
			}
		}
	}

	if name == "" || (entryType != "" && entryType != "Application") {
		return models.Item{}, false
	}
	return models.NewItem(name, models.VariantApp, path), true
}
