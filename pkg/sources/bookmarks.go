package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/grinta-launcher/grinta/pkg/models"
)

const maxNumberedProfiles = 9

type bookmarkNode struct {
	Name     string         `json:"name"`
	Type     string         `json:"type"`
	URL      string         `json:"url"`
	Children []bookmarkNode `json:"children"`
}

type bookmarkFile struct {
	Roots map[string]json.RawMessage `json:"roots"`
}

// bookmarkRootOrder fixes the traversal order of the well-known roots
var bookmarkRootOrder = []string{"bookmark_bar", "other", "synced"}

// Bookmarks reads Chromium-family browser bookmarks
type Bookmarks struct {
	roots []string // browser data directories
}

// NewBookmarks creates a reader for the platform's Chrome and Chromium
// profiles under home.
func NewBookmarks(home string) *Bookmarks {
	roots := make([]string, len(currentPlatform.browserRoots))
	for i, rel := range currentPlatform.browserRoots {
		roots[i] = filepath.Join(home, rel)
	}
	return &Bookmarks{roots: roots}
}

// List returns bookmarks from the Default profile and Profile 1 through 9 of
// every browser. Unreadable profiles are skipped.
func (b *Bookmarks) List(ctx context.Context) ([]models.Item, error) {
	if len(b.roots) == 0 {
		return nil, ErrUnsupported
	}

	var items []models.Item
	var errs []error
	for _, root := range b.roots {
		profiles := []string{"Default"}
		for i := 1; i <= maxNumberedProfiles; i++ {
			profiles = append(profiles, fmt.Sprintf("Profile %d", i))
		}

		for _, profile := range profiles {
			if ctx.Err() != nil {
				return items, ctx.Err()
			}
			found, err := readBookmarks(filepath.Join(root, profile, "Bookmarks"))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			for _, item := range found {
				items = append(items, item.WithMeta("profile", profile))
			}
		}
	}
	return items, errors.Join(errs...)
}

func readBookmarks(path string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bookmarks %s: %w", path, err)
	}
	return parseBookmarks(data)
}

func parseBookmarks(data []byte) ([]models.Item, error) {
	var file bookmarkFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}

	var items []models.Item
	for _, name := range bookmarkRootOrder {
		raw, ok := file.Roots[name]
		if !ok {
			continue
		}
		var node bookmarkNode
		if err := json.Unmarshal(raw, &node); err != nil {
			return nil, fmt.Errorf("failed to parse bookmark root %s: %w", name, err)
		}
		items = collectBookmarks(node, items)
	}
	return items, nil
}

func collectBookmarks(node bookmarkNode, items []models.Item) []models.Item {
	if node.Type == "url" && node.URL != "" {
		items = append(items, models.NewItem(node.Name+" (Bookmark)", models.VariantBookmark, node.URL))
	}
	for _, child := range node.Children {
		items = collectBookmarks(child, items)
	}
	return items
}
