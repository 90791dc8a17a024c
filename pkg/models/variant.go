package models

import (
	"fmt"
)

// Handler determines what executing an item means.
type Handler int

const (
	HandlerApp Handler = iota
	HandlerNote
	HandlerURL
	HandlerAutomation
	HandlerFolder
	HandlerFile
)

var handlerNames = map[Handler]string{
	HandlerApp:        "App",
	HandlerNote:       "Note",
	HandlerURL:        "Url",
	HandlerAutomation: "Automation",
	HandlerFolder:     "Folder",
	HandlerFile:       "File",
}

func (h Handler) String() string {
	if name, ok := handlerNames[h]; ok {
		return name
	}
	return fmt.Sprintf("Handler(%d)", int(h))
}

// DisplayName is the human readable handler category.
func (h Handler) DisplayName() string {
	switch h {
	case HandlerApp:
		return "Application"
	case HandlerNote:
		return "Note"
	case HandlerURL:
		return "Website"
	case HandlerAutomation:
		return "Shortcut"
	case HandlerFolder:
		return "Folder"
	case HandlerFile:
		return "File"
	}
	return "Unknown"
}

// Glyph is the fixed display glyph for the handler.
func (h Handler) Glyph() string {
	switch h {
	case HandlerApp:
		return "📱"
	case HandlerNote:
		return "📝"
	case HandlerURL:
		return "🔗"
	case HandlerAutomation:
		return "⚡"
	case HandlerFolder:
		return "📁"
	case HandlerFile:
		return "📄"
	}
	return "•"
}

// MarshalText implements encoding.TextMarshaler.
func (h Handler) MarshalText() ([]byte, error) {
	name, ok := handlerNames[h]
	if !ok {
		return nil, fmt.Errorf("unknown handler %d", int(h))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Handler) UnmarshalText(text []byte) error {
	for k, name := range handlerNames {
		if name == string(text) {
			*h = k
			return nil
		}
	}
	return fmt.Errorf("unknown handler %q", string(text))
}

// Kind is the ranking classification of an item. The zero value is KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindApp
	KindBookmark
	KindNote
	KindWebSearch
	KindWebSuggestion
)

var kindNames = map[Kind]string{
	KindUnknown:       "Unknown",
	KindApp:           "App",
	KindBookmark:      "Bookmark",
	KindNote:          "Note",
	KindWebSearch:     "WebSearch",
	KindWebSuggestion: "WebSuggestion",
}

// Kinds lists every kind in ranking priority order, highest first.
var Kinds = []Kind{KindApp, KindNote, KindBookmark, KindUnknown, KindWebSearch, KindWebSuggestion}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	name, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unrecognized names decode
// to KindUnknown so older history files keep loading.
func (k *Kind) UnmarshalText(text []byte) error {
	for kind, name := range kindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	*k = KindUnknown
	return nil
}

// Variant binds an execution handler to a ranking kind. Only the package level
// variants below exist, so an item can never carry an inconsistent pair.
type Variant struct {
	handler Handler
	kind    Kind
	name    string
}

var (
	VariantApp           = Variant{HandlerApp, KindApp, "app"}
	VariantNote          = Variant{HandlerNote, KindNote, "note"}
	VariantBookmark      = Variant{HandlerURL, KindBookmark, "bookmark"}
	VariantURL           = Variant{HandlerURL, KindUnknown, "url"}
	VariantWebSearch     = Variant{HandlerURL, KindWebSearch, "web-search"}
	VariantWebSuggestion = Variant{HandlerURL, KindWebSuggestion, "web-suggestion"}
	// VariantShortcut ranks automations like applications. The App kind is a
	// deliberate bonus-table shortcut.
	VariantShortcut   = Variant{HandlerAutomation, KindApp, "shortcut"}
	VariantAutomation = Variant{HandlerAutomation, KindUnknown, "automation"}
	VariantFolder     = Variant{HandlerFolder, KindUnknown, "folder"}
	VariantFile       = Variant{HandlerFile, KindUnknown, "file"}
)

// Variants lists every known variant.
var Variants = []Variant{
	VariantApp,
	VariantNote,
	VariantBookmark,
	VariantURL,
	VariantWebSearch,
	VariantWebSuggestion,
	VariantShortcut,
	VariantAutomation,
	VariantFolder,
	VariantFile,
}

// Handler returns the variant's execution behavior.
func (v Variant) Handler() Handler { return v.handler }

// Kind returns the variant's ranking classification. The zero Variant behaves
// like VariantApp.
func (v Variant) Kind() Kind {
	if v.name == "" {
		return KindApp
	}
	return v.kind
}

func (v Variant) String() string {
	if v.name == "" {
		return "app"
	}
	return v.name
}

// VariantOf looks up the variant for a handler/kind pair.
func VariantOf(h Handler, k Kind) (Variant, bool) {
	for _, v := range Variants {
		if v.handler == h && v.kind == k {
			return v, true
		}
	}
	return Variant{}, false
}

// DefaultVariant returns the variant used when only the handler is known.
func DefaultVariant(h Handler) Variant {
	switch h {
	case HandlerApp:
		return VariantApp
	case HandlerNote:
		return VariantNote
	case HandlerAutomation:
		return VariantAutomation
	case HandlerFolder:
		return VariantFolder
	case HandlerFile:
		return VariantFile
	}
	return VariantURL
}
