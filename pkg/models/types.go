package models

import (
	"encoding/json"
	"fmt"
	"maps"
	"time"
)

// Item is a single launcher result the user can select and execute.
//
// Items are plain values and are cheap to copy. RanAt is only ever stamped by
// the history store when the item is executed.
type Item struct {
	Label      string
	Value      string
	Icon       string
	Base64Icon string
	Metadata   map[string]string
	RanAt      *time.Time
	Variant    Variant
}

// Key identifies an item for history deduplication.
type Key struct {
	Label   string
	Handler Handler
	Value   string
}

// NewItem creates an item whose icon is the handler glyph.
func NewItem(label string, variant Variant, value string) Item {
	return Item{
		Label:    label,
		Value:    value,
		Icon:     variant.Handler().Glyph(),
		Metadata: map[string]string{},
		Variant:  variant,
	}
}

// Handler returns the execution behavior of the item.
func (i Item) Handler() Handler {
	return i.Variant.Handler()
}

// Kind returns the ranking classification of the item.
func (i Item) Kind() Kind {
	return i.Variant.Kind()
}

// Key returns the (label, handler, value) identity of the item.
func (i Item) Key() Key {
	return Key{Label: i.Label, Handler: i.Handler(), Value: i.Value}
}

// WithMeta returns a copy of the item with key set to value.
func (i Item) WithMeta(key, value string) Item {
	c := i.Clone()
	if c.Metadata == nil {
		c.Metadata = map[string]string{}
	}
	c.Metadata[key] = value
	return c
}

// Clone returns a copy that shares no mutable state with i.
func (i Item) Clone() Item {
	c := i
	if i.Metadata != nil {
		c.Metadata = maps.Clone(i.Metadata)
	}
	if i.RanAt != nil {
		t := *i.RanAt
		c.RanAt = &t
	}
	return c
}

// itemJSON is the persisted and CLI-facing shape of an Item.
type itemJSON struct {
	Label      string            `json:"label"`
	Handler    Handler           `json:"handler"`
	Value      string            `json:"value"`
	Icon       string            `json:"icon"`
	RanAt      *time.Time        `json:"ran_at,omitempty"`
	Base64Icon string            `json:"base64_icon,omitempty"`
	Metadata   map[string]string `json:"metadata"`
	Kind       Kind              `json:"kind"`
}

// MarshalJSON implements json.Marshaler.
func (i Item) MarshalJSON() ([]byte, error) {
	meta := i.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	return json.Marshal(itemJSON{
		Label:      i.Label,
		Handler:    i.Handler(),
		Value:      i.Value,
		Icon:       i.Icon,
		RanAt:      i.RanAt,
		Base64Icon: i.Base64Icon,
		Metadata:   meta,
		Kind:       i.Kind(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. A handler/kind pair that does
// not name a known variant falls back to the handler's default variant.
func (i *Item) UnmarshalJSON(data []byte) error {
	raw := itemJSON{Kind: KindUnknown}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	variant, ok := VariantOf(raw.Handler, raw.Kind)
	if !ok {
		variant = DefaultVariant(raw.Handler)
	}
	meta := raw.Metadata
	if meta == nil {
		meta = map[string]string{}
	}
	*i = Item{
		Label:      raw.Label,
		Value:      raw.Value,
		Icon:       raw.Icon,
		Base64Icon: raw.Base64Icon,
		Metadata:   meta,
		RanAt:      raw.RanAt,
		Variant:    variant,
	}
	return nil
}

func (i Item) String() string {
	return fmt.Sprintf("%s [%s] %s", i.Label, i.Handler(), i.Value)
}
