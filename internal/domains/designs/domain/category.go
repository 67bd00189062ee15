package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Category is an optional label attached to a design. The zero value is "no category";
// callers must go through Get to reach the label.
type Category struct {
	label string
	set   bool
}

// SomeCategory returns a present category. Blank labels collapse to NoCategory.
func SomeCategory(label string) Category {
	label = strings.TrimSpace(label)
	if label == "" {
		return NoCategory()
	}
	return Category{label: label, set: true}
}

// NoCategory returns the absent category.
func NoCategory() Category {
	return Category{}
}

// CategoryFromPtr lifts a nullable transport/storage value into a Category.
func CategoryFromPtr(label *string) Category {
	if label == nil {
		return NoCategory()
	}
	return SomeCategory(*label)
}

// Get returns the label and whether it is present.
func (c Category) Get() (string, bool) {
	return c.label, c.set
}

// IsSet reports whether a label is present.
func (c Category) IsSet() bool {
	return c.set
}

// Ptr lowers the category to a nullable value at storage/transport boundaries.
func (c Category) Ptr() *string {
	if !c.set {
		return nil
	}
	label := c.label
	return &label
}

// String renders the label, or the empty string when absent.
func (c Category) String() string {
	return c.label
}

// MarshalJSON encodes an absent category as null.
func (c Category) MarshalJSON() ([]byte, error) {
	if !c.set {
		return []byte("null"), nil
	}
	return json.Marshal(c.label)
}

// UnmarshalJSON accepts null or a string.
func (c *Category) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*c = NoCategory()
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*c = SomeCategory(label)
	return nil
}
