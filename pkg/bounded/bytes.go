// Package bounded provides byte buffers with a fixed maximum length.
package bounded

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrTooLarge is returned when a value exceeds the buffer bound.
var ErrTooLarge = errors.New("value too large")

// Bytes is an immutable byte buffer that never holds more than its bound.
// The zero value is an empty buffer with no room.
type Bytes struct {
	max  int
	data []byte
}

// New copies b into a buffer bounded by max.
func New(max int, b []byte) (Bytes, error) {
	if max < 0 {
		return Bytes{}, fmt.Errorf("negative bound %d", max)
	}
	if len(b) > max {
		return Bytes{}, fmt.Errorf("%w: %d bytes, max %d", ErrTooLarge, len(b), max)
	}
	return Bytes{max: max, data: clone(b)}, nil
}

// FromString is New for string input.
func FromString(max int, s string) (Bytes, error) {
	return New(max, []byte(s))
}

// Truncate builds a buffer keeping at most max leading bytes of b.
func Truncate(max int, b []byte) Bytes {
	if max < 0 {
		max = 0
	}
	if len(b) > max {
		b = b[:max]
	}
	return Bytes{max: max, data: clone(b)}
}

func (b Bytes) Len() int { return len(b.data) }

// Cap returns the bound.
func (b Bytes) Cap() int { return b.max }

func (b Bytes) IsEmpty() bool { return len(b.data) == 0 }

// Bytes returns a copy of the content.
func (b Bytes) Bytes() []byte { return clone(b.data) }

func (b Bytes) String() string { return string(b.data) }

// Equal reports whether both buffers hold the same content.
func (b Bytes) Equal(other Bytes) bool { return bytes.Equal(b.data, other.data) }

type wire struct {
	Max  int    `json:"max"`
	Data []byte `json:"data"`
}

func (b Bytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire{Max: b.max, Data: b.data})
}

func (b *Bytes) UnmarshalJSON(raw []byte) error {
	var w wire
	if err := json.Unmarshal(raw, &w); err != nil {
		return err
	}
	v, err := New(w.Max, w.Data)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

func clone(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
