// Package export writes heightfields as JSON, PNG and 16-bit TIFF, to a
// local filesystem or any other Store.
package export

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"heightgen/internal/heightfield"
)

var json = jsoniter.Config{
	IndentionStep:                 0,
	MarshalFloatWith6Digits:       false,
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	UseNumber:                     false,
	DisallowUnknownFields:         false,
	TagKey:                        "json",
	OnlyTaggedField:               false,
	ValidateJsonRawMessage:        false,
	ObjectFieldMustBeSimpleString: true,
	CaseSensitive:                 true,
}.Froze()

type fieldJSON struct {
	Size    int         `json:"size"`
	Step    float64     `json:"step"`
	Min     float64     `json:"min"`
	Max     float64     `json:"max"`
	Heights [][]float64 `json:"heights"` // heights[row][col]
}

// WriteJSON encodes f as an object with one array per row.
func WriteJSON(w io.Writer, f *heightfield.Field) error {
	lo, hi := f.Bounds()
	out := fieldJSON{
		Size:    f.Size(),
		Step:    f.Step(),
		Min:     lo,
		Max:     hi,
		Heights: make([][]float64, f.Size()),
	}
	for r := range out.Heights {
		out.Heights[r] = f.Row(r)
	}

	stream := json.BorrowStream(w)
	defer json.ReturnStream(stream)
	stream.WriteVal(out)
	stream.WriteRaw("\n")
	if stream.Error != nil {
		return fmt.Errorf("encode field: %w", stream.Error)
	}
	return stream.Flush()
}

// ReadJSON decodes a field written by WriteJSON.
func ReadJSON(r io.Reader) (*heightfield.Field, error) {
	var in fieldJSON
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, fmt.Errorf("decode field: %w", err)
	}
	if len(in.Heights) != in.Size {
		return nil, fmt.Errorf("%w: %d rows for size %d", heightfield.ErrInvalidSize, len(in.Heights), in.Size)
	}
	flat := make([]float64, 0, in.Size*in.Size)
	for r, row := range in.Heights {
		if len(row) != in.Size {
			return nil, fmt.Errorf("%w: row %d has %d heights", heightfield.ErrInvalidSize, r, len(row))
		}
		flat = append(flat, row...)
	}
	return heightfield.FromHeights(in.Size, in.Step, flat)
}
