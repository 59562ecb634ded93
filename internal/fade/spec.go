// internal/fade/spec.go
package fade

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/aleontiev/vue-typer/internal/segment"
	"github.com/aleontiev/vue-typer/internal/types"
)

// OutPolicy controls how a fade behaves once typing reaches the end of the
// text: Fast collapses the remaining offset at once, Slow counts it down one
// tick at a time, None leaves the boundary where it was.
type OutPolicy int

const (
	OutFast OutPolicy = iota
	OutSlow
	OutNone
)

func (p OutPolicy) String() string {
	switch p {
	case OutFast:
		return "fast"
	case OutSlow:
		return "slow"
	case OutNone:
		return "none"
	}
	return "unknown"
}

// Spec is one canonical fade descriptor. Immutable for the lifetime of a
// reset cycle; the scheduler never re-parses raw configuration.
type Spec struct {
	Offset      int
	Granularity segment.Granularity
	Key         string
	Out         OutPolicy
}

// DefaultSpec is the descriptor produced by a bare `fade = true`.
func DefaultSpec() Spec {
	return Spec{Offset: 1, Granularity: segment.Char, Key: "faded", Out: OutFast}
}

// stringPattern is the compact fade grammar: offset digits, optional
// granularity (c/w/l), optional out policy (s/f/n). Case-insensitive.
var stringPattern = regexp.MustCompile(`(?i)^(\d+)([cwl]?)([sfn]?)$`)

// Normalize converts any accepted fade configuration shape into canonical
// Spec records. Accepted shapes: nil/false (no fades), true, a non-negative
// number, a grammar string, an object map, a Spec, or a sequence of any of
// those. Errors are *types.ConfigError.
func Normalize(v interface{}) ([]Spec, error) {
	if v == nil {
		return nil, nil
	}

	switch val := v.(type) {
	case bool:
		if !val {
			return nil, nil
		}
		return []Spec{DefaultSpec()}, nil

	case string:
		spec, err := parseString(val)
		if err != nil {
			return nil, err
		}
		return []Spec{spec}, nil

	case Spec:
		if err := validateSpec(val); err != nil {
			return nil, err
		}
		return []Spec{val}, nil

	case map[string]interface{}:
		spec, err := parseObject(val)
		if err != nil {
			return nil, err
		}
		return []Spec{spec}, nil
	}

	// Numbers arrive as assorted kinds depending on the decoder (int from
	// Go callers, int64 from TOML, float64 from JSON); sequences likewise.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return normalizeNumber(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return normalizeNumber(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return normalizeNumber(rv.Float())
	case reflect.Slice, reflect.Array:
		var specs []Spec
		for i := 0; i < rv.Len(); i++ {
			sub, err := Normalize(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			specs = append(specs, sub...)
		}
		return specs, nil
	}

	return nil, types.NewConfigError("fade", "unsupported value %v (%T)", v, v)
}

func normalizeNumber(f float64) ([]Spec, error) {
	if f < 0 {
		return nil, types.NewConfigError("fade", "offset must be non-negative, got %v", f)
	}
	if f != math.Trunc(f) {
		return nil, types.NewConfigError("fade", "offset must be an integer, got %v", f)
	}
	spec := DefaultSpec()
	spec.Offset = int(f)
	return []Spec{spec}, nil
}

func parseString(s string) (Spec, error) {
	m := stringPattern.FindStringSubmatch(s)
	if m == nil {
		return Spec{}, types.NewConfigError("fade", "string %q does not match <offset>[c|w|l][s|f|n]", s)
	}

	offset, err := strconv.Atoi(m[1])
	if err != nil {
		return Spec{}, types.NewConfigError("fade", "offset in %q out of range", s)
	}

	spec := Spec{
		Offset:      offset,
		Granularity: segment.Char,
		Key:         "faded-" + s,
		Out:         OutSlow, // omitted policy means slow
	}
	switch strings.ToLower(m[2]) {
	case "w":
		spec.Granularity = segment.Word
	case "l":
		spec.Granularity = segment.Line
	}
	switch strings.ToLower(m[3]) {
	case "f":
		spec.Out = OutFast
	case "n":
		spec.Out = OutNone
	}
	return spec, nil
}

func parseObject(obj map[string]interface{}) (Spec, error) {
	spec := DefaultSpec()

	for k, v := range obj {
		switch strings.ToLower(k) {
		case "offset":
			n, ok := asInt(v)
			if !ok {
				return Spec{}, types.NewConfigError("fade", "offset must be an integer, got %v", v)
			}
			spec.Offset = n
		case "type":
			s, ok := v.(string)
			if !ok {
				return Spec{}, types.NewConfigError("fade", "type must be a string, got %v", v)
			}
			switch strings.ToLower(s) {
			case "char":
				spec.Granularity = segment.Char
			case "word":
				spec.Granularity = segment.Word
			case "line":
				spec.Granularity = segment.Line
			default:
				return Spec{}, types.NewConfigError("fade", "unknown type %q", s)
			}
		case "key":
			s, ok := v.(string)
			if !ok {
				return Spec{}, types.NewConfigError("fade", "key must be a string, got %v", v)
			}
			spec.Key = s
		case "out":
			s, ok := v.(string)
			if !ok {
				return Spec{}, types.NewConfigError("fade", "out must be a string, got %v", v)
			}
			switch strings.ToLower(s) {
			case "fast":
				spec.Out = OutFast
			case "slow":
				spec.Out = OutSlow
			case "none":
				spec.Out = OutNone
			default:
				return Spec{}, types.NewConfigError("fade", "unknown out policy %q", s)
			}
		default:
			return Spec{}, types.NewConfigError("fade", "unknown field %q", k)
		}
	}

	if err := validateSpec(spec); err != nil {
		return Spec{}, err
	}
	return spec, nil
}

func validateSpec(spec Spec) error {
	if spec.Offset < 0 {
		return types.NewConfigError("fade", "offset must be non-negative, got %d", spec.Offset)
	}
	if spec.Key == "" {
		return types.NewConfigError("fade", "key must not be empty")
	}
	return nil
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

// String implements fmt.Stringer for debug logging.
func (s Spec) String() string {
	return fmt.Sprintf("fade{%d %s %s %q}", s.Offset, s.Granularity, s.Out, s.Key)
}
