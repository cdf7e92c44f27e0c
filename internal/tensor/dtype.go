// Package tensor provides the dense value type carried through typed modules.
//
// Values only need to expose their Shape to the type checker. The arithmetic
// here is deliberately small: enough for the built-in typed modules and tests.
package tensor

// DType is a constraint for element types accepted by FromSlice.
type DType interface {
	float32 | float64 | int32 | int64 | uint8 | bool
}

// DataType identifies the element type of a RawTensor at runtime.
type DataType int

// Supported data types for tensors.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
)

var dataTypes = [...]struct {
	name string
	size int
}{
	Float32: {"float32", 4},
	Float64: {"float64", 8},
	Int32:   {"int32", 4},
	Int64:   {"int64", 8},
	Uint8:   {"uint8", 1},
	Bool:    {"bool", 1},
}

func (dt DataType) valid() bool {
	return dt >= 0 && int(dt) < len(dataTypes)
}

// Size returns the byte size of one element. It panics on an unknown
// DataType.
func (dt DataType) Size() int {
	if !dt.valid() {
		panic("tensor: unknown data type")
	}
	return dataTypes[dt].size
}

// String returns the Go name of the element type, e.g. "float32".
func (dt DataType) String() string {
	if !dt.valid() {
		return "unknown"
	}
	return dataTypes[dt].name
}

// ParseDataType is the inverse of DataType.String.
func ParseDataType(name string) (DataType, bool) {
	for dt, info := range dataTypes {
		if info.name == name {
			return DataType(dt), true
		}
	}
	return 0, false
}

func dataTypeOf[T DType]() DataType {
	switch any(*new(T)).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	default:
		return Bool
	}
}
