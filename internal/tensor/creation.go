package tensor

import (
	"fmt"
	"math"
	"math/rand"
)

// Zeros creates a float32 tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{10})
func Zeros(shape Shape) *RawTensor {
	return mustRaw(shape, Float32)
}

// Ones creates a float32 tensor filled with ones.
func Ones(shape Shape) *RawTensor {
	return Full(shape, 1)
}

// Full creates a float32 tensor filled with value.
//
// Example:
//
//	y := tensor.Full(tensor.Shape{10}, 5)
func Full(shape Shape, value float32) *RawTensor {
	r := mustRaw(shape, Float32)
	data := r.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return r
}

// Randn creates a float32 tensor with values drawn from N(0, 1).
// Uses the Box-Muller transform.
func Randn(shape Shape) *RawTensor {
	r := mustRaw(shape, Float32)
	data := r.AsFloat32()
	for i := 0; i < len(data); i += 2 {
		u1 := 1 - rand.Float64() //nolint:gosec // G404: statistical use only
		u2 := rand.Float64()     //nolint:gosec // G404: statistical use only
		mag := math.Sqrt(-2.0 * math.Log(u1))
		data[i] = float32(mag * math.Cos(2.0*math.Pi*u2))
		if i+1 < len(data) {
			data[i+1] = float32(mag * math.Sin(2.0*math.Pi*u2))
		}
	}
	return r
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}

	r, err := NewRaw(shape, dataTypeOf[T](), CPU)
	if err != nil {
		return nil, err
	}

	switch src := any(data).(type) {
	case []float32:
		copy(r.AsFloat32(), src)
	case []float64:
		copy(r.AsFloat64(), src)
	case []int32:
		copy(r.AsInt32(), src)
	case []int64:
		copy(r.AsInt64(), src)
	case []uint8:
		copy(r.AsUint8(), src)
	case []bool:
		copy(r.AsBool(), src)
	}
	return r, nil
}
