// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for the dense CPU tensors used by
// typed modules.
//
// Example:
//
//	x := tensor.Zeros(tensor.Shape{2, 3})
//	y, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
//	z, err := tensor.Add(x, y)
package tensor

import (
	"github.com/born-ml/neuraltype/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor data types.
// Supported types: float32, float64, int32, int64, uint8, bool.
type DType = tensor.DType

// DataType represents the underlying data type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
	Bool    DataType = tensor.Bool
)

// ParseDataType resolves a DataType from its String form.
func ParseDataType(name string) (DataType, bool) { return tensor.ParseDataType(name) }

// Device represents the device where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3, 4} represents a 3D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// RawTensor is a contiguous row-major tensor.
type RawTensor = tensor.RawTensor

// NewRaw allocates a zeroed tensor.
func NewRaw(shape Shape, dtype DataType, device Device) (*RawTensor, error) {
	return tensor.NewRaw(shape, dtype, device)
}

// BroadcastShapes computes the NumPy-style broadcast of two shapes.
func BroadcastShapes(a, b Shape) (Shape, error) {
	return tensor.BroadcastShapes(a, b)
}

// Creation

// Zeros creates a Float32 tensor filled with zeros.
func Zeros(shape Shape) *RawTensor { return tensor.Zeros(shape) }

// Ones creates a Float32 tensor filled with ones.
func Ones(shape Shape) *RawTensor { return tensor.Ones(shape) }

// Full creates a Float32 tensor filled with value.
func Full(shape Shape, value float32) *RawTensor { return tensor.Full(shape, value) }

// Randn creates a Float32 tensor of standard normal samples.
func Randn(shape Shape) *RawTensor { return tensor.Randn(shape) }

// FromSlice creates a tensor holding a copy of data.
func FromSlice[T DType](data []T, shape Shape) (*RawTensor, error) {
	return tensor.FromSlice(data, shape)
}

// Operations

// Add adds two Float32 tensors with broadcasting.
func Add(a, b *RawTensor) (*RawTensor, error) { return tensor.Add(a, b) }

// Sub subtracts two Float32 tensors with broadcasting.
func Sub(a, b *RawTensor) (*RawTensor, error) { return tensor.Sub(a, b) }

// AddScalar adds s to every element.
func AddScalar(x *RawTensor, s float32) *RawTensor { return tensor.AddScalar(x, s) }

// MulScalar multiplies every element by s.
func MulScalar(x *RawTensor, s float32) *RawTensor { return tensor.MulScalar(x, s) }

// Sum returns the sum of all elements.
func Sum(x *RawTensor) float64 { return tensor.Sum(x) }

// MatMul multiplies two 2D Float32 tensors.
func MatMul(a, b *RawTensor) (*RawTensor, error) { return tensor.MatMul(a, b) }

// Transpose2D transposes a 2D tensor.
func Transpose2D(x *RawTensor) (*RawTensor, error) { return tensor.Transpose2D(x) }

// ReLU applies max(0, x) element-wise.
func ReLU(x *RawTensor) *RawTensor { return tensor.ReLU(x) }

// LogSoftmax computes log-softmax over the last axis.
func LogSoftmax(x *RawTensor) *RawTensor { return tensor.LogSoftmax(x) }

// Argmax returns the index of the largest value along the last axis.
func Argmax(x *RawTensor) *RawTensor { return tensor.Argmax(x) }
