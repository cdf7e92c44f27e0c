package tensor

import (
	"fmt"
	"math"

	"github.com/born-ml/neuraltype/internal/parallel"
)

// kernelConfig splits row-wise kernels across CPUs.
var kernelConfig = parallel.DefaultConfig()

// Float32 element-wise and reduction kernels used by the typed modules.
// All inputs must be Float32 unless stated otherwise; results are new tensors.

// AddScalar returns x + s.
func AddScalar(x *RawTensor, s float32) *RawTensor {
	return mapFloat32(x, func(v float32) float32 { return v + s })
}

// MulScalar returns x * s.
func MulScalar(x *RawTensor, s float32) *RawTensor {
	return mapFloat32(x, func(v float32) float32 { return v * s })
}

// ReLU returns max(x, 0) element-wise.
func ReLU(x *RawTensor) *RawTensor {
	return mapFloat32(x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Add returns a + b with broadcasting.
func Add(a, b *RawTensor) (*RawTensor, error) {
	return zipFloat32(a, b, func(x, y float32) float32 { return x + y })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *RawTensor) (*RawTensor, error) {
	return zipFloat32(a, b, func(x, y float32) float32 { return x - y })
}

// Sum returns the sum of all elements of x, for any dtype.
func Sum(x *RawTensor) float64 {
	var total float64
	for _, v := range x.Float64s() {
		total += v
	}
	return total
}

// MatMul multiplies [M, K] by [K, N].
func MatMul(a, b *RawTensor) (*RawTensor, error) {
	as, bs := a.Shape(), b.Shape()
	if as.Rank() != 2 || bs.Rank() != 2 {
		return nil, fmt.Errorf("matmul: expected 2D tensors, got %v and %v", as, bs)
	}
	if as[1] != bs[0] {
		return nil, fmt.Errorf("matmul: inner dimensions differ: %v x %v", as, bs)
	}

	m, k, n := as[0], as[1], bs[1]
	out := mustRaw(Shape{m, n}, Float32)
	ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()

	parallel.Rows(m, kernelConfig, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			for p := 0; p < k; p++ {
				av := ad[i*k+p]
				for j := 0; j < n; j++ {
					od[i*n+j] += av * bd[p*n+j]
				}
			}
		}
	})
	return out, nil
}

// Transpose2D swaps the two axes of a 2D tensor.
func Transpose2D(x *RawTensor) (*RawTensor, error) {
	s := x.Shape()
	if s.Rank() != 2 {
		return nil, fmt.Errorf("transpose: expected 2D tensor, got %v", s)
	}
	rows, cols := s[0], s[1]
	out := mustRaw(Shape{cols, rows}, Float32)
	src, dst := x.AsFloat32(), out.AsFloat32()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dst[j*rows+i] = src[i*cols+j]
		}
	}
	return out, nil
}

// LogSoftmax applies a numerically stable log-softmax over the last axis.
func LogSoftmax(x *RawTensor) *RawTensor {
	out := x.Clone()
	data := out.AsFloat32()
	width := lastDim(x)

	if width == 0 {
		return out
	}

	parallel.For(len(data)/width, kernelConfig, func(row int) {
		seg := data[row*width : (row+1)*width]
		maxV := seg[0]
		for _, v := range seg[1:] {
			maxV = max(maxV, v)
		}
		var sum float64
		for _, v := range seg {
			sum += math.Exp(float64(v - maxV))
		}
		logSum := float32(math.Log(sum)) + maxV
		for i := range seg {
			seg[i] -= logSum
		}
	})
	return out
}

// Argmax returns the Int64 index of the largest value along the last axis.
// The last axis is removed from the result shape; a 1D input yields a
// scalar.
func Argmax(x *RawTensor) *RawTensor {
	s := x.Shape()
	width := lastDim(x)
	outShape := Shape{}
	if s.Rank() > 0 {
		outShape = s[:s.Rank()-1].Clone()
	}

	out := mustRaw(outShape, Int64)
	src, dst := x.AsFloat32(), out.AsInt64()
	for row := range dst {
		seg := src[row*width : (row+1)*width]
		best := 0
		for i, v := range seg {
			if v > seg[best] {
				best = i
			}
		}
		dst[row] = int64(best)
	}
	return out
}

func lastDim(x *RawTensor) int {
	s := x.Shape()
	if s.Rank() == 0 {
		return 1
	}
	return s[s.Rank()-1]
}

func mapFloat32(x *RawTensor, f func(float32) float32) *RawTensor {
	out := mustRaw(x.Shape(), Float32)
	src, dst := x.AsFloat32(), out.AsFloat32()
	for i, v := range src {
		dst[i] = f(v)
	}
	return out
}

func zipFloat32(a, b *RawTensor, f func(x, y float32) float32) (*RawTensor, error) {
	shape, err := BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		return nil, err
	}

	out := mustRaw(shape, Float32)
	ad, bd, od := a.AsFloat32(), b.AsFloat32(), out.AsFloat32()
	for i := range od {
		od[i] = f(ad[broadcastIndex(i, shape, a.Shape())], bd[broadcastIndex(i, shape, b.Shape())])
	}
	return out, nil
}
