package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/neuraltype/internal/tensor"
)

// Xavier returns a [fanOut, fanIn] tensor drawn from the Glorot uniform
// distribution U(-a, a), a = sqrt(6 / (fanIn + fanOut)).
func Xavier(fanIn, fanOut int) *tensor.RawTensor {
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	w := tensor.Zeros(tensor.Shape{fanOut, fanIn})
	data := w.AsFloat32()
	for i := range data {
		data[i] = float32((rand.Float64()*2 - 1) * limit) //nolint:gosec // G404: weight init only
	}
	return w
}
