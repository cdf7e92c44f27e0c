package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/tensor"
)

// nllLoss computes the mean negative log-likelihood of the target classes:
//
//	loss = -mean_i(logprobs[i, targets[i]])
//
// logprobs is [batch, classes] Float32, targets is [batch] of any integer
// dtype. The result is a scalar tensor.
func nllLoss(logprobs, targets *tensor.RawTensor) (*tensor.RawTensor, error) {
	ls, ts := logprobs.Shape(), targets.Shape()
	if ls.Rank() != 2 || ts.Rank() != 1 || ls[0] != ts[0] {
		return nil, fmt.Errorf("nll loss: logprobs %v and targets %v do not align", ls, ts)
	}

	batch, classes := ls[0], ls[1]
	lp := logprobs.AsFloat32()
	var sum float64
	for i, t := range targets.Float64s() {
		c := int(t)
		if c < 0 || c >= classes {
			return nil, fmt.Errorf("nll loss: target %d out of range [0, %d)", c, classes)
		}
		sum -= float64(lp[i*classes+c])
	}
	return tensor.Full(tensor.Shape{}, float32(sum/float64(batch))), nil
}
