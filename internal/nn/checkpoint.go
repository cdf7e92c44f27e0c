package nn

import (
	"fmt"

	"github.com/born-ml/neuraltype/internal/serialization"
	"github.com/born-ml/neuraltype/internal/tensor"
)

// StateDict returns the module's parameters keyed "<index>.<name>", index
// being the position in Parameters().
func StateDict(m Module) map[string]*tensor.RawTensor {
	params := m.Parameters()
	state := make(map[string]*tensor.RawTensor, len(params))
	for i, p := range params {
		state[stateKey(i, p)] = p.Tensor()
	}
	return state
}

// Save writes the module's parameters and current ports to path.
func Save(path string, m Module) error {
	return serialization.Save(path, serialization.NewCheckpoint(m, StateDict(m)))
}

// Load restores parameters saved by Save. The module must declare the same
// ports it had when saved; see serialization.Checkpoint.Verify.
func Load(path string, m Module) error {
	ckpt, err := serialization.Load(path)
	if err != nil {
		return err
	}
	return LoadCheckpoint(ckpt, m)
}

// LoadCheckpoint verifies ckpt against m and copies its tensors into m's
// parameters. Nothing is modified if any check fails.
func LoadCheckpoint(ckpt *serialization.Checkpoint, m Module) error {
	if err := ckpt.Verify(m); err != nil {
		return fmt.Errorf("load %s: %w", ckpt.ModelType, err)
	}

	params := m.Parameters()
	if len(ckpt.Tensors) != len(params) {
		return fmt.Errorf("load %s: checkpoint has %d tensors, module has %d parameters",
			ckpt.ModelType, len(ckpt.Tensors), len(params))
	}
	for i, p := range params {
		t, ok := ckpt.Tensors[stateKey(i, p)]
		if !ok {
			return fmt.Errorf("load %s: missing tensor %s", ckpt.ModelType, stateKey(i, p))
		}
		if t.DType() != p.Tensor().DType() || !t.Shape().Equal(p.Tensor().Shape()) {
			return fmt.Errorf("load %s: tensor %s is %s%v, parameter is %s%v", ckpt.ModelType, stateKey(i, p),
				t.DType(), t.Shape(), p.Tensor().DType(), p.Tensor().Shape())
		}
	}
	for i, p := range params {
		if err := p.SetTensor(ckpt.Tensors[stateKey(i, p)]); err != nil {
			return err
		}
	}
	return nil
}

func stateKey(i int, p *Parameter) string {
	return fmt.Sprintf("%d.%s", i, p.Name())
}
