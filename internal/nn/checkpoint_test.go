package nn_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/nn"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

func mlp(t *testing.T, hidden int, head neural.ElementType) *nn.Sequential {
	t.Helper()
	m, err := nn.NewSequential(
		nn.NewLinear(4, hidden),
		nn.NewReLU(),
		nn.NewLinear(hidden, 3, nn.WithOutputType(head)),
	)
	require.NoError(t, err)
	return m
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mlp.born")
	src := mlp(t, 8, neural.Logits())
	require.NoError(t, nn.Save(path, src))

	state := nn.StateDict(src)
	assert.Len(t, state, 4)
	assert.Contains(t, state, "0.weight")
	assert.Contains(t, state, "3.bias")

	dst := mlp(t, 8, neural.Logits())
	require.NoError(t, nn.Load(path, dst))

	for i, p := range dst.Parameters() {
		assert.Equal(t, src.Parameters()[i].Tensor().AsFloat32(), p.Tensor().AsFloat32(), p.Name())
	}

	x := batch(2, 4)
	want, err := src.Forward(x)
	require.NoError(t, err)
	got, err := dst.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, leaf(t, want).AsFloat32(), leaf(t, got).AsFloat32())
}

func TestLoadRejectsChangedContract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mlp.born")
	require.NoError(t, nn.Save(path, mlp(t, 8, neural.Logits())))

	// Same parameter shapes, different output element type.
	dst := mlp(t, 8, neural.Element())
	before := dst.Parameters()[0].Tensor()
	err := nn.Load(path, dst)
	require.ErrorIs(t, err, typecheck.ErrTypeMismatch)
	assert.Same(t, before, dst.Parameters()[0].Tensor())

	// Same ports, different hidden width.
	err = nn.Load(path, mlp(t, 16, neural.Logits()))
	require.Error(t, err)
}

func TestLoadClassifierModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clf.born")
	require.NoError(t, nn.Save(path, nn.NewClassifier(4, 3)))

	clf := nn.NewClassifier(4, 3)
	require.NoError(t, clf.SetMode(nn.ModeTrain))
	require.ErrorIs(t, nn.Load(path, clf), typecheck.ErrBinding)

	require.NoError(t, clf.SetMode(nn.ModeInfer))
	require.NoError(t, nn.Load(path, clf))
}
