package typecheck_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

const asrContracts = `
contracts:
  - name: preprocessor
    inputs:
      - {name: audio, type: "B,T:AudioSignal(freq=16000)"}
    outputs:
      - {name: spec, type: "B,D,T:MelSpectrogram"}
  - name: encoder
    mode: train
    inputs:
      - {name: features, type: "B,D,T:Spectrogram"}
    outputs:
      - {name: encoded, type: "B,D,T:AcousticEncodedRepresentation"}
    modes:
      train:
        inputs:
          - {name: features, type: "B,D,T:Spectrogram"}
        outputs:
          - {name: encoded, type: "B,D,T:AcousticEncodedRepresentation"}
      export:
        inputs:
          - {name: features, type: "B,D,T:Spectrogram"}
          - {name: lengths, type: "B:Lengths?"}
        outputs:
          - {name: encoded, type: "B,D,T:AcousticEncodedRepresentation"}
          - {name: lengths, type: "B:Lengths"}
  - name: decoder
    inputs:
      - {name: encoded, type: "B,D,T:EncodedRepresentation"}
    outputs:
      - {name: logprobs, type: "B,T,D:Logprobs"}
  - name: classifier
    inputs:
      - {name: encoded, type: "B,D:Logits"}
pipelines:
  - name: asr
    stages: [preprocessor, encoder, decoder]
  - name: broken
    stages: [decoder, classifier]
`

func TestLoadContracts(t *testing.T) {
	cat, err := typecheck.LoadContracts(strings.NewReader(asrContracts))
	require.NoError(t, err)

	names := []string{}
	for _, c := range cat.Contracts() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"preprocessor", "encoder", "decoder", "classifier"}, names)
	assert.Equal(t, []string{"asr", "broken"}, cat.Pipelines())

	enc, ok := cat.Contract("encoder")
	require.True(t, ok)
	assert.Equal(t, "train", enc.Mode())
	assert.Equal(t, []string{"export", "train"}, enc.Modes())
	assert.Equal(t, []string{"features"}, enc.InputTypes().Names())

	require.NoError(t, enc.SetMode("export"))
	assert.Equal(t, []string{"encoded", "lengths"}, enc.OutputTypes().Names())
	lengths, ok := enc.InputTypes().Lookup("lengths")
	require.True(t, ok)
	assert.True(t, lengths.IsOptional())

	assert.Error(t, enc.SetMode("serve"))
	require.NoError(t, enc.SetMode(""))

	pre, _ := cat.Contract("preprocessor")
	audio, _ := pre.InputTypes().Lookup("audio")
	assert.Equal(t, neural.Same, audio.Compare(neural.New(neural.Axes("B", "T"), neural.AudioSignal(16000))))
}

func TestCheckPipeline(t *testing.T) {
	cat, err := typecheck.LoadContracts(strings.NewReader(asrContracts))
	require.NoError(t, err)

	require.NoError(t, cat.CheckPipeline("asr"))

	err = cat.CheckPipeline("broken")
	require.ErrorIs(t, err, typecheck.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "decoder -> classifier")

	assert.Error(t, cat.CheckPipeline("missing"))
}

func TestLoadContractsErrors(t *testing.T) {
	tests := map[string]string{
		"bad type":       "contracts:\n  - name: a\n    inputs: [{name: x, type: \"B:Nope\"}]\n",
		"duplicate port": "contracts:\n  - name: a\n    inputs: [{name: x, type: \"B:Element\"}, {name: x, type: \"B:Element\"}]\n",
		"duplicate name": "contracts:\n  - name: a\n  - name: a\n",
		"no name":        "contracts:\n  - inputs: []\n",
		"unknown stage":  "contracts:\n  - name: a\npipelines:\n  - name: p\n    stages: [a, b]\n",
		"unknown field":  "contracts:\n  - name: a\n    input: []\n",
		"unknown mode":   "contracts:\n  - name: a\n    mode: train\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := typecheck.LoadContracts(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}

	cat, err := typecheck.LoadContracts(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat.Contracts())
}

func TestLoadContractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contracts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(asrContracts), 0o600))

	cat, err := typecheck.LoadContractFile(path)
	require.NoError(t, err)
	_, ok := cat.Contract("decoder")
	assert.True(t, ok)

	_, err = typecheck.LoadContractFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestContractChecksPlainFunction(t *testing.T) {
	c := typecheck.NewContract("inc",
		typecheck.Ports{typecheck.P("x", batchElement)},
		typecheck.Ports{typecheck.P("y", batchElement)},
	).AddMode("labels",
		typecheck.Ports{typecheck.P("x", batchElement)},
		typecheck.Ports{typecheck.P("y", batchLabels)},
	)
	call := typecheck.Wrap(c, addOne)

	result, err := call(nil, typecheck.Kw{"x": typecheck.Of(tensor.Zeros(tensor.Shape{4}))})
	require.NoError(t, err)
	requireSame(t, result, batchElement)

	require.NoError(t, c.SetMode("labels"))
	result, err = call(nil, typecheck.Kw{"x": typecheck.Of(tensor.Zeros(tensor.Shape{4}))})
	require.NoError(t, err)
	requireSame(t, result, batchLabels)
}

func TestConnect(t *testing.T) {
	logitsOut := ports{out: typecheck.Ports{typecheck.P("y", batchLogits)}}

	tests := []struct {
		name       string
		up, down   typecheck.Typing
		wantErrIs error
		wantOK bool
	}{
		{
			name:       "single ports ignore names",
			up:         logitsOut,
			down:       ports{in: typecheck.Ports{typecheck.P("w", batchLogits)}},
			wantOK: true,
		},
		{
			name:       "more specific feeds general",
			up:         logitsOut,
			down:       ports{in: typecheck.Ports{typecheck.P("w", neural.New(neural.Axes("B", "D"), neural.Element()))}},
			wantOK: true,
		},
		{
			name:      "general cannot feed specific",
			up:        ports{out: typecheck.Ports{typecheck.P("y", neural.New(neural.Axes("B", "D"), neural.Element()))}},
			down:      ports{in: typecheck.Ports{typecheck.P("w", batchLogits)}},
			wantErrIs: typecheck.ErrTypeMismatch,
		},
		{
			name: "named ports",
			up: ports{out: typecheck.Ports{
				typecheck.P("logits", batchLogits),
				typecheck.P("labels", batchLabels),
			}},
			down: ports{in: typecheck.Ports{
				typecheck.P("labels", batchLabels),
				typecheck.P("mask", neural.New(neural.Axes("B"), neural.Mask(), neural.Optional())),
			}},
			wantOK: true,
		},
		{
			name: "missing required port",
			up: ports{out: typecheck.Ports{
				typecheck.P("logits", batchLogits),
				typecheck.P("labels", batchLabels),
			}},
			down: ports{in: typecheck.Ports{
				typecheck.P("lengths", neural.New(neural.Axes("B"), neural.Lengths())),
				typecheck.P("labels", batchLabels),
			}},
			wantErrIs: typecheck.ErrBinding,
		},
		{
			name:       "undeclared side",
			up:         noTypes{},
			down:       ports{in: typecheck.Ports{typecheck.P("w", batchLogits)}},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := typecheck.Connect(tt.up, tt.down)
			if tt.wantOK {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErrIs)
		})
	}
}
