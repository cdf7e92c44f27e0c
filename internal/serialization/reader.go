package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/born-ml/neuraltype/internal/neural"
	"github.com/born-ml/neuraltype/internal/tensor"
	"github.com/born-ml/neuraltype/internal/typecheck"
)

// ReadFrom reads a checkpoint from r at the given validation level.
func ReadFrom(r io.Reader, level ValidationLevel) (*Checkpoint, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, fmt.Errorf("%w: magic %q, expected %q", ErrNotCheckpoint, string(magic), MagicBytes)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, expected %d", ErrUnsupportedVersion, version, FormatVersion)
	}

	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, fmt.Errorf("%w: header of %d bytes exceeds %d", ErrCorrupt, headerSize, MaxHeaderSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	if _, err := io.CopyN(io.Discard, r, padding(fixedHeaderSize+int64(headerSize))); err != nil {
		return nil, fmt.Errorf("failed to read padding: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read tensor data: %w", err)
	}

	if err := ValidateHeader(&header, int64(len(data)), level); err != nil {
		return nil, err
	}
	if level == ValidationStrict {
		if err := ValidateChecksum(data, header.Checksum); err != nil {
			return nil, err
		}
	}

	return header.checkpoint(data)
}

func (h *Header) checkpoint(data []byte) (*Checkpoint, error) {
	inputs, err := metaToPorts(h.Inputs)
	if err != nil {
		return nil, fmt.Errorf("inputs: %w", err)
	}
	outputs, err := metaToPorts(h.Outputs)
	if err != nil {
		return nil, fmt.Errorf("outputs: %w", err)
	}

	tensors := make(map[string]*tensor.RawTensor, len(h.Tensors))
	for _, meta := range h.Tensors {
		dtype, ok := tensor.ParseDataType(meta.DType)
		if !ok {
			return nil, &ValidationError{Type: "unsupported_dtype", Tensor: meta.Name, Details: fmt.Sprintf("dtype %q", meta.DType)}
		}
		if meta.Offset < 0 || meta.Size < 0 || meta.Offset+meta.Size > int64(len(data)) {
			return nil, &ValidationError{
				Type:    "out_of_bounds",
				Tensor:  meta.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", meta.Offset, meta.Size, len(data)),
			}
		}
		if !shapeFits(meta.Shape, dtype.Size(), meta.Size) {
			return nil, &ValidationError{
				Type:    "size_mismatch",
				Tensor:  meta.Name,
				Details: fmt.Sprintf("shape %v of %s does not occupy the %d bytes the header gives", meta.Shape, dtype, meta.Size),
			}
		}
		raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
		if err != nil {
			return nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
		}
		copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
		tensors[meta.Name] = raw
	}

	return &Checkpoint{
		ModelType: h.ModelType,
		Inputs:    inputs,
		Outputs:   outputs,
		Tensors:   tensors,
		Metadata:  h.Metadata,
	}, nil
}

// shapeFits reports whether shape holds exactly size bytes of elemSize-byte
// elements. Every dimension is bounded before multiplying, so hostile shapes
// cannot overflow.
func shapeFits(shape []int, elemSize int, size int64) bool {
	if size%int64(elemSize) != 0 {
		return false
	}
	limit := size / int64(elemSize)
	n := int64(1)
	for _, d := range shape {
		if d <= 0 || int64(d) > limit || n > limit/int64(d) {
			return false
		}
		n *= int64(d)
	}
	return n == limit
}

// Load reads a checkpoint from path with strict validation.
func Load(path string) (*Checkpoint, error) {
	//nolint:gosec // G304: File path comes from user input, which is expected for model loading
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return ReadFrom(f, ValidationStrict)
}

// Verify checks that obj still declares the recorded ports: the same names
// in the same order, each with an identical type literal. A port that changed type
// yields typecheck.ErrTypeMismatch, any other difference
// typecheck.ErrBinding.
func (c *Checkpoint) Verify(obj typecheck.Typing) error {
	if err := verifyPorts("input", c.Inputs, obj.InputTypes()); err != nil {
		return err
	}
	return verifyPorts("output", c.Outputs, obj.OutputTypes())
}

func verifyPorts(dir string, saved, current typecheck.Ports) error {
	if len(saved) != len(current) {
		return fmt.Errorf("checkpoint has %d %s ports %v, module declares %d %v: %w",
			len(saved), dir, saved.Names(), len(current), current.Names(), typecheck.ErrBinding)
	}
	for i := range saved {
		s, c := saved[i], current[i]
		if s.Name != c.Name {
			return fmt.Errorf("%s port %d is %q in the checkpoint, %q in the module: %w", dir, i, s.Name, c.Name, typecheck.ErrBinding)
		}
		if c.Type.String() != s.Type.String() {
			return fmt.Errorf("%s port %q: checkpoint has %s, module declares %s (%s): %w",
				dir, s.Name, s.Type, c.Type, neural.Compare(c.Type, s.Type), typecheck.ErrTypeMismatch)
		}
	}
	return nil
}
