package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// StateDict maps parameter names to their stored tensors.
type StateDict map[string]*tensor.RawTensor

// ReadStateDict reads a .tuck file, returning its header and tensors.
func ReadStateDict(path string) (hdr Header, state StateDict, err error) {
	file, err := os.Open(path)
	if err != nil {
		return Header{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	magic := make([]byte, 4)
	if _, err := io.ReadFull(file, magic); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return Header{}, nil, fmt.Errorf("not a .tuck file: bad magic %q", magic)
	}

	var version, flags uint32
	if err := binary.Read(file, binary.LittleEndian, &version); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return Header{}, nil, fmt.Errorf("unsupported format version %d", version)
	}
	if err := binary.Read(file, binary.LittleEndian, &flags); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read flags: %w", err)
	}

	var headerSize uint64
	if err := binary.Read(file, binary.LittleEndian, &headerSize); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > maxHeaderSize {
		return Header{}, nil, fmt.Errorf("header size %d exceeds limit", headerSize)
	}

	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(file, headerBytes); err != nil {
		return Header{}, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &hdr); err != nil {
		return Header{}, nil, fmt.Errorf("failed to parse header JSON: %w", err)
	}

	currentPos := int64(4+4+4+8) + int64(headerSize)
	padding := (headerAlignment - (currentPos % headerAlignment)) % headerAlignment
	dataOffset := currentPos + padding

	state = make(StateDict, len(hdr.Tensors))
	for _, meta := range hdr.Tensors {
		dtype, ok := stringToDtype(meta.DType)
		if !ok {
			return Header{}, nil, fmt.Errorf("tensor %s: unknown dtype %q", meta.Name, meta.DType)
		}
		raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype)
		if err != nil {
			return Header{}, nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
		}
		if int64(raw.ByteSize()) != meta.Size {
			return Header{}, nil, fmt.Errorf("tensor %s: size %d does not match shape %v",
				meta.Name, meta.Size, meta.Shape)
		}
		if _, err := file.Seek(dataOffset+meta.Offset, io.SeekStart); err != nil {
			return Header{}, nil, fmt.Errorf("tensor %s: %w", meta.Name, err)
		}
		if _, err := io.ReadFull(file, raw.Data()); err != nil {
			return Header{}, nil, fmt.Errorf("failed to read tensor %s: %w", meta.Name, err)
		}
		state[meta.Name] = raw
	}
	return hdr, state, nil
}
