// Package serialization implements the .tuck checkpoint format: a small
// binary container holding named tensors behind a JSON header.
//
// Layout: 4-byte magic, uint32 version, uint32 flags, uint64 header
// size, JSON header, zero padding to a 64-byte boundary, then the raw
// tensor data in header order.
package serialization

import (
	"time"

	"github.com/yyf710670079/tucker/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "TUCK"
	FormatVersion   = 1
	headerAlignment = 64
	maxHeaderSize   = 100 * 1024 * 1024
)

// Header is the JSON header of a .tuck file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	ModelType     string            `json:"model_type"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"`
	Size   int64  `json:"size"`
}

func dtypeToString(dt tensor.DataType) string {
	return dt.String()
}

func stringToDtype(s string) (tensor.DataType, bool) {
	switch s {
	case "float32":
		return tensor.Float32, true
	case "float64":
		return tensor.Float64, true
	case "int32":
		return tensor.Int32, true
	default:
		return 0, false
	}
}
