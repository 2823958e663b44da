package model

import (
	"fmt"

	"github.com/yyf710670079/tucker/internal/serialization"
	"github.com/yyf710670079/tucker/internal/tensor"
)

// Save writes the model's trainable parameters to path in .tuck format.
func Save[B tensor.Backend](path string, m Model[B], metadata map[string]string) error {
	state := make(serialization.StateDict)
	for _, p := range m.Parameters() {
		state[p.Name()] = p.Tensor().Raw()
	}
	return serialization.WriteStateDict(path, modelType(m), state, metadata)
}

// Load reads parameters from a .tuck file into a model built with the
// same architecture. Every parameter must be present with a matching
// shape and dtype.
func Load[B tensor.Backend](path string, m Model[B]) error {
	hdr, state, err := serialization.ReadStateDict(path)
	if err != nil {
		return err
	}
	if got, want := hdr.ModelType, modelType(m); got != want {
		return fmt.Errorf("checkpoint holds a %q model, want %q", got, want)
	}

	params := m.Parameters()
	if len(state) != len(params) {
		return fmt.Errorf("checkpoint has %d tensors, model has %d parameters", len(state), len(params))
	}
	for _, p := range params {
		raw, ok := state[p.Name()]
		if !ok {
			return fmt.Errorf("checkpoint is missing parameter %q", p.Name())
		}
		dst := p.Tensor().Raw()
		if !dst.Shape().Equal(raw.Shape()) {
			return fmt.Errorf("parameter %q: checkpoint shape %v does not match model shape %v",
				p.Name(), raw.Shape(), dst.Shape())
		}
		if dst.DType() != raw.DType() {
			return fmt.Errorf("parameter %q: checkpoint dtype %s does not match model dtype %s",
				p.Name(), raw.DType(), dst.DType())
		}
		copy(dst.Data(), raw.Data())
	}
	return nil
}

func modelType[B tensor.Backend](m Model[B]) string {
	switch m.(type) {
	case *TuckER[B]:
		return "tucker"
	case *RESCAL[B]:
		return "rescal"
	default:
		return "model"
	}
}
