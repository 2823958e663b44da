package optim

// ExponentialLR decays the optimizer's learning rate by a constant
// factor each time Step is called, typically once per epoch:
//
//	lr = lr * gamma
type ExponentialLR struct {
	opt   Optimizer
	gamma float32
}

// NewExponentialLR creates a scheduler for the given optimizer.
// A gamma of 1 leaves the learning rate unchanged.
func NewExponentialLR(opt Optimizer, gamma float32) *ExponentialLR {
	return &ExponentialLR{opt: opt, gamma: gamma}
}

// Step applies one decay step.
func (s *ExponentialLR) Step() {
	s.opt.SetLR(s.opt.GetLR() * s.gamma)
}
