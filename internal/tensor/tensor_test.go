package tensor

import (
	"math"
	"testing"
)

// fakeBackend implements Backend with just enough behavior for the
// tests in this package. Real computation lives in backend/cpu.
type fakeBackend struct{}

func (fakeBackend) Add(a, b *RawTensor) *RawTensor           { return a.Clone() }
func (fakeBackend) Sub(a, b *RawTensor) *RawTensor           { return a.Clone() }
func (fakeBackend) Mul(a, b *RawTensor) *RawTensor           { return a.Clone() }
func (fakeBackend) MulScalar(x *RawTensor, s any) *RawTensor { return x.Clone() }
func (fakeBackend) AddScalar(x *RawTensor, s any) *RawTensor { return x.Clone() }
func (fakeBackend) MatMul(a, b *RawTensor) *RawTensor        { return a.Clone() }
func (fakeBackend) BatchMatMul(a, b *RawTensor) *RawTensor   { return a.Clone() }
func (fakeBackend) Reshape(t *RawTensor, s Shape) *RawTensor { return t.Clone() }
func (fakeBackend) Transpose(t *RawTensor, axes ...int) *RawTensor {
	return t.Clone()
}
func (fakeBackend) Embedding(w, idx *RawTensor) *RawTensor { return w.Clone() }
func (fakeBackend) Sigmoid(x *RawTensor) *RawTensor        { return x.Clone() }
func (fakeBackend) Name() string                           { return "fake" }

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
	if err := (Shape{-1, 3}).Validate(); err == nil {
		t.Error("expected error for negative dimension")
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("ComputeStrides() = %v, want %v", strides, want)
		}
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b    Shape
		want    Shape
		needsBC bool
	}{
		{Shape{2, 3}, Shape{2, 3}, Shape{2, 3}, false},
		{Shape{2, 3}, Shape{3}, Shape{2, 3}, true},
		{Shape{2, 1}, Shape{1, 3}, Shape{2, 3}, true},
		{Shape{4, 1, 3}, Shape{2, 3}, Shape{4, 2, 3}, true},
	}

	for _, tt := range tests {
		got, needsBC, err := BroadcastShapes(tt.a, tt.b)
		if err != nil {
			t.Fatalf("BroadcastShapes(%v, %v) error: %v", tt.a, tt.b, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		if needsBC != tt.needsBC {
			t.Errorf("BroadcastShapes(%v, %v) needsBroadcast = %v, want %v", tt.a, tt.b, needsBC, tt.needsBC)
		}
	}

	if _, _, err := BroadcastShapes(Shape{2, 3}, Shape{4, 3}); err == nil {
		t.Error("expected error for incompatible shapes")
	}
}

func TestFromSlice(t *testing.T) {
	b := fakeBackend{}

	x, err := FromSlice[float32](
		[]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3}, b)
	if err != nil {
		t.Fatalf("FromSlice error: %v", err)
	}
	if !x.Shape().Equal(Shape{2, 3}) {
		t.Errorf("shape = %v, want [2 3]", x.Shape())
	}
	if x.At(1, 2) != 6 {
		t.Errorf("At(1, 2) = %v, want 6", x.At(1, 2))
	}

	if _, err := FromSlice[float32]([]float32{1, 2}, Shape{3}, b); err == nil {
		t.Error("expected error for element count mismatch")
	}
}

func TestAtSet(t *testing.T) {
	b := fakeBackend{}
	x := Zeros[float32](Shape{3, 4}, b)

	x.Set(2.5, 1, 2)
	if got := x.At(1, 2); got != 2.5 {
		t.Errorf("At(1, 2) = %v, want 2.5", got)
	}
	if got := x.At(0, 0); got != 0 {
		t.Errorf("At(0, 0) = %v, want 0", got)
	}
}

func TestCreation(t *testing.T) {
	b := fakeBackend{}

	ones := Ones[float64](Shape{2, 2}, b)
	for _, v := range ones.Data() {
		if v != 1 {
			t.Fatalf("Ones produced %v", v)
		}
	}

	full := Full[float32](Shape{3}, 7.5, b)
	for _, v := range full.Data() {
		if v != 7.5 {
			t.Fatalf("Full produced %v", v)
		}
	}

	eye := Eye[float32](3, b)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := float32(0)
			if i == j {
				want = 1
			}
			if eye.At(i, j) != want {
				t.Fatalf("Eye(3)[%d, %d] = %v, want %v", i, j, eye.At(i, j), want)
			}
		}
	}
}

func TestRandnDistribution(t *testing.T) {
	b := fakeBackend{}
	x := Randn[float64](Shape{10000}, b)

	var sum, sumSq float64
	for _, v := range x.Data() {
		sum += v
		sumSq += v * v
	}
	n := float64(x.NumElements())
	mean := sum / n
	variance := sumSq/n - mean*mean

	if math.Abs(mean) > 0.1 {
		t.Errorf("Randn mean = %v, want ~0", mean)
	}
	if math.Abs(variance-1) > 0.1 {
		t.Errorf("Randn variance = %v, want ~1", variance)
	}
}

func TestClone(t *testing.T) {
	b := fakeBackend{}
	x, _ := FromSlice[float32]([]float32{1, 2, 3}, Shape{3}, b)
	y := x.Clone()

	y.Set(99, 0)
	if x.At(0) != 1 {
		t.Error("Clone shares memory with original")
	}
	if y.At(0) != 99 {
		t.Error("Clone write did not stick")
	}
}

func TestItem(t *testing.T) {
	b := fakeBackend{}
	x, _ := FromSlice[float32]([]float32{42}, Shape{1}, b)
	if x.Item() != 42 {
		t.Errorf("Item() = %v, want 42", x.Item())
	}
}
