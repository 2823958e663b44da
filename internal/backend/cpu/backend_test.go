package cpu

import (
	"math"
	"testing"

	"github.com/yyf710670079/tucker/internal/tensor"
)

func rawFloat32(t *testing.T, data []float32, shape tensor.Shape) *tensor.RawTensor {
	t.Helper()
	raw, err := tensor.NewRaw(shape, tensor.Float32)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), data)
	return raw
}

func assertFloat32(t *testing.T, got *tensor.RawTensor, want []float32, wantShape tensor.Shape) {
	t.Helper()
	if !got.Shape().Equal(wantShape) {
		t.Fatalf("shape = %v, want %v", got.Shape(), wantShape)
	}
	gd := got.AsFloat32()
	for i := range want {
		if math.Abs(float64(gd[i]-want[i])) > 1e-5 {
			t.Fatalf("data = %v, want %v", gd, want)
		}
	}
}

func TestAdd(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	x := rawFloat32(t, []float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	assertFloat32(t, b.Add(a, x), []float32{11, 22, 33, 44}, tensor.Shape{2, 2})
}

func TestAddBroadcast(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	bias := rawFloat32(t, []float32{10, 20, 30}, tensor.Shape{3})

	assertFloat32(t, b.Add(a, bias), []float32{11, 22, 33, 14, 25, 36}, tensor.Shape{2, 3})
}

func TestMulBroadcastColumn(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	col := rawFloat32(t, []float32{2, 10}, tensor.Shape{2, 1})

	assertFloat32(t, b.Mul(a, col), []float32{2, 4, 6, 40, 50, 60}, tensor.Shape{2, 3})
}

func TestSub(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{5, 7}, tensor.Shape{2})
	x := rawFloat32(t, []float32{2, 3}, tensor.Shape{2})

	assertFloat32(t, b.Sub(a, x), []float32{3, 4}, tensor.Shape{2})
}

func TestScalarOps(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3})

	assertFloat32(t, b.MulScalar(a, float32(2)), []float32{2, 4, 6}, tensor.Shape{3})
	assertFloat32(t, b.AddScalar(a, float32(0.5)), []float32{1.5, 2.5, 3.5}, tensor.Shape{3})
}

func TestMatMul(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	x := rawFloat32(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	// [2, 3] @ [3, 2] -> [2, 2]
	assertFloat32(t, b.MatMul(a, x), []float32{58, 64, 139, 154}, tensor.Shape{2, 2})
}

func TestMatMulDimMismatch(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	x := rawFloat32(t, []float32{1, 2, 3}, tensor.Shape{3, 1})

	defer func() {
		if recover() == nil {
			t.Error("expected panic for inner dimension mismatch")
		}
	}()
	b.MatMul(a, x)
}

func TestBatchMatMul(t *testing.T) {
	b := New()
	// Two batches of [1, 2] @ [2, 2].
	a := rawFloat32(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 1, 2})
	x := rawFloat32(t, []float32{
		1, 0, 0, 1, // identity
		2, 0, 0, 2, // 2 * identity
	}, tensor.Shape{2, 2, 2})

	assertFloat32(t, b.BatchMatMul(a, x), []float32{1, 2, 6, 8}, tensor.Shape{2, 1, 2})
}

func TestReshape(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	assertFloat32(t, b.Reshape(a, tensor.Shape{3, 2}), []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{3, 2})
}

func TestTranspose2D(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	assertFloat32(t, b.Transpose(a), []float32{1, 4, 2, 5, 3, 6}, tensor.Shape{3, 2})
}

func TestTranspose3D(t *testing.T) {
	b := New()
	// [2, 3, 2] -> permute (1, 0, 2) -> [3, 2, 2]
	a := rawFloat32(t, []float32{
		0, 1, 2, 3, 4, 5,
		6, 7, 8, 9, 10, 11,
	}, tensor.Shape{2, 3, 2})

	got := b.Transpose(a, 1, 0, 2)
	want := []float32{
		0, 1, 6, 7,
		2, 3, 8, 9,
		4, 5, 10, 11,
	}
	assertFloat32(t, got, want, tensor.Shape{3, 2, 2})
}

func TestEmbedding(t *testing.T) {
	b := New()
	weight := rawFloat32(t, []float32{
		10, 11,
		20, 21,
		30, 31,
	}, tensor.Shape{3, 2})

	idx, err := tensor.NewRaw(tensor.Shape{4}, tensor.Int32)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(idx.AsInt32(), []int32{2, 0, 2, 1})

	assertFloat32(t, b.Embedding(weight, idx),
		[]float32{30, 31, 10, 11, 30, 31, 20, 21}, tensor.Shape{4, 2})
}

func TestEmbeddingOutOfRange(t *testing.T) {
	b := New()
	weight := rawFloat32(t, []float32{1, 2}, tensor.Shape{1, 2})

	idx, _ := tensor.NewRaw(tensor.Shape{1}, tensor.Int32)
	idx.AsInt32()[0] = 5

	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	b.Embedding(weight, idx)
}

func TestSigmoid(t *testing.T) {
	b := New()
	a := rawFloat32(t, []float32{0, 100, -100}, tensor.Shape{3})

	got := b.Sigmoid(a).AsFloat32()
	if math.Abs(float64(got[0]-0.5)) > 1e-6 {
		t.Errorf("sigmoid(0) = %v, want 0.5", got[0])
	}
	if got[1] <= 0.999 {
		t.Errorf("sigmoid(100) = %v, want ~1", got[1])
	}
	if got[2] >= 0.001 {
		t.Errorf("sigmoid(-100) = %v, want ~0", got[2])
	}
}
