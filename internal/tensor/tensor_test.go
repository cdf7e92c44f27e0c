package tensor

import (
	"math"
	"testing"
)

func assertEqualShape(t *testing.T, expected, actual Shape, msg string) {
	t.Helper()
	if !expected.Equal(actual) {
		t.Errorf("%s: expected shape %v, got %v", msg, expected, actual)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
	}

	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestParseDataType(t *testing.T) {
	for _, dt := range []DataType{Float32, Float64, Int32, Int64, Uint8, Bool} {
		got, ok := ParseDataType(dt.String())
		if !ok || got != dt {
			t.Errorf("ParseDataType(%q) = %v, %v; want %v", dt.String(), got, ok, dt)
		}
	}
	if _, ok := ParseDataType("float16"); ok {
		t.Error("ParseDataType(\"float16\") should fail")
	}
	if got := DataType(42).String(); got != "unknown" {
		t.Errorf("DataType(42).String() = %q, want \"unknown\"", got)
	}
}

func TestShapeBasics(t *testing.T) {
	s := Shape{2, 3, 4}
	if s.Rank() != 3 {
		t.Errorf("Rank() = %d, want 3", s.Rank())
	}
	if s.NumElements() != 24 {
		t.Errorf("NumElements() = %d, want 24", s.NumElements())
	}
	if got := s.ComputeStrides(); got[0] != 12 || got[1] != 4 || got[2] != 1 {
		t.Errorf("ComputeStrides() = %v, want [12 4 1]", got)
	}
	if (Shape{}).NumElements() != 1 {
		t.Error("scalar shape should have one element")
	}
	if err := (Shape{2, 0}).Validate(); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		a, b    Shape
		want    Shape
		wantErr bool
	}{
		{Shape{3, 1}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 5}, Shape{3, 5}, Shape{3, 5}, false},
		{Shape{3, 4}, Shape{3, 5}, nil, true},
	}

	for _, tt := range tests {
		got, err := BroadcastShapes(tt.a, tt.b)
		if tt.wantErr {
			if err == nil {
				t.Errorf("BroadcastShapes(%v, %v) expected error", tt.a, tt.b)
			}
			continue
		}
		if err != nil {
			t.Fatalf("BroadcastShapes(%v, %v): %v", tt.a, tt.b, err)
		}
		assertEqualShape(t, tt.want, got, "broadcast")
	}
}

func TestCreation(t *testing.T) {
	z := Zeros(Shape{10})
	if Sum(z) != 0 {
		t.Errorf("Zeros sum = %v, want 0", Sum(z))
	}

	f := Full(Shape{10}, 5)
	if Sum(f) != 50 {
		t.Errorf("Full sum = %v, want 50", Sum(f))
	}

	r := Randn(Shape{3, 4})
	assertEqualShape(t, Shape{3, 4}, r.Shape(), "Randn")

	x, err := FromSlice([]int64{1, 2, 3}, Shape{3})
	if err != nil {
		t.Fatal(err)
	}
	if x.DType() != Int64 || Sum(x) != 6 {
		t.Errorf("FromSlice: dtype %s sum %v", x.DType(), Sum(x))
	}

	if _, err := FromSlice([]float32{1, 2}, Shape{3}); err == nil {
		t.Error("expected element count error")
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Zeros(Shape{4})
	b := a.Clone()
	b.AsFloat32()[0] = 7
	if a.AsFloat32()[0] != 0 {
		t.Error("Clone shares storage with the original")
	}
}

func TestElementwiseOps(t *testing.T) {
	x := Zeros(Shape{10})
	if got := Sum(AddScalar(x, 1)); got != 10 {
		t.Errorf("AddScalar sum = %v, want 10", got)
	}

	a := Full(Shape{2, 3}, 2)
	b, _ := FromSlice([]float32{1, 2, 3}, Shape{3})
	sum, err := Add(a, b)
	if err != nil {
		t.Fatal(err)
	}
	assertEqualShape(t, Shape{2, 3}, sum.Shape(), "Add")
	if got := Sum(sum); got != 24 {
		t.Errorf("Add sum = %v, want 24", got)
	}

	diff, err := Sub(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got := Sum(diff); got != 0 {
		t.Errorf("Sub sum = %v, want 0", got)
	}

	neg, _ := FromSlice([]float32{-1, 2}, Shape{2})
	if got := ReLU(neg).AsFloat32(); got[0] != 0 || got[1] != 2 {
		t.Errorf("ReLU = %v", got)
	}
}

func TestMatMul(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	b, _ := FromSlice([]float32{1, 0, 0, 1, 1, 1}, Shape{3, 2})

	out, err := MatMul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	assertEqualShape(t, Shape{2, 2}, out.Shape(), "MatMul")
	want := []float32{4, 5, 10, 11}
	for i, v := range out.AsFloat32() {
		if v != want[i] {
			t.Errorf("MatMul[%d] = %v, want %v", i, v, want[i])
		}
	}

	if _, err := MatMul(a, a); err == nil {
		t.Error("expected inner dimension error")
	}

	tr, err := Transpose2D(a)
	if err != nil {
		t.Fatal(err)
	}
	assertEqualShape(t, Shape{3, 2}, tr.Shape(), "Transpose2D")
	if tr.AsFloat32()[1] != 4 {
		t.Errorf("Transpose2D[0,1] = %v, want 4", tr.AsFloat32()[1])
	}
}

func TestLogSoftmaxAndArgmax(t *testing.T) {
	x, _ := FromSlice([]float32{1, 3, 2, 0, 0, 5}, Shape{2, 3})

	ls := LogSoftmax(x)
	for row := 0; row < 2; row++ {
		var p float64
		for _, v := range ls.AsFloat32()[row*3 : row*3+3] {
			p += math.Exp(float64(v))
		}
		if math.Abs(p-1) > 1e-5 {
			t.Errorf("row %d probabilities sum to %v", row, p)
		}
	}

	idx := Argmax(x)
	assertEqualShape(t, Shape{2}, idx.Shape(), "Argmax")
	if got := idx.AsInt64(); got[0] != 1 || got[1] != 2 {
		t.Errorf("Argmax = %v, want [1 2]", got)
	}
}
