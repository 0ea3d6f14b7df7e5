package distance

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHamming(t *testing.T) {
	tests := []struct {
		name     string
		a, b     uint64
		expected int
	}{
		{"Identical", 0xdeadbeef, 0xdeadbeef, 0},
		{"Zero", 0, 0, 0},
		{"SingleBit", 0b0000, 0b0001, 1},
		{"LowNibble", 0b0000, 0b1111, 4},
		{"AllBits", 0, ^uint64(0), 64},
		{"Mixed", 0xff00, 0x00ff, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Hamming(tt.a, tt.b))
			assert.Equal(t, tt.expected, Hamming(tt.b, tt.a))
		})
	}
}

func TestBounded(t *testing.T) {
	t.Run("SelfIsZero", func(t *testing.T) {
		for _, bound := range []int{-1, 0, 1, 5, 64} {
			assert.Equal(t, 0, Bounded(0xabcdef, 0xabcdef, bound))
		}
	})

	t.Run("ExactWithoutEarlyExit", func(t *testing.T) {
		assert.Equal(t, 4, Bounded(0, 15, Width))
		assert.Equal(t, 64, Bounded(0, ^uint64(0), Width))
	})

	t.Run("StopsAboveBound", func(t *testing.T) {
		got := Bounded(0, ^uint64(0), 3)
		assert.Greater(t, got, 3)
		assert.Less(t, got, 64)
	})

	t.Run("AtBoundary", func(t *testing.T) {
		assert.Equal(t, 3, Bounded(0, 0b111, 3))
		assert.Greater(t, Bounded(0, 0b1111, 3), 3)
	})
}

func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for range 2000 {
		a := rng.Uint64()
		b := a ^ (rng.Uint64() & rng.Uint64() & rng.Uint64())
		bound := rng.Intn(Width + 2)
		want := bits.OnesCount64(a ^ b)
		assert.Equal(t, want, Hamming(a, b))

		for _, k := range []Kernel{KernelPopcount, KernelBounded} {
			fn, err := Provider(k)
			require.NoError(t, err)

			got := fn(a, b, bound)
			assert.Equal(t, got, fn(b, a, bound), "symmetry")
			assert.Equal(t, 0, fn(a, a, bound))
			assert.Equal(t, want, fn(a, b, Width), "exact when bound >= width")

			if want > bound {
				assert.Greater(t, got, bound, "kernel %v a=%x b=%x", k, a, b)
			} else {
				assert.Equal(t, want, got, "kernel %v a=%x b=%x", k, a, b)
			}
		}
	}
}

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in       string
		expected Kernel
		wantErr  bool
	}{
		{"", KernelAuto, false},
		{"auto", KernelAuto, false},
		{" POPCOUNT ", KernelPopcount, false},
		{"bounded", KernelBounded, false},
		{"simd", KernelAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseKernel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownKernel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, k)
		})
	}
}

func TestProvider(t *testing.T) {
	assert.NotEqual(t, KernelAuto, Resolve(KernelAuto))
	assert.Equal(t, KernelBounded, Resolve(KernelBounded))

	_, err := Provider(Kernel(99))
	assert.ErrorIs(t, err, ErrUnknownKernel)
	assert.Equal(t, "Unknown(99)", Kernel(99).String())
}

func BenchmarkKernels(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	xs := make([]uint64, 1024)
	for i := range xs {
		xs[i] = rng.Uint64()
	}

	for _, k := range []Kernel{KernelPopcount, KernelBounded} {
		fn, _ := Provider(k)
		b.Run(k.String(), func(b *testing.B) {
			sum := 0
			for b.Loop() {
				for i := 1; i < len(xs); i++ {
					sum += fn(xs[i-1], xs[i], 8)
				}
			}
			_ = sum
		})
	}
}
