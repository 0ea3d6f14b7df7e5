package distance

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/steakknife/hamming"
	"golang.org/x/sys/cpu"
)

// ErrUnknownKernel is returned when a kernel name or value is not recognized.
var ErrUnknownKernel = errors.New("unknown distance kernel")

// Width is the number of bits in a fingerprint word.
const Width = 64

// Hamming returns the number of differing bits between a and b.
func Hamming(a, b uint64) int {
	return hamming.Uint64(a, b)
}

// Bounded counts the differing bits between a and b, stopping as soon as the
// count exceeds bound. A result greater than bound only means "exceeds";
// its exact value is not meaningful.
func Bounded(a, b uint64, bound int) int {
	x := a ^ b
	count := 0
	for x != 0 {
		x &= x - 1
		count++
		if count > bound {
			return count
		}
	}
	return count
}

func popcount(a, b uint64, _ int) int {
	return hamming.Uint64(a, b)
}

// Func computes the distance between a and b with an early-exit bound.
type Func func(a, b uint64, bound int) int

// Kernel selects the distance implementation.
type Kernel int

const (
	// KernelAuto picks KernelPopcount when the CPU has a popcount
	// instruction and KernelBounded otherwise.
	KernelAuto Kernel = iota
	// KernelPopcount counts all differing bits with hamming.Uint64.
	KernelPopcount
	// KernelBounded uses the early-exit bit clearing loop.
	KernelBounded
)

func (k Kernel) String() string {
	switch k {
	case KernelAuto:
		return "auto"
	case KernelPopcount:
		return "popcount"
	case KernelBounded:
		return "bounded"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ParseKernel parses a kernel name ("auto", "popcount", "bounded").
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KernelAuto, nil
	case "popcount":
		return KernelPopcount, nil
	case "bounded":
		return KernelBounded, nil
	default:
		return KernelAuto, fmt.Errorf("%w: %q", ErrUnknownKernel, s)
	}
}

// Package-level state, set once at init.
var (
	hasPopcount bool

	// autoKernel is what KernelAuto resolves to.
	autoKernel Kernel
)

func init() {
	hasPopcount = cpu.X86.HasPOPCNT || cpu.ARM64.HasASIMD

	autoKernel = KernelBounded
	if hasPopcount {
		autoKernel = KernelPopcount
	}

	if env := os.Getenv("HAMSCAN_KERNEL"); env != "" {
		if k, err := ParseKernel(env); err == nil && k != KernelAuto {
			autoKernel = k
		}
	}
}

// HasHardwarePopcount reports whether the CPU provides a population count
// instruction.
func HasHardwarePopcount() bool {
	return hasPopcount
}

// Resolve returns the concrete kernel k stands for.
func Resolve(k Kernel) Kernel {
	if k == KernelAuto {
		return autoKernel
	}
	return k
}

// Provider returns the distance function for the given kernel.
func Provider(k Kernel) (Func, error) {
	switch Resolve(k) {
	case KernelPopcount:
		return popcount, nil
	case KernelBounded:
		return Bounded, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKernel, k)
	}
}
