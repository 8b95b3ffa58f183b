package domain

import "fmt"

const (
	// HardCorrelationThreshold is the value at and above which two courses
	// must never be scheduled with overlapping sessions.
	HardCorrelationThreshold = 2.0
	// SoftCorrelationThreshold is the value at and above which an overlap
	// between two courses contributes to the soft correlation penalty.
	SoftCorrelationThreshold = 0.5
)

// CorrelationMatrix is a symmetric, non-negative N×N table of course
// correlation values indexed by course name, zero on the diagonal.
type CorrelationMatrix struct {
	index map[string]int
	names []string
	data  [][]float64
}

// NewCorrelationMatrix builds a matrix over the given course names. Values
// not supplied default to zero, satisfying the "missing correlation data
// yields a zero matrix" contract.
func NewCorrelationMatrix(names []string) *CorrelationMatrix {
	m := &CorrelationMatrix{
		index: make(map[string]int, len(names)),
		names: append([]string(nil), names...),
		data:  make([][]float64, len(names)),
	}
	for i, name := range names {
		m.index[name] = i
		m.data[i] = make([]float64, len(names))
	}
	return m
}

// Dimension returns N, the number of courses the matrix was built over.
func (m *CorrelationMatrix) Dimension() int { return len(m.names) }

// Set records the correlation between a and b. Both directions are written
// to preserve symmetry, and setting the diagonal is a no-op.
func (m *CorrelationMatrix) Set(a, b string, value float64) error {
	i, ok := m.index[a]
	if !ok {
		return fmt.Errorf("%w: unknown course %q in correlation matrix", ErrInvalidInput, a)
	}
	j, ok := m.index[b]
	if !ok {
		return fmt.Errorf("%w: unknown course %q in correlation matrix", ErrInvalidInput, b)
	}
	if i == j {
		return nil
	}
	m.data[i][j] = value
	m.data[j][i] = value
	return nil
}

// Get returns the correlation between a and b, or zero if either name is
// unknown to the matrix.
func (m *CorrelationMatrix) Get(a, b string) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return m.data[i][j]
}

// IsHard reports whether the correlation between a and b is a hard
// forbidden-co-timing constraint.
func (m *CorrelationMatrix) IsHard(a, b string) bool {
	return m.Get(a, b) >= HardCorrelationThreshold
}

// Names returns the course names the matrix was built over, in their
// original order.
func (m *CorrelationMatrix) Names() []string {
	return append([]string(nil), m.names...)
}
