package installment

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker denotes that an entry is occurrence Current of Total recurring
// installments. The entry's stored amount is the per-installment share, so
// the original total is amount * Total.
type Marker struct {
	Current int
	Total   int
}

// Parse parses a marker like "2/12". Requires 1 <= current <= total.
func Parse(s string) (Marker, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return Marker{}, fmt.Errorf("invalid installment marker %q: want k/n", s)
	}

	current, err := strconv.Atoi(parts[0])
	if err != nil {
		return Marker{}, fmt.Errorf("invalid installment number in %q: %w", s, err)
	}

	total, err := strconv.Atoi(parts[1])
	if err != nil {
		return Marker{}, fmt.Errorf("invalid installment count in %q: %w", s, err)
	}

	if total < 1 {
		return Marker{}, fmt.Errorf("installment count must be at least 1, got %d", total)
	}
	if current < 1 || current > total {
		return Marker{}, fmt.Errorf("installment number %d out of range 1..%d", current, total)
	}

	return Marker{Current: current, Total: total}, nil
}

// String formats the marker as "k/n".
func (m Marker) String() string {
	return fmt.Sprintf("%d/%d", m.Current, m.Total)
}
