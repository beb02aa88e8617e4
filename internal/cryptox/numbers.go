package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DrawNumbers picks count distinct values uniformly from 1..max using a partial Fisher-Yates shuffle.
func (s *Suite) DrawNumbers(count, max int) ([]int, error) {
	if count <= 0 || max <= 0 || count > max {
		return nil, fmt.Errorf("cannot draw %d distinct values from 1..%d", count, max)
	}

	pool := make([]int, max)
	for i := range pool {
		pool[i] = i + 1
	}

	for i := 0; i < count; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(max-i)))
		if err != nil {
			return nil, fmt.Errorf("failed to read random index: %w", err)
		}
		j := i + int(n.Int64())
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]int, count)
	copy(out, pool[:count])
	return out, nil
}
