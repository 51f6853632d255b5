package repository

import (
	"fmt"

	domrepo "TechAnalyst/internal/domain/repository"
)

// insertChunk bounds the rows of one multi-row INSERT.
const insertChunk = 2000

// chTableForTF returns the ClickHouse table holding bars of tf.
func chTableForTF(database string, tf domrepo.Timeframe) (string, error) {
	switch tf {
	case domrepo.TF1h:
		return database + ".bars_1h", nil
	case domrepo.TF1d:
		return database + ".bars_1d", nil
	default:
		return "", fmt.Errorf("unsupported timeframe: %s", tf)
	}
}

// reverse flips a DESC result into ascending order.
func reverse[T any](xs []T) {
	for i, j := 0, len(xs)-1; i < j; i, j = i+1, j-1 {
		xs[i], xs[j] = xs[j], xs[i]
	}
}
