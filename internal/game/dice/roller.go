package dice

import (
	"fmt"

	"go.uber.org/zap"
)

// Roller implements RandomRoll on top of a Source, logging every roll at
// debug level with its bounds, individual draws and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs to logger.
//
// Precondition: src and logger must be non-nil.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	return &Roller{src: src, logger: logger}
}

// Roll returns the sum of count uniform draws in [min, max].
//
// Precondition: count >= 1 and max >= min.
// Postcondition: count*min <= result <= count*max, or an error wrapping ErrRoll.
func (r *Roller) Roll(min, max, count int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("%w: count %d < 1", ErrRoll, count)
	}
	if max < min {
		return 0, fmt.Errorf("%w: max %d < min %d", ErrRoll, max, min)
	}
	draws := make([]int, count)
	total := 0
	for i := range draws {
		draws[i] = min + r.src.Intn(max-min+1)
		total += draws[i]
	}
	r.logger.Debug("dice roll",
		zap.Int("min", min),
		zap.Int("max", max),
		zap.Ints("draws", draws),
		zap.Int("total", total),
	)
	return total, nil
}
