package scoring

import (
	"errors"

	"github.com/riskibarqy/fantasy-five/internal/domain/player"
)

var (
	ErrNegativeCount   = errors.New("stat counters must not be negative")
	ErrCountOutOfRange = errors.New("stat counter exceeds the maximum")
	ErrUnknownPosition = player.ErrUnknownPosition
)
