package generator

import "errors"

// Rejection errors. The generation loop consumes these internally and
// tallies them; they never escape Generate. When the attempt budget runs
// out, Generate returns ErrAttemptsExhausted instead.
var (
	// ErrDegenerateGrid means carving left a largest room of fewer than
	// two cells.
	ErrDegenerateGrid = errors.New("degenerate grid")

	// ErrNoWordForSegment means some segment's constraints matched no word.
	ErrNoWordForSegment = errors.New("no word fits segment")

	// ErrLowQuality means the solution's average word length fell below
	// the configured threshold.
	ErrLowQuality = errors.New("average word length below threshold")

	// ErrAttemptsExhausted means MaxAttempts rejections occurred without
	// producing a level.
	ErrAttemptsExhausted = errors.New("attempt budget exhausted")
)
