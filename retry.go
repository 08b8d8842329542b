package guarded

import (
	"time"

	"github.com/avast/retry-go/v4"
)

func raceRetryOptions(attempts int) []retry.Option {
	return []retry.Option{
		retry.Attempts(uint(max(attempts, 1))),
		retry.LastErrorOnly(true),
		retry.Delay(time.Millisecond),
	}
}
