package guarded

import (
	"errors"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
)

var ErrNoLostUpdate = errors.New("no lost update observed")

type RaceReport struct {
	Expected int
	Final    int
	Attempts uint
}

func (r RaceReport) LostUpdates() int {
	return r.Expected - r.Final
}

// ExposeRace hammers a fresh UnsynchronizedCell until a run loses at least
// one update, giving up after attempts runs.
func ExposeRace(workers, increments, attempts int) (RaceReport, error) {
	report := RaceReport{Expected: workers * increments}
	_, err := retry.DoWithData(func() (int, error) {
		report.Attempts++
		final, err := Hammer(NewUnsynchronizedCell(0), workers, increments, nil)
		if err != nil {
			return 0, retry.Unrecoverable(err)
		}
		report.Final = final
		if final >= report.Expected {
			return final, ErrNoLostUpdate
		}
		return final, nil
	}, append(raceRetryOptions(attempts),
		retry.OnRetry(func(n uint, err error) {
			Log.Debug("race not exposed", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)...)
	return report, err
}
