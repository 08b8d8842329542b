//go:build race

package guarded

const raceEnabled = true
