//go:build !race

package guarded

const raceEnabled = false
