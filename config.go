package guarded

import (
	"encoding/json"
	"os"
)

type LogConf struct {
	Level         string `json:"level"`
	Async         bool   `json:"async"`
	BufferSize    int    `json:"buffer_size"`
	FlushInterval int    `json:"flush_interval"`
}

type PlaygroundConf struct {
	InitialValue int      `json:"initial_value"`
	Workers      int      `json:"workers"`
	Increments   int      `json:"increments"`
	RaceAttempts int      `json:"race_attempts"`
	Variants     []string `json:"variants"`
}

type QueueConf struct {
	ConcurrentWidth int `json:"concurrent_width"`
}

type Config struct {
	Log        *LogConf        `json:"log"`
	Playground *PlaygroundConf `json:"playground"`
	Queue      *QueueConf      `json:"queue"`
}

// DefaultConfig returns a fresh copy of the built-in settings.
func DefaultConfig() Config {
	return Config{
		Log: &LogConf{
			Level:         "debug",
			Async:         false,
			BufferSize:    1000000,
			FlushInterval: 1,
		},
		Playground: &PlaygroundConf{
			InitialValue: 10,
			Workers:      2,
			Increments:   10,
			RaceAttempts: 5,
		},
		Queue: &QueueConf{
			ConcurrentWidth: 4,
		},
	}
}

var G = DefaultConfig()

func LoadConfig(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err = decoder.Decode(&G); err != nil {
		return err
	}

	return nil
}
