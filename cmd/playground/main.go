package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"guarded"
)

func selectVariants(names []string) ([]guarded.Variant, error) {
	if len(names) == 0 {
		return guarded.Variants(), nil
	}
	variants := make([]guarded.Variant, 0, len(names))
	for _, name := range names {
		v, err := guarded.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, nil
}

func runVariant(v guarded.Variant, conf *guarded.PlaygroundConf) {
	fmt.Printf("\n%s:\n\n", v)

	expected := conf.InitialValue + conf.Workers*conf.Increments
	final, err := v.Run(conf.InitialValue, conf.Workers, conf.Increments,
		func(worker, value int) {
			fmt.Printf("worker=%d value=%d\n", worker, value)
		},
		func(before, after int) {
			fmt.Printf("before=%d after=%d\n", before, after)
		},
	)
	if err != nil {
		guarded.Log.Error("run variant err", zap.Stringer("variant", v), zap.Error(err))
		return
	}

	guarded.Log.Info("variant finished",
		zap.Stringer("variant", v),
		zap.Int("expected", expected),
		zap.Int("final", final),
		zap.Int("lostUpdates", expected-final),
	)
}

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "show version information")
	var configFile string
	flag.StringVar(&configFile, "c", "", "config file")
	var variantList string
	flag.StringVar(&variantList, "variant", "", "comma separated variants to run (default all)")
	var exposeRace bool
	flag.BoolVar(&exposeRace, "race", false, "retry the unsynchronized run until it loses an update")
	flag.Parse()

	if showVersion {
		fmt.Println(guarded.GetVersion())
		os.Exit(0)
	}

	if configFile != "" {
		if err := guarded.LoadConfig(configFile); err != nil {
			panic(err)
		}
	}
	guarded.InitLogger()
	defer guarded.Log.Sync()

	conf := guarded.G.Playground
	names := conf.Variants
	if variantList != "" {
		names = strings.Split(variantList, ",")
	}
	variants, err := selectVariants(names)
	if err != nil {
		guarded.Log.Fatal("select variants err", zap.Error(err))
	}

	for _, v := range variants {
		runVariant(v, conf)
	}

	if exposeRace {
		report, err := guarded.ExposeRace(conf.Workers, conf.Increments, conf.RaceAttempts)
		if err != nil {
			guarded.Log.Warn("race not exposed", zap.Uint("attempts", report.Attempts), zap.Error(err))
			return
		}
		guarded.Log.Info("race exposed",
			zap.Int("expected", report.Expected),
			zap.Int("final", report.Final),
			zap.Int("lostUpdates", report.LostUpdates()),
			zap.Uint("attempts", report.Attempts),
		)
	}
}
