package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"locktable"
	"locktable/util"
)

const sampleInterval = 100

func main() {
	if len(os.Args) != 2 {
		fatal("usage: locktable <num_workers>")
	}
	workers, err := strconv.Atoi(os.Args[1])
	if err != nil || workers <= 0 {
		fatal("must enter a valid number of workers to run")
	}

	cfg := locktable.DefaultConfig()
	cfg.SampleInterval = sampleInterval

	// One key universe shared by all strategies, so the runs are comparable.
	keys := util.RandomKeys(cfg.NumKeys, uint64(time.Now().UnixNano()))

	for _, strategy := range locktable.AllStrategies {
		cfg.Strategy = strategy
		workload, err := locktable.NewWorkloadWithKeys(cfg, workers, keys)
		if err != nil {
			log.Fatal(err)
		}
		workload.Run().Print(os.Stdout)
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
