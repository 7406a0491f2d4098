package ui

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const (
	StatsAddress = "localhost:12600"
	statsURL     = "/debug/statsview"
)

// LaunchStats serves live runtime charts (heap, goroutines, GC pauses) on
// StatsAddress in a new goroutine.
func LaunchStats(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(StatsAddress))
		mgr := statsview.New()
		mgr.Start()
	}()
	fmt.Fprintf(output, "stats server available at http://%s%s\n", StatsAddress, statsURL)
}
