package samplestore

import (
	"fmt"

	"github.com/lifetick/lifetick/schema"
)

// PrintStoreStatus prints sample store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Samples: %d\n", status.TotalSamples)
	if status.TotalSamples > 0 {
		fmt.Printf("Last Sample: %s\n", status.LastSampleTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Sample: %s\n", status.OldestSampleTime.Format("2006-01-02 15:04:05"))
		fmt.Println("Samples By Type:")
		for _, t := range schema.AllMetricTypes {
			if count, ok := status.ByType[t]; ok {
				fmt.Printf("  %s: %d\n", t, count)
			}
		}
	}
}
