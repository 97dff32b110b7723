package main

import (
	"fmt"
	"log"

	pondconn "github.com/tidemill/pondconn/pkg/v1"
)

func main() {
	// Create reader
	reader := pondconn.NewReader()

	// Load a pond inventory
	ponds, err := reader.Read("nwi_ponds.shp")
	if err != nil {
		log.Fatal(err)
	}

	// Print dataset info
	fmt.Printf("Dataset: %s\n", ponds.Name())
	fmt.Printf("Rows: %d\n", ponds.FeatureCount())
	fmt.Printf("Proj4: %s\n", ponds.Proj4())

	// Get dataset bounds
	bounds := ponds.Bounds()
	fmt.Printf("Bounds: [%.4f,%.4f] to [%.4f,%.4f]\n",
		bounds.MinX, bounds.MinY,
		bounds.MaxX, bounds.MaxY)
}
