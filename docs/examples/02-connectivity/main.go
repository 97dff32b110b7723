package main

import (
	"fmt"
	"log"

	pondconn "github.com/tidemill/pondconn/pkg/v1"
)

func main() {
	reader := pondconn.NewReader()

	// Load into a meter-based projection so reach distances are meters.
	opts := pondconn.DefaultReadOptions()
	opts.TargetProj4 = "+proj=utm +zone=18 +datum=WGS84 +units=m +no_defs"

	ponds, err := reader.ReadWithOptions("nwi_ponds.geojson", opts)
	if err != nil {
		log.Fatal(err)
	}

	// Measure how much of pond 42's 500 m reach edge crosses other ponds.
	result, err := pondconn.Connectivity(ponds, 42, pondconn.DefaultConnectivityOptions())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Contributing ponds: %d\n", result.Pieces.FeatureCount())
	for _, piece := range result.Pieces.Features() {
		name, _ := piece.Attribute("name")
		fmt.Printf("  pond %d (%v)\n", piece.ID(), name)
	}

	// The two scalar aggregates.
	fmt.Println(result.Summary())
}
