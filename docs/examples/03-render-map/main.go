package main

import (
	"fmt"
	"image/color"
	"log"
	"os"

	"gonum.org/v1/plot/vg"

	pondconn "github.com/tidemill/pondconn/pkg/v1"
)

func main() {
	reader := pondconn.NewReader()

	ponds, err := reader.Read("nwi_ponds.geojson")
	if err != nil {
		log.Fatal(err)
	}

	f, err := os.Create("ponds.png")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	// Fill each pond by its area_ha column and outline the largest pond.
	err = pondconn.RenderMap(f, pondconn.DefaultRenderOptions(),
		pondconn.MapLayer{Data: ponds, FillAttribute: "area_ha"},
		pondconn.MapLayer{
			Data:      ponds.Select(largestPond(ponds)),
			LineColor: color.NRGBA{R: 200, A: 255},
			LineWidth: 0.5 * vg.Millimeter,
		},
	)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("wrote ponds.png")
}

// largestPond returns the id of the pond with the biggest area_ha value.
func largestPond(ds *pondconn.Dataset) int64 {
	var bestID int64
	best := -1.0
	for _, f := range ds.Features() {
		if area, ok := f.AttributeFloat("area_ha"); ok && area > best {
			best = area
			bestID = f.ID()
		}
	}
	return bestID
}
