// Command pondconn loads pond inventories and reports edge connectivity.
//
// Usage:
//
//	pondconn info -input ponds.shp
//	pondconn connectivity -input ponds.shp -feature 42 -reach 500
//	pondconn render -input ponds.shp -out ponds.png -fill area_ha
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	pondconn "github.com/tidemill/pondconn/pkg/v1"
)

func main() {
	log.SetFlags(0)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "info":
		runInfo(os.Args[2:])
	case "connectivity":
		runConnectivity(os.Args[2:])
	case "render":
		runRender(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: pondconn <info|connectivity|render> [flags]")
	fmt.Fprintln(os.Stderr, "run 'pondconn <command> -h' for command flags")
}

// loadFlags holds the input flags shared by every command.
type loadFlags struct {
	input      string
	targetProj string
	attrs      string
}

func addLoadFlags(fs *flag.FlagSet) *loadFlags {
	lf := &loadFlags{}
	fs.StringVar(&lf.input, "input", "", "path to a .shp, .geojson, or zip://archive!entry source")
	fs.StringVar(&lf.targetProj, "target-proj", "", "Proj4 string to reproject into while loading")
	fs.StringVar(&lf.attrs, "attrs", "", "comma-separated attribute columns to carry (shapefiles need this to carry any)")
	return lf
}

func (lf *loadFlags) load() *pondconn.Dataset {
	if lf.input == "" {
		log.Fatal("missing -input")
	}

	opts := pondconn.DefaultReadOptions()
	opts.TargetProj4 = lf.targetProj
	if lf.attrs != "" {
		opts.AttributeFilter = strings.Split(lf.attrs, ",")
	}

	ds, err := pondconn.NewReader().ReadWithOptions(lf.input, opts)
	if err != nil {
		log.Fatal(err)
	}
	return ds
}

func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	lf := addLoadFlags(fs)
	fs.Parse(args)

	ds := lf.load()

	fmt.Printf("Dataset:  %s\n", ds.Name())
	fmt.Printf("Rows:     %d\n", ds.FeatureCount())
	if ds.Proj4() != "" {
		fmt.Printf("Proj4:    %s\n", ds.Proj4())
	}

	b := ds.Bounds()
	fmt.Printf("Bounds:   x %.6f to %.6f\n", b.MinX, b.MaxX)
	fmt.Printf("          y %.6f to %.6f\n", b.MinY, b.MaxY)

	if cols := ds.AttributeNames(); len(cols) > 0 {
		fmt.Printf("Columns:  %s\n", strings.Join(cols, ", "))
	}

	area, err := pondconn.TotalArea(ds)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Area:     %.2f (squared coordinate units)\n", area)
}

func runConnectivity(args []string) {
	fs := flag.NewFlagSet("connectivity", flag.ExitOnError)
	lf := addLoadFlags(fs)
	featureID := fs.Int64("feature", -1, "id of the pond to analyze")
	reach := fs.Float64("reach", 500, "reach buffer distance in coordinate units")
	edgeWidth := fs.Float64("edge-width", 1, "half-width of the thin reach-edge polygon")
	quadSegs := fs.Int("quadsegs", 8, "buffer quarter-circle segments")
	out := fs.String("out", "", "optional PNG path for a map of the derivation")
	fs.Parse(args)

	if *featureID < 0 {
		log.Fatal("missing -feature")
	}

	ds := lf.load()

	result, err := pondconn.Connectivity(ds, *featureID, pondconn.ConnectivityOptions{
		ReachDistance: *reach,
		EdgeWidth:     *edgeWidth,
		QuadSegments:  *quadSegs,
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Pond %d, reach %.0f:\n", result.FeatureID, *reach)
	fmt.Printf("  contributing ponds: %d\n", result.Pieces.FeatureCount())
	fmt.Println(result.Summary())

	if *out != "" {
		writeConnectivityMap(*out, ds, result)
		fmt.Printf("map written to %s\n", *out)
	}
}

// writeConnectivityMap draws the source ponds with the derived edge pieces
// and hulls overlaid.
func writeConnectivityMap(path string, ds *pondconn.Dataset, result *pondconn.ConnectivityResult) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	err = pondconn.RenderMap(f, pondconn.DefaultRenderOptions(),
		pondconn.MapLayer{Data: ds},
		pondconn.MapLayer{Data: result.Hulls},
		pondconn.MapLayer{Data: result.Pieces},
	)
	if err != nil {
		log.Fatal(err)
	}
}

func runRender(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	lf := addLoadFlags(fs)
	out := fs.String("out", "map.png", "output PNG path")
	fill := fs.String("fill", "", "numeric attribute column for choropleth fill")
	fs.Parse(args)

	ds := lf.load()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	err = pondconn.RenderMap(f, pondconn.DefaultRenderOptions(),
		pondconn.MapLayer{Data: ds, FillAttribute: *fill})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("map written to %s\n", *out)
}
