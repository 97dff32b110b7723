// Package pondconn loads geospatial vector data into tabular collections and
// computes pond edge connectivity metrics.
//
// This package is designed for waterbody analysis workflows. It reads
// shapefiles and GeoJSON into Datasets (ordered rows of geometry plus
// attributes), supports spatial queries and overlays, renders map figures,
// and implements an edge connectivity recipe for measuring how much of a
// pond's shoreline neighborhood is shared with nearby ponds.
//
// # Basic Usage
//
//	reader := pondconn.NewReader()
//	ponds, err := reader.Read("nwi_ponds.shp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Dataset: %s has %d rows covering %+v\n",
//	    ponds.Name(), ponds.FeatureCount(), ponds.Bounds())
//
// # Connectivity Workflow
//
// The connectivity metric walks a fixed recipe for one focal pond: buffer the
// pond by a reach distance, take the boundary of the reach, re-buffer that
// boundary into a thin edge ring, intersect the ring with every other pond,
// and wrap each intersection piece in its convex hull. Two aggregates come
// out: total edge length in meters and total hull area in square meters.
//
//	result, err := pondconn.Connectivity(ponds, 42, pondconn.DefaultConnectivityOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary())
//
// Distances are interpreted in the units of the dataset's spatial reference,
// so reproject geographic data to a metric projection first:
//
//	projected, err := ponds.Reproject("+proj=utm +zone=18 +datum=WGS84 +units=m +no_defs")
//
// # Spatial Queries
//
// Datasets build a spatial index on load for fast bounding-box queries:
//
//	region := pondconn.Bounds{MinX: 500000, MinY: 5200000, MaxX: 600000, MaxY: 5300000}
//	nearby := ponds.FeaturesInBounds(region)
//
// # Overlays and Column Math
//
// Overlay intersects two polygon datasets row by row, keeping attributes from
// both sides. Column reductions work on any dataset:
//
//	shared, err := pondconn.Overlay(ponds, wetlands)
//	total, err := pondconn.TotalArea(shared)
//
// # Rendering
//
// RenderMap draws one or more datasets to a PNG, either with flat outlines or
// choropleth-style filled by a numeric attribute:
//
//	f, _ := os.Create("ponds.png")
//	defer f.Close()
//	err := pondconn.RenderMap(f, pondconn.DefaultRenderOptions(),
//	    pondconn.MapLayer{Data: ponds, FillAttribute: "area_ha"},
//	    pondconn.MapLayer{Data: result.Pieces, LineWidth: 2},
//	)
//
// # Large Inventories
//
// For inventories split across many files, BuildIndexFromDir indexes file
// extents and DatasetLoader loads intersecting files on demand through an
// LRU cache:
//
//	idx, _ := pondconn.BuildIndexFromDir("/data/nwi", reader, pondconn.DefaultLoadOptions())
//	loader := pondconn.NewDatasetLoader(idx, pondconn.DefaultLoaderOptions())
//	datasets, _ := loader.GetDatasetsForBounds(region)
package pondconn
