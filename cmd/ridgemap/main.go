// Command ridgemap renders a ridge-plot elevation visualization of a
// geographic area given as a WKT polygon, using either a local GeoTIFF DEM
// or the OpenTopography API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"

	ridgeline "github.com/tjbutt92/map-elevation-desire"
	"github.com/tjbutt92/map-elevation-desire/opentopo"
)

func run() error {
	wktPolygon := flag.String("wkt", "", "WKT POLYGON of the area of interest")
	demPath := flag.String("dem", "", "path to a local GeoTIFF DEM (skips the download)")
	outputPath := flag.String("o", "elevation_output.png", "output PNG path")
	apiKey := flag.String("api-key", os.Getenv("OPENTOPO_API_KEY"), "OpenTopography API key")
	demType := flag.String("dem-type", opentopo.DefaultDEMType, "OpenTopography DEM type")
	exaggeration := flag.Float64("exaggeration", 10, "vertical exaggeration (>= 1)")
	numProfiles := flag.Int("profiles", 100, "number of horizontal profiles")
	numPoints := flag.Int("points", 200, "number of points per profile")
	noColor := flag.Bool("no-color", false, "draw solid white lines instead of the elevation gradient")
	baseWidth := flag.Int("width", 1600, "output image width in pixels")
	previewSizes := flag.String("preview-sizes", "", "comma-separated preview heights in pixels, e.g. 256,512")
	flag.Parse()

	if *wktPolygon == "" {
		return errors.New("missing -wkt")
	}

	geometry, err := wkt.Unmarshal(*wktPolygon)
	if err != nil {
		return err
	}
	polygon, ok := geometry.(orb.Polygon)
	if !ok {
		return fmt.Errorf("%T: expected a POLYGON", geometry)
	}
	extent, err := ridgeline.ExtentFromPolygon(polygon)
	if err != nil {
		return err
	}

	var grid ridgeline.Grid
	if *demPath != "" {
		grid, err = ridgeline.ReadGeoTIFFGridFile(os.DirFS(filepath.Dir(*demPath)), filepath.Base(*demPath))
		if err != nil {
			return err
		}
	} else {
		if *apiKey == "" {
			return errors.New("missing -api-key (or OPENTOPO_API_KEY)")
		}
		client, err := opentopo.NewClient(*apiKey, opentopo.WithDEMType(*demType))
		if err != nil {
			return err
		}
		grid, err = client.FetchGrid(context.Background(), extent)
		if err != nil {
			return err
		}
	}

	params := ridgeline.DefaultParams()
	params.VerticalExaggeration = *exaggeration
	params.UseColorGradient = !*noColor
	params.NumProfiles = *numProfiles
	params.NumPointsPerProfile = *numPoints
	params.BaseWidth = *baseWidth

	img, err := ridgeline.Render(extent, grid, params)
	if err != nil {
		return err
	}
	if err := ridgeline.WritePNG(*outputPath, img); err != nil {
		return err
	}
	fmt.Println("wrote", *outputPath)

	if *previewSizes != "" {
		heights, err := parseSizes(*previewSizes)
		if err != nil {
			return err
		}
		if err := writePreviews(*outputPath, img, heights); err != nil {
			return err
		}
	}

	return nil
}

func parseSizes(s string) ([]uint, error) {
	var sizes []uint
	for _, field := range strings.Split(s, ",") {
		size, err := strconv.ParseUint(strings.TrimSpace(field), 10, 32)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, uint(size))
	}
	return sizes, nil
}

func writePreviews(outputPath string, img image.Image, heights []uint) error {
	dir := filepath.Dir(outputPath)
	if err := ridgeline.WritePreviews(dir, img, heights); err != nil {
		return err
	}
	for _, height := range heights {
		fmt.Println("wrote", filepath.Join(dir, fmt.Sprintf("preview_%d.png", height)))
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
