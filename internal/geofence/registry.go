// Package geofence tests entity coordinates against the current and
// historical territorial boundaries of Germany.
package geofence

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Canonical dataset names. Result flag keys are "is_within_" + name.
const (
	DatasetCurrentGermany    = "current_germany"
	DatasetGermany1886To1919 = "historical_germany_1886_1919"
	DatasetGermany1919To1920 = "historical_germany_1919_1920"
	DatasetGermany1920To1938 = "historical_germany_1920_1938"
	DatasetGermany1938To1945 = "historical_germany_1938_1945"
	DatasetGFR1945To1949     = "historical_GFR_1945_1949"
	DatasetGFR1949To1990     = "historical_GFR_1949_1990"
	DatasetGFR1990To2019     = "historical_GFR_1990_2019"
	DatasetGDR1945To1949     = "historical_GDR_1945_1949"
	DatasetGDR1949To1990     = "historical_GDR_1949_1990"
)

// DatasetNames lists all dataset names in stable order
var DatasetNames = []string{
	DatasetCurrentGermany,
	DatasetGermany1886To1919,
	DatasetGermany1919To1920,
	DatasetGermany1920To1938,
	DatasetGermany1938To1945,
	DatasetGFR1945To1949,
	DatasetGFR1949To1990,
	DatasetGFR1990To2019,
	DatasetGDR1945To1949,
	DatasetGDR1949To1990,
}

// datasetFiles maps dataset names to the upstream boundary file numbering.
// current_germany intentionally loads the same file as
// historical_GFR_1990_2019; the datasets stay independent after load.
var datasetFiles = map[string]string{
	DatasetGermany1886To1919: "84.json",
	DatasetGermany1919To1920: "85.json",
	DatasetGermany1920To1938: "86.json",
	DatasetGermany1938To1945: "87.json",
	DatasetGFR1945To1949:     "88.json",
	DatasetGFR1949To1990:     "89.json",
	DatasetGFR1990To2019:     "90.json",
	DatasetCurrentGermany:    "90.json",
	DatasetGDR1945To1949:     "91.json",
	DatasetGDR1949To1990:     "92.json",
}

// Dataset is one named, immutable territorial boundary at one epoch.
// A dataset may hold multiple disjoint polygons (non-contiguous territory).
type Dataset struct {
	Name     string
	polygons []orb.Polygon
}

// Registry holds the ten boundary datasets. It is built once at startup
// and read-only afterwards, so it is safe to share across goroutines.
type Registry struct {
	datasets []Dataset
}

// NewRegistry builds a registry from pre-decoded datasets (tests, embedders).
// Dataset order is preserved.
func NewRegistry(datasets []Dataset) *Registry {
	return &Registry{datasets: datasets}
}

// NewDataset builds a dataset from raw polygons
func NewDataset(name string, polygons []orb.Polygon) Dataset {
	return Dataset{Name: name, polygons: polygons}
}

// LoadDir loads all ten datasets from a directory of GeoJSON boundary files
// using the upstream file numbering (84.json through 92.json).
func LoadDir(dir string) (*Registry, error) {
	datasets := make([]Dataset, 0, len(DatasetNames))
	for _, name := range DatasetNames {
		path := filepath.Join(dir, datasetFiles[name])
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read boundary %s: %w", name, err)
		}
		dataset, err := decodeDataset(name, data)
		if err != nil {
			return nil, fmt.Errorf("decode boundary %s: %w", name, err)
		}
		datasets = append(datasets, dataset)
	}
	return NewRegistry(datasets), nil
}

// decodeDataset decodes one GeoJSON FeatureCollection into a Dataset,
// flattening MultiPolygons into individual polygons.
func decodeDataset(name string, data []byte) (Dataset, error) {
	collection, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Dataset{}, err
	}

	var polygons []orb.Polygon
	for _, feature := range collection.Features {
		switch geometry := feature.Geometry.(type) {
		case orb.Polygon:
			polygons = append(polygons, geometry)
		case orb.MultiPolygon:
			polygons = append(polygons, geometry...)
		}
	}

	return NewDataset(name, polygons), nil
}

// Datasets returns the datasets in load order
func (r *Registry) Datasets() []Dataset {
	return r.datasets
}

// Len returns the number of datasets
func (r *Registry) Len() int {
	return len(r.datasets)
}
