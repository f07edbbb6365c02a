package osm2sql

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/pkg/errors"
)

// geoJSONExport collects tagged point-features for a map preview of the
// cleaned extract. Only nodes with at least one surviving tag row are
// worth plotting.
type geoJSONExport struct {
	collection *geojson.FeatureCollection
}

func newGeoJSONExport() *geoJSONExport {
	return &geoJSONExport{
		collection: geojson.NewFeatureCollection(),
	}
}

func (export *geoJSONExport) addPoint(node *NodeRow, tags []TagRow) {
	feature := geojson.NewPointFeature([]float64{node.Lon, node.Lat})
	feature.SetProperty("id", node.ID)
	for i := range tags {
		key := tags[i].Key
		if tags[i].Type != DefaultTagType {
			key = tags[i].Type + ":" + tags[i].Key
		}
		feature.SetProperty(key, tags[i].Value)
	}
	export.collection.AddFeature(feature)
}

func (export *geoJSONExport) writeFile(path string) error {
	data, err := export.collection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "Can't write GeoJSON file")
	}
	return nil
}
