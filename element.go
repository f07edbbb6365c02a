package osm2sql

import (
	"time"

	"github.com/paulmach/osm"
)

type ElementKind uint16

const (
	KIND_NODE = ElementKind(iota + 1)
	KIND_WAY
)

func (iotaIdx ElementKind) String() string {
	return [...]string{"node", "way"}[iotaIdx-1]
}

// Element is a single top-level OSM element (node or way) with its
// provenance attributes and descriptive tags. Ways additionally carry
// the ordered list of node references defining the path.
type Element struct {
	Tags      osm.Tags
	User      string
	NodeRefs  []osm.NodeID
	Timestamp time.Time
	ID        int64
	UID       int64
	Changeset int64
	Lat       float64
	Lon       float64
	Version   int
	Kind      ElementKind
}

// elementFromNode copies the fields of an osm.Node so the scanner's
// buffer can be released once the element is consumed.
func elementFromNode(node *osm.Node) *Element {
	elem := &Element{
		Kind:      KIND_NODE,
		ID:        int64(node.ID),
		Lat:       node.Lat,
		Lon:       node.Lon,
		User:      node.User,
		UID:       int64(node.UserID),
		Version:   node.Version,
		Changeset: int64(node.ChangesetID),
		Timestamp: node.Timestamp,
		Tags:      make(osm.Tags, len(node.Tags)),
	}
	copy(elem.Tags, node.Tags)
	return elem
}

func elementFromWay(way *osm.Way) *Element {
	elem := &Element{
		Kind:      KIND_WAY,
		ID:        int64(way.ID),
		User:      way.User,
		UID:       int64(way.UserID),
		Version:   way.Version,
		Changeset: int64(way.ChangesetID),
		Timestamp: way.Timestamp,
		Tags:      make(osm.Tags, len(way.Tags)),
		NodeRefs:  make([]osm.NodeID, 0, len(way.Nodes)),
	}
	copy(elem.Tags, way.Tags)
	for _, wayNode := range way.Nodes {
		elem.NodeRefs = append(elem.NodeRefs, wayNode.ID)
	}
	return elem
}

// FindTag returns value of the tag with given key, empty string if the
// key is not present.
func (elem *Element) FindTag(key string) string {
	return elem.Tags.Find(key)
}
