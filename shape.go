package osm2sql

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	lowerColonRegExp   = regexp.MustCompile(`^([a-z]|_)+:([a-z]|_)+`)
	problemCharsRegExp = regexp.MustCompile(`[=\+/&<>;'"\?%#$@\,\. \t\r\n]`)
	arabicKeyRegExp    = regexp.MustCompile("(:ar|\\bar)$")
)

// DefaultTagType marks tags whose key carries no namespace prefix.
const DefaultTagType = "regular"

type NodeRow struct {
	User      string
	Timestamp time.Time
	ID        int64
	UID       int64
	Changeset int64
	Lat       float64
	Lon       float64
	Version   int
}

type WayRow struct {
	User      string
	Timestamp time.Time
	ID        int64
	UID       int64
	Changeset int64
	Version   int
}

type TagRow struct {
	Key   string
	Value string
	Type  string
	ID    int64
}

type WayNodeRow struct {
	ID       int64
	NodeID   int64
	Position int
}

// ShapedElement is the tabular projection of one element: exactly one
// of Node/Way is set, plus the surviving tag rows and, for ways, the
// ordered member rows.
type ShapedElement struct {
	Node     *NodeRow
	Way      *WayRow
	Tags     []TagRow
	WayNodes []WayNodeRow
	// DroppedTags counts tag rows skipped for malformed keys.
	DroppedTags int
}

// Shaper converts elements into row records, routing the configured
// tag keys through the cleaner on the way.
type Shaper struct {
	cleaner *Cleaner
}

func NewShaper(cleaner *Cleaner) *Shaper {
	return &Shaper{cleaner: cleaner}
}

// Shape produces the rows for one element. Tags with problematic or
// Arabic-suffixed keys are dropped silently; the element row itself is
// always produced.
func (shaper *Shaper) Shape(elem *Element) *ShapedElement {
	shaped := &ShapedElement{}
	switch elem.Kind {
	case KIND_NODE:
		shaped.Node = &NodeRow{
			ID:        elem.ID,
			Lat:       elem.Lat,
			Lon:       elem.Lon,
			User:      elem.User,
			UID:       elem.UID,
			Version:   elem.Version,
			Changeset: elem.Changeset,
			Timestamp: elem.Timestamp,
		}
	case KIND_WAY:
		shaped.Way = &WayRow{
			ID:        elem.ID,
			User:      elem.User,
			UID:       elem.UID,
			Version:   elem.Version,
			Changeset: elem.Changeset,
			Timestamp: elem.Timestamp,
		}
		shaped.WayNodes = make([]WayNodeRow, 0, len(elem.NodeRefs))
		for position, nodeID := range elem.NodeRefs {
			shaped.WayNodes = append(shaped.WayNodes, WayNodeRow{
				ID:       elem.ID,
				NodeID:   int64(nodeID),
				Position: position,
			})
		}
	}
	for _, tag := range elem.Tags {
		if problemCharsRegExp.MatchString(tag.Key) || arabicKeyRegExp.MatchString(tag.Key) {
			shaped.DroppedTags++
			continue
		}
		value := tag.Value
		if shaper.cleaner != nil {
			value = shaper.cleaner.Clean(tag.Key, tag.Value)
		}
		row := TagRow{
			ID:    elem.ID,
			Value: value,
		}
		if lowerColonRegExp.MatchString(tag.Key) {
			split := strings.SplitN(tag.Key, ":", 2)
			row.Type = split[0]
			row.Key = split[1]
		} else {
			row.Type = DefaultTagType
			row.Key = tag.Key
		}
		shaped.Tags = append(shaped.Tags, row)
	}
	return shaped
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// Record renders the row in nodes-table column order.
func (row *NodeRow) Record() []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		strconv.FormatFloat(row.Lat, 'f', -1, 64),
		strconv.FormatFloat(row.Lon, 'f', -1, 64),
		row.User,
		strconv.FormatInt(row.UID, 10),
		strconv.Itoa(row.Version),
		strconv.FormatInt(row.Changeset, 10),
		formatTimestamp(row.Timestamp),
	}
}

// Record renders the row in ways-table column order.
func (row *WayRow) Record() []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.User,
		strconv.FormatInt(row.UID, 10),
		strconv.Itoa(row.Version),
		strconv.FormatInt(row.Changeset, 10),
		formatTimestamp(row.Timestamp),
	}
}

// Record renders the row in tags-table column order.
func (row *TagRow) Record() []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		row.Key,
		row.Value,
		row.Type,
	}
}

// Record renders the row in ways_nodes-table column order.
func (row *WayNodeRow) Record() []string {
	return []string{
		strconv.FormatInt(row.ID, 10),
		strconv.FormatInt(row.NodeID, 10),
		strconv.Itoa(row.Position),
	}
}
