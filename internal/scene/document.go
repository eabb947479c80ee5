package scene

import (
	"encoding/json"
	"fmt"
	"os"
)

// DocumentName is the annotation document every scene directory must contain.
const DocumentName = "scene_instances.json"

// Document is one parsed annotation document. Images and instances keep
// their optional-field JSON shapes; derived views below apply the presence
// checks.
type Document struct {
	Images    []map[string]any `json:"images"`
	Instances []map[string]any `json:"instances"`
}

// ImageRecord is the derived view of one images[] entry.
type ImageRecord struct {
	Key      string // canonical image id, used to attach instances
	FileName string // declared filename, empty if absent
	Width    float64
	Height   float64
	HasSize  bool // both width and height were declared
}

// Load parses the annotation document at path.
func Load(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open annotation document: %w", err)
	}
	defer file.Close()

	var doc Document
	decoder := json.NewDecoder(file)
	// Keep numeric ids exact so they can serve as map keys
	decoder.UseNumber()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode annotation document: %w", err)
	}

	return &doc, nil
}

// ImageRecords derives one record per distinct image id, in first-seen
// order of the images collection. A duplicate id keeps its original
// position but takes the later entry's metadata. imageKey names the field
// holding the declared filename.
func (d *Document) ImageRecords(imageKey string) []ImageRecord {
	var order []string
	latest := make(map[string]ImageRecord)

	for _, entry := range d.Images {
		key := IDKey(entry["id"])
		rec := ImageRecord{Key: key}
		if name, ok := StringField(entry, imageKey); ok {
			rec.FileName = name
		}
		w, wok := NumberField(entry, "width")
		h, hok := NumberField(entry, "height")
		if wok && hok {
			rec.Width = w
			rec.Height = h
			rec.HasSize = true
		}

		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = rec
	}

	records := make([]ImageRecord, 0, len(order))
	for _, key := range order {
		records = append(records, latest[key])
	}

	return records
}

// IDKey canonicalizes an opaque image id into a map key. Numbers keep
// their literal form, strings pass through, anything else is formatted.
func IDKey(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return fmt.Sprintf("%v", id)
	}
}

// StringField returns m[key] if it is present and a string.
func StringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// NumberField returns m[key] as a float64 if it is present and numeric.
func NumberField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// BBoxField returns the instance's bbox if it is exactly four numbers.
func BBoxField(inst map[string]any) ([4]float64, bool) {
	var box [4]float64

	v, ok := inst["bbox"]
	if !ok {
		return box, false
	}
	values, ok := v.([]any)
	if !ok || len(values) != 4 {
		return box, false
	}
	for i, raw := range values {
		switch n := raw.(type) {
		case json.Number:
			f, err := n.Float64()
			if err != nil {
				return box, false
			}
			box[i] = f
		case float64:
			box[i] = n
		default:
			return box, false
		}
	}

	return box, true
}
