package legacy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Preferences is a flat legacy preference map. A nil map is empty.
type Preferences map[string]string

// Has reports whether the key was stored.
func (p Preferences) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the stored text or def.
func (p Preferences) String(key, def string) string {
	if v, ok := p[key]; ok {
		return v
	}
	return def
}

// Bool returns the stored flag, or def when absent or garbled.
func (p Preferences) Bool(key string, def bool) bool {
	v, ok := p[key]
	if !ok {
		return def
	}
	return parseBool(v, def)
}

// Int64 returns the stored integer, or def when absent or garbled.
func (p Preferences) Int64(key string, def int64) int64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	return Row{key: v}.Int64(key, def)
}

// Float64 returns the stored number, or def when absent or garbled.
func (p Preferences) Float64(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	if d, ok := parseDecimal(v); ok {
		return d.InexactFloat64()
	}
	return def
}

type sharedPreferences struct {
	XMLName xml.Name          `xml:"map"`
	Entries []preferenceEntry `xml:",any"`
}

type preferenceEntry struct {
	XMLName xml.Name
	Name    string `xml:"name,attr"`
	Value   string `xml:"value,attr,omitempty"`
	Text    string `xml:",chardata"`
}

// LoadSharedPreferences parses an Android shared preferences XML document.
// String sets are skipped. An empty document yields empty preferences.
func LoadSharedPreferences(r io.Reader) (Preferences, error) {
	var doc sharedPreferences
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Preferences{}, nil
		}
		return nil, fmt.Errorf("decode shared preferences: %w", err)
	}

	prefs := make(Preferences, len(doc.Entries))
	for _, e := range doc.Entries {
		if e.Name == "" {
			continue
		}
		switch e.XMLName.Local {
		case "string":
			prefs[e.Name] = e.Text
		case "boolean", "int", "long", "float":
			prefs[e.Name] = strings.TrimSpace(e.Value)
		}
	}
	return prefs, nil
}

// Encode renders preferences as shared preferences XML with every value
// stored as a string element.
func (p Preferences) Encode(w io.Writer) error {
	doc := sharedPreferences{}
	for _, k := range sortedKeys(p) {
		doc.Entries = append(doc.Entries, preferenceEntry{
			XMLName: xml.Name{Local: "string"},
			Name:    k,
			Text:    p[k],
		})
	}
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "    ")
	return enc.Encode(doc)
}

func sortedKeys(p Preferences) []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
