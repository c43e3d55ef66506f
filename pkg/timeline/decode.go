package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/timeline/pkg/errors"
)

// Document formats accepted by [Load].
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

var formatByExt = map[string]string{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// Extensions lists the recognised document file extensions, without the
// leading dot, in sorted order.
func Extensions() []string {
	exts := make([]string, 0, len(formatByExt))
	for ext := range formatByExt {
		exts = append(exts, strings.TrimPrefix(ext, "."))
	}
	slices.Sort(exts)
	return exts
}

// FormatForPath returns the document format implied by path's extension.
// Unknown extensions are read as JSON.
func FormatForPath(path string) string {
	if f, ok := formatByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f
	}
	return FormatJSON
}

// Load reads the document at path, choosing the decoder from the file
// extension. Settings.Now defaults to the time Load was called.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch FormatForPath(path) {
	case FormatYAML:
		return ReadYAML(f)
	case FormatTOML:
		return ReadTOML(f)
	default:
		return ReadJSON(f)
	}
}

// ReadJSON decodes a JSON timeline document from r.
//
// The input must be a JSON object:
//
//	{
//	  "settings": {"now": "2024-05-01T12:00:00"},
//	  "layout":   {"title": "Roadmap"},
//	  "data": {
//	    "backend": {"intervals": [{"start": "2024-01-01", "end": "now"}]}
//	  },
//	  "out_img": {"path": "roadmap.png"},
//	  "out_html_path": "roadmap.html"
//	}
//
// Every key is optional. The order of series under "data" is preserved.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Document, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeJSONValue(dec)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "decode json: unexpected data after document")
	}
	return fromTree(root, time.Now())
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeJSONValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}
	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// ReadYAML decodes a YAML timeline document from r. The document has the
// same shape as the JSON form.
func ReadYAML(r io.Reader) (*Document, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidInput, "decode yaml: empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	root, err := yamlValue(&node)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return fromTree(root, time.Now())
}

func yamlValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0])
	case yaml.AliasNode:
		return yamlValue(n.Alias)
	case yaml.MappingNode:
		obj := newObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.set(n.Content[i].Value, v)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
	return nil, nil
}

// ReadTOML decodes a TOML timeline document from r. Series are tables
// under [data], intervals are arrays of tables:
//
//	[data.backend]
//	color = "#1f77b4"
//
//	[[data.backend.intervals]]
//	start = 2024-01-01
//	end = "now"
//
// TOML has no null, so every series declared in TOML is plotted.
func ReadTOML(r io.Reader) (*Document, error) {
	var raw map[string]any
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	order := tomlKeyOrder(md.Keys())
	return fromTree(tomlValue(raw, "", order), time.Now())
}

// tomlKeyOrder maps a parent key path to its child keys in the order they
// were defined.
func tomlKeyOrder(keys []toml.Key) map[string][]string {
	order := make(map[string][]string)
	for _, k := range keys {
		if len(k) == 0 {
			continue
		}
		parent := strings.Join(k[:len(k)-1], "\x00")
		child := k[len(k)-1]
		if !slices.Contains(order[parent], child) {
			order[parent] = append(order[parent], child)
		}
	}
	return order
}

func tomlValue(v any, path string, order map[string][]string) any {
	switch t := v.(type) {
	case map[string]any:
		obj := newObject()
		known := order[path]
		for _, k := range known {
			if child, ok := t[k]; ok {
				obj.set(k, tomlValue(child, joinKey(path, k), order))
			}
		}
		var rest []string
		for k := range t {
			if !slices.Contains(known, k) {
				rest = append(rest, k)
			}
		}
		slices.Sort(rest)
		for _, k := range rest {
			obj.set(k, tomlValue(t[k], joinKey(path, k), order))
		}
		return obj
	case []map[string]any:
		arr := make([]any, len(t))
		for i, m := range t {
			arr[i] = tomlValue(m, path, order)
		}
		return arr
	case []any:
		arr := make([]any, len(t))
		for i, e := range t {
			arr[i] = tomlValue(e, path, order)
		}
		return arr
	}
	return v
}

func joinKey(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "\x00" + key
}

// fromTree converts a decoded document tree into a Document, applying the
// defaults for every absent key.
func fromTree(root any, readAt time.Time) (*Document, error) {
	top, ok := root.(*object)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document must be an object, got %s", formatValue(root))
	}

	doc := &Document{
		Settings: Settings{Now: wallClock(readAt)},
		Layout:   DefaultLayout(),
		Data:     []Series{},
		OutImg:   DefaultImage(),
	}

	if err := decodeSettings(top, &doc.Settings); err != nil {
		return nil, err
	}
	if err := decodeLayout(top, &doc.Layout); err != nil {
		return nil, err
	}
	if err := decodeImage(top, &doc.OutImg); err != nil {
		return nil, err
	}
	if err := decodeData(top, doc); err != nil {
		return nil, err
	}

	if v, ok := top.lookup("out_html_path"); ok {
		s, ok := asString(v)
		if !ok {
			return nil, invalidField("out_html_path", "string", v)
		}
		doc.OutHTMLPath = s
		doc.HasOutHTMLPath = true
	}
	return doc, nil
}

func section(top *object, key string) (*object, error) {
	v, ok := top.lookup(key)
	if !ok {
		return nil, nil
	}
	obj, ok := v.(*object)
	if !ok {
		return nil, invalidField(key, "object", v)
	}
	return obj, nil
}

func decodeSettings(top *object, s *Settings) error {
	obj, err := section(top, "settings")
	if obj == nil || err != nil {
		return err
	}
	v, ok := obj.lookup("now")
	if !ok {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		s.Now = wallClock(t)
		return nil
	}
	str, ok := asString(v)
	if !ok {
		return invalidField("settings.now", "datetime string", v)
	}
	now, err := ParseNow(str)
	if err != nil {
		return err
	}
	s.Now = now
	return nil
}

func decodeLayout(top *object, l *LayoutSettings) error {
	obj, err := section(top, "layout")
	if obj == nil || err != nil {
		return err
	}
	texts := []struct {
		key string
		dst *string
	}{
		{"title", &l.Title},
		{"xaxis_title", &l.XAxisTitle},
		{"yaxis_title", &l.YAxisTitle},
	}
	for _, f := range texts {
		if v, ok := obj.get(f.key); ok {
			s, ok := asString(v)
			if !ok {
				return invalidField("layout."+f.key, "string", v)
			}
			*f.dst = s
		}
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"yaxis_showticklabels", &l.YAxisShowTickLabels},
		{"showlegend", &l.ShowLegend},
	}
	for _, f := range bools {
		if v, ok := obj.lookup(f.key); ok {
			b, ok := asBool(v)
			if !ok {
				return invalidField("layout."+f.key, "boolean", v)
			}
			*f.dst = b
		}
	}
	return nil
}

func decodeImage(top *object, img *ImageSettings) error {
	obj, err := section(top, "out_img")
	if obj == nil || err != nil {
		return err
	}
	if v, ok := obj.lookup("path"); ok {
		s, ok := asString(v)
		if !ok {
			return invalidField("out_img.path", "string", v)
		}
		img.Path = s
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"width", &img.Width},
		{"height", &img.Height},
	}
	for _, f := range ints {
		if v, ok := obj.lookup(f.key); ok {
			n, ok := asInt(v)
			if !ok {
				return invalidField("out_img."+f.key, "integer", v)
			}
			*f.dst = n
		}
	}
	if v, ok := obj.lookup("scale"); ok {
		n, ok := asFloat(v)
		if !ok {
			return invalidField("out_img.scale", "number", v)
		}
		img.Scale = n
	}
	return nil
}

func decodeData(top *object, doc *Document) error {
	obj, err := section(top, "data")
	if obj == nil || err != nil {
		return err
	}
	for _, name := range obj.keys {
		info, ok := obj.values[name].(*object)
		if !ok {
			return invalidField("data."+name, "object", obj.values[name])
		}
		s, err := decodeSeries(name, info)
		if err != nil {
			return err
		}
		doc.Data = append(doc.Data, s)
	}
	return nil
}

func decodeSeries(name string, info *object) (Series, error) {
	s := NewSeries(name)
	field := func(key string) string { return "data." + name + "." + key }

	if v, ok := info.get("intervals"); ok {
		switch t := v.(type) {
		case nil:
			s.Intervals = nil
			s.NullIntervals = true
		case []any:
			for i, item := range t {
				iv, err := decodeInterval(item)
				if err != nil {
					return Series{}, fmt.Errorf("%s[%d]: %w", field("intervals"), i, err)
				}
				s.Intervals = append(s.Intervals, iv)
			}
		default:
			return Series{}, invalidField(field("intervals"), "list or null", v)
		}
	}
	if v, ok := info.get("color"); ok {
		c, ok := asString(v)
		if !ok {
			return Series{}, invalidField(field("color"), "string", v)
		}
		s.Color = c
	}
	if v, ok := info.lookup("bgcolor"); ok {
		c, ok := asString(v)
		if !ok {
			return Series{}, invalidField(field("bgcolor"), "string", v)
		}
		s.BGColor = c
	}
	return s, nil
}

func decodeInterval(item any) (Interval, error) {
	obj, ok := item.(*object)
	if !ok {
		return Interval{}, errors.New(errors.ErrCodeInvalidInput, "interval must be an object, got %s", formatValue(item))
	}
	iv := Interval{Width: DefaultIntervalWidth, Raw: formatValue(obj)}

	if v, ok := obj.get("start"); ok {
		iv.Start, iv.HasStart = dateText(v), true
	}
	if v, ok := obj.get("end"); ok {
		iv.End, iv.HasEnd = dateText(v), true
	}
	if v, ok := obj.get("description"); ok {
		d, ok := asString(v)
		if !ok {
			return Interval{}, invalidField("description", "string", v)
		}
		iv.Description = d
	}
	if v, ok := obj.lookup("width"); ok {
		w, ok := asFloat(v)
		if !ok || w < 0 {
			return Interval{}, invalidField("width", "non-negative number", v)
		}
		iv.Width = w
	}
	return iv, nil
}

func invalidField(field, want string, got any) error {
	return errors.New(errors.ErrCodeInvalidInput, "%s must be a %s, got %s", field, want, formatValue(got))
}
