// Package rembg removes image backgrounds using ONNX saliency models of
// the u2net family. Sessions are created lazily per model name and cached
// for the process lifetime.
package rembg

import "sort"

// Model describes a background-removal model.
type Model struct {
	Name        string
	File        string // file name expected under the model directory
	InputSize   int    // square input resolution
	Description string
}

var models = map[string]Model{
	"u2net": {
		Name:        "u2net",
		File:        "u2net.onnx",
		InputSize:   320,
		Description: "General purpose segmentation",
	},
	"u2netp": {
		Name:        "u2netp",
		File:        "u2netp.onnx",
		InputSize:   320,
		Description: "Lightweight variant, faster and less accurate",
	},
	"u2net_human_seg": {
		Name:        "u2net_human_seg",
		File:        "u2net_human_seg.onnx",
		InputSize:   320,
		Description: "Tuned for human subjects",
	},
}

// Lookup returns the model with the given name.
func Lookup(name string) (Model, bool) {
	m, ok := models[name]
	return m, ok
}

// Models returns all known models sorted by name.
func Models() []Model {
	out := make([]Model, 0, len(models))
	for _, m := range models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ModelNames returns the known model names, sorted.
func ModelNames() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
