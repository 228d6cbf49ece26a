package schemas

import (
	"fmt"

	"github.com/jonathan/resume-builder/internal/types"
)

// Coercion records a soft field that was replaced by its fallback value.
type Coercion struct {
	Field string
	Value any
}

type coercer struct {
	applied []Coercion
}

func (c *coercer) set(obj map[string]any, key, path string, value any) {
	obj[key] = value
	c.applied = append(c.applied, Coercion{Field: join(path, key), Value: value})
}

// coerce replaces invalid or missing soft fields of a decoded resume tree
// with their fallbacks. Objects that are missing altogether are left alone
// so that structural validation can report them.
func coerce(doc map[string]any) []Coercion {
	c := &coercer{}

	if basics, ok := doc["basics"].(map[string]any); ok {
		for i, field := range objects(basics["customFields"]) {
			if field == nil {
				continue
			}
			if _, ok := field["link"].(string); !ok {
				c.set(field, "link", fmt.Sprintf("basics.customFields.%d", i), "")
			}
		}
	}

	if sections, ok := doc["sections"].(map[string]any); ok {
		for _, t := range types.StandardSections {
			sec, ok := sections[string(t)].(map[string]any)
			if !ok {
				continue
			}
			for i, item := range objects(sec["items"]) {
				if item == nil {
					continue
				}
				c.item(item, t.ItemType(), fmt.Sprintf("sections.%s.items.%d", t, i))
			}
		}
	}

	for i, cs := range objects(doc["customSections"]) {
		if cs == nil {
			continue
		}
		name, _ := cs["type"].(string)
		t := types.CustomSectionType(name)
		if !t.Valid() {
			continue
		}
		for j, item := range objects(cs["items"]) {
			if item == nil {
				continue
			}
			c.item(item, t, fmt.Sprintf("customSections.%d.items.%d", i, j))
		}
	}

	if metadata, ok := doc["metadata"].(map[string]any); ok {
		c.metadata(metadata)
	}

	return c.applied
}

func (c *coercer) item(item map[string]any, t types.CustomSectionType, path string) {
	if raw, present := item["options"]; present {
		opts, ok := raw.(map[string]any)
		if !ok {
			c.set(item, "options", path, map[string]any{"showLinkInTitle": false})
		} else if _, ok := opts["showLinkInTitle"].(bool); !ok {
			c.set(opts, "showLinkInTitle", join(path, "options"), false)
		}
	}

	switch t {
	case types.TypeSkills, types.TypeLanguages:
		if !inRange(item["level"], 0, 5) {
			c.set(item, "level", path, float64(0))
		}
	}
	switch t {
	case types.TypeSkills, types.TypeInterests:
		if !isStringSlice(item["keywords"]) {
			c.set(item, "keywords", path, []any{})
		}
	}
}

func (c *coercer) metadata(metadata map[string]any) {
	if name, ok := metadata["template"].(string); !ok || !types.Template(name).Valid() {
		c.set(metadata, "template", "metadata", string(types.DefaultTemplate))
	}

	if layout, ok := metadata["layout"].(map[string]any); ok {
		if !inRange(layout["sidebarWidth"], 10, 50) {
			c.set(layout, "sidebarWidth", "metadata.layout", float64(35))
		}
	}

	if page, ok := metadata["page"].(map[string]any); ok {
		if format, ok := page["format"].(string); !ok || !types.PageFormat(format).Valid() {
			c.set(page, "format", "metadata.page", string(types.PageFormatA4))
		}
		if _, ok := page["locale"].(string); !ok {
			c.set(page, "locale", "metadata.page", types.DefaultLocale)
		}
		if _, ok := page["hideIcons"].(bool); !ok {
			c.set(page, "hideIcons", "metadata.page", false)
		}
	}

	if design, ok := metadata["design"].(map[string]any); ok {
		if level, ok := design["level"].(map[string]any); ok {
			if name, ok := level["type"].(string); !ok || !types.LevelType(name).Valid() {
				c.set(level, "type", "metadata.design.level", string(types.DefaultLevelType))
			}
		}
	}

	if typography, ok := metadata["typography"].(map[string]any); ok {
		for _, role := range []string{"body", "heading"} {
			font, ok := typography[role].(map[string]any)
			if !ok {
				continue
			}
			path := "metadata.typography." + role
			if !validFontWeights(font["fontWeights"]) {
				c.set(font, "fontWeights", path, []any{"400"})
			}
			if !inRange(font["fontSize"], 6, 24) {
				c.set(font, "fontSize", path, float64(11))
			}
			if !inRange(font["lineHeight"], 0.5, 4) {
				c.set(font, "lineHeight", path, 1.5)
			}
		}
	}
}

// objects returns the elements of a JSON array as objects. Elements that
// are not objects are nil so indexes stay aligned with the array.
func objects(v any) []map[string]any {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, len(arr))
	for i, e := range arr {
		out[i], _ = e.(map[string]any)
	}
	return out
}

func inRange(v any, lo, hi float64) bool {
	n, ok := v.(float64)
	return ok && n >= lo && n <= hi
}

func isStringSlice(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		if _, ok := e.(string); !ok {
			return false
		}
	}
	return true
}

func validFontWeights(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		s, ok := e.(string)
		if !ok || !types.FontWeight(s).Valid() {
			return false
		}
	}
	return true
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
