package landing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"sort"
	"strings"
)

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// shallowMerge overlays the top-level keys present in raw onto base. Absent
// and null keys keep the base value. Non-object values replace base outright.
// A key whose value does not fit the field type is skipped; the rest still apply.
func shallowMerge[T any](base T, raw json.RawMessage) (T, error) {
	if isNull(raw) {
		return base, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] != '{' {
		var replaced T
		if err := json.Unmarshal(trimmed, &replaced); err != nil {
			return base, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
		}
		return replaced, nil
	}

	var overlay map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &overlay); err != nil {
		return base, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}

	merged, err := toFields(base)
	if err != nil {
		return base, err
	}
	for key, value := range overlay {
		if isNull(value) {
			continue
		}
		merged[key] = value
	}

	if out, err := fromFields[T](merged); err == nil {
		return out, nil
	}

	// Slow path: apply keys one at a time so a single bad value does not
	// discard the others.
	fields, err := toFields(base)
	if err != nil {
		return base, err
	}
	keys := make([]string, 0, len(overlay))
	for key := range overlay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var rejected []string
	for _, key := range keys {
		if isNull(overlay[key]) {
			continue
		}
		previous, had := fields[key]
		fields[key] = overlay[key]
		if _, err := fromFields[T](fields); err != nil {
			rejected = append(rejected, key)
			if had {
				fields[key] = previous
			} else {
				delete(fields, key)
			}
		}
	}

	out, err := fromFields[T](fields)
	if err != nil {
		return base, err
	}
	return out, fmt.Errorf("%w: rejected fields %s", ErrInvalidPatch, strings.Join(rejected, ", "))
}

func toFields(value any) (map[string]json.RawMessage, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func fromFields[T any](fields map[string]json.RawMessage) (T, error) {
	var out T
	encoded, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(encoded, &out)
	return out, err
}

func esc(value string) string {
	return template.HTMLEscapeString(value)
}

func className(prefix, element string) string {
	return fmt.Sprintf("%s__%s", prefix, element)
}

// textBlock writes value inside tag unless it is blank.
func textBlock(sb *strings.Builder, ctx RenderContext, tag, class, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	sb.WriteString(`<` + tag + ` class="` + class + `">` + ctx.SanitizeHTML(value) + `</` + tag + `>`)
}

func linkButton(sb *strings.Builder, class, text, href string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	if strings.TrimSpace(href) == "" {
		href = "#"
	}
	sb.WriteString(`<a class="` + class + `" href="` + esc(href) + `">` + esc(text) + `</a>`)
}

func bulletList(sb *strings.Builder, ctx RenderContext, class string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(`<ul class="` + class + `">`)
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		sb.WriteString(`<li>` + ctx.SanitizeHTML(item) + `</li>`)
	}
	sb.WriteString(`</ul>`)
}

// mediaBlock writes the resolved media for key wrapped in a div of class.
// Nothing is written when the field is empty or cannot be resolved.
func mediaBlock(sb *strings.Builder, page *TemplateData, key MediaKey, class, alt string) {
	renderable, ok := page.ResolveMedia(key)
	if !ok {
		return
	}
	sb.WriteString(`<div class="` + class + `" data-media-kind="` + string(renderable.Kind) + `">`)
	sb.WriteString(renderable.HTML(class+"-el", alt))
	sb.WriteString(`</div>`)
}

// ctaLink returns the call-to-action pair used by sections that can feed the
// floating button.
func ctaLink(text, link string) (string, string) {
	return strings.TrimSpace(text), strings.TrimSpace(link)
}
