package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

const promptTemplate = `You are writing catalogue copy for a spice export company.
Product: %s%s

Respond with a single JSON object and nothing else, using exactly these keys:
"description": two or three sentences describing the product for buyers,
"origin": the main growing regions,
"biologicalBackground": botanical name, family and the part of the plant used,
"usage": culinary, medicinal and industrial uses,
"keyCharacteristics": aroma, flavour, colour and quality grades as a short comma separated list.`

func buildPrompt(productName, category string) string {
	extra := ""
	if category != "" {
		extra = "\nCategory: " + category
	}
	return fmt.Sprintf(promptTemplate, productName, extra)
}

var errNoJSON = errors.New("model output contains no JSON object")

// extractJSON strips markdown code fences and surrounding prose.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		text = strings.TrimSpace(rest)
	}

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return text[start : end+1], nil
}

func parseDetails(text string) (*Details, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	d := &Details{
		Description:          asText(fields["description"]),
		Origin:               asText(fields["origin"]),
		BiologicalBackground: asText(fields["biologicalBackground"]),
		Usage:                asText(fields["usage"]),
		KeyCharacteristics:   asText(fields["keyCharacteristics"]),
	}
	if *d == (Details{}) {
		return nil, errors.New("model output has none of the expected fields")
	}
	return d, nil
}

// asText flattens the value shapes models tend to return into a string.
func asText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case []any:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if s := asText(item); s != "" {
				items = append(items, s)
			}
		}
		return strings.Join(items, ", ")
	case map[string]any:
		parts := make([]string, 0, len(t))
		for _, k := range slices.Sorted(maps.Keys(t)) {
			parts = append(parts, k+": "+asText(t[k]))
		}
		return strings.Join(parts, "; ")
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}
