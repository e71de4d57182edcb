package ingestion

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/contentflow/ingestAPI/internal/domain/commonModels"
)

// stripCodeFences removes a Markdown ```json wrapper. Models are told to
// emit bare JSON but wrap their output in fences often enough that every
// response goes through this before parsing.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// drop the opening fence line (``` or ```json)
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
	}
	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, "```")
	return strings.TrimSpace(trimmed)
}

var contentItemsGreedy = regexp.MustCompile(`(?s)"contentItems"\s*:\s*(\[.*\])`)
var contentItemsLazy = regexp.MustCompile(`(?s)"contentItems"\s*:\s*(\[.*?\])`)

// recoverContentItems is the second-tier repair for pass 2: when the full
// response fails to parse, try to cut the contentItems array substring out
// of the wreckage and parse just that.
func recoverContentItems(raw string) ([]commonModels.ContentItem, bool) {
	cleaned := stripCodeFences(raw)

	for _, re := range []*regexp.Regexp{contentItemsGreedy, contentItemsLazy} {
		match := re.FindStringSubmatch(cleaned)
		if match == nil {
			continue
		}
		var items []commonModels.ContentItem
		if err := json.Unmarshal([]byte(match[1]), &items); err == nil {
			return items, true
		}
	}
	return nil, false
}
