package intent

import "strings"

// ValidateCreateInput validates fields required to create an intent.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrInvalidInput
	}
	if !req.Kind.Valid() {
		return ErrInvalidKind
	}
	if req.Status != "" && !req.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// NormalizeKeywords lowercases and trims keywords, dropping empties and
// case-insensitive duplicates. First occurrence order is kept.
func NormalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
