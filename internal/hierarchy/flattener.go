package hierarchy

import "github.com/pictriage/pictriage/internal/models"

// Flatten walks the hierarchy in its insertion order and re-linearizes every
// image into a FlatRecord. The record's content is the prompt's content, not
// the image's resolved content; the build-side fallback is intentionally
// one-way. When reviewedOnly is set, an image is kept only if it is marked
// defective or carries a review comment; zero matches yield an empty slice,
// never an error.
func Flatten(h *models.Hierarchy, reviewedOnly bool) []models.FlatRecord {
	records := make([]models.FlatRecord, 0)
	for _, userID := range h.UserIDs() {
		user, ok := h.Get(userID)
		if !ok || user == nil {
			continue
		}
		for _, title := range user.Prompts.Titles() {
			prompt, ok := user.Prompts.Get(title)
			if !ok || prompt == nil {
				continue
			}
			for _, img := range prompt.Images {
				if img == nil {
					continue
				}
				defective, comment := resolveAnnotations(img)
				if reviewedOnly && !defective && comment == "" {
					continue
				}
				records = append(records, models.FlatRecord{
					UserID:        userID,
					Title:         title,
					Content:       prompt.Content,
					URL:           img.URL,
					IsDefective:   defective,
					ReviewComment: comment,
				})
			}
		}
	}
	return records
}

// resolveAnnotations applies annotation defaults in one place: false for
// is_defective, empty string for review_comment. Malformed values were
// already coerced by the lenient JSON types.
func resolveAnnotations(img *models.Image) (bool, string) {
	return bool(img.IsDefective), string(img.ReviewComment)
}
