// Package hierarchy transforms flat row sets into the User→Prompt→Image tree
// and back.
package hierarchy

import "github.com/pictriage/pictriage/internal/models"

// Build partitions rows by userId, then by title within each user, keeping
// first-seen order for users, for titles within a user, and for rows within
// a title. A prompt's content is the content cell of the first row seen for
// its (userId, title) pair, verbatim. An image's content is the row's own
// content when present, otherwise the prompt's content. Rows with an empty
// userId or title group under the empty-string key; Build never fails.
func Build(rows models.RowSet) *models.Hierarchy {
	h := models.NewHierarchy()
	for _, row := range rows {
		user, ok := h.Get(row.UserID)
		if !ok {
			user = &models.User{UserID: row.UserID, Prompts: models.NewPromptMap()}
			h.Put(row.UserID, user)
		}
		prompt, ok := user.Prompts.Get(row.Title)
		if !ok {
			prompt = &models.Prompt{Title: row.Title, Content: row.Content}
			user.Prompts.Put(row.Title, prompt)
		}
		content := row.Content
		if content == "" {
			content = prompt.Content
		}
		prompt.Images = append(prompt.Images, &models.Image{URL: row.URL, Content: content})
	}
	return h
}
