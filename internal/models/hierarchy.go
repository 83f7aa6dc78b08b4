package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Image is one reviewed unit nested under a prompt. Content carries the
// row's own content, falling back to the prompt's content when the row
// omitted its own. The annotation fields are set by the reviewing client,
// never by ingestion.
type Image struct {
	URL           string        `json:"url"`
	Content       string        `json:"content"`
	IsDefective   LenientBool   `json:"is_defective,omitempty"`
	ReviewComment LenientString `json:"review_comment,omitempty"`
}

// Prompt is one authored unit, keyed by title within a user. Content is the
// content cell of the first row seen for that title.
type Prompt struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Images  []*Image `json:"images"`
}

// User is the top tier of the hierarchy.
type User struct {
	UserID  string     `json:"userId"`
	Prompts *PromptMap `json:"prompts"`
}

// PromptMap maps title to Prompt, preserving first-insertion order. It
// marshals as a JSON object whose keys appear in insertion order, so exports
// and review UIs walk prompts in the order the titles first appeared in the
// input. A generic map would not give that guarantee.
type PromptMap struct {
	titles  []string
	prompts map[string]*Prompt
}

// NewPromptMap returns an empty PromptMap.
func NewPromptMap() *PromptMap {
	return &PromptMap{prompts: make(map[string]*Prompt)}
}

// Get returns the prompt for title, if present.
func (m *PromptMap) Get(title string) (*Prompt, bool) {
	if m == nil || m.prompts == nil {
		return nil, false
	}
	p, ok := m.prompts[title]
	return p, ok
}

// Put inserts or replaces the prompt for title. First insertion fixes the
// title's position in iteration order.
func (m *PromptMap) Put(title string, p *Prompt) {
	if m.prompts == nil {
		m.prompts = make(map[string]*Prompt)
	}
	if _, exists := m.prompts[title]; !exists {
		m.titles = append(m.titles, title)
	}
	m.prompts[title] = p
}

// Titles returns the titles in insertion order.
func (m *PromptMap) Titles() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.titles...)
}

// Len returns the number of prompts.
func (m *PromptMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.titles)
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m *PromptMap) MarshalJSON() ([]byte, error) {
	return marshalOrdered(m.titles, func(title string) interface{} {
		return m.prompts[title]
	})
}

// UnmarshalJSON decodes a JSON object, recording key order as it appears.
func (m *PromptMap) UnmarshalJSON(data []byte) error {
	m.titles = nil
	m.prompts = make(map[string]*Prompt)
	return unmarshalOrdered(data, func(key string, dec *json.Decoder) error {
		var p Prompt
		if err := dec.Decode(&p); err != nil {
			return err
		}
		m.Put(key, &p)
		return nil
	})
}

// Hierarchy maps userId to User, preserving first-insertion order, with the
// same ordered-object JSON treatment as PromptMap.
type Hierarchy struct {
	ids   []string
	users map[string]*User
}

// NewHierarchy returns an empty Hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{users: make(map[string]*User)}
}

// Get returns the user for id, if present.
func (h *Hierarchy) Get(id string) (*User, bool) {
	if h == nil || h.users == nil {
		return nil, false
	}
	u, ok := h.users[id]
	return u, ok
}

// Put inserts or replaces the user for id.
func (h *Hierarchy) Put(id string, u *User) {
	if h.users == nil {
		h.users = make(map[string]*User)
	}
	if _, exists := h.users[id]; !exists {
		h.ids = append(h.ids, id)
	}
	h.users[id] = u
}

// UserIDs returns the user ids in insertion order.
func (h *Hierarchy) UserIDs() []string {
	if h == nil {
		return nil
	}
	return append([]string(nil), h.ids...)
}

// Len returns the number of users.
func (h *Hierarchy) Len() int {
	if h == nil {
		return 0
	}
	return len(h.ids)
}

// MarshalJSON encodes the hierarchy as a JSON object with keys in insertion order.
func (h *Hierarchy) MarshalJSON() ([]byte, error) {
	return marshalOrdered(h.ids, func(id string) interface{} {
		return h.users[id]
	})
}

// UnmarshalJSON decodes a JSON object, recording key order as it appears.
func (h *Hierarchy) UnmarshalJSON(data []byte) error {
	h.ids = nil
	h.users = make(map[string]*User)
	return unmarshalOrdered(data, func(key string, dec *json.Decoder) error {
		var u User
		if err := dec.Decode(&u); err != nil {
			return err
		}
		h.Put(key, &u)
		return nil
	})
}

func marshalOrdered(keys []string, value func(string) interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(value(k))
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func unmarshalOrdered(data []byte, assign func(key string, dec *json.Decoder) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := assign(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
