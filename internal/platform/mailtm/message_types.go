package mailtm

import (
	"encoding/json"
	"strings"
)

type Address struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// MessageSummary is one entry of the message listing.
type MessageSummary struct {
	ID        string  `json:"id"`
	From      Address `json:"from"`
	Subject   string  `json:"subject"`
	Intro     string  `json:"intro"`
	Seen      bool    `json:"seen"`
	CreatedAt string  `json:"createdAt"`
}

// MessageDetail is a full message. The provider sends html as a list of parts.
type MessageDetail struct {
	ID        string   `json:"id"`
	From      Address  `json:"from"`
	Subject   string   `json:"subject"`
	Text      string   `json:"text"`
	HTML      HTMLBody `json:"html"`
	CreatedAt string   `json:"createdAt"`
}

// Body returns the text part, falling back to html, then to "".
func (m *MessageDetail) Body() string {
	if m == nil {
		return ""
	}
	if m.Text != "" {
		return m.Text
	}
	return string(m.HTML)
}

// HTMLBody decodes either a string or an array of strings.
type HTMLBody string

func (h *HTMLBody) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*h = ""
		return nil
	}

	var parts []string
	if err := json.Unmarshal(data, &parts); err == nil {
		*h = HTMLBody(strings.Join(parts, "\n"))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*h = HTMLBody(s)
	return nil
}
