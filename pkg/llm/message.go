package llm

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	PartTypeText     = "text"
	PartTypeImageURL = "image_url"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string        `json:"role"`              // "system", "user", "assistant"
	Content string        `json:"content,omitempty"` // Plain text content, set on responses
	Parts   []ContentPart `json:"parts,omitempty"`   // Ordered multimodal content, set on requests
}

// ContentPart is one typed fragment of a message: text or an image reference.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL references an image by URL. Data URIs are accepted.
type ImageURL struct {
	URL string `json:"url"`
}

// TextPart returns a text content part.
func TextPart(text string) ContentPart {
	return ContentPart{Type: PartTypeText, Text: text}
}

// ImagePart returns an image content part pointing at url.
func ImagePart(url string) ContentPart {
	return ContentPart{Type: PartTypeImageURL, ImageURL: &ImageURL{URL: url}}
}

// NewUserMessage builds a user-authored message from parts, keeping their order.
func NewUserMessage(parts ...ContentPart) Message {
	return Message{Role: RoleUser, Parts: parts}
}
