package model

// Link represents a titled URL saved under a topic.
type Link struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Preview *string `json:"preview"` // nil = no preview
}

// NewLinkParams holds parameters for creating a new Link.
type NewLinkParams struct {
	Title   string
	URL     string
	Preview string
}

// NewLink creates a Link. An empty preview is stored as nil.
func NewLink(params NewLinkParams) Link {
	link := Link{
		Title: params.Title,
		URL:   params.URL,
	}
	if params.Preview != "" {
		preview := params.Preview
		link.Preview = &preview
	}
	return link
}

// Same reports whether two links share the same identity (title and URL).
// The preview does not take part in identity.
func (l Link) Same(other Link) bool {
	return l.Title == other.Title && l.URL == other.URL
}
