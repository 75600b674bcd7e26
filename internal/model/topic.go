package model

// Topic is a named group of links. Topics are identified by exact name.
type Topic struct {
	Name string `json:"name"`
}

// NewTopic creates a Topic with the given name.
func NewTopic(name string) Topic {
	return Topic{Name: name}
}
