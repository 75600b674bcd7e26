package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/stash/internal/model"
	"golang.org/x/net/html"
)

// RootTopic receives links that sit outside any folder.
const RootTopic = "Imported"

// FolderSeparator joins nested folder names into one topic name.
const FolderSeparator = " / "

// ParseHTMLBookmarks parses Netscape bookmark HTML into a store.
// Nested folders are flattened into topics named by their folder path.
func ParseHTMLBookmarks(r io.Reader) (*model.Store, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	store := model.NewStore()

	// Track current folder path for naming
	var folderStack []string
	var pendingFolder string // folder waiting to be pushed on next DL
	hasPending := false

	// Position of the last link added, so a following DD can attach its
	// preview. lastIndex is -1 when no link is waiting for one.
	var lastTopic string
	lastIndex := -1

	currentTopic := func() string {
		if len(folderStack) == 0 {
			return RootTopic
		}
		return strings.Join(folderStack, FolderSeparator)
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					pendingFolder = name
					hasPending = true
					path := append(append([]string{}, folderStack...), name)
					store.AddTopic(model.NewTopic(strings.Join(path, FolderSeparator)))
				}
				lastIndex = -1
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				lastTopic = currentTopic()
				store.AddLink(model.NewTopic(lastTopic), model.Link{Title: title, URL: href})
				lastIndex = len(store.LinksFor(lastTopic)) - 1
				return // Don't recurse into A

			case "dd":
				// Description of the preceding link. A folder's DL may be
				// nested inside its DD, so keep walking the children.
				if lastIndex >= 0 {
					if preview := getDirectText(n); preview != "" {
						links := store.LinksFor(lastTopic)
						links[lastIndex].Preview = &preview
						store.SetLinks(model.NewTopic(lastTopic), links)
					}
					lastIndex = -1
				}

			case "dl":
				pushedFolder := false
				if hasPending {
					folderStack = append(folderStack, pendingFolder)
					hasPending = false
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder {
					folderStack = folderStack[:len(folderStack)-1]
				}
				lastIndex = -1
				return // Don't recurse further, we handled children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return store, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getDirectText returns the text of n's immediate text children only.
func getDirectText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
