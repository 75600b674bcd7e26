package exporter

import (
	"fmt"
	"html"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/nikbrunner/stash/internal/model"
)

// DefaultExportPath returns the default export file path for the given
// extension. Format: ~/Downloads/stash-export-YYYY-MM-DD<ext>
func DefaultExportPath(ext string, now time.Time) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("stash-export-%s%s", now.Format("2006-01-02"), ext)
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format.
// Each topic becomes one folder; previews are written as descriptions.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, topic := range store.Topics() {
		writeTopic(&b, topic, store.LinksFor(topic.Name))
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeTopic(b *strings.Builder, topic model.Topic, links []model.Link) {
	const prefix = "    "

	fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(topic.Name))
	fmt.Fprintf(b, "%s<DL><p>\n", prefix)

	for _, link := range links {
		fmt.Fprintf(b,
			"%s%s<DT><A HREF=\"%s\">%s</A>\n",
			prefix, prefix,
			html.EscapeString(link.URL),
			html.EscapeString(link.Title),
		)
		if link.Preview != nil && *link.Preview != "" {
			fmt.Fprintf(b, "%s%s<DD>%s\n", prefix, prefix, html.EscapeString(*link.Preview))
		}
	}

	fmt.Fprintf(b, "%s</DL><p>\n", prefix)
}
