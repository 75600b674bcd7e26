package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/stash/internal/command"
	"github.com/nikbrunner/stash/internal/exporter"
	"github.com/nikbrunner/stash/internal/importer"
	"github.com/nikbrunner/stash/internal/model"
	"github.com/nikbrunner/stash/internal/storage"
)

// formatHTML selects Netscape bookmark HTML for export.
const formatHTML = "html"

var (
	importBackup bool
	importDryRun bool
	exportFormat string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge bookmarks from a stash JSON file or browser HTML export",
	Long: `Import merges topics from another file into your bookmarks. A topic that
already exists has its links replaced; new topics are appended.

JSON files may use either the current or the legacy layout. Files ending in
.html or .htm are read as browser bookmark exports, with each folder becoming
a topic named by its folder path.

A missing file is skipped without error. With --dry-run, nothing is
written and the topics that would be added or replaced are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := storage.ExpandPath(args[0])
		if err != nil {
			return err
		}

		source, err := readImport(path)
		if errors.Is(err, os.ErrNotExist) {
			zlog.Warn().Str("path", path).Msg("import file not found, nothing imported")
			return nil
		}
		if err != nil {
			return err
		}

		if importDryRun {
			added, replaced := previewMerge(ctrl.Store(), source)
			fmt.Printf("Would add %d and replace %d topics from %s\n", added, replaced, path)
			return nil
		}

		if importBackup {
			if err := backup(); err != nil {
				return err
			}
		}

		if _, err := apply(command.Merge{Source: source}); err != nil {
			return err
		}
		fmt.Printf("Imported %d topics from %s\n", source.Len(), path)
		return nil
	},
}

// previewMerge reports what merging source into current would do, without
// changing current.
func previewMerge(current, source *model.Store) (added, replaced int) {
	return current.Clone().Merge(source)
}

// readImport decodes path according to its extension.
func readImport(path string) (*model.Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		s, err := importer.ParseHTMLBookmarks(f)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		return s, nil
	default:
		return storage.LoadFile(path)
	}
}

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Write all bookmarks to a file",
	Long: `Export writes every topic and link to a file, replacing it if it exists.

Formats:
  ordered  JSON array of topics (default)
  legacy   JSON object keyed "<position>_<topic>", readable by older versions
  html     Netscape bookmark HTML for browsers

Stash reads both JSON layouts, but older versions only read legacy. Once a
file is written as ordered it cannot be opened by an older version; export
with --format legacy, or set "format: legacy" in the config file, to keep it
readable there.

The default path is ~/Downloads/stash-export-YYYY-MM-DD with a matching
extension.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		ext := ".json"
		if format == formatHTML {
			ext = ".html"
		}

		var path string
		if len(args) == 1 {
			p, err := storage.ExpandPath(args[0])
			if err != nil {
				return err
			}
			path = p
		} else {
			p, err := exporter.DefaultExportPath(ext, time.Now())
			if err != nil {
				return err
			}
			path = p
		}

		s := ctrl.Store()
		if format == formatHTML {
			if err := storage.WriteFile(path, []byte(exporter.ExportHTML(s))); err != nil {
				return err
			}
		} else {
			f, err := storage.ParseFormat(format)
			if err != nil {
				return err
			}
			if err := storage.Export(s, path, f); err != nil {
				return err
			}
		}

		fmt.Printf("Exported %d topics to %s\n", s.Len(), path)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Copy the bookmarks file into the backups directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return backup()
	},
}

func backup() error {
	path, err := storage.Backup(store, time.Now())
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println("Nothing to back up yet")
		return nil
	}
	fmt.Printf("Backed up to %s\n", path)
	return nil
}

func init() {
	importCmd.Flags().BoolVar(&importBackup, "backup", true, "back up the bookmarks file before merging")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "report what would change without writing")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(storage.FormatOrdered), "export format: ordered, legacy (readable by older versions) or html")
}
