package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pagecraft/pkg/editor"
	"github.com/matzehuels/pagecraft/pkg/errors"
	"github.com/matzehuels/pagecraft/pkg/export"
	designio "github.com/matzehuels/pagecraft/pkg/io"
)

// newCommand creates the command that writes a starter design file.
func (c *CLI) newCommand() *cobra.Command {
	var force, empty bool

	cmd := &cobra.Command{
		Use:   "new <design.json>",
		Short: "Create a starter design file",
		Long: `Create a design file holding the starter headline element.

Use --empty for a blank canvas. Existing files are kept unless --force is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			doc := editor.NewDefault()
			if empty {
				doc = editor.New()
			}
			if err := designio.ExportJSON(doc.Snapshot(), path); err != nil {
				return err
			}

			printSuccess("Created design")
			printFile(path)
			printNextStep("Edit it", fmt.Sprintf("%s edit %s", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().BoolVar(&empty, "empty", false, "start with a blank canvas")
	return cmd
}

// exportCommand creates the command that packages a design as a static site.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		unpacked string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "export <design.json>",
		Short: "Export a design as a static website",
		Long: `Export a design file as a static website.

The site is written as a zip archive holding index.html, styles.css and
script.js. With --unpacked the three files are written into a directory
instead. Archives are cached by design content; --no-cache skips the cache.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			doc, err := designio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			snap := doc.Snapshot()

			if unpacked != "" {
				bundle := export.Render(snap)
				if err := writeUnpacked(unpacked, bundle); err != nil {
					return err
				}
				printSuccess("Exported %d elements", len(snap.Elements))
				for _, f := range bundle.Files() {
					printFile(filepath.Join(unpacked, f.Name))
				}
				return nil
			}

			if output == "" {
				output = filepath.Join(filepath.Dir(args[0]), export.ArchiveName)
			}

			prog := newProgress(logger)
			spinner := newSpinnerWithContext(ctx, "Packaging site...")
			spinner.Start()
			archive, err := c.newExporter(noCache).Export(ctx, snap)
			spinner.Stop()
			if err != nil {
				return err
			}

			if err := writeFileAtomic(output, archive.Data); err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Exported %d elements", len(snap.Elements)))

			printSuccess("Exported site")
			printExportStats(len(snap.Elements), len(archive.Data), archive.Cached)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "archive path (default: design-export.zip next to the design)")
	cmd.Flags().StringVar(&unpacked, "unpacked", "", "write the site files into this directory instead of a zip")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the export cache")
	cmd.MarkFlagsMutuallyExclusive("output", "unpacked")
	return cmd
}

// editCommand creates the interactive terminal editor command.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit <design.json>",
		Short: "Edit a design in the terminal",
		Long: `Open a design file in the terminal editor.

Arrows move the selected element by one grid unit and shift+arrows resize it
from the bottom-right corner. Tab cycles the selection, +/- change paint
order, d deletes, t/i/r/b add a text, image, rectangle or button, s saves and
q quits. A missing file starts from the starter design.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			doc, err := loadOrCreate(path)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewEditorModel(doc, path), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return err
			}

			if m, ok := final.(EditorModel); ok && m.Dirty {
				printWarning("Quit without saving %s", path)
				return nil
			}
			printDetail("Closed %s", path)
			return nil
		},
	}
}

// loadOrCreate reads the design at path, or returns the starter design when
// the file does not exist.
func loadOrCreate(path string) (*editor.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return editor.NewDefault(), nil
	}
	return designio.ImportJSON(path)
}

// writeUnpacked writes each bundle file into dir. Every file is staged as a
// temporary sibling before any is renamed into place, so a failed export
// leaves no partial site behind.
func writeUnpacked(dir string, b export.Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	files := b.Files()
	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()
	for _, f := range files {
		if err := errors.ValidateFilename(f.Name); err != nil {
			return err
		}
		path := filepath.Join(dir, f.Name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return fmt.Errorf("write %s: is a directory", path)
		}
		tmp, err := stageFile(dir, f.Name, []byte(f.Content))
		if err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		staged = append(staged, tmp)
	}

	var created []string
	for i, f := range files {
		path := filepath.Join(dir, f.Name)
		_, statErr := os.Stat(path)
		if err := os.Rename(staged[i], path); err != nil {
			for _, p := range created {
				os.Remove(p)
			}
			return fmt.Errorf("write %s: %w", path, err)
		}
		if os.IsNotExist(statErr) {
			created = append(created, path)
		}
	}
	return nil
}

// writeFileAtomic replaces path with data through a temporary sibling, so
// readers never see a truncated file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := stageFile(filepath.Dir(path), filepath.Base(path), data)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// stageFile writes data to a new hidden temporary file in dir and returns
// its path.
func stageFile(dir, name string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+"-*")
	if err != nil {
		return "", err
	}
	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Chmod(0o644)
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// designName returns the file name without its extension, for display.
func designName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
