package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/effyhq/effy-cli/internal/client/models"
)

const docsUsage = "Usage: docs list [status] | docs show <id> | docs create <title> | docs delete <id> | docs upload <path> [title]"

// Docs dispatches the document subcommands. Request failures have already
// been surfaced by the pipeline and are only propagated here.
func (a *App) Docs(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, docsUsage)
		return nil
	}

	switch args[0] {
	case "list":
		var params models.ListParams
		if len(args) > 1 {
			params.Status = args[1]
		}
		return a.listDocs(ctx, params)

	case "show":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: docs show <id>")
			return nil
		}
		return a.showDoc(ctx, args[1])

	case "create":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: docs create <title>")
			return nil
		}
		return a.createDoc(ctx, strings.Join(args[1:], " "))

	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: docs delete <id>")
			return nil
		}
		return a.deleteDoc(ctx, args[1])

	case "upload":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: docs upload <path> [title]")
			return nil
		}
		title := ""
		if len(args) > 2 {
			title = strings.Join(args[2:], " ")
		}
		return a.uploadDoc(ctx, args[1], title)

	default:
		fmt.Fprintln(a.out, docsUsage)
		return nil
	}
}

func (a *App) listDocs(ctx context.Context, params models.ListParams) error {
	docs, err := a.docService.List(ctx, params)
	if err != nil {
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintln(a.out, "No documents.")
		return nil
	}
	for _, doc := range docs {
		fmt.Fprintf(a.out, "%s  %-10s  %s\n", doc.ID, doc.Status, doc.Title)
	}
	return nil
}

func (a *App) showDoc(ctx context.Context, id string) error {
	doc, err := a.docService.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Title:   %s\nStatus:  %s\nCreated: %s\n", doc.Title, doc.Status, doc.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

func (a *App) createDoc(ctx context.Context, title string) error {
	doc, err := a.docService.Create(ctx, models.DocumentCreate{Title: title})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created %s (%s)\n", doc.Title, doc.ID)
	return nil
}

func (a *App) deleteDoc(ctx context.Context, id string) error {
	if err := a.docService.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted %s\n", id)
	return nil
}

func (a *App) uploadDoc(ctx context.Context, path, title string) error {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(a.out, "error:", err)
		return err
	}
	defer f.Close()

	doc, err := a.docService.Upload(ctx, title, filepath.Base(path), f)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Uploaded %s (%s)\n", doc.Title, doc.ID)
	return nil
}
