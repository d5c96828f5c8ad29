package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/admissions/internal/client/models"
	"github.com/dmitrijs2005/admissions/internal/client/wizard"
)

// DocumentTypes lists the accepted document types and their limits.
func (a *App) DocumentTypes(context.Context, []string) error {
	a.showDocumentTypes()
	return nil
}

// SelectDocument marks a local file for upload: select <type> <path>.
func (a *App) SelectDocument(_ context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: select <type> <path>")
	}
	docType := models.DocumentType(strings.ToUpper(args[0]))
	if _, ok := models.PolicyFor(docType); !ok {
		return fmt.Errorf("unknown document type %q; see 'types'", args[0])
	}

	sel, err := a.wizard.SelectFile(docType, strings.Join(args[1:], " "))
	if err != nil {
		return a.outcome(a.wizard.Banner, wizard.SlotDocuments, err)
	}
	fmt.Fprintf(a.out, "Selected %s as %s (%s, %s)\n", sel.Filename,
		models.DocumentTypeLabel(sel.Type), sel.ContentType, models.FormatFileSize(sel.Size))
	return nil
}

func (a *App) UnselectDocument(context.Context, []string) error {
	a.wizard.ClearSelection()
	return nil
}

// UploadDocument sends the selected file.
func (a *App) UploadDocument(ctx context.Context, _ []string) error {
	err := a.outcome(a.wizard.Banner, wizard.SlotDocuments, a.wizard.UploadSelected(ctx))
	if err == nil {
		a.showDocuments(a.wizard.Documents())
	}
	return err
}

func (a *App) DeleteDocument(ctx context.Context, args []string) error {
	id, err := parseID(args, "rmdoc <id>")
	if err != nil {
		return err
	}
	return a.outcome(a.wizard.Banner, wizard.SlotDocuments, a.wizard.DeleteDocument(ctx, id))
}

// DownloadDocument saves a document: download <id> [directory | s3://bucket/prefix].
func (a *App) DownloadDocument(ctx context.Context, args []string) error {
	id, err := parseID(args, "download <id> [dest]")
	if err != nil {
		return err
	}
	dest := "."
	if len(args) > 1 {
		dest = args[1]
	}

	sink, err := a.openSink(ctx, dest)
	if err != nil {
		return err
	}
	loc, err := a.wizard.DownloadDocument(ctx, id, sink)
	if err != nil {
		return a.outcome(a.wizard.Banner, wizard.SlotDocuments, err)
	}
	fmt.Fprintln(a.out, "Saved to", loc)
	return nil
}
