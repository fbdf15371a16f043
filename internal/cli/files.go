package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/studyos/internal/filex"
	"github.com/dmitrijs2005/studyos/internal/models"
)

func (a *App) ListFiles(ctx context.Context) error {

	list, err := a.fileService.List(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing files", "error", err.Error())
		return err
	}

	if len(list) == 0 {
		printlnFn("No files stored.")
		return nil
	}

	for _, f := range list {
		printlnFn(fmt.Sprintf("%6d  %-30s %-12s %8d B  %s  %v",
			f.Id, f.Name, f.MimeType, f.SizeBytes,
			time.UnixMilli(f.CreatedAt).Format("2006-01-02 15:04"), f.Tags))
	}
	return nil
}

func (a *App) AddFile(ctx context.Context) error {

	path, err := promptString(a.reader, "Path")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	tagsInput, err := promptString(a.reader, "Tags (comma separated, optional)")
	if err != nil {
		return err
	}
	folder, err := promptString(a.reader, "Folder (optional)")
	if err != nil {
		return err
	}

	name := filepath.Base(path)
	mimeType := filex.DetectMimeType(name, data)

	id, err := a.fileService.Add(ctx, name, mimeType, data, splitTags(tagsInput), folder)
	if err != nil {
		a.log.Error(ctx, "error storing file", "error", err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Stored as id %d", id))
	return nil
}

func (a *App) ShowFile(ctx context.Context) error {

	id, err := promptInt64(a.reader, "Id")
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	f, err := a.fileService.Get(ctx, id)
	if err != nil {
		a.log.Error(ctx, "error retrieving file", "error", err.Error())
		return err
	}
	if f == nil {
		printlnFn("Not found.")
		return nil
	}

	printlnFn(fmt.Sprintf("%s (%s, %d bytes, folder %s, tags %v)",
		f.Name, f.MimeType, f.SizeBytes, f.Folder, f.Tags))

	dest, err := promptString(a.reader, "Save to (optional)")
	if err != nil {
		return err
	}
	if dest != "" {
		if err := os.WriteFile(dest, f.Data, 0o600); err != nil {
			printlnFn("Cannot write file:", err.Error())
			return err
		}
		printlnFn("Saved to", dest)
	}
	return nil
}

func (a *App) EditFile(ctx context.Context) error {

	id, err := promptInt64(a.reader, "Id")
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	name, err := promptString(a.reader, "New name (empty to keep)")
	if err != nil {
		return err
	}
	tagsInput, err := promptString(a.reader, "New tags (empty to keep)")
	if err != nil {
		return err
	}
	folder, err := promptString(a.reader, "New folder (empty to keep)")
	if err != nil {
		return err
	}

	var patch models.MetadataPatch
	if name != "" {
		patch.Name = &name
	}
	if tagsInput != "" {
		tags := splitTags(tagsInput)
		patch.Tags = &tags
	}
	if folder != "" {
		patch.Folder = &folder
	}

	if err := a.fileService.UpdateMetadata(ctx, id, patch); err != nil {
		a.log.Error(ctx, "error updating file", "error", err.Error())
		printlnFn("Update failed:", err.Error())
		return err
	}

	printlnFn("Updated.")
	return nil
}

func (a *App) DeleteFile(ctx context.Context) error {

	id, err := promptInt64(a.reader, "Id")
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.fileService.Delete(ctx, id); err != nil {
		a.log.Error(ctx, "error deleting file", "error", err.Error())
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}
