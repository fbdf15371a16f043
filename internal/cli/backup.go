package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/studyos/internal/backup"
)

func (a *App) Export(ctx context.Context) error {

	path, err := promptString(a.reader, "Export to")
	if err != nil {
		return err
	}

	raw, err := a.backupService.Export(ctx, nil)
	if err != nil {
		a.log.Error(ctx, "error exporting", "error", err.Error())
		printlnFn("Export failed:", err.Error())
		return err
	}

	if err := os.WriteFile(path, raw, 0o600); err != nil {
		printlnFn("Cannot write file:", err.Error())
		return err
	}

	printlnFn("Exported to", path)
	return nil
}

func (a *App) Import(ctx context.Context) error {

	path, err := promptString(a.reader, "Import from")
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		printlnFn("Cannot read file:", err.Error())
		return err
	}

	strategyInput, err := promptString(a.reader, "Strategy (overwrite/merge)")
	if err != nil {
		return err
	}

	var strategy backup.Strategy
	switch strategyInput {
	case "overwrite":
		strategy = backup.StrategyOverwrite
	case "merge":
		strategy = backup.StrategyMerge
	default:
		printlnFn("Unknown strategy:", strategyInput)
		return fmt.Errorf("unknown strategy %q", strategyInput)
	}

	if err := a.backupService.Import(ctx, raw, strategy); err != nil {
		a.log.Error(ctx, "error importing", "error", err.Error())
		printlnFn("Import failed:", err.Error())
		return err
	}

	printlnFn("Imported.")
	return nil
}

func (a *App) Snapshot(ctx context.Context) error {

	ts, err := a.backupService.SaveSnapshot(ctx)
	if err != nil {
		a.log.Error(ctx, "error saving snapshot", "error", err.Error())
		printlnFn("Snapshot failed:", err.Error())
		return err
	}

	printlnFn("Snapshot saved:", ts)
	return nil
}

func (a *App) ListSnapshots(ctx context.Context) error {

	list, err := a.backupService.ListSnapshots(ctx)
	if err != nil {
		a.log.Error(ctx, "error listing snapshots", "error", err.Error())
		return err
	}

	if len(list) == 0 {
		printlnFn("No snapshots.")
		return nil
	}
	for _, ts := range list {
		printlnFn(fmt.Sprintf("%d  (%s)", ts, time.UnixMilli(ts).Format("2006-01-02 15:04:05")))
	}
	return nil
}

func (a *App) Restore(ctx context.Context) error {

	ts, err := promptInt64(a.reader, "Snapshot timestamp")
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.backupService.RestoreSnapshot(ctx, ts); err != nil {
		a.log.Error(ctx, "error restoring snapshot", "error", err.Error())
		printlnFn("Restore failed:", err.Error())
		return err
	}

	printlnFn("Restored.")
	return nil
}

func (a *App) DeleteSnapshot(ctx context.Context) error {

	ts, err := promptInt64(a.reader, "Snapshot timestamp")
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.backupService.DeleteSnapshot(ctx, ts); err != nil {
		a.log.Error(ctx, "error deleting snapshot", "error", err.Error())
		printlnFn("Delete failed:", err.Error())
		return err
	}

	printlnFn("Deleted.")
	return nil
}
