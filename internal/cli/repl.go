package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	ListFiles(ctx context.Context) error
	AddFile(ctx context.Context) error
	ShowFile(ctx context.Context) error
	EditFile(ctx context.Context) error
	DeleteFile(ctx context.Context) error
	ListDecks(ctx context.Context) error
	AddDeck(ctx context.Context) error
	DeleteDeck(ctx context.Context) error
	AddCard(ctx context.Context) error
	Study(ctx context.Context) error
	Export(ctx context.Context) error
	Import(ctx context.Context) error
	Snapshot(ctx context.Context) error
	ListSnapshots(ctx context.Context) error
	Restore(ctx context.Context) error
	DeleteSnapshot(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Studyos CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("studyos > ")
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Files:     (f)iles, addfile, showfile, editfile, rmfile")
			printlnFn("Decks:     (d)ecks, adddeck, rmdeck, addcard, study")
			printlnFn("Backup:    export, import, snapshot, snapshots, restore, rmsnap")
			printlnFn("Other:     help, exit")

		case "f", "files":
			_ = a.ListFiles(ctx)

		case "addfile":
			_ = a.AddFile(ctx)

		case "showfile":
			_ = a.ShowFile(ctx)

		case "editfile":
			_ = a.EditFile(ctx)

		case "rmfile":
			_ = a.DeleteFile(ctx)

		case "d", "decks":
			_ = a.ListDecks(ctx)

		case "adddeck":
			_ = a.AddDeck(ctx)

		case "rmdeck":
			_ = a.DeleteDeck(ctx)

		case "addcard":
			_ = a.AddCard(ctx)

		case "study":
			_ = a.Study(ctx)

		case "export":
			_ = a.Export(ctx)

		case "import":
			_ = a.Import(ctx)

		case "snapshot":
			_ = a.Snapshot(ctx)

		case "snapshots":
			_ = a.ListSnapshots(ctx)

		case "restore":
			_ = a.Restore(ctx)

		case "rmsnap":
			_ = a.DeleteSnapshot(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
