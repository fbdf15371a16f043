package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studyos/internal/backup"
	"github.com/dmitrijs2005/studyos/internal/common"
	"github.com/dmitrijs2005/studyos/internal/logging"
	"github.com/dmitrijs2005/studyos/internal/repositories/decks"
	"github.com/dmitrijs2005/studyos/internal/repositories/files"
	"github.com/dmitrijs2005/studyos/internal/repositories/snapshots"
)

// Module keys used in bundles and snapshots.
const (
	ModuleDecks = "decks"
	ModuleCards = "cards"
	ModuleFiles = "files"
)

type BackupService interface {
	// Export serializes state into a bundle. A nil module list produces a
	// full bundle.
	Export(ctx context.Context, modules []string) ([]byte, error)

	// Import validates a bundle and reconciles it into stored state using
	// the given strategy. Validation failures reject the import before any
	// state is touched.
	Import(ctx context.Context, raw []byte, strategy backup.Strategy) error

	// SaveSnapshot stores the current full state keyed by now and returns
	// the key.
	SaveSnapshot(ctx context.Context) (int64, error)

	ListSnapshots(ctx context.Context) ([]int64, error)
	RestoreSnapshot(ctx context.Context, ts int64) error
	DeleteSnapshot(ctx context.Context, ts int64) error
}

type backupService struct {
	files files.Repository
	decks decks.Repository
	snaps snapshots.Repository
	log   logging.Logger
	now   func() time.Time
}

func NewBackupService(filesRepo files.Repository, decksRepo decks.Repository, snapsRepo snapshots.Repository, log logging.Logger) BackupService {
	return &backupService{files: filesRepo, decks: decksRepo, snaps: snapsRepo, log: log, now: time.Now}
}

func (s *backupService) Export(ctx context.Context, modules []string) ([]byte, error) {

	state, err := s.collectState(ctx)
	if err != nil {
		return nil, err
	}

	b := backup.NewBundle(state, modules, s.now())

	raw, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding bundle: %w", err)
	}

	return raw, nil
}

func (s *backupService) Import(ctx context.Context, raw []byte, strategy backup.Strategy) error {

	b, err := backup.ParseBundle(raw)
	if err != nil {
		return err
	}

	state, err := s.collectState(ctx)
	if err != nil {
		return err
	}

	merged, err := backup.Reconcile(state, b, strategy)
	if err != nil {
		return err
	}

	if err := s.applyState(ctx, merged); err != nil {
		return err
	}

	s.log.Info(ctx, "bundle imported", "strategy", string(strategy), "modules", len(b.Data))
	return nil
}

func (s *backupService) SaveSnapshot(ctx context.Context) (int64, error) {

	state, err := s.collectState(ctx)
	if err != nil {
		return 0, err
	}

	raw, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("encoding state: %w", err)
	}

	ts := s.now().UnixMilli()
	if err := s.snaps.Save(ctx, ts, string(raw)); err != nil {
		return 0, err
	}

	return ts, nil
}

func (s *backupService) ListSnapshots(ctx context.Context) ([]int64, error) {
	return s.snaps.List(ctx)
}

func (s *backupService) RestoreSnapshot(ctx context.Context, ts int64) error {

	snap, err := s.snaps.Get(ctx, ts)
	if err != nil {
		return err
	}
	if snap == nil {
		return fmt.Errorf("snapshot %d: %w", ts, common.ErrNotFound)
	}

	var state backup.State
	if err := json.Unmarshal([]byte(snap.Data), &state); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	return s.applyState(ctx, state)
}

func (s *backupService) DeleteSnapshot(ctx context.Context, ts int64) error {
	return s.snaps.Delete(ctx, ts)
}

// collectState assembles the generic module map the reconciler and snapshots
// operate on. Collections travel as decoded JSON so reconciliation stays
// agnostic of concrete types.
func (s *backupService) collectState(ctx context.Context) (backup.State, error) {

	names, err := s.decks.ListDecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting decks: %w", err)
	}
	deckItems := make([]map[string]any, 0, len(names))
	for _, n := range names {
		deckItems = append(deckItems, map[string]any{"name": n})
	}

	cards, err := s.decks.ListAllCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting cards: %w", err)
	}

	fileMeta, err := s.files.ListMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("collecting files: %w", err)
	}

	state := backup.State{}
	for key, v := range map[string]any{
		ModuleDecks: deckItems,
		ModuleCards: cards,
		ModuleFiles: fileMeta,
	} {
		decoded, err := jsonValue(v)
		if err != nil {
			return nil, fmt.Errorf("encoding module %s: %w", key, err)
		}
		state[key] = decoded
	}

	return state, nil
}

// applyState writes the decks/cards modules back to storage in one
// transaction. The files module carries metadata only (payloads never travel
// in bundles), so it is not applied.
func (s *backupService) applyState(ctx context.Context, state backup.State) error {

	var deckItems []struct {
		Name string `json:"name"`
	}
	if err := decodeModule(state[ModuleDecks], &deckItems); err != nil {
		return fmt.Errorf("decoding decks module: %w", err)
	}
	names := make([]string, 0, len(deckItems))
	for _, d := range deckItems {
		names = append(names, d.Name)
	}

	var cards []decks.DeckCard
	if err := decodeModule(state[ModuleCards], &cards); err != nil {
		return fmt.Errorf("decoding cards module: %w", err)
	}

	if err := s.decks.ReplaceAll(ctx, names, cards); err != nil {
		return fmt.Errorf("applying state: %w", err)
	}

	return nil
}

// jsonValue round-trips v through JSON into generic decoded form. Nil
// collections normalize to an empty array.
func jsonValue(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []any{}
	}
	return out, nil
}

// decodeModule converts a generic module value back into typed records.
// Missing modules decode as empty.
func decodeModule(v any, target any) error {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
