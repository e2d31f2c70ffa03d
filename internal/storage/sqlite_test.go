package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "ann", Score: 100, Level: 3, Outcome: OutcomeGameOver},
		{Player: "bob", Score: 50, Level: 2, Outcome: OutcomeGameOver},
		{Player: "ann", Score: 200, Level: 22, Outcome: OutcomeWon},
	} {
		id, err := store.SaveScore(e)
		if err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
		if id == "" {
			t.Error("SaveScore() should generate a run ID")
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].Outcome != OutcomeWon || scores[0].Level != 22 || scores[0].Player != "ann" {
		t.Errorf("Unexpected top entry %+v", scores[0])
	}
	if scores[0].RunID == scores[1].RunID {
		t.Error("Run IDs should be unique")
	}
}

func TestStoreSaveScoreKeepsRunID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveScore(ScoreEntry{RunID: "run-1", Score: 5, Level: 1, Outcome: OutcomeGameOver})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if id != "run-1" {
		t.Errorf("Expected run-1, got %q", id)
	}

	if _, err := store.SaveScore(ScoreEntry{RunID: "run-1", Score: 6, Level: 1, Outcome: OutcomeGameOver}); err == nil {
		t.Error("Recording the same run twice should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore(ScoreEntry{Score: (i + 1) * 100, Level: 1, Outcome: OutcomeGameOver})
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	for _, s := range []int{100, 300, 200} {
		store.SaveScore(ScoreEntry{Score: s, Level: 1, Outcome: OutcomeGameOver})
	}

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Score: 100, Level: 1, Outcome: OutcomeGameOver})
	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore(ScoreEntry{Score: 10, Level: 4, Outcome: OutcomeGameOver})
	store.SaveScore(ScoreEntry{Score: 30, Level: 22, Outcome: OutcomeWon})

	stats, err = store.GetStats()
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Wins != 1 || stats.HighScore != 30 || stats.BestLevel != 22 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("Expected average 20, got %v", stats.AvgScore)
	}
}

func TestStoreSaves(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if _, err := store.GetSave(ctx, "default"); !errors.Is(err, ErrNoSave) {
		t.Fatalf("Expected ErrNoSave, got %v", err)
	}

	if err := store.PutSave(ctx, "default", []byte{1, 2, 3}, 2, 40); err != nil {
		t.Fatalf("PutSave() failed: %v", err)
	}
	if err := store.PutSave(ctx, "default", []byte{4, 5}, 3, 50); err != nil {
		t.Fatalf("PutSave() overwrite failed: %v", err)
	}
	if err := store.PutSave(ctx, "other", []byte{9}, 1, 0); err != nil {
		t.Fatalf("PutSave() failed: %v", err)
	}

	data, err := store.GetSave(ctx, "default")
	if err != nil {
		t.Fatalf("GetSave() failed: %v", err)
	}
	if string(data) != string([]byte{4, 5}) {
		t.Errorf("Expected overwritten data, got %v", data)
	}

	saves, err := store.ListSaves(ctx)
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(saves) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(saves))
	}
	for _, info := range saves {
		if info.Slot == "default" && (info.Level != 3 || info.Score != 50 || info.Size != 2) {
			t.Errorf("Unexpected slot info %+v", info)
		}
	}

	if err := store.DeleteSave(ctx, "default"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if _, err := store.GetSave(ctx, "default"); !errors.Is(err, ErrNoSave) {
		t.Errorf("Expected ErrNoSave after delete, got %v", err)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
