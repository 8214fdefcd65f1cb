package storage

import (
	"os"
	"testing"
	"time"

	"github.com/hailam/chessrules/internal/board"
)

func openTest(t *testing.T) *Storage {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStorage(t *testing.T) {
	t.Run("DefaultPreferences", func(t *testing.T) {
		prefs := DefaultPreferences()
		if prefs.Username != "Player" {
			t.Errorf("Expected username 'Player', got '%s'", prefs.Username)
		}
		if prefs.Flipped {
			t.Errorf("Expected white at the bottom by default")
		}
		if !prefs.ShowHints {
			t.Errorf("Expected hints enabled by default")
		}
		if !prefs.SoundEnabled {
			t.Errorf("Expected sound enabled by default")
		}
	})

	t.Run("NewGameStats", func(t *testing.T) {
		stats := NewGameStats()
		if stats.GamesPlayed != 0 {
			t.Errorf("Expected 0 games played")
		}
		if stats.GetDecisiveRate() != 0 {
			t.Errorf("Expected 0 decisive rate")
		}
		if stats.AveragePlies() != 0 {
			t.Errorf("Expected 0 average plies")
		}
	})

	t.Run("DecisiveRate", func(t *testing.T) {
		stats := &GameStats{
			GamesPlayed: 10,
			WhiteWins:   3,
			BlackWins:   2,
			Draws:       5,
		}
		rate := stats.GetDecisiveRate()
		if rate != 50 {
			t.Errorf("Expected 50%% decisive rate, got %.2f%%", rate)
		}
	})
}

func TestPreferencesRoundTrip(t *testing.T) {
	s := openTest(t)

	prefs, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if prefs.Username != "Player" {
		t.Errorf("missing preferences should load defaults, got %+v", prefs)
	}

	prefs.Username = "Ada"
	prefs.Flipped = true
	prefs.ShowHints = false
	if err := s.SavePreferences(prefs); err != nil {
		t.Fatalf("SavePreferences: %v", err)
	}

	got, err := s.LoadPreferences()
	if err != nil {
		t.Fatalf("LoadPreferences: %v", err)
	}
	if got.Username != "Ada" || !got.Flipped || got.ShowHints || !got.SoundEnabled {
		t.Errorf("LoadPreferences() = %+v", got)
	}
}

func TestFirstLaunch(t *testing.T) {
	s := openTest(t)

	first, err := s.IsFirstLaunch()
	if err != nil || !first {
		t.Fatalf("IsFirstLaunch() = %v, %v, want true", first, err)
	}
	if err := s.MarkFirstLaunchComplete(); err != nil {
		t.Fatalf("MarkFirstLaunchComplete: %v", err)
	}
	first, err = s.IsFirstLaunch()
	if err != nil || first {
		t.Errorf("IsFirstLaunch() = %v, %v, want false", first, err)
	}
}

func TestRecordGame(t *testing.T) {
	s := openTest(t)

	base := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	results := []GameResult{
		{Winner: board.White, Reason: board.Checkmate, Plies: 7, Duration: time.Minute, Finished: base},
		{Winner: board.NoColor, Reason: board.Stalemate, Plies: 80, Duration: 2 * time.Minute, Finished: base.Add(time.Hour)},
		{Winner: board.Black, Reason: board.Checkmate, Plies: 4, Duration: time.Minute, Finished: base.Add(2 * time.Hour)},
	}
	for _, r := range results {
		if err := s.RecordGame(r); err != nil {
			t.Fatalf("RecordGame: %v", err)
		}
	}

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	want := GameStats{
		GamesPlayed:   3,
		WhiteWins:     1,
		BlackWins:     1,
		Draws:         1,
		TotalPlies:    91,
		LongestGame:   80,
		TotalPlayTime: 4 * time.Minute,
	}
	if *stats != want {
		t.Errorf("LoadStats() = %+v, want %+v", *stats, want)
	}

	recent, err := s.RecentGames(2)
	if err != nil {
		t.Fatalf("RecentGames: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("len(RecentGames(2)) = %d, want 2", len(recent))
	}
	if recent[0].Winner != board.Black || recent[1].Reason != board.Stalemate {
		t.Errorf("RecentGames(2) = %+v, want newest first", recent)
	}
}

func TestResultFromBoard(t *testing.T) {
	b, err := board.NewBoard(board.WithFEN("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"))
	if err != nil {
		t.Fatalf("NewBoard: %v", err)
	}

	r := ResultFromBoard(b, time.Second)
	if r.Winner != board.NoColor || r.Reason != board.Stalemate {
		t.Errorf("ResultFromBoard() = %+v, want draw by stalemate", r)
	}
}

func TestOpenDir(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.SaveStats(&GameStats{GamesPlayed: 2}); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	stats, err := s.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.GamesPlayed != 2 {
		t.Errorf("GamesPlayed = %d after reopen, want 2", stats.GamesPlayed)
	}
}

func TestDataPaths(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	// Test that GetDataDir returns a valid path
	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if dataDir == "" {
		t.Error("GetDataDir returned empty path")
	}

	// Verify directory exists
	if _, err := os.Stat(dataDir); os.IsNotExist(err) {
		t.Errorf("Data directory was not created: %s", dataDir)
	}

	t.Logf("Data directory: %s", dataDir)
}

func TestGameResultSummary(t *testing.T) {
	tests := []struct {
		r    GameResult
		want string
	}{
		{GameResult{Winner: board.White, Reason: board.Checkmate, Plies: 42}, "White won by checkmate in 42 plies"},
		{GameResult{Winner: board.NoColor, Reason: board.Stalemate, Plies: 7}, "Draw by stalemate in 7 plies"},
		{GameResult{Winner: board.NoColor, Reason: board.Active, Plies: 3}, "Unfinished after 3 plies"},
	}
	for _, tt := range tests {
		if got := tt.r.Summary(); got != tt.want {
			t.Errorf("Summary() = %q, want %q", got, tt.want)
		}
	}
}
