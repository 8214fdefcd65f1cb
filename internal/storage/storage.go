package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/board"
)

// Storage keys
const (
	keyPreferences = "preferences"
	keyStats       = "stats"
	keyFirstLaunch = "first_launch"
	prefixGame     = "game/"
)

// UserPreferences stores user settings
type UserPreferences struct {
	Username     string    `json:"username"`
	Flipped      bool      `json:"flipped"`
	ShowHints    bool      `json:"show_hints"`
	SoundEnabled bool      `json:"sound_enabled"`
	LastPlayed   time.Time `json:"last_played"`
}

// DefaultPreferences returns default user preferences
func DefaultPreferences() *UserPreferences {
	return &UserPreferences{
		Username:     "Player",
		ShowHints:    true,
		SoundEnabled: true,
		LastPlayed:   time.Now(),
	}
}

// GameStats stores game statistics
type GameStats struct {
	GamesPlayed   int           `json:"games_played"`
	WhiteWins     int           `json:"white_wins"`
	BlackWins     int           `json:"black_wins"`
	Draws         int           `json:"draws"`
	TotalPlies    int           `json:"total_plies"`
	LongestGame   int           `json:"longest_game"`
	TotalPlayTime time.Duration `json:"total_play_time"`
}

// NewGameStats returns empty game statistics
func NewGameStats() *GameStats {
	return &GameStats{}
}

// GameResult represents the result of a finished game
type GameResult struct {
	Winner   board.Color     `json:"winner"` // NoColor for a draw
	Reason   board.GameState `json:"reason"`
	Plies    int             `json:"plies"`
	Duration time.Duration   `json:"duration"`
	Finished time.Time       `json:"finished"`
}

// ResultFromBoard builds a result from a board in a terminal state.
func ResultFromBoard(b *board.Board, duration time.Duration) GameResult {
	winner, ok := b.Winner()
	if !ok {
		winner = board.NoColor
	}
	return GameResult{
		Winner:   winner,
		Reason:   b.State(),
		Plies:    len(b.MoveHistory()),
		Duration: duration,
		Finished: time.Now(),
	}
}

// Summary describes the result in one line, e.g. "White won by checkmate in 42 plies".
func (r GameResult) Summary() string {
	switch r.Reason {
	case board.Checkmate:
		return fmt.Sprintf("%s won by checkmate in %d plies", r.Winner, r.Plies)
	case board.Stalemate:
		return fmt.Sprintf("Draw by stalemate in %d plies", r.Plies)
	default:
		return fmt.Sprintf("Unfinished after %d plies", r.Plies)
	}
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the database in the platform data directory
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens the database in dir
func Open(dir string) (*Storage, error) {
	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a database that lives only as long as the process
func OpenInMemory() (*Storage, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Storage, error) {
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// IsFirstLaunch returns true if this is the first launch
func (s *Storage) IsFirstLaunch() (bool, error) {
	firstLaunch := true

	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyFirstLaunch))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		firstLaunch = false
		return nil
	})

	return firstLaunch, err
}

// MarkFirstLaunchComplete marks that first launch setup is complete
func (s *Storage) MarkFirstLaunchComplete() error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyFirstLaunch), []byte("done"))
	})
}

// SavePreferences saves user preferences
func (s *Storage) SavePreferences(prefs *UserPreferences) error {
	prefs.LastPlayed = time.Now()
	return s.put(keyPreferences, prefs)
}

// LoadPreferences loads user preferences, returns defaults if not found
func (s *Storage) LoadPreferences() (*UserPreferences, error) {
	prefs := DefaultPreferences()
	err := s.get(keyPreferences, prefs)
	return prefs, err
}

// SaveStats saves game statistics
func (s *Storage) SaveStats(stats *GameStats) error {
	return s.put(keyStats, stats)
}

// LoadStats loads game statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*GameStats, error) {
	stats := NewGameStats()
	err := s.get(keyStats, stats)
	return stats, err
}

// RecordGame stores a finished game and updates statistics in one transaction
func (s *Storage) RecordGame(result GameResult) error {
	if result.Finished.IsZero() {
		result.Finished = time.Now()
	}

	return s.db.Update(func(txn *badger.Txn) error {
		stats := NewGameStats()
		if err := getTxn(txn, keyStats, stats); err != nil {
			return err
		}
		stats.add(result)

		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyStats), data); err != nil {
			return err
		}

		data, err = json.Marshal(result)
		if err != nil {
			return err
		}
		return txn.Set(gameKey(result.Finished), data)
	})
}

// RecentGames returns up to n finished games, newest first
func (s *Storage) RecentGames(n int) ([]GameResult, error) {
	var results []GameResult

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration seeks from just past the prefix range.
		for it.Seek(append([]byte(prefixGame), 0xff)); it.Valid() && len(results) < n; it.Next() {
			var r GameResult
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &r)
			}); err != nil {
				return err
			}
			results = append(results, r)
		}
		return nil
	})

	return results, err
}

func (st *GameStats) add(r GameResult) {
	st.GamesPlayed++
	st.TotalPlies += r.Plies
	st.TotalPlayTime += r.Duration
	if r.Plies > st.LongestGame {
		st.LongestGame = r.Plies
	}

	switch r.Winner {
	case board.White:
		st.WhiteWins++
	case board.Black:
		st.BlackWins++
	default:
		st.Draws++
	}
}

// GetDecisiveRate returns the share of games that ended in checkmate as a percentage (0-100)
func (st *GameStats) GetDecisiveRate() float64 {
	if st.GamesPlayed == 0 {
		return 0
	}
	return float64(st.WhiteWins+st.BlackWins) / float64(st.GamesPlayed) * 100
}

// AveragePlies returns the mean game length in plies
func (st *GameStats) AveragePlies() float64 {
	if st.GamesPlayed == 0 {
		return 0
	}
	return float64(st.TotalPlies) / float64(st.GamesPlayed)
}

func gameKey(t time.Time) []byte {
	key := make([]byte, len(prefixGame)+8)
	copy(key, prefixGame)
	binary.BigEndian.PutUint64(key[len(prefixGame):], uint64(t.UnixNano()))
	return key
}

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		return getTxn(txn, key, v)
	})
}

// getTxn decodes key into v, leaving v untouched when the key is missing.
func getTxn(txn *badger.Txn, key string, v any) error {
	item, err := txn.Get([]byte(key))
	if err == badger.ErrKeyNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}
