package ui

import (
	"fmt"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/input"
	"github.com/hailam/chessrules/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = 640 // Match board height to eliminate unused space
	BoardSize    = 640
	SquareSize   = BoardSize / board.Size
	PanelWidth   = ScreenWidth - BoardSize

	recentGamesShown = 1
)

// Game implements ebiten.Game for two players sharing one screen.
type Game struct {
	// Core game state
	board  *board.Board
	ctrl   *input.Controller
	layout input.Layout

	started  time.Time
	recorded bool // result of the current game already stored

	// Storage
	storage *storage.Storage
	prefs   *storage.UserPreferences
	stats   *storage.GameStats
	recent  []storage.GameResult // newest first

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel
	feedback *FeedbackManager

	// HiDPI scaling
	scale float64
}

// NewGame creates a new chess game from the starting position.
func NewGame() *Game {
	g := &Game{
		board:  board.New(),
		layout: input.Layout{SquareSize: SquareSize},
		input:  NewInputHandler(),
		scale:  1.0,
	}
	g.ctrl = input.NewController(g.board)
	g.renderer = NewRenderer(g.layout)
	g.feedback = NewFeedbackManager()

	// Initialize storage
	var err error
	g.storage, err = storage.NewStorage()
	if err != nil {
		log.Printf("Warning: Failed to initialize storage: %v", err)
	}

	g.loadPreferences()
	g.panel = NewPanel(g)
	g.started = time.Now()

	g.checkFirstLaunch()
	return g
}

// loadPreferences loads user preferences and statistics from storage.
func (g *Game) loadPreferences() {
	g.prefs = storage.DefaultPreferences()
	g.stats = storage.NewGameStats()

	if g.storage != nil {
		prefs, err := g.storage.LoadPreferences()
		if err != nil {
			log.Printf("Warning: Failed to load preferences: %v", err)
		} else {
			g.prefs = prefs
		}

		stats, err := g.storage.LoadStats()
		if err != nil {
			log.Printf("Warning: Failed to load stats: %v", err)
		} else {
			g.stats = stats
		}

		g.loadRecentGames()
	}

	// Apply preferences
	g.layout.Flipped = g.prefs.Flipped
	g.renderer.SetLayout(g.layout)
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
}

// savePreferences saves current preferences to storage.
func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Printf("Warning: Failed to save preferences: %v", err)
	}
}

// checkFirstLaunch greets a new user once.
func (g *Game) checkFirstLaunch() {
	if g.storage == nil {
		return
	}

	isFirst, err := g.storage.IsFirstLaunch()
	if err != nil {
		log.Printf("Warning: Failed to check first launch: %v", err)
		return
	}
	if !isFirst {
		return
	}

	g.feedback.Info("Welcome! Click a piece to see where it can move")
	if err := g.storage.MarkFirstLaunchComplete(); err != nil {
		log.Printf("Warning: Failed to mark first launch complete: %v", err)
	}
	g.savePreferences()
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update(g.scale)
	g.feedback.Update()

	g.handleKeys()

	// Handle panel interactions
	if g.panel.HandleInput(g.input) {
		g.updateCursor()
		return nil
	}

	g.handleBoardInput()
	g.updateCursor()
	return nil
}

// handleKeys processes keyboard shortcuts.
func (g *Game) handleKeys() {
	if _, ok := g.ctrl.PendingPromotion(); ok {
		keys := map[ebiten.Key]board.PieceKind{
			ebiten.KeyQ: board.Queen,
			ebiten.KeyR: board.Rook,
			ebiten.KeyB: board.Bishop,
			ebiten.KeyN: board.Knight,
		}
		for key, kind := range keys {
			if IsKeyJustPressed(key) {
				g.choosePromotion(kind)
				return
			}
		}
		if IsKeyJustPressed(ebiten.KeyEscape) {
			g.ctrl.CancelPromotion()
		}
		return
	}

	switch {
	case IsKeyJustPressed(ebiten.KeyU), IsKeyJustPressed(ebiten.KeyBackspace):
		g.UndoAction()
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	case IsKeyJustPressed(ebiten.KeyH):
		g.ToggleHintsAction()
	case IsKeyJustPressed(ebiten.KeyM):
		g.ToggleSoundAction()
	case IsKeyJustPressed(ebiten.KeyEscape):
		g.ctrl.Reset()
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	hovered := g.panel.AnyButtonHovered()
	if _, ok := g.ctrl.PendingPromotion(); ok {
		mx, my := g.input.MousePosition()
		_, onChoice := g.layout.PromotionChoiceAt(mx, my)
		hovered = hovered || onChoice
	}

	if hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	g.renderer.DrawBoard(screen)
	g.renderer.DrawCheck(screen, g.board)
	g.renderer.DrawHighlights(screen, g.board, g.ctrl, g.prefs.ShowHints)
	g.renderer.DrawPieces(screen, g.board, g.feedback.Animations())

	if m, ok := g.ctrl.PendingPromotion(); ok {
		mx, my := g.input.MousePosition()
		g.renderer.DrawPromotionMenu(screen, m.Piece.Color, mx, my)
	}

	// Draw feedback overlays (animations, toasts)
	g.feedback.Draw(screen, g.renderer, g.scale)

	g.panel.Draw(screen, g.scale)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// 2.0 on Retina, 1.0 on standard displays
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// handleBoardInput turns clicks on the board into controller clicks.
func (g *Game) handleBoardInput() {
	if !g.input.IsLeftJustPressed() {
		return
	}
	mx, my := g.input.MousePosition()

	if _, ok := g.ctrl.PendingPromotion(); ok {
		if kind, ok := g.layout.PromotionChoiceAt(mx, my); ok {
			g.choosePromotion(kind)
			return
		}
		g.ctrl.CancelPromotion()
		return
	}

	sq, ok := g.layout.SquareAt(mx, my)
	if !ok {
		return
	}

	from, _ := g.ctrl.Selected()
	outcome, err := g.ctrl.Click(sq)
	if err != nil {
		log.Printf("[MOVE] %s-%s rejected: %v", from, sq, err)
		g.feedback.Error(err.Error())
		return
	}

	switch outcome {
	case input.Moved:
		g.afterMove()
	case input.Deselected:
		if reason := classifyInvalidMove(g.board, from, sq); reason != ReasonInvalidPieceMovement {
			g.feedback.OnInvalidMove(from, sq, reason)
		}
	case input.Ignored:
		if p, ok := g.board.PieceAt(sq); ok && p.Color != g.board.Turn() && !g.board.State().IsTerminal() {
			g.feedback.OnInvalidMove(sq, sq, ReasonNotYourTurn)
		}
	}
}

// choosePromotion completes the pending promotion.
func (g *Game) choosePromotion(kind board.PieceKind) {
	if err := g.ctrl.ChoosePromotion(kind); err != nil {
		log.Printf("[MOVE] promotion to %s rejected: %v", kind, err)
		g.feedback.Error(err.Error())
		return
	}
	g.afterMove()
}

// afterMove plays feedback for the move just applied and handles game end.
func (g *Game) afterMove() {
	m, ok := g.board.LastMove()
	if !ok {
		return
	}
	log.Printf("[MOVE] %s %s %s, %s", m.Piece.Color, m.Piece.Kind, m, g.board.State())

	g.feedback.OnMoveMade(m)
	g.panel.ScrollToEnd()
	g.checkGameEnd()
}

// checkGameEnd announces check and records finished games.
func (g *Game) checkGameEnd() {
	switch g.board.State() {
	case board.Check:
		g.feedback.OnCheck()
	case board.Checkmate:
		winner, _ := g.board.Winner()
		g.feedback.OnCheckmate(winner)
		g.recordResult()
	case board.Stalemate:
		g.feedback.OnStalemate()
		g.recordResult()
	}
}

// recordResult stores the finished game once per game.
func (g *Game) recordResult() {
	if g.recorded || g.storage == nil {
		return
	}
	g.recorded = true

	result := storage.ResultFromBoard(g.board, time.Since(g.started))
	if err := g.storage.RecordGame(result); err != nil {
		log.Printf("Warning: Failed to record game: %v", err)
		return
	}

	stats, err := g.storage.LoadStats()
	if err != nil {
		log.Printf("Warning: Failed to load stats: %v", err)
		return
	}
	g.stats = stats
	g.loadRecentGames()
	log.Printf("[STATS] %d games: %d white wins, %d black wins, %d draws, %.1f plies on average",
		stats.GamesPlayed, stats.WhiteWins, stats.BlackWins, stats.Draws, stats.AveragePlies())
}

// loadRecentGames refreshes the results listed in the panel.
func (g *Game) loadRecentGames() {
	recent, err := g.storage.RecentGames(recentGamesShown)
	if err != nil {
		log.Printf("Warning: Failed to load recent games: %v", err)
		return
	}
	g.recent = recent
}

// NewGameAction starts a new game from the initial position.
func (g *Game) NewGameAction() {
	g.board = board.New()
	g.ctrl = input.NewController(g.board)
	g.started = time.Now()
	g.recorded = false
	g.feedback.Animations().Clear()
	g.panel.ScrollToEnd()
	log.Printf("[MOVE] new game")
}

// UndoAction takes back the last move.
func (g *Game) UndoAction() {
	g.ctrl.Reset()
	m, ok := g.board.Undo()
	if !ok {
		g.feedback.Info("Nothing to undo")
		return
	}
	log.Printf("[MOVE] undo %s", m)
	g.feedback.OnUndo()
	g.panel.ScrollToEnd()
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.layout.Flipped = !g.layout.Flipped
	g.renderer.SetLayout(g.layout)
	g.prefs.Flipped = g.layout.Flipped
	g.savePreferences()
}

// ToggleHintsAction shows or hides legal move indicators.
func (g *Game) ToggleHintsAction() {
	g.prefs.ShowHints = !g.prefs.ShowHints
	g.savePreferences()
}

// ToggleSoundAction mutes or unmutes sound effects.
func (g *Game) ToggleSoundAction() {
	g.prefs.SoundEnabled = !g.prefs.SoundEnabled
	g.feedback.Audio().SetEnabled(g.prefs.SoundEnabled)
	g.savePreferences()
}

// Board returns the current board.
func (g *Game) Board() *board.Board {
	return g.board
}

// Username returns the player name.
func (g *Game) Username() string {
	return g.prefs.Username
}

// ShowHints reports whether legal move indicators are shown.
func (g *Game) ShowHints() bool {
	return g.prefs.ShowHints
}

// SoundEnabled reports whether sound effects play.
func (g *Game) SoundEnabled() bool {
	return g.prefs.SoundEnabled
}

// Flipped reports whether Black is at the bottom.
func (g *Game) Flipped() bool {
	return g.layout.Flipped
}

// RecentGames returns the latest finished games, newest first.
func (g *Game) RecentGames() []storage.GameResult {
	return g.recent
}

// Stats returns the stored game statistics.
func (g *Game) Stats() *storage.GameStats {
	return g.stats
}

// GameOver reports whether the game has ended.
func (g *Game) GameOver() bool {
	return g.board.State().IsTerminal()
}

// StatusText describes whose turn it is or how the game ended.
func (g *Game) StatusText() string {
	if _, ok := g.ctrl.PendingPromotion(); ok {
		return "Choose a piece (Q/R/B/N)"
	}
	switch g.board.State() {
	case board.Checkmate:
		winner, _ := g.board.Winner()
		return fmt.Sprintf("%s wins by checkmate", winner)
	case board.Stalemate:
		return "Draw by stalemate"
	case board.Check:
		return fmt.Sprintf("%s to move, in check", g.board.Turn())
	default:
		return fmt.Sprintf("%s to move", g.board.Turn())
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.storage != nil {
		g.savePreferences()
		g.storage.Close()
	}
}
