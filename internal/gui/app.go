package gui

import (
	"fmt"
	"unicode"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/input"
	"github.com/san-kum/ballpit/internal/particles"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/viewport"
	"github.com/san-kum/ballpit/internal/viz"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

// Config sizes the window.
type Config struct {
	Width, Height int32
	Title         string
	FPS           int32
}

func DefaultConfig() Config {
	return Config{Width: 1280, Height: 720, Title: "ballpit", FPS: 60}
}

type App struct {
	World  *sim.World
	View   *viewport.Viewport
	Field  *particles.Field
	Logger *zap.Logger
	Font   rl.Font

	Running   bool
	ShowHelp  bool
	Telemetry []float64
	MaxTelem  int

	lastMouse rl.Vector2
	focused   bool
}

func initWindow(cfg Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)
	rl.SetTargetFPS(cfg.FPS)
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when installed and falls back to the
// raylib default font.
func loadFont() rl.Font {
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	if font.Texture.ID == 0 {
		return rl.GetFontDefault()
	}
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(w *sim.World, view *viewport.Viewport, field *particles.Field, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		World:     w,
		View:      view,
		Field:     field,
		Logger:    logger,
		Font:      loadFont(),
		Running:   true,
		MaxTelem:  200,
		Telemetry: make([]float64, 0, 200),
		focused:   true,
	}
}

// Run opens the window and blocks until it is closed.
func Run(cfg Config, w *sim.World, view *viewport.Viewport, field *particles.Field, logger *zap.Logger) {
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(w, view, field, logger)
	app.Logger.Info("window opened",
		zap.Int32("width", cfg.Width),
		zap.Int32("height", cfg.Height),
		zap.Int("bodies", w.Len()))
	app.RunLoop()
	app.Logger.Info("window closed", zap.Float64("time", w.Time()), zap.Int("bodies", w.Len()))
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) screen() (float64, float64) {
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight())
}

// Update feeds this frame's input to the world and advances it one frame.
func (a *App) Update() {
	sw, sh := a.screen()
	a.View.Resize(sw, sh)
	if a.Field != nil {
		a.Field.SetBounds(a.View)
	}

	a.pollPointer(sw, sh)
	a.pollKeys()

	focused := rl.IsWindowFocused()
	if a.focused && !focused {
		a.World.HandleEvent(input.FocusLost())
	}
	a.focused = focused

	if !a.Running {
		return
	}
	a.World.Step()
	if err := a.World.Validate(); err != nil {
		a.Logger.Error("invalid world state", zap.Error(err))
		a.Running = false
	}

	a.Telemetry = append(a.Telemetry, a.World.KineticEnergy())
	if len(a.Telemetry) > a.MaxTelem {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) pollPointer(sw, sh float64) {
	m := rl.GetMousePosition()
	if m != a.lastMouse {
		pos := a.View.ScreenToWorld(dynamo.V2(float64(m.X), float64(m.Y)), sw, sh)
		a.World.HandleEvent(input.PointerMove(pos))
		a.lastMouse = m
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.World.HandleEvent(input.PointerDown(input.ButtonPrimary))
	}
	if rl.IsMouseButtonPressed(rl.MouseRightButton) {
		a.World.HandleEvent(input.PointerDown(input.ButtonSecondary))
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) || rl.IsMouseButtonReleased(rl.MouseRightButton) {
		a.World.HandleEvent(input.PointerUp())
	}
}

func (a *App) pollKeys() {
	keys := a.World.Keymap()

	if k, ok := rayKey(keys.Menu); ok && rl.IsKeyPressed(k) {
		a.ShowHelp = !a.ShowHelp
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}

	for _, code := range []string{keys.Fix, keys.Constrain, keys.Pull, keys.Push, keys.Grow, keys.Shrink} {
		k, ok := rayKey(code)
		if !ok {
			continue
		}
		if rl.IsKeyPressed(k) {
			a.World.HandleEvent(input.KeyDown(code))
		}
		if rl.IsKeyReleased(k) {
			a.World.HandleEvent(input.KeyUp(code))
		}
	}
}

// rayKey maps a key code to a raylib key. Raylib uses upper case ASCII for
// printable keys.
func rayKey(code string) (int32, bool) {
	if code == "Escape" {
		return rl.KeyEscape, true
	}
	r, ok := input.CodeRune(code)
	if !ok {
		return 0, false
	}
	return int32(unicode.ToUpper(r)), true
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawWorld()
	a.DrawHUD()
	if a.ShowHelp {
		a.drawHelp()
	}

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	sw, sh := a.screen()
	w, h := int(sw), int(sh)

	a.drawText("ballpit", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s", viz.ModeLabel(a.World.Mode())), 140, 34, 16, ColText)
	a.drawText(fmt.Sprintf("%d bodies  t=%.1fs", a.World.Len(), a.World.Time()), 30, 60, 14, ColText)

	status := "RUNNING"
	col := ColSelect
	if !a.Running {
		status = "PAUSED"
		col = ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)

	a.DrawTelemetry(30, h-120)

	a.drawText("[SPACE] PAUSE  [ESC] HELP", w-300, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

// DrawTelemetry plots the recent kinetic energy as a line strip.
func (a *App) DrawTelemetry(rectX, rectY int) {
	if len(a.Telemetry) < 2 {
		return
	}

	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	a.drawText(fmt.Sprintf("E: %.2e", a.Telemetry[len(a.Telemetry)-1]), rectX+width+10, rectY+height-10, 14, ColText)
}

func (a *App) drawHelp() {
	keys := a.World.Keymap()
	lines := []string{
		"LEFT CLICK      spawn a ball",
		"RIGHT DRAG      delete balls under the cursor",
		keyLine(keys.Fix, "hold to freeze everything"),
		keyLine(keys.Constrain, "hold to tether balls to the cursor"),
		keyLine(keys.Pull, "hold to pull toward the cursor"),
		keyLine(keys.Push, "hold to push away from the cursor"),
		keyLine(keys.Grow, "grow balls under the cursor"),
		keyLine(keys.Shrink, "shrink balls under the cursor"),
	}

	x, y := 60, 120
	rl.DrawRectangle(int32(x-20), int32(y-20), 560, int32(len(lines)*26+40), rl.NewColor(0, 0, 0, 200))
	for i, l := range lines {
		a.drawText(l, x, y+i*26, 16, ColAccent)
	}
}

func keyLine(code, what string) string {
	label := code
	if r, ok := input.CodeRune(code); ok {
		label = string(unicode.ToUpper(r))
	}
	return fmt.Sprintf("%-16s%s", label, what)
}
