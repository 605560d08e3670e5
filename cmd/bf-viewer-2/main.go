package main

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"go.creack.net/brainfuck/cli"
	"go.creack.net/brainfuck/logs"
	"go.creack.net/brainfuck/vm"
)

var fontFace = text.NewGoXFace(bitmapfont.Face)

const initialScreenWidth, initialScreenHeight = 1024, 768

const (
	margin    = 8
	tapeWidth = 32 // Cells per row.
	maxSpeed  = 1 << 16
)

var (
	colorCell   = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	colorZero   = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorCursor = color.RGBA{R: 0x20, G: 0x80, B: 0x20, A: 0xff}
	colorError  = color.RGBA{R: 0xff, A: 0xff}
	colorOutput = color.RGBA{R: 0x90, G: 0xee, B: 0x90, A: 0xff}
)

// Game implements ebiten.Game interface.
type Game struct {
	bf  *vm.Brainfuck
	out *bytes.Buffer

	paused bool
	speed  int // Steps per tick.

	cellWidth  int
	lineHeight float64
}

func NewGame(bf *vm.Brainfuck, out *bytes.Buffer) *Game {
	m := fontFace.Metrics()
	return &Game{
		bf:     bf,
		out:    out,
		paused: true,
		speed:  1,

		cellWidth:  font.MeasureString(bitmapfont.Face, "000 ").Ceil(),
		lineHeight: m.HLineGap + m.HAscent + m.HDescent,
	}
}

// Update proceeds the game state.
// Update is called every tick (1/60 [s] by default).
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		g.speed = min(g.speed*2, maxSpeed)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		g.speed = max(g.speed/2, 1)
	}

	steps := g.speed
	if g.paused {
		if !inpututil.IsKeyJustPressed(ebiten.KeyN) {
			return nil
		}
		steps = 1
	}
	for range steps {
		if err := g.bf.Step(); err != nil {
			// Halted or failed, either way there is nothing left to run.
			// The error stays available through bf.Err() for Draw.
			g.paused = true
			break
		}
	}
	return nil
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y float64, clr color.Color) {
	textOp := &text.DrawOptions{}
	textOp.LineSpacing = g.lineHeight
	textOp.GeoM.Translate(x, y)
	textOp.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, fontFace, textOp)
}

// Draw draws the game screen.
// Draw is called every frame (typically 1/60[s] for 60Hz display).
func (g *Game) Draw(screen *ebiten.Image) {
	status := "running"
	switch {
	case g.bf.Err() != nil:
		status = "failed: " + g.bf.Err().Error()
	case g.bf.Halted():
		status = "halted"
	case g.paused:
		status = "paused"
	}
	header := fmt.Sprintf("pc %d/%d  steps %d  cursor %d  cell %d  tape %d  speed x%d  [%s]",
		g.bf.PC, len(g.bf.Code), g.bf.Steps, g.bf.Tape.Cursor(), g.bf.Tape.Get(), g.bf.Tape.Len(), g.speed, status)
	headerColor := color.Color(color.White)
	if g.bf.Err() != nil {
		headerColor = colorError
	}
	g.drawText(screen, header, margin, margin, headerColor)
	g.drawText(screen, "space: pause, n: step, up/down: speed, q: quit", margin, margin+g.lineHeight, colorZero)

	// Tape.
	top := margin + 3*g.lineHeight
	cursor := g.bf.Tape.Cursor()
	maxRows := int((float64(screen.Bounds().Dy())*2/3 - top) / g.lineHeight)
	cells := g.bf.Tape.Visited()
	// Keep the cursor in view.
	first := 0
	if maxRows > 0 && cursor/tapeWidth >= maxRows {
		first = (cursor/tapeWidth - maxRows + 1) * tapeWidth
	}
	for i := first; i < len(cells); i++ {
		row, col := (i-first)/tapeWidth, i%tapeWidth
		if row >= maxRows {
			break
		}
		x := float64(margin + col*g.cellWidth)
		y := top + float64(row)*g.lineHeight
		clr := color.Color(colorCell)
		if cells[i] == 0 {
			clr = colorZero
		}
		if i == cursor {
			vector.DrawFilledRect(screen, float32(x-2), float32(y), float32(g.cellWidth-2), float32(g.lineHeight), colorCursor, false)
			clr = color.White
		}
		g.drawText(screen, fmt.Sprintf("%3d", cells[i]), x, y, clr)
	}

	// Output, last lines only.
	outTop := float64(screen.Bounds().Dy())*2/3 + margin
	vector.StrokeLine(screen, margin, float32(outTop-margin/2), float32(screen.Bounds().Dx()-margin), float32(outTop-margin/2), 1, colorZero, false)
	lines := strings.Split(g.out.String(), "\n")
	if n := int((float64(screen.Bounds().Dy()) - outTop) / g.lineHeight); n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	g.drawText(screen, strings.Join(lines, "\n"), margin, outTop, colorOutput)
}

// Layout takes the outside size (e.g., the window size) and returns the (logical) screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return outsideWidth, outsideHeight
}

func main() {
	tmp := strings.Split(os.Args[0], "/")
	binName := tmp[len(tmp)-1]

	flags, cfg, prog, err := cli.ParseConfig(os.Args[1:])
	if errors.Is(err, cli.ErrNoInput) {
		fmt.Fprint(os.Stderr, cli.Usage(binName))
		return
	}
	if err != nil {
		log.Fatalf("Failed to parse cli config: %s.", err)
	}

	logger, closeLog, err := logs.New(logs.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("Failed to setup logs: %s.", err)
	}
	defer func() { _ = closeLog() }() // Best effort.

	out := &bytes.Buffer{}
	vmCfg := cfg.VM()
	vmCfg.Input = strings.NewReader(flags.Input)
	vmCfg.Output = out
	vmCfg.Logger = logger

	game := NewGame(vm.New(vmCfg, prog.Code), out)
	ebiten.SetWindowSize(initialScreenWidth, initialScreenHeight)
	ebiten.SetWindowTitle("Brainfuck - " + prog.ShortName)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		InitUnfocused: true,
	}); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	if err := game.bf.Err(); err != nil {
		logger.Error("program failed", "error", err)
	}
}
