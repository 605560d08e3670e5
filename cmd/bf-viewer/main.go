package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"go.creack.net/brainfuck/cli"
	"go.creack.net/brainfuck/disasm"
	"go.creack.net/brainfuck/logs"
	"go.creack.net/brainfuck/op"
	"go.creack.net/brainfuck/vm"
)

// Cells per row in the tape view.
const tapeWidth = 16

var msgColors = map[vm.MessageType]tcell.Color{
	vm.MsgDebug:  tcell.ColorGray,
	vm.MsgError:  tcell.ColorRed,
	vm.MsgOutput: tcell.ColorLightGreen,
	vm.MsgInput:  tcell.ColorLightBlue,
	vm.MsgGrow:   tcell.ColorYellow,
	vm.MsgDump:   tcell.ColorPurple,
	vm.MsgHalt:   tcell.ColorOrange,
}

func NewGame(ctx context.Context) *Game {
	app := tview.NewApplication().EnableMouse(true)

	newTextView := func(text string) *tview.TextView {
		return tview.NewTextView().
			SetDynamicColors(true).
			SetText(text)
	}

	tapeView := tview.NewTable().SetBorders(false)

	programView := newTextView("")
	programView.SetWrap(true).SetWordWrap(false)
	programView.SetTitle("Program").SetBorder(true)

	logsView := newTextView("")
	logsView.SetTitle("Logs").SetBorder(true)
	logsView.ScrollToEnd()
	logsView.SetChangedFunc(func() { app.Draw() })

	outputView := newTextView("")
	outputView.SetDynamicColors(false)
	outputView.SetTitle("Output").SetBorder(true)
	outputView.ScrollToEnd()
	outputView.SetChangedFunc(func() { app.Draw() })

	stateView := newTextView("State")
	stateView.SetTitle("State").SetBorder(true)

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow)
	rightPane.
		AddItem(stateView, 0, 2, false).
		AddItem(outputView, 0, 2, false).
		AddItem(logsView, 0, 3, false)

	tapePane := tview.NewFlex()
	tapePane.SetBorder(true)
	tapePane.SetTitle("Tape")
	tapePane.AddItem(tapeView, 0, 1, false)

	leftPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(tapePane, 0, 3, true).
		AddItem(programView, 0, 2, false)

	flex := tview.NewFlex().
		AddItem(leftPane, 0, 3, true).
		AddItem(rightPane, 0, 1, false)

	pages := tview.NewPages()
	pages.AddPage("main", flex, true, true)

	ctx, cancel := context.WithCancel(ctx)

	return &Game{
		app: app,

		root: pages,

		mainPage:    flex,
		tapeView:    tapeView,
		programView: programView,
		stateView:   stateView,
		outputView:  outputView,
		logsView:    logsView,

		ctx:    ctx,
		cancel: cancel,

		paused: true,
	}
}

type Game struct {
	app *tview.Application

	root *tview.Pages

	mainPage *tview.Flex

	tapeView    *tview.Table
	programView *tview.TextView
	stateView   *tview.TextView
	outputView  *tview.TextView
	logsView    *tview.TextView

	bf   *vm.Brainfuck
	bfMu sync.Mutex // Guards bf between the stepper and the drawing.

	paused   bool
	pausedMu sync.Mutex

	nextStep   bool
	nextStepMu sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

func (g *Game) Stop() {
	g.app.Stop()
	g.cancel()
}

func (g *Game) setPaused(paused bool) {
	g.pausedMu.Lock()
	g.paused = paused
	g.pausedMu.Unlock()
}

func (g *Game) Init() {
	f := func(event *tcell.EventKey) *tcell.EventKey {
		curPage, _ := g.root.GetFrontPage()
		switch event.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		case tcell.KeyEnter:
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			return event
		}
		switch event.Rune() {
		case 'n':
			g.nextStepMu.Lock()
			g.nextStep = true
			g.nextStepMu.Unlock()
			return nil
		case ' ':
			if curPage == "main" {
				g.pausedMu.Lock()
				g.paused = !g.paused
				g.pausedMu.Unlock()
			} else {
				g.root.SwitchToPage("main")
			}
			return nil
		case 's':
			if curPage == "main" {
				g.root.SwitchToPage("source")
			} else {
				g.root.SwitchToPage("main")
			}
			return nil
		case 'q':
			if curPage != "main" {
				g.root.SwitchToPage("main")
				return nil
			}
			g.Stop()
			return nil
		}
		return event
	}
	g.root.SetInputCapture(f)
	// TextViews are safe to write to from other goroutines, their changed
	// func triggers the redraw.
	go func() {
	loop:
		select {
		case msg := <-g.bf.Messages:
			if msg.Type == vm.MsgOutput {
				fmt.Fprint(g.outputView, msg.Message)
				goto loop
			}
			if msg.Type == vm.MsgError || msg.Type == vm.MsgHalt {
				g.setPaused(true)
			}
			// NOTE: Seems like there is a bug with tview, we can't reset the color to default
			// with [:] or [:::], so we use tcell default.
			colorCode := "[" + tcell.ColorDefault.String() + ":::]"
			if c, ok := msgColors[msg.Type]; ok {
				colorCode = "[" + c.String() + ":::]"
			}
			prefix := tview.Escape(fmt.Sprintf("[%s pc:%d]", msg.Type, msg.PC))
			fmt.Fprintf(g.logsView, "%s%s %s[:::]\n", colorCode, prefix, tview.Escape(strings.TrimSuffix(msg.Message, "\n")))
		case <-g.ctx.Done():
			return
		}
		goto loop
	}()
}

func (g *Game) Update() error {
	isPaused := func() bool {
		g.pausedMu.Lock()
		defer g.pausedMu.Unlock()
		return g.paused
	}
	forceNextStep := func() bool {
		g.nextStepMu.Lock()
		defer g.nextStepMu.Unlock()
		if g.nextStep {
			g.nextStep = false
			return true
		}
		return false
	}
	if !forceNextStep() && isPaused() {
		return nil
	}

	g.bfMu.Lock()
	defer g.bfMu.Unlock()
	return g.bf.Step()
}

func (g *Game) drawTape() {
	g.tapeView.SetSelectable(true, true)
	g.tapeView.Clear()
	cells := g.bf.Tape.Visited()
	cursor := g.bf.Tape.Cursor()
	for i, v := range cells {
		cell := tview.NewTableCell(fmt.Sprintf("%3d", v))
		if v == 0 {
			cell.SetTextColor(tcell.ColorDimGray)
			cell.SetAttributes(tcell.AttrDim)
		}
		if i == cursor {
			cell.SetAttributes(tcell.AttrReverse | tcell.AttrBold).SetTextColor(tcell.ColorLightGreen)
		}
		idx, val := i, v
		cell.SetClickedFunc(func() bool {
			g.setPaused(true)
			go func() {
				g.bf.Messages <- vm.NewMessage(vm.MsgDebug, -1, idx, fmt.Sprintf("cell %d = %d (%q)", idx, val, rune(val)))
			}()
			return true
		})
		g.tapeView.SetCell(i/tapeWidth, i%tapeWidth, cell)
	}
}

func (g *Game) drawProgram() {
	g.programView.Clear()
	code, pc := g.bf.Code, g.bf.PC
	w := &strings.Builder{}
	if pc < len(code) {
		w.WriteString(tview.Escape(code[:pc]))
		fmt.Fprintf(w, "[black:green:b]%s[-:-:-]", tview.Escape(code[pc:pc+1]))
		w.WriteString(tview.Escape(code[pc+1:]))
	} else {
		w.WriteString(tview.Escape(code))
	}
	g.programView.SetText(w.String())
}

func (g *Game) drawState() {
	sv := g.stateView
	sv.Clear()

	status := "running"
	switch {
	case g.bf.Err() != nil:
		status = "[red]failed[-]"
	case g.bf.Halted():
		status = "halted"
	}
	fmt.Fprintf(sv, "Status: %s\n", status)
	fmt.Fprintf(sv, "Steps: %d\n", g.bf.Steps)
	fmt.Fprintf(sv, "PC: %d / %d\n", g.bf.PC, len(g.bf.Code))
	if !g.bf.Halted() {
		if ins, ok := op.LookupInstruction(g.bf.Code[g.bf.PC]); ok {
			fmt.Fprintf(sv, "Next: %s (%s)\n", tview.Escape(string(ins.Char)), ins.Name)
		}
	}
	fmt.Fprintf(sv, "Cursor: %d\n", g.bf.Tape.Cursor())
	fmt.Fprintf(sv, "Cell: %d\n", g.bf.Tape.Get())
	fmt.Fprintf(sv, "High water: %d\n", g.bf.Tape.HighWater())
	fmt.Fprintf(sv, "Tape size: %d\n", g.bf.Tape.Len())
	fmt.Fprintf(sv, "Chunk size: %d\n", g.bf.Config.ChunkSize)
	fmt.Fprintf(sv, "EOF: %s\n", g.bf.Config.EOF)
}

func (g *Game) Draw() {
	g.bfMu.Lock()
	defer g.bfMu.Unlock()
	g.drawTape()
	g.drawProgram()
	g.drawState()
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
		log.Fatalf("Failed to parse CLI config: %s.", err)
	}

	g := NewGame(context.Background())

	logger, closeLog, err := logs.New(logs.Options{Level: cfg.Log.Level, Writer: g.logsView, File: cfg.Log.File})
	if err != nil {
		log.Fatalf("Failed to setup logs: %s.", err)
	}
	defer func() { _ = closeLog() }() // Best effort.

	vmCfg := cfg.VM()
	vmCfg.Input = strings.NewReader(flags.Input)
	vmCfg.Logger = logger
	g.bf = vm.New(vmCfg, prog.Code)
	g.bf.Messages = make(chan vm.Message, 1024)

	// Source page: what was loaded and its MindBlown counterpart.
	src := tview.NewTextView().SetText(prog.Source)
	src.SetTitle(prog.PathName).SetBorder(true)
	counterpart := tview.NewTextView()
	counterpart.SetBorder(true)
	if prog.IsMindBlown() {
		counterpart.SetTitle("Pretty printed").SetBorder(true)
		counterpart.SetText(prog.MindBlown.PrettyPrint())
	} else if mb, err := disasm.Disasm(prog.PathName, prog.Code); err != nil {
		counterpart.SetTitle("Disassembly").SetText(err.Error())
	} else {
		counterpart.SetTitle("Disassembly").SetText(mb)
	}
	g.root.AddPage("source", tview.NewFlex().
		AddItem(src, 0, 1, false).
		AddItem(counterpart, 0, 1, false), true, false)

	g.Init()
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		defer func() {
			if e := recover(); e != nil {
				g.app.Stop()
				log.Printf("Recovered from panic: %v", e)
				debug.PrintStack()
			}
		}()
	loop:
		end := false
		if err := g.Update(); err != nil {
			if !errors.Is(err, io.EOF) {
				logger.Error("step failed", "error", err)
			}
			end = true
		}

		g.app.QueueUpdateDraw(func() {
			g.Draw()
		})

		if end {
			return
		}
		select {
		case <-ticker.C:
		case <-g.ctx.Done():
			g.Stop()
			return
		}
		goto loop
	}()

	if err := g.app.SetRoot(g.root, true).SetFocus(g.root).Run(); err != nil {
		panic(err)
	}
	log.Printf("Done")
}
