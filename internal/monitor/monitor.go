// Package monitor implements a local interactive single-step/breakpoint
// viewer for cmd/sim -monitor, grounded on the teacher's debugger/tui.go
// (gdamore/tcell + rivo/tview), wired against core.Core instead of a
// single ARM CPU type so both iris and cisc0 share one viewer.
package monitor

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/arm-emulator/core"
)

// Breakpoints tracks instruction-pointer addresses the monitor should
// pause execution at.
type Breakpoints struct {
	addrs map[uint32]bool
}

func NewBreakpoints() *Breakpoints { return &Breakpoints{addrs: make(map[uint32]bool)} }

func (b *Breakpoints) Set(addr uint32)      { b.addrs[addr] = true }
func (b *Breakpoints) Clear(addr uint32)    { delete(b.addrs, addr) }
func (b *Breakpoints) Has(addr uint32) bool { return b.addrs[addr] }

// Monitor is the text user interface around one core.Core instance.
type Monitor struct {
	VM          core.Core
	Breakpoints *Breakpoints

	App    *tview.Application
	Layout *tview.Flex

	RegisterView *tview.TextView
	MemoryView   *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField

	memAddr      uint32
	numberFormat string // "hex", "dec", or "both"
	running      bool
}

// New builds a Monitor over vm. numberFormat controls how register/memory
// values are rendered ("hex", "dec", "both"); unrecognized values fall
// back to "hex".
func New(vm core.Core, numberFormat string) *Monitor {
	if numberFormat != "hex" && numberFormat != "dec" && numberFormat != "both" {
		numberFormat = "hex"
	}
	m := &Monitor{
		VM:           vm,
		Breakpoints:  NewBreakpoints(),
		App:          tview.NewApplication(),
		numberFormat: numberFormat,
	}
	m.initViews()
	m.buildLayout()
	m.setupKeyBindings()
	return m
}

func (m *Monitor) initViews() {
	m.RegisterView = tview.NewTextView().SetDynamicColors(true).SetScrollable(false)
	m.RegisterView.SetBorder(true).SetTitle(fmt.Sprintf(" Registers (%s) ", m.VM.Kind()))

	m.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(false)
	m.MemoryView.SetBorder(true).SetTitle(" Memory ")

	m.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	m.OutputView.SetBorder(true).SetTitle(" Output ")

	m.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	m.CommandInput.SetBorder(true).SetTitle(" Command ")
	m.CommandInput.SetDoneFunc(m.handleCommand)
}

func (m *Monitor) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(m.RegisterView, 0, 1, false).
		AddItem(m.MemoryView, 0, 2, false)

	m.Layout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 3, false).
		AddItem(m.OutputView, 8, 0, false).
		AddItem(m.CommandInput, 3, 0, true)
}

func (m *Monitor) setupKeyBindings() {
	m.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF10:
			m.step()
			return nil
		case tcell.KeyF5:
			m.continueRun()
			return nil
		case tcell.KeyCtrlC:
			m.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			m.RefreshAll()
			return nil
		}
		return event
	})
}

func (m *Monitor) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := strings.TrimSpace(m.CommandInput.GetText())
	m.CommandInput.SetText("")
	if cmd == "" {
		return
	}
	m.execute(cmd)
}

// execute runs one monitor command: step, continue, break <addr>,
// clear <addr>, mem <addr>.
func (m *Monitor) execute(cmd string) {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case "step", "s":
		m.step()
	case "continue", "c":
		m.continueRun()
	case "break", "b":
		if len(fields) == 2 {
			if addr, ok := parseAddr(fields[1]); ok {
				m.Breakpoints.Set(addr)
				m.writeOutput(fmt.Sprintf("breakpoint set at 0x%X\n", addr))
			}
		}
	case "clear":
		if len(fields) == 2 {
			if addr, ok := parseAddr(fields[1]); ok {
				m.Breakpoints.Clear(addr)
			}
		}
	case "mem", "m":
		if len(fields) == 2 {
			if addr, ok := parseAddr(fields[1]); ok {
				m.memAddr = addr
			}
		}
	default:
		m.writeOutput(fmt.Sprintf("unknown command %q\n", fields[0]))
	}
	m.RefreshAll()
}

func parseAddr(tok string) (uint32, bool) {
	tok = strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
	var v uint32
	if _, err := fmt.Sscanf(tok, "%x", &v); err != nil {
		return 0, false
	}
	return v, true
}

func (m *Monitor) step() {
	cont, err := m.VM.Cycle()
	if err != nil {
		m.writeOutput(fmt.Sprintf("fault: %v\n", err))
	}
	m.running = cont
}

func (m *Monitor) continueRun() {
	for {
		if m.VM.Halted() {
			m.running = false
			return
		}
		if m.Breakpoints.Has(m.VM.IP()) {
			m.writeOutput(fmt.Sprintf("breakpoint hit at 0x%X\n", m.VM.IP()))
			return
		}
		cont, err := m.VM.Cycle()
		if err != nil {
			m.writeOutput(fmt.Sprintf("fault: %v\n", err))
			return
		}
		if !cont {
			m.running = false
			return
		}
	}
}

func (m *Monitor) writeOutput(text string) {
	_, _ = m.OutputView.Write([]byte(text))
	m.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from current VM state.
func (m *Monitor) RefreshAll() {
	m.updateRegisterView()
	m.updateMemoryView()
	m.App.Draw()
}

func (m *Monitor) formatWord(v uint32) string {
	switch m.numberFormat {
	case "dec":
		return fmt.Sprintf("%d", v)
	case "both":
		return fmt.Sprintf("0x%08X (%d)", v, v)
	default:
		return fmt.Sprintf("0x%08X", v)
	}
}

func (m *Monitor) updateRegisterView() {
	m.RegisterView.Clear()
	regs := m.VM.Registers()

	var lines []string
	for i := 0; i < len(regs); i += 4 {
		var cols []string
		for j := i; j < i+4 && j < len(regs); j++ {
			cols = append(cols, fmt.Sprintf("R%-2d: %s", j, m.formatWord(regs[j])))
		}
		lines = append(lines, strings.Join(cols, "  "))
	}
	lines = append(lines, "", fmt.Sprintf("IP: %s  halted: %v", m.formatWord(m.VM.IP()), m.VM.Halted()))
	m.RegisterView.SetText(strings.Join(lines, "\n"))
}

func (m *Monitor) updateMemoryView() {
	m.MemoryView.Clear()
	dump := m.VM.Dump()
	var lines []string
	const perLine = 16
	base := int(m.memAddr)
	for row := 0; row < 8; row++ {
		offset := base + row*perLine
		if offset+perLine > len(dump) {
			break
		}
		chunk := dump[offset : offset+perLine]
		hex := make([]string, len(chunk))
		for i, b := range chunk {
			hex[i] = fmt.Sprintf("%02X", b)
		}
		lines = append(lines, fmt.Sprintf("%08X: %s", offset, strings.Join(hex, " ")))
	}
	m.MemoryView.SetText(strings.Join(lines, "\n"))
}

// Run starts the TUI event loop; it blocks until the user quits.
func (m *Monitor) Run() error {
	m.RefreshAll()
	return m.App.SetRoot(m.Layout, true).Run()
}
