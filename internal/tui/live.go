// Package tui provides a live terminal view of a running simulation.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orrery/internal/nbody"
	"github.com/san-kum/orrery/internal/viz"
)

const historyCapacity = 600

type TickMsg time.Time

type Model struct {
	initial       nbody.System
	sys           nbody.System
	dt            float64
	totalSteps    int
	stepsPerFrame int
	frameRate     int

	step          int
	running       bool
	done          bool
	initialEnergy float64
	energyHistory []float64
}

func NewModel(sys nbody.System, dt float64, steps, stepsPerFrame, frameRate int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	if frameRate < 1 {
		frameRate = 30
	}
	return Model{
		initial:       sys,
		sys:           sys,
		dt:            dt,
		totalSteps:    steps,
		stepsPerFrame: stepsPerFrame,
		frameRate:     frameRate,
		running:       true,
		initialEnergy: sys.Energy(),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if !m.done {
				m.running = !m.running
			}
		case "r":
			m.sys = m.initial
			m.step = 0
			m.running = true
			m.done = false
			m.energyHistory = m.energyHistory[:0]
		}
		return m, nil

	case TickMsg:
		if m.running && !m.done {
			for i := 0; i < m.stepsPerFrame && m.step < m.totalSteps; i++ {
				m.sys = m.sys.Advance(m.dt)
				m.step++
			}
			m.energyHistory = append(m.energyHistory, m.sys.Energy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
			if m.step >= m.totalSteps {
				m.running = false
				m.done = true
			}
		}
		return m, m.tick()
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(viz.HeaderStyle.Render("orrery — outer planets"))
	b.WriteString("\n")

	energy := m.sys.Energy()
	drift := 0.0
	if m.initialEnergy != 0 {
		drift = (energy - m.initialEnergy) / m.initialEnergy
		if drift < 0 {
			drift = -drift
		}
	}

	status := "running"
	if m.done {
		status = "done"
	} else if !m.running {
		status = "paused"
	}

	line := func(label, value string) {
		b.WriteString(viz.LabelStyle.Render(label))
		b.WriteString(viz.ValueStyle.Render(value))
		b.WriteString("\n")
	}

	line("status", status)
	line("step", fmt.Sprintf("%d / %d", m.step, m.totalSteps))
	line("t", fmt.Sprintf("%.2f yr", float64(m.step)*m.dt))
	line("energy", fmt.Sprintf("%.9f", energy))
	line("drift", fmt.Sprintf("%.3e", drift))
	line("momentum", fmt.Sprintf("%.3e", m.sys.Momentum().Magnitude()))

	b.WriteString("\n")
	for _, body := range m.sys.Bodies {
		b.WriteString(viz.LabelStyle.Render(body.Name))
		b.WriteString(viz.ValueStyle.Render(fmt.Sprintf(
			"pos (%8.3f, %8.3f, %8.3f)  vel (%7.3f, %7.3f, %7.3f)",
			body.Pos.X, body.Pos.Y, body.Pos.Z,
			body.Vel.X, body.Vel.Y, body.Vel.Z,
		)))
		b.WriteString("\n")
	}

	if len(m.energyHistory) >= 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(8),
			asciigraph.Width(70),
			asciigraph.Caption("total energy"),
		)
		b.WriteString(viz.GraphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(viz.HelpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

// Run starts the live view and blocks until the user quits.
func Run(sys nbody.System, dt float64, steps, stepsPerFrame, frameRate int) error {
	p := tea.NewProgram(NewModel(sys, dt, steps, stepsPerFrame, frameRate))
	_, err := p.Run()
	return err
}
