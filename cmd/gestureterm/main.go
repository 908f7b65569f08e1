// Command gestureterm is a terminal playground for the gesture dispatcher:
// drag with the mouse to pan a marker, scroll to zoom it, and watch clicks,
// wheel events and coasting in the log.
package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/phanxgames/gesture"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML config file")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("gesture: ")

	cfg := gesture.DefaultConfig()
	// Terminal cells are coarse; one cell of slack is plenty.
	cfg.DragDeadZone = 1
	cfg.InertiaDecay = 0.85
	if *configPath != "" {
		var err error
		if cfg, err = gesture.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	p := tea.NewProgram(newModel(cfg),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatalf("playground failed: %v", err)
	}
}
