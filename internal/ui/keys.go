package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

func helpText() string {
	return "v/tab style  s pick  : type  +/- sens  [/] bass start  {/} bass len  </> bass sens  o overlay  x particles  ctrl+s save  ctrl+e log  q quit"
}

const shortHelpText = "s styles  ctrl+e log  q quit"
