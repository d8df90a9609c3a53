package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathblitz/internal/ui/theme"
)

var bannerLines = []string{
	` __  __    _  _____ _   _   ____  _     ___ _____ _____`,
	`|  \/  |  / \|_   _| | | | | __ )| |   |_ _|_   _|__  /`,
	`| |\/| | / _ \ | | | |_| | |  _ \| |    | |  | |   / / `,
	`| |  | |/ ___ \| | |  _  | | |_) | |___ | |  | |  / /_ `,
	`|_|  |_/_/   \_\_| |_| |_| |____/|_____|___| |_| /____|`,
}

const bannerCompact = "M A T H   B L I T Z"

// bannerWidth is the widest banner line.
const bannerWidth = 56

// RenderBanner returns the first n lines of the MATHBLITZ banner. Narrow
// terminals get the compact one-line form once any line is revealed.
func RenderBanner(width, n int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if n <= 0 {
		return ""
	}
	if width < bannerWidth+4 {
		return style.Render(bannerCompact)
	}
	if n > len(bannerLines) {
		n = len(bannerLines)
	}
	return style.Render(strings.Join(bannerLines[:n], "\n"))
}
