package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubie"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// stickerStyles maps sticker colors to terminal styles.
type stickerStyles map[cubie.Color]lipgloss.Style

// newStickerStyles builds sticker styles from a palette indexed by face.
// Empty palette entries fall back to the sticker letter without color.
func newStickerStyles(palette [cubie.NumFaces]string) stickerStyles {
	styles := make(stickerStyles, cubie.NumFaces)
	for f := cubie.Face(0); f < cubie.NumFaces; f++ {
		st := lipgloss.NewStyle()
		if palette[f] != "" {
			st = st.Background(lipgloss.Color(palette[f])).Foreground(lipgloss.Color("0"))
		}
		styles[cubie.SolvedColor(f)] = st
	}
	return styles
}

func (s stickerStyles) sticker(c cubie.Color) string {
	return s[c].Render(" " + c.String() + " ")
}

// renderNet draws the unfolded net: U on top, L F R B in the middle band
// and D at the bottom.
func renderNet(f cubie.Facelets, styles stickerStyles) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 9)

	faceRow := func(face cubie.Face, row int) string {
		var r strings.Builder
		for _, c := range f.Row(face, row) {
			r.WriteString(styles.sticker(c))
		}
		return r.String()
	}

	for row := 0; row < 3; row++ {
		b.WriteString(pad + faceRow(cubie.FaceU, row) + "\n")
	}
	for row := 0; row < 3; row++ {
		for _, face := range []cubie.Face{cubie.FaceL, cubie.FaceF, cubie.FaceR, cubie.FaceB} {
			b.WriteString(faceRow(face, row))
		}
		b.WriteString("\n")
	}
	for row := 0; row < 3; row++ {
		b.WriteString(pad + faceRow(cubie.FaceD, row) + "\n")
	}

	return b.String()
}
