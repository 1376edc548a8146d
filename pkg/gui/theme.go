package gui

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/blockterm/pkg/mino"
)

// Theme is used for dynamically coloring the UI
type Theme struct {
	Name       string      `json:"name"`
	Background tcell.Color `json:"background"`
	Border     tcell.Color `json:"border"`
	Text       tcell.Color `json:"text"`
	Label      tcell.Color `json:"label"`
	Flash      tcell.Color `json:"flash"`
	Empty      tcell.Color `json:"empty"`
	PieceI     tcell.Color `json:"pieceI"`
	PieceO     tcell.Color `json:"pieceO"`
	PieceT     tcell.Color `json:"pieceT"`
	PieceS     tcell.Color `json:"pieceS"`
	PieceZ     tcell.Color `json:"pieceZ"`
	PieceJ     tcell.Color `json:"pieceJ"`
	PieceL     tcell.Color `json:"pieceL"`
}

// ThemeHex is a Theme in a form the browser client understands
type ThemeHex struct {
	Name       string `json:"name"`
	Background string `json:"background"`
	Border     string `json:"border"`
	Text       string `json:"text"`
	Label      string `json:"label"`
	Flash      string `json:"flash"`
	Empty      string `json:"empty"`
	PieceI     string `json:"pieceI"`
	PieceO     string `json:"pieceO"`
	PieceT     string `json:"pieceT"`
	PieceS     string `json:"pieceS"`
	PieceZ     string `json:"pieceZ"`
	PieceJ     string `json:"pieceJ"`
	PieceL     string `json:"pieceL"`
}

// fmtHex returns a one character hex for the ColorDefault
// and otherwise it returns a standard hex. This keeps ColorDefault
// from being read back as black
func fmtHex(v int32) string {
	if v == -1 {
		return "#0"
	}
	return fmt.Sprintf("#%06x", v)
}

// Hex converts a Theme to a ThemeHex
func (t Theme) Hex() ThemeHex {
	return ThemeHex{
		t.Name,
		fmtHex(t.Background.Hex()),
		fmtHex(t.Border.Hex()),
		fmtHex(t.Text.Hex()),
		fmtHex(t.Label.Hex()),
		fmtHex(t.Flash.Hex()),
		fmtHex(t.Empty.Hex()),
		fmtHex(t.PieceI.Hex()),
		fmtHex(t.PieceO.Hex()),
		fmtHex(t.PieceT.Hex()),
		fmtHex(t.PieceS.Hex()),
		fmtHex(t.PieceZ.Hex()),
		fmtHex(t.PieceJ.Hex()),
		fmtHex(t.PieceL.Hex()),
	}
}

// Theme converts a ThemeHex to a Theme
func (t ThemeHex) Theme() Theme {
	return Theme{
		t.Name,
		tcell.GetColor(t.Background),
		tcell.GetColor(t.Border),
		tcell.GetColor(t.Text),
		tcell.GetColor(t.Label),
		tcell.GetColor(t.Flash),
		tcell.GetColor(t.Empty),
		tcell.GetColor(t.PieceI),
		tcell.GetColor(t.PieceO),
		tcell.GetColor(t.PieceT),
		tcell.GetColor(t.PieceS),
		tcell.GetColor(t.PieceZ),
		tcell.GetColor(t.PieceJ),
		tcell.GetColor(t.PieceL),
	}
}

// PieceColor returns the color blocks of type p are drawn with
func (t Theme) PieceColor(p mino.PieceType) tcell.Color {
	switch p {
	case mino.PieceI:
		return t.PieceI
	case mino.PieceO:
		return t.PieceO
	case mino.PieceT:
		return t.PieceT
	case mino.PieceS:
		return t.PieceS
	case mino.PieceZ:
		return t.PieceZ
	case mino.PieceJ:
		return t.PieceJ
	case mino.PieceL:
		return t.PieceL
	default:
		return t.Text
	}
}

// BlockColor returns the color of a board cell
func (t Theme) BlockColor(b mino.Block) tcell.Color {
	p, ok := b.PieceType()
	if !ok {
		return t.Empty
	}
	return t.PieceColor(p)
}

// ImportThemes returns a converted Theme from a slice of ThemeHex
// entities if its name matches the want argument
func ImportThemes(want string, themes []ThemeHex) (Theme, error) {
	for _, t := range themes {
		if t.Name == want {
			return t.Theme(), nil
		}
	}

	return Theme{}, errors.New("theme: no theme found")
}

// LookupTheme returns one of the built in themes
func LookupTheme(name string) (Theme, error) {
	themes := make([]ThemeHex, len(Themes))
	for i, t := range Themes {
		themes[i] = t.Hex()
	}

	t, err := ImportThemes(name, themes)
	if err != nil {
		return Theme{}, fmt.Errorf("%w: %q", err, name)
	}
	return t, nil
}

func pieceColor(p mino.PieceType) tcell.Color {
	return tcell.NewHexColor(p.Color())
}

// ThemeClassic is the default theme
var ThemeClassic = Theme{
	"classic",                   // Name
	tcell.ColorDefault,          // Background
	tcell.NewHexColor(0x9e9e9e), // Border
	tcell.ColorDefault,          // Text
	tcell.NewHexColor(0xd0d0d0), // Label
	tcell.NewHexColor(0xffffff), // Flash
	tcell.NewHexColor(0x303030), // Empty
	pieceColor(mino.PieceI),     // PieceI
	pieceColor(mino.PieceO),     // PieceO
	pieceColor(mino.PieceT),     // PieceT
	pieceColor(mino.PieceS),     // PieceS
	pieceColor(mino.PieceZ),     // PieceZ
	pieceColor(mino.PieceJ),     // PieceJ
	pieceColor(mino.PieceL),     // PieceL
}

// ThemeMono draws every piece in one color
var ThemeMono = Theme{
	"mono",                      // Name
	tcell.ColorDefault,          // Background
	tcell.NewHexColor(0x585858), // Border
	tcell.ColorDefault,          // Text
	tcell.NewHexColor(0xbcbcbc), // Label
	tcell.NewHexColor(0xffffff), // Flash
	tcell.NewHexColor(0x1c1c1c), // Empty
	tcell.NewHexColor(0xd0d0d0), // PieceI
	tcell.NewHexColor(0xd0d0d0), // PieceO
	tcell.NewHexColor(0xd0d0d0), // PieceT
	tcell.NewHexColor(0xd0d0d0), // PieceS
	tcell.NewHexColor(0xd0d0d0), // PieceZ
	tcell.NewHexColor(0xd0d0d0), // PieceJ
	tcell.NewHexColor(0xd0d0d0), // PieceL
}

var Themes = []Theme{ThemeClassic, ThemeMono}
