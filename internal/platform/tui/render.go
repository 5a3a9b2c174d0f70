package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/curzel-it/nokemon-sub001/internal/core"
	"github.com/curzel-it/nokemon-sub001/internal/engine"
	"github.com/curzel-it/nokemon-sub001/internal/species"
	"github.com/curzel-it/nokemon-sub001/internal/world"
)

// Panel layout below the map.
const (
	panelLines  = 4
	panelHeight = panelLines + 2 // Border
	helpHeight  = 1
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrown:         lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorDarkGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("22")),
	core.ColorSilver:        lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
}

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	importantStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	deathStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawWorld draws the visible part of the current world into s: the
// tile layers first, then the visible entities in drawing order.
func DrawWorld(s *core.Screen, e *engine.Engine) {
	s.Clear()
	w := e.World()
	vp := w.Viewport()

	for y := 0; y < min(vp.H, s.Height()); y++ {
		for x := 0; x < min(vp.W, s.Width()); x++ {
			row, col := vp.Y+y, vp.X+x
			tile, ok := w.Biome().At(row, col)
			if !ok {
				continue
			}
			r, c := tile.Type.Glyph()
			if built, ok := w.Constructions().At(row, col); ok && built.IsSomething() {
				if br, bc := built.Type.Glyph(); br != 0 {
					r, c = br, bc
				}
			}
			s.SetColored(x, y, r, c)
		}
	}

	repo := e.Species()
	for _, ent := range w.VisibleEntities() {
		r, c := entityGlyph(repo, &ent)
		for row := ent.Frame.Y; row < ent.Frame.Bottom(); row++ {
			for col := ent.Frame.X; col < ent.Frame.Right(); col++ {
				x, y := col-vp.X, row-vp.Y
				if x < 0 || y < 0 || x >= vp.W || y >= vp.H {
					continue
				}
				s.SetColored(x, y, r, c)
			}
		}
	}
}

// entityGlyph picks how an entity is drawn, reflecting gate and plate state.
func entityGlyph(repo *species.Repository, e *world.Entity) (rune, core.Color) {
	r, c := '?', core.ColorBrightMagenta
	if sp, err := repo.ByID(e.SpeciesID); err == nil {
		if glyph := []rune(sp.Glyph); len(glyph) > 0 {
			r = glyph[0]
		}
		if color, ok := core.ParseColor(sp.Color); ok {
			c = color
		}
	}

	switch e.Kind {
	case species.KindGate, species.KindInverseGate:
		if !e.IsRigid {
			return ':', core.ColorGray
		}
	case species.KindPressurePlate:
		if e.IsDown {
			return r, core.ColorBrightWhite
		}
	}
	return r, c
}

// RenderPanel renders the box below the map: the death screen, the open
// dialogue, menu or inventory, or else the status line and toasts.
func RenderPanel(e *engine.Engine, width int) string {
	state := e.Snapshot()
	lang := e.Lang()

	var lines []string
	switch {
	case state.HeroDied:
		lines = []string{deathStyle.Render(lang.Get("ui.death_screen"))}

	case state.Dialogue != nil:
		lines = append(lines, titleStyle.Render(state.Dialogue.NpcName))
		lines = append(lines, lang.Get(state.Dialogue.Dialogue.Text))
		lines = append(lines, dimStyle.Render("enter"))

	case state.Menu != nil:
		lines = append(lines, titleStyle.Render(lang.Get("ui.options")+": "+lang.Get("species."+state.Menu.Name)))
		for i, opt := range state.Menu.Options {
			label := "  " + lang.Get(opt.String())
			if i == state.Menu.Selected {
				label = selectedStyle.Render("> " + lang.Get(opt.String()))
			}
			lines = append(lines, label)
		}

	case state.InventoryOpen:
		lines = append(lines, titleStyle.Render(lang.Get("ui.inventory")))
		lines = append(lines, inventorySummary(e, state.Inventory)...)

	default:
		lines = append(lines, statusLine(e, state))
		for _, t := range state.Toasts {
			if t.Important {
				lines = append(lines, importantStyle.Render(t.Text))
			} else {
				lines = append(lines, t.Text)
			}
		}
	}

	if len(lines) > panelLines {
		lines = lines[len(lines)-panelLines:]
	}
	for len(lines) < panelLines {
		lines = append(lines, "")
	}
	return panelStyle.Width(max(width-2, 10)).Render(strings.Join(lines, "\n"))
}

func statusLine(e *engine.Engine, state engine.State) string {
	hp := 0.0
	if hero, ok := e.World().Hero(); ok {
		hp = hero.Hp
	}
	status := fmt.Sprintf("world %d  hp %.0f  items %d", state.WorldID, hp, len(state.Inventory))
	if state.CreativeMode {
		status += "  [creative]"
	}
	return dimStyle.Render(status)
}

// inventorySummary lists carried species with their counts, by species id.
func inventorySummary(e *engine.Engine, items []uint32) []string {
	counts := make(map[uint32]int)
	for _, id := range items {
		counts[id]++
	}
	ids := make([]uint32, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		name := fmt.Sprint(id)
		if sp, err := e.Species().ByID(species.ID(id)); err == nil {
			name = e.Lang().Get(sp.LocalizedNameKey())
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[id]))
	}
	if len(parts) == 0 {
		return []string{dimStyle.Render("-")}
	}
	return []string{strings.Join(parts, ", ")}
}
