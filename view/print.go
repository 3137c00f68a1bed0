package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lixenwraith/pokedex/pokeapi"
	"github.com/lixenwraith/pokedex/theme"
)

// printCardWidth is the inner width of a stdout card
const printCardWidth = 30

func badge(pal theme.Palette, typeName string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		Background(theme.Lipgloss(pal.Color(typeName))).
		Padding(0, 1).
		Render(strings.ToUpper(typeName))
}

// RenderCard formats one record as a bordered card for stdout
func RenderCard(p *pokeapi.Pokemon, pal theme.Palette) string {
	primary := p.PrimaryType()
	stops := pal.CardGradient(primary)

	title := lipgloss.NewStyle().Bold(true).Render(DisplayName(p)) + "  " +
		lipgloss.NewStyle().Faint(true).Render(Number(p.ID))

	badges := make([]string, 0, len(p.Types))
	for _, n := range p.TypeNames() {
		badges = append(badges, badge(pal, n))
	}

	lines := []string{
		title,
		"",
		strings.Join(badges, " "),
		"",
		fmt.Sprintf("Height %s m   Weight %s kg", p.HeightText(), p.WeightText()),
		StatLine(p),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Lipgloss(pal.Neon(primary))).
		Background(theme.Lipgloss(stops[0])).
		Padding(0, 1).
		Width(printCardWidth).
		Render(strings.Join(lines, "\n"))
}

// RenderPage formats a listing page as rows of cards with a page header
func RenderPage(page *pokeapi.Page, pageNum, perRow int, pal theme.Palette) string {
	if perRow < 1 {
		perRow = 1
	}
	header := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s · page %d", Title, pageNum+1))
	if page.Count > 0 && page.Limit > 0 {
		pages := (page.Count + page.Limit - 1) / page.Limit
		header += lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf(" of %d (%d total)", pages, page.Count))
	}
	if len(page.Entries) == 0 {
		return header + "\n\nNo more Pokémon\n"
	}

	var rows []string
	for i := 0; i < len(page.Entries); i += perRow {
		end := min(i+perRow, len(page.Entries))
		cards := make([]string, 0, perRow)
		for _, p := range page.Entries[i:end] {
			cards = append(cards, RenderCard(p, pal))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header, ""}, rows...)...) + "\n"
}
