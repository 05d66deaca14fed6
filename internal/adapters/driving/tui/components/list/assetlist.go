// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/ripple-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/ripple-cli/internal/core/domain"
)

// AssetList displays stored assets in a navigable list. Only the first
// limit assets are kept; the total is remembered for the footer.
type AssetList struct {
	assets   []domain.Asset
	total    int
	limit    int
	preview  int
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewAssetList creates a new list showing at most limit assets with
// previews of preview runes. Zero values disable the limits.
func NewAssetList(s *styles.Styles, limit, preview int) *AssetList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &AssetList{
		limit:   limit,
		preview: preview,
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the list.
func (l *AssetList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *AssetList) Update(msg tea.Msg) (*AssetList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		}
	}
	return l, nil
}

// View renders the list.
func (l *AssetList) View() string {
	if len(l.assets) == 0 {
		return l.styles.Muted.Render("No results")
	}

	lines := make([]string, 0, len(l.assets)*2+4)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Results (%d)", l.total)), "")

	// Each asset takes two lines.
	visibleCount := (l.height - 4) / 2
	if visibleCount < 1 {
		visibleCount = 1
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount
	if end > len(l.assets) {
		end = len(l.assets)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderAsset(i, &l.assets[i]))
	}

	if l.Truncated() {
		lines = append(lines, "", l.styles.Muted.Render(
			fmt.Sprintf("Showing first %d of %d.", len(l.assets), l.total)))
	}

	return strings.Join(lines, "\n")
}

func (l *AssetList) renderAsset(index int, asset *domain.Asset) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	header := fmt.Sprintf("%s#%d  %s", indicator, asset.ID, asset.CreatedAt.Format("2006-01-02 15:04:05"))
	if index == l.selected {
		header = l.styles.Selected.Render(header)
	} else {
		header = l.styles.Normal.Render(header)
	}

	preview := asset.Preview(l.preview)
	preview = strings.Join(strings.Fields(preview), " ")
	maxPreviewLen := l.width - 6
	if maxPreviewLen < 20 {
		maxPreviewLen = 20
	}
	if r := []rune(preview); len(r) > maxPreviewLen {
		preview = string(r[:maxPreviewLen-1]) + "…"
	}

	return header + "\n" + l.styles.Muted.Render("    "+preview)
}

// SetAssets replaces the list contents and resets the selection.
func (l *AssetList) SetAssets(assets []domain.Asset) {
	l.total = len(assets)
	if l.limit > 0 && len(assets) > l.limit {
		assets = assets[:l.limit]
	}
	l.assets = assets
	l.selected = 0
}

// Assets returns the displayed assets.
func (l *AssetList) Assets() []domain.Asset {
	return l.assets
}

// Total returns the number of assets before truncation.
func (l *AssetList) Total() int {
	return l.total
}

// Truncated reports whether some assets were dropped by the limit.
func (l *AssetList) Truncated() bool {
	return l.total > len(l.assets)
}

// Selected returns the index of the selected asset.
func (l *AssetList) Selected() int {
	return l.selected
}

// SelectedAsset returns the currently selected asset, or nil if none.
func (l *AssetList) SelectedAsset() *domain.Asset {
	if len(l.assets) == 0 || l.selected < 0 || l.selected >= len(l.assets) {
		return nil
	}
	return &l.assets[l.selected]
}

// MoveUp moves selection up.
func (l *AssetList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *AssetList) MoveDown() {
	if l.selected < len(l.assets)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *AssetList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of displayed assets.
func (l *AssetList) Count() int {
	return len(l.assets)
}

// IsEmpty returns whether the list is empty.
func (l *AssetList) IsEmpty() bool {
	return len(l.assets) == 0
}
