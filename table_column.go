package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Stored column widths are kept in the web client's pixel unit so a
// saved map round-trips between clients; the terminal renders them
// proportionally, at roughly one cell per pxPerCell pixels.
const pxPerCell = 8

type productsTableColumn struct {
	title  string
	table  table.Model
	width  int
	height int

	rows      []Product
	cols      []table.Column
	layout    *columnLayout
	sort      *sortState
	editingID string
	selected  func(id string) bool

	// activeCol is the keyboard resize/sort target, 0-based into
	// productColumnKeys.
	activeCol int
}

func newProductsTableColumn(title string, layout *columnLayout) *productsTableColumn {
	t := table.New(
		table.WithFocused(true),
		table.WithHeight(12),
	)
	tStyles := table.DefaultStyles()
	tStyles.Header = lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Padding(0, 1)
	tStyles.Cell = lipgloss.NewStyle().Padding(0, 1)
	tStyles.Selected = lipgloss.NewStyle().
		Reverse(true).
		Padding(0, 1)
	t.SetStyles(tStyles)

	c := &productsTableColumn{
		title:  title,
		table:  t,
		layout: layout,
	}
	c.rebuildColumns()
	return c
}

func (c *productsTableColumn) SetSort(sort *sortState) {
	c.sort = sort
	c.rebuildColumns()
}

func (c *productsTableColumn) ActiveColumnKey() string {
	return productColumnKeys[c.activeCol]
}

func (c *productsTableColumn) MoveActiveColumn(delta int) {
	c.activeCol += delta
	if c.activeCol < 0 {
		c.activeCol = 0
	}
	if c.activeCol >= len(productColumnKeys) {
		c.activeCol = len(productColumnKeys) - 1
	}
	c.rebuildColumns()
}

func columnTitle(key string) string {
	switch key {
	case columnName:
		return "Name"
	case columnVendor:
		return "Vendor"
	case columnSKU:
		return "SKU"
	case columnRating:
		return "Rating"
	case columnPrice:
		return "Price"
	}
	return key
}

func (c *productsTableColumn) headerTitle(key string) string {
	title := columnTitle(key)
	if c.sort != nil && c.sort.Key == key {
		if c.sort.Direction == sortAsc {
			title += " ▲"
		} else {
			title += " ▼"
		}
	}
	if key == productColumnKeys[c.activeCol] {
		title = "•" + title
	}
	return title
}

// rebuildColumns distributes the available cells proportionally to the
// stored pixel widths.
func (c *productsTableColumn) rebuildColumns() {
	const markWidth = 3
	available := c.width - markWidth - 12
	if available < len(productColumnKeys)*6 {
		available = len(productColumnKeys) * 6
	}
	totalPx := 0
	for _, key := range productColumnKeys {
		totalPx += c.layout.Width(key)
	}
	columns := make([]table.Column, 0, len(productColumnKeys)+1)
	columns = append(columns, table.Column{Title: " ", Width: markWidth})
	for _, key := range productColumnKeys {
		width := c.layout.Width(key) * available / totalPx
		if width < 6 {
			width = 6
		}
		columns = append(columns, table.Column{Title: c.headerTitle(key), Width: width})
	}
	c.cols = columns
	c.table.SetColumns(columns)
}

// headerColumnAt maps a terminal x offset within the table to the
// column key under it, for mouse resize.
func (c *productsTableColumn) headerColumnAt(x int) (string, bool) {
	offset := 0
	for i, col := range c.cols {
		offset += col.Width + 2 // cell padding
		if x < offset {
			if i == 0 {
				return "", false
			}
			return productColumnKeys[i-1], true
		}
	}
	return "", false
}

func (c *productsTableColumn) SetRows(rows []Product, editingID string, selected func(id string) bool) {
	selectedID := ""
	if row, ok := c.SelectedProduct(); ok {
		selectedID = row.ID
	}
	c.rows = append([]Product(nil), rows...)
	c.editingID = editingID
	c.selected = selected

	tableRows := make([]table.Row, len(rows))
	for i, product := range rows {
		tableRows[i] = c.buildRow(product)
	}
	c.table.SetRows(tableRows)
	if len(tableRows) == 0 {
		return
	}
	target := 0
	if selectedID != "" {
		for idx, product := range c.rows {
			if product.ID == selectedID {
				target = idx
				break
			}
		}
	}
	if target >= len(tableRows) {
		target = len(tableRows) - 1
	}
	c.table.SetCursor(target)
}

func (c *productsTableColumn) buildRow(product Product) table.Row {
	mark := " "
	if c.selected != nil && c.selected(product.ID) {
		mark = "✓"
	}
	if isLocalID(product.ID) {
		mark += "+"
	}
	if product.ID == c.editingID {
		mark += "*"
	}
	return table.Row{
		mark,
		product.Name,
		product.Vendor,
		product.SKU,
		strconv.FormatFloat(product.Rating, 'f', 1, 64),
		formatPrice(product.Price),
	}
}

func formatPrice(price float64) string {
	return fmt.Sprintf("%.2f", price)
}

func (c *productsTableColumn) SelectedProduct() (Product, bool) {
	cursor := c.table.Cursor()
	if cursor < 0 || cursor >= len(c.rows) {
		return Product{}, false
	}
	return c.rows[cursor], true
}

func (c *productsTableColumn) SetSize(width, height int) {
	if width < 40 {
		width = 40
	}
	if height < 6 {
		height = 6
	}
	c.width = width
	c.height = height
	c.table.SetHeight(height - 3)
	c.rebuildColumns()
}

func (c *productsTableColumn) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return cmd
}

func (c *productsTableColumn) View(s styles, focused bool, emptyHint string) string {
	title := s.columnTitle.Render(c.title)
	var body string
	if len(c.rows) == 0 {
		body = s.statusHint.Render(emptyHint)
	} else {
		body = c.table.View()
	}
	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	if focused {
		return s.panelFocused.Width(c.width).Render(content)
	}
	return s.panel.Width(c.width).Render(content)
}
