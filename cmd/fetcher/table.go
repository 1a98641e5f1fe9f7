package main

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/wrobbinz/newspoint/internal/model"
)

// formatCloud renders entries as a markdown table padded by display width, so
// wide glyphs stay aligned in a terminal.
func formatCloud(entries []model.CloudEntry) string {
	rows := [][]string{{"id", "word", "size"}}
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.ID), e.Text, strconv.Itoa(e.Size)})
	}

	widths := make([]int, 3)
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		sb.WriteString("|")
		for i, cell := range row {
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(rows[0])
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows[1:] {
		writeRow(row)
	}

	return sb.String()
}
