package main

import (
	"io"
	"strings"
	"time"

	"chat-core/domain/chat"
	"chat-core/domain/event"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

const maxCellLength = 40

type printer struct {
	w       io.Writer
	colours bool
}

func newPrinter(w io.Writer, colours bool) printer {
	return printer{w: w, colours: colours}
}

func (p printer) table(header []string) *tablewriter.Table {
	if p.colours {
		for i, h := range header {
			header[i] = color.New(color.BgBlack, color.FgGreen).Render(h)
		}
	}
	table := tablewriter.NewWriter(p.w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func (p printer) rooms(summaries []chat.RoomSummary) {
	table := p.table([]string{"ROOM", "NAME", "MEMBERS", "LATEST MESSAGE", "LATEST ACTIVITY"})
	for _, s := range summaries {
		table.Append([]string{
			shortKey(s.Key.String()),
			s.Name,
			strings.Join(s.Members, ","),
			truncate(s.LatestMessage),
			s.LatestActivity.UTC().Format(time.RFC3339),
		})
	}
	table.Render()
}

func (p printer) events(records []event.Record) {
	table := p.table([]string{"AT", "KIND", "ROOM", "DETAIL"})
	for _, r := range records {
		table.Append([]string{
			r.Event.OccurredAt().UTC().Format(time.RFC3339Nano),
			r.Event.Kind().String(),
			shortKey(r.Event.RoomKey().String()),
			detail(r.Event),
		})
	}
	table.Render()
}

func detail(evt event.DomainEvent) string {
	switch e := evt.(type) {
	case event.RoomCreated:
		return strings.Join(e.Members, ",")
	case event.MessageAppended:
		return e.Sender + ": " + truncate(e.Content)
	default:
		return ""
	}
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}
	return key
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) > maxCellLength {
		return string(r[:maxCellLength-1]) + "…"
	}
	return s
}
