package chat

import (
	"sort"
	"time"
)

// RoomSummary is what a member sees in its room list and what is pushed on fan-out.
type RoomSummary struct {
	Key            RoomKey
	Name           string
	ImgURL         string
	Members        []string
	LatestMessage  string
	LatestActivity time.Time
}

func SummaryOf(r Room) RoomSummary {
	return RoomSummary{
		Key:            r.Key,
		Name:           r.Name,
		ImgURL:         r.ImgURL,
		Members:        r.Nicknames(),
		LatestMessage:  r.LatestMessage,
		LatestActivity: r.LatestActivity,
	}
}

// SummaryFor returns the summary as seen by viewer.
// In a two-party room the display name and avatar are those of the other member.
func SummaryFor(r Room, viewer string) RoomSummary {
	summary := SummaryOf(r)
	if !r.IsTwoParty() {
		return summary
	}
	other := r.Members[0]
	if other.Nickname == viewer {
		other = r.Members[1]
	}
	summary.Name = other.Name
	summary.ImgURL = other.ImgURL
	return summary
}

// SortByActivity orders summaries most recently active first, keeping input order on ties.
func SortByActivity(summaries []RoomSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].LatestActivity.After(summaries[j].LatestActivity)
	})
}
