package main

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/mcdev12/planpoker/go/internal/cards"
	"github.com/mcdev12/planpoker/go/internal/models"
	"github.com/mcdev12/planpoker/go/internal/roomsync"
	"github.com/mcdev12/planpoker/go/internal/stats"
)

// view is a point-in-time read of the store for one frame.
type view struct {
	Room         models.Room
	Session      *models.VotingSession
	Participants []models.Participant
	Votes        map[uuid.UUID]roomsync.LocalVote
	SelfID       uuid.UUID
	Cards        []string
	CanControl   bool
	Remaining    int
	TimerShown   bool
}

func snapshotView(store *roomsync.Store, remaining int, timerShown bool) view {
	v := view{
		Room:         store.Room(),
		Session:      store.CurrentSession(),
		Participants: store.Participants(),
		Votes:        make(map[uuid.UUID]roomsync.LocalVote),
		Cards:        store.CardValues(),
		CanControl:   store.CanControl(),
		Remaining:    remaining,
		TimerShown:   timerShown,
	}
	if self, ok := store.Self(); ok {
		v.SelfID = self.ID
	}
	for _, vote := range store.Votes() {
		v.Votes[vote.ParticipantID] = vote
	}
	return v
}

func renderRoom(w io.Writer, v view) {
	fmt.Fprintf(w, "\n== %s [%s] ==\n", v.Room.Name, v.Room.Code)
	if !v.Room.IsActive {
		fmt.Fprintln(w, "room has expired")
	}

	if v.Session == nil {
		fmt.Fprintln(w, "no round yet")
		return
	}

	topic := v.Session.Topic
	if topic == "" {
		topic = "(no topic)"
	}
	fmt.Fprintf(w, "round: %s  %s", topic, v.Session.State())
	if v.TimerShown {
		fmt.Fprintf(w, "  %d:%02d left", v.Remaining/60, v.Remaining%60)
	}
	fmt.Fprintln(w)

	for _, p := range v.Participants {
		fmt.Fprintf(w, "  %-20s %s\n", participantLabel(p, v.SelfID), voteCell(p, v))
	}

	if v.Session.IsRevealed {
		renderSummary(w, v)
		return
	}
	fmt.Fprintf(w, "cards: %s\n", strings.Join(v.Cards, " "))
	if legend := specialLegend(v.Cards); legend != "" {
		fmt.Fprintf(w, "       %s\n", legend)
	}
}

var specialMeaning = map[string]string{
	cards.Unknown:  "unsure",
	cards.Infinity: "too big",
	cards.Coffee:   "need a break",
}

// specialLegend explains the special cards present in the deck.
func specialLegend(deck []string) string {
	var parts []string
	for _, c := range cards.Special() {
		if slices.Contains(deck, c) {
			parts = append(parts, c+" "+specialMeaning[c])
		}
	}
	return strings.Join(parts, "  ")
}

func participantLabel(p models.Participant, selfID uuid.UUID) string {
	label := p.DisplayName
	if p.IsFacilitator {
		label += " *"
	}
	if p.ID == selfID {
		label += " (you)"
	}
	return label
}

// voteCell hides other participants' cards until the round is revealed.
func voteCell(p models.Participant, v view) string {
	if p.IsObserver {
		return "observing"
	}
	vote, ok := v.Votes[p.ID]
	switch {
	case !ok:
		return "-"
	case v.Session.IsRevealed || p.ID == v.SelfID:
		if vote.State == roomsync.VotePending {
			return vote.Value + " (saving)"
		}
		return vote.Value
	default:
		return "voted"
	}
}

func renderSummary(w io.Writer, v view) {
	values := make([]string, 0, len(v.Votes))
	for _, vote := range v.Votes {
		values = append(values, vote.Value)
	}
	summary := stats.Summarize(values)

	fmt.Fprintf(w, "votes: %d", summary.Count)
	if summary.Average != nil {
		fmt.Fprintf(w, "  avg %.1f", *summary.Average)
	}
	if summary.Median != nil {
		fmt.Fprintf(w, "  median %.1f", *summary.Median)
	}
	if len(summary.Mode) > 0 {
		fmt.Fprintf(w, "  mode %s", strings.Join(summary.Mode, ","))
	}
	fmt.Fprintln(w)

	keys := make([]string, 0, len(summary.Distribution))
	for k := range summary.Distribution {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "  %-4s %s\n", k, strings.Repeat("#", summary.Distribution[k]))
	}
}
