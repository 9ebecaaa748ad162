package service

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"cinechat/internal/services/convo/domain"
)

func TestStoreUpdateCreatesConversation(t *testing.T) {
	s := NewStore(0)

	s.Update("c1", func(st *domain.State) {
		st.AppendUser("hello", "greeting", nil, time.Now())
	})

	state, ok := s.Snapshot("c1")
	if !ok {
		t.Fatal("conversation should exist after Update")
	}
	if len(state.Messages) != 1 || state.Messages[0].User != "hello" {
		t.Fatalf("messages = %+v, want the appended user turn", state.Messages)
	}
}

func TestStoreSnapshotAbsent(t *testing.T) {
	s := NewStore(0)

	if _, ok := s.Snapshot("nope"); ok {
		t.Fatal("Snapshot should report absence without creating")
	}
	if got := s.Stats().ActiveConversations; got != 0 {
		t.Fatalf("active = %d, Snapshot must not create entries", got)
	}
}

func TestStoreSnapshotIsDeepCopy(t *testing.T) {
	s := NewStore(0)
	s.Update("c1", func(st *domain.State) { st.NoteTitle("Inception") })

	snap, _ := s.Snapshot("c1")
	snap.Context.RecentTitles[0] = "mutated"

	if got := s.RecentTitles("c1")[0]; got != "Inception" {
		t.Fatalf("stored title = %q, snapshot mutation leaked into the store", got)
	}
}

func TestStoreMessageWindow(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < domain.MaxMessages+5; i++ {
		s.Update("c1", func(st *domain.State) {
			st.AppendUser(fmt.Sprintf("msg %d", i), "unknown", nil, time.Now())
		})
	}

	state, _ := s.Snapshot("c1")
	if len(state.Messages) != domain.MaxMessages {
		t.Fatalf("kept %d messages, want the window of %d", len(state.Messages), domain.MaxMessages)
	}
	if state.Messages[0].User != "msg 5" {
		t.Fatalf("oldest kept = %q, want the window to drop from the front", state.Messages[0].User)
	}
}

func TestStoreRecentWindows(t *testing.T) {
	s := NewStore(0)
	for i := 0; i < domain.MaxRecent+3; i++ {
		title := fmt.Sprintf("Movie %d", i)
		s.Update("c1", func(st *domain.State) { st.NoteTitle(title) })
	}

	titles := s.RecentTitles("c1")
	if len(titles) != domain.MaxRecent {
		t.Fatalf("kept %d titles, want %d", len(titles), domain.MaxRecent)
	}
	if titles[0] != "Movie 3" || titles[len(titles)-1] != "Movie 7" {
		t.Fatalf("window = %v, want the most recent titles in order", titles)
	}
}

func TestStoreBotReplyTruncation(t *testing.T) {
	s := NewStore(0)
	long := strings.Repeat("x", domain.MaxBotLogged+50)

	s.Update("c1", func(st *domain.State) { st.AppendBot(long, time.Now()) })

	state, _ := s.Snapshot("c1")
	got := state.Messages[0].Bot
	if len([]rune(got)) != domain.MaxBotLogged+3 {
		t.Fatalf("logged %d runes, want %d plus ellipsis", len([]rune(got)), domain.MaxBotLogged)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("logged reply %q should end with an ellipsis", got[len(got)-10:])
	}
}

func TestStoreDelete(t *testing.T) {
	s := NewStore(0)
	s.Update("c1", func(st *domain.State) { st.NoteTitle("Heat") })

	if !s.Delete("c1") {
		t.Fatal("Delete should report success for a live conversation")
	}
	if s.Delete("c1") {
		t.Fatal("Delete should report absence the second time")
	}
	if _, ok := s.Snapshot("c1"); ok {
		t.Fatal("deleted conversation should be gone")
	}
}

func TestStoreStats(t *testing.T) {
	s := NewStore(0)
	s.Update("a", func(st *domain.State) {
		st.AppendUser("hi", "greeting", nil, time.Now())
		st.AppendBot("hello!", time.Now())
	})
	s.Update("b", func(st *domain.State) {
		st.AppendUser("yo", "greeting", nil, time.Now())
	})

	got := s.Stats()
	if got.ActiveConversations != 2 {
		t.Fatalf("active = %d, want 2", got.ActiveConversations)
	}
	if got.TotalMessages != 3 {
		t.Fatalf("total messages = %d, want 3", got.TotalMessages)
	}
}

func TestStoreConcurrentUpdatesSameConversation(t *testing.T) {
	s := NewStore(0)

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			s.Update("c1", func(st *domain.State) { st.NoteTitle("Heat") })
		}()
	}
	wg.Wait()

	titles := s.RecentTitles("c1")
	if len(titles) != domain.MaxRecent {
		t.Fatalf("window = %d entries, want it capped under concurrency", len(titles))
	}
}

func TestStoreSweepEvictsIdle(t *testing.T) {
	s := NewStore(10 * time.Millisecond)
	s.Update("old", func(st *domain.State) { st.NoteTitle("Heat") })

	s.sweep(time.Now().Add(time.Second))

	if _, ok := s.Snapshot("old"); ok {
		t.Fatal("idle conversation should be evicted by the sweep")
	}
}

func TestStoreSweepKeepsFresh(t *testing.T) {
	s := NewStore(time.Hour)
	s.Update("fresh", func(st *domain.State) { st.NoteTitle("Heat") })

	s.sweep(time.Now())

	if _, ok := s.Snapshot("fresh"); !ok {
		t.Fatal("fresh conversation should survive the sweep")
	}
}
