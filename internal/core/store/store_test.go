package store

import (
	"errors"
	"testing"

	"vidchat/internal/core/models"
)

func session(key, title string) models.Session {
	return models.Session{VideoID: key, Key: key, Title: title}
}

func TestHydrateOrderAndFields(t *testing.T) {
	s := New()
	s.Hydrate([]models.Session{
		session("u1", "d1"),
		session("u2", "d2"),
	})

	got := s.Sessions()
	if len(got) != 2 {
		t.Fatalf("got %d sessions, want 2", len(got))
	}
	if got[0].Key != "u1" || got[1].Key != "u2" {
		t.Errorf("order not preserved: %q, %q", got[0].Key, got[1].Key)
	}
	if got[0].Title != "d1" || got[1].Title != "d2" {
		t.Errorf("titles wrong: %q, %q", got[0].Title, got[1].Title)
	}
	for _, sess := range got {
		if len(sess.History) != 0 {
			t.Errorf("session %s hydrated with non-empty history", sess.Key)
		}
	}
	if s.ActiveKey() != "u1" {
		t.Errorf("active = %q, want first hydrated session", s.ActiveKey())
	}
}

func TestHydrateReplacesExistingState(t *testing.T) {
	s := New()
	if err := s.UpsertNew(session("old", "old")); err != nil {
		t.Fatal(err)
	}
	s.AppendMessage("old", models.UserMessage("hello"))

	s.Hydrate([]models.Session{session("new", "new")})

	if s.Len() != 1 {
		t.Fatalf("got %d sessions, want 1", s.Len())
	}
	if _, ok := s.Get("old"); ok {
		t.Error("hydrate kept a pre-existing session")
	}
}

func TestHydrateSkipsDuplicateKeys(t *testing.T) {
	s := New()
	s.Hydrate([]models.Session{
		session("u1", "first"),
		session("u1", "second"),
	})
	if s.Len() != 1 {
		t.Fatalf("got %d sessions, want 1", s.Len())
	}
	got, _ := s.Get("u1")
	if got.Title != "first" {
		t.Errorf("duplicate overwrote first entry: title = %q", got.Title)
	}
}

func TestUpsertNewInsertsAtFront(t *testing.T) {
	s := New()
	for _, k := range []string{"a", "b", "c"} {
		if err := s.UpsertNew(session(k, k)); err != nil {
			t.Fatal(err)
		}
	}
	got := s.Sessions()
	if got[0].Key != "c" || got[1].Key != "b" || got[2].Key != "a" {
		t.Errorf("want most-recent-first, got %q %q %q", got[0].Key, got[1].Key, got[2].Key)
	}
}

func TestUpsertNewRejectsDuplicates(t *testing.T) {
	s := New()
	if err := s.UpsertNew(session("v1", "one")); err != nil {
		t.Fatal(err)
	}
	err := s.UpsertNew(session("v1", "two"))
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("got %v, want ErrDuplicateKey", err)
	}
	if s.Len() != 1 {
		t.Errorf("duplicate insert changed the collection: len = %d", s.Len())
	}
}

func TestUpsertNewRejectsInvalid(t *testing.T) {
	s := New()
	if err := s.UpsertNew(models.Session{Key: "k"}); err == nil {
		t.Error("expected error for session without video id")
	}
}

func TestKeysStayDistinct(t *testing.T) {
	// Mixed sequence of hydrate/upsert/remove operations; keys must stay
	// pairwise distinct throughout.
	s := New()
	s.Hydrate([]models.Session{session("u1", ""), session("u2", "")})
	_ = s.UpsertNew(session("u3", ""))
	s.Remove("u1")
	_ = s.UpsertNew(session("u4", ""))
	_ = s.UpsertNew(session("u2", "")) // duplicate, rejected

	seen := make(map[string]bool)
	for _, sess := range s.Sessions() {
		if seen[sess.Key] {
			t.Fatalf("duplicate key %q in collection", sess.Key)
		}
		seen[sess.Key] = true
	}
	if s.Len() != 3 {
		t.Errorf("len = %d, want 3", s.Len())
	}
}

func TestSetActiveAndRead(t *testing.T) {
	s := New()
	_ = s.UpsertNew(session("v1", "one"))

	s.SetActive("v1")
	active, ok := s.Active()
	if !ok || active.Key != "v1" {
		t.Fatalf("Active() = %v, %v", active.Key, ok)
	}

	// Pointing at a missing key is permitted; reads just report no active
	// session.
	s.SetActive("ghost")
	if _, ok := s.Active(); ok {
		t.Error("Active() reported a session for a dangling pointer")
	}

	s.ClearActive()
	if _, ok := s.Active(); ok {
		t.Error("Active() reported a session after ClearActive")
	}
}

func TestRemoveActiveClearsPointer(t *testing.T) {
	s := New()
	_ = s.UpsertNew(session("v1", "one"))
	_ = s.UpsertNew(session("v2", "two"))
	s.SetActive("v1")

	s.Remove("v1")

	if _, ok := s.Active(); ok {
		t.Error("active pointer survived removal of the active session")
	}
	if _, ok := s.Get("v1"); ok {
		t.Error("removed session still present")
	}
	if _, ok := s.Get("v2"); !ok {
		t.Error("unrelated session removed")
	}
}

func TestRemoveNonActiveKeepsPointer(t *testing.T) {
	s := New()
	_ = s.UpsertNew(session("v1", "one"))
	_ = s.UpsertNew(session("v2", "two"))
	s.SetActive("v2")

	s.Remove("v1")

	active, ok := s.Active()
	if !ok || active.Key != "v2" {
		t.Errorf("active = %v, %v; want v2", active.Key, ok)
	}
}

func TestAppendMessageOrdering(t *testing.T) {
	s := New()
	_ = s.UpsertNew(session("v1", "one"))

	s.AppendMessage("v1", models.UserMessage("What is this about?"))
	s.AppendMessage("v1", models.AssistantMessage("It's a cooking tutorial."))

	got, _ := s.Get("v1")
	if len(got.History) != 2 {
		t.Fatalf("history len = %d, want 2", len(got.History))
	}
	if got.History[0].Role != models.RoleUser || got.History[1].Role != models.RoleAssistant {
		t.Errorf("roles out of order: %v then %v", got.History[0].Role, got.History[1].Role)
	}
}

func TestAppendMessageMissingKeyIsNoOp(t *testing.T) {
	s := New()
	_ = s.UpsertNew(session("v1", "one"))
	before := s.Sessions()

	// Repeated appends to a missing key leave the store untouched.
	s.AppendMessage("gone", models.AssistantMessage("late answer"))
	s.AppendMessage("gone", models.AssistantMessage("late answer"))

	after := s.Sessions()
	if len(after) != len(before) {
		t.Fatalf("collection size changed: %d -> %d", len(before), len(after))
	}
	if len(after[0].History) != 0 {
		t.Error("message delivered to the wrong session")
	}
	if _, ok := s.Get("gone"); ok {
		t.Error("append resurrected a missing session")
	}
}

func TestLateResponseAfterDeleteAndReplace(t *testing.T) {
	// Session A is deleted while its query is in flight and session B
	// takes its place as active. The late answer, routed by the captured
	// key, must not land anywhere.
	s := New()
	_ = s.UpsertNew(session("A", "a"))
	s.SetActive("A")
	s.AppendMessage("A", models.UserMessage("question"))

	captured := s.ActiveKey()

	s.Remove("A")
	_ = s.UpsertNew(session("B", "b"))
	s.SetActive("B")

	s.AppendMessage(captured, models.AssistantMessage("late answer"))

	b, _ := s.Get("B")
	if len(b.History) != 0 {
		t.Errorf("late answer misdelivered into B: %v", b.History)
	}
	if _, ok := s.Get("A"); ok {
		t.Error("deleted session A resurrected")
	}
}
