package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/onething/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory(WithLogf(func(string, ...any) {}))
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

type failingMedium struct {
	getErr error
	setErr error
	value  string
	ok     bool
}

func (f *failingMedium) Get(string) (string, bool, error) {
	return f.value, f.ok, f.getErr
}

func (f *failingMedium) Set(_, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value, f.ok = value, true
	return nil
}

func assertDefault(t *testing.T, data model.StorageData) {
	t.Helper()
	if data.User != model.DefaultProfile() {
		t.Fatalf("expected default profile, got %+v", data.User)
	}
	if data.Days == nil {
		t.Fatalf("expected non-nil days map")
	}
	if len(data.Days) != 0 {
		t.Fatalf("expected no days, got %d", len(data.Days))
	}
}

func TestReadDefaultsWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	assertDefault(t, s.Read())
}

func TestReadDefaultsOnMalformedBlobs(t *testing.T) {
	blobs := []string{
		"",
		"not json",
		"null",
		"[]",
		"42",
		`{"user":{"name":"a"}}`,
		`{"days":{}}`,
		`{"user":null,"days":{}}`,
		`{"user":{},"days":null}`,
		`{"user":{},"days":"nope"}`,
		`{"user":0,"days":{}}`,
		`{"user":{},"days":{"2024-06-01":{"shipped":"yes"}}}`,
	}
	for _, blob := range blobs {
		s := newTestStore(t)
		if err := s.medium.Set(DataKey, blob); err != nil {
			t.Fatalf("seed blob: %v", err)
		}
		data := s.Read()
		if data.Days == nil {
			t.Fatalf("blob %q: expected non-nil days", blob)
		}
		assertDefault(t, data)
	}
}

func TestReadKeepsValidBlob(t *testing.T) {
	s := newTestStore(t)
	blob := `{"user":{"name":"ada","dayStart":"08:00","dayEnd":"16:30"},"days":{"2024-06-09":{"task":"write","startedAt":1717920000000,"shipped":true}}}`
	if err := s.medium.Set(DataKey, blob); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	data := s.Read()
	if data.User.Name != "ada" || data.User.DayStart != "08:00" || data.User.DayEnd != "16:30" {
		t.Fatalf("unexpected user: %+v", data.User)
	}
	entry, ok := data.Days["2024-06-09"]
	if !ok || entry.Task != "write" || !entry.Shipped || entry.StartedAt != 1717920000000 {
		t.Fatalf("unexpected entry: %+v (ok=%v)", entry, ok)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := model.StorageData{
		User: model.UserProfile{Name: "grace", DayStart: "07:15", DayEnd: "15:45"},
		Days: map[string]model.DayEntry{
			"2024-06-08": {Task: "a", StartedAt: 1, Shipped: true},
			"2024-06-09": {Task: "b", StartedAt: 2, Shipped: false},
		},
	}
	s.Write(want)
	got := s.Read()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", want, got)
	}
}

func TestWriteUsesPersistedLayout(t *testing.T) {
	s := newTestStore(t)
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "t", StartedAt: 5, Shipped: true})
	raw, ok, err := s.medium.Get(DataKey)
	if err != nil || !ok {
		t.Fatalf("expected blob, ok=%v err=%v", ok, err)
	}
	for _, want := range []string{`"user":{`, `"dayStart":"09:00"`, `"dayEnd":"17:00"`, `"days":{"2024-06-10":{"task":"t","startedAt":5,"shipped":true}}`} {
		if !strings.Contains(raw, want) {
			t.Fatalf("blob %s missing %s", raw, want)
		}
	}
}

func TestSetAndGetDayEntry(t *testing.T) {
	s := newTestStore(t)
	entry := model.DayEntry{Task: "test", StartedAt: 123, Shipped: false}
	s.SetDayEntry("2024-06-10", entry)
	got, ok := s.GetDayEntry("2024-06-10")
	if !ok {
		t.Fatalf("expected entry")
	}
	if got != entry {
		t.Fatalf("expected %+v, got %+v", entry, got)
	}
	if _, ok := s.GetDayEntry("2024-06-11"); ok {
		t.Fatalf("expected no entry for other day")
	}
}

func TestSetDayEntryReplaces(t *testing.T) {
	s := newTestStore(t)
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "one"})
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "two"})
	data := s.Read()
	if len(data.Days) != 1 || data.Days["2024-06-10"].Task != "two" {
		t.Fatalf("unexpected days: %+v", data.Days)
	}
}

func TestDeleteDayEntry(t *testing.T) {
	s := newTestStore(t)
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "one"})
	s.SetDayEntry("2024-06-11", model.DayEntry{Task: "two"})
	s.DeleteDayEntry("2024-06-10")
	if _, ok := s.GetDayEntry("2024-06-10"); ok {
		t.Fatalf("expected entry to be deleted")
	}
	if _, ok := s.GetDayEntry("2024-06-11"); !ok {
		t.Fatalf("expected other entry to remain")
	}
	s.DeleteDayEntry("2030-01-01")
}

func TestUpdateUserKeepsDays(t *testing.T) {
	s := newTestStore(t)
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "one"})
	profile := model.UserProfile{Name: "lin", DayStart: "10:00", DayEnd: "18:00"}
	s.UpdateUser(profile)
	data := s.Read()
	if data.User != profile {
		t.Fatalf("expected %+v, got %+v", profile, data.User)
	}
	if len(data.Days) != 1 {
		t.Fatalf("expected days to survive profile update")
	}
}

func TestResetAllData(t *testing.T) {
	s := newTestStore(t)
	s.UpdateUser(model.UserProfile{Name: "x", DayStart: "01:00", DayEnd: "02:00"})
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "one", Shipped: true})
	s.ResetAllData()
	got := s.Read()
	if !reflect.DeepEqual(got, model.DefaultData()) {
		t.Fatalf("expected defaults after reset, got %+v", got)
	}
}

func TestWriteFailureIsSwallowed(t *testing.T) {
	var logged []string
	medium := &failingMedium{setErr: errors.New("quota exceeded")}
	s := New(medium, WithLogf(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}))
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "lost"})
	if len(logged) != 1 || !strings.Contains(logged[0], "quota exceeded") {
		t.Fatalf("expected write failure to be logged, got %v", logged)
	}
	assertDefault(t, s.Read())
}

func TestReadFailureFallsBackToDefaults(t *testing.T) {
	var logged int
	medium := &failingMedium{getErr: errors.New("disk gone")}
	s := New(medium, WithLogf(func(string, ...any) { logged++ }))
	assertDefault(t, s.Read())
	if logged != 1 {
		t.Fatalf("expected read failure to be logged once, got %d", logged)
	}
}

func TestCommitTask(t *testing.T) {
	s := newTestStore(t)
	now := time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)
	entry, err := s.CommitTask("2024-06-10", "  ship the thing  ", now)
	if err != nil {
		t.Fatalf("commit task: %v", err)
	}
	if entry.Task != "ship the thing" || entry.Shipped || entry.StartedAt != now.UnixMilli() {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	got, ok := s.GetDayEntry("2024-06-10")
	if !ok || got != entry {
		t.Fatalf("expected persisted entry %+v, got %+v", entry, got)
	}
	if _, err := s.CommitTask("2024-06-11", "   ", now); !errors.Is(err, ErrEmptyTask) {
		t.Fatalf("expected ErrEmptyTask, got %v", err)
	}
}

func TestMarkShipped(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.MarkShipped("2024-06-10"); !errors.Is(err, ErrNoEntry) {
		t.Fatalf("expected ErrNoEntry, got %v", err)
	}
	if _, err := s.CommitTask("2024-06-10", "task", time.Unix(0, 0)); err != nil {
		t.Fatalf("commit task: %v", err)
	}
	entry, err := s.MarkShipped("2024-06-10")
	if err != nil {
		t.Fatalf("mark shipped: %v", err)
	}
	if !entry.Shipped || entry.Task != "task" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	again, err := s.MarkShipped("2024-06-10")
	if err != nil || !again.Shipped {
		t.Fatalf("expected shipping twice to stay shipped, got %+v err=%v", again, err)
	}
}

func TestNotTodayLeavesStateUntouched(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.CommitTask("2024-06-10", "task", time.Unix(0, 0)); err != nil {
		t.Fatalf("commit task: %v", err)
	}
	before := s.Read()
	entry, ok := s.NotToday("2024-06-10")
	if !ok || entry.Task != "task" {
		t.Fatalf("unexpected entry: %+v ok=%v", entry, ok)
	}
	if !reflect.DeepEqual(before, s.Read()) {
		t.Fatalf("expected persisted state to be unchanged")
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "onething.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	s.SetDayEntry("2024-06-10", model.DayEntry{Task: "persist", Shipped: true})
	if err := s.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	t.Cleanup(func() {
		_ = s2.Close()
	})
	entry, ok := s2.GetDayEntry("2024-06-10")
	if !ok || entry.Task != "persist" || !entry.Shipped {
		t.Fatalf("unexpected entry after reopen: %+v ok=%v", entry, ok)
	}
}

func TestValidateProfile(t *testing.T) {
	if err := ValidateProfile(model.DefaultProfile()); err != nil {
		t.Fatalf("expected defaults to validate: %v", err)
	}
	bad := []model.UserProfile{
		{DayStart: "9:00", DayEnd: "17:00"},
		{DayStart: "09:00", DayEnd: "24:00"},
		{DayStart: "09:60", DayEnd: "17:00"},
		{DayStart: "", DayEnd: "17:00"},
		{DayStart: "09:00", DayEnd: "5pm"},
	}
	for _, p := range bad {
		if err := ValidateProfile(p); !errors.Is(err, ErrInvalidTime) {
			t.Fatalf("expected ErrInvalidTime for %+v, got %v", p, err)
		}
	}
}
