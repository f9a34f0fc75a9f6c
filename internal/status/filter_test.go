package status

import (
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestFilterEmptyMatchesEverything(t *testing.T) {
	t.Parallel()

	var f Filter
	in := []WorktreeStatus{
		{Repo: "a", Branch: "x", Local: LocalDirty},
		{Repo: "b", Branch: "y", Local: LocalMissing},
	}
	if got := f.Apply(in); len(got) != len(in) {
		t.Fatalf("empty filter kept %d of %d", len(got), len(in))
	}
}

func TestFilterConjunction(t *testing.T) {
	t.Parallel()

	in := []WorktreeStatus{
		{Repo: "a", Branch: "dirty-ahead", Local: LocalDirty, Remote: RemoteStatus{Kind: RemoteAhead, Ahead: 1}},
		{Repo: "a", Branch: "dirty-level", Local: LocalDirty, Remote: RemoteStatus{Kind: RemoteUpToDate}},
		{Repo: "a", Branch: "clean-ahead", Local: LocalClean, Remote: RemoteStatus{Kind: RemoteAhead, Ahead: 2}},
	}

	var f Filter
	f.Add(Dirty())
	f.Add(Ahead())
	got := f.Apply(in)
	if len(got) != 1 || got[0].Branch != "dirty-ahead" {
		t.Fatalf("dirty+ahead selected %v, want only dirty-ahead", got)
	}

	// Same predicates in the opposite order select the same set.
	var g Filter
	g.Add(Ahead())
	g.Add(Dirty())
	swapped := g.Apply(in)
	if len(swapped) != len(got) || swapped[0].Branch != got[0].Branch {
		t.Fatalf("predicate order changed the result: %v vs %v", swapped, got)
	}
}

func TestLocalPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pred  Predicate
		local LocalStatus
		want  bool
	}{
		{Clean(), LocalClean, true},
		{Clean(), LocalDirty, false},
		{Dirty(), LocalDirty, true},
		{Dirty(), LocalStaged, false},
		{Staged(), LocalStaged, true},
		{Missing(), LocalMissing, true},
		{Missing(), LocalClean, false},
	}
	for _, tt := range tests {
		ws := WorktreeStatus{Local: tt.local}
		if got := tt.pred.Match(ws); got != tt.want {
			t.Errorf("%s.Match(local=%v) = %v, want %v", tt.pred.Name, tt.local, got, tt.want)
		}
	}
}

func TestRemotePredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pred Predicate
		kind RemoteKind
		want bool
	}{
		{UpToDate(), RemoteUpToDate, true},
		{Ahead(), RemoteAhead, true},
		{Ahead(), RemoteDiverged, false},
		{Behind(), RemoteBehind, true},
		{Diverged(), RemoteDiverged, true},
		{NotPushed(), RemoteNotPushed, true},
		{NotTracking(), RemoteNotTracking, true},
		{NotTracking(), RemoteNotPushed, false},
	}
	for _, tt := range tests {
		ws := WorktreeStatus{Remote: RemoteStatus{Kind: tt.kind}}
		if got := tt.pred.Match(ws); got != tt.want {
			t.Errorf("%s.Match(remote=%v) = %v, want %v", tt.pred.Name, tt.kind, got, tt.want)
		}
	}
}

func TestAgePredicates(t *testing.T) {
	t.Parallel()

	cutoff := day(10)
	old := WorktreeStatus{LastActivity: day(3)}
	fresh := WorktreeStatus{LastActivity: day(20)}
	unknown := WorktreeStatus{}

	if !OlderThan(cutoff).Match(old) {
		t.Error("older-than rejected an old worktree")
	}
	if OlderThan(cutoff).Match(fresh) {
		t.Error("older-than accepted a fresh worktree")
	}
	if !NewerThan(cutoff).Match(fresh) {
		t.Error("newer-than rejected a fresh worktree")
	}
	if NewerThan(cutoff).Match(old) {
		t.Error("newer-than accepted an old worktree")
	}
	// Unknown activity cannot disqualify on either side.
	if !OlderThan(cutoff).Match(unknown) || !NewerThan(cutoff).Match(unknown) {
		t.Error("unknown activity should pass age filters")
	}
}

func TestActivePreset(t *testing.T) {
	t.Parallel()

	now := day(30)
	pred := Active(now, DefaultActiveWindow)

	tests := []struct {
		name string
		ws   WorktreeStatus
		want bool
	}{
		{"recent clean", WorktreeStatus{Local: LocalClean, LastActivity: day(28)}, true},
		{"recent dirty", WorktreeStatus{Local: LocalDirty, LastActivity: day(28)}, true},
		{"recent but missing", WorktreeStatus{Local: LocalMissing, LastActivity: day(28)}, false},
		{"too old", WorktreeStatus{Local: LocalClean, LastActivity: day(10)}, false},
		{"unknown activity", WorktreeStatus{Local: LocalClean}, true},
	}
	for _, tt := range tests {
		if got := pred.Match(tt.ws); got != tt.want {
			t.Errorf("%s: active = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestNeedsAttentionPreset(t *testing.T) {
	t.Parallel()

	pred := NeedsAttention()

	tests := []struct {
		name string
		ws   WorktreeStatus
		want bool
	}{
		{"dirty", WorktreeStatus{Local: LocalDirty}, true},
		{"staged", WorktreeStatus{Local: LocalStaged}, true},
		{"diverged", WorktreeStatus{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteDiverged, Ahead: 1, Behind: 1}}, true},
		{"not pushed", WorktreeStatus{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteNotPushed}}, true},
		{"clean up-to-date", WorktreeStatus{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteUpToDate}}, false},
		{"clean behind", WorktreeStatus{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteBehind, Behind: 3}}, false},
		{"missing", WorktreeStatus{Local: LocalMissing}, false},
	}
	for _, tt := range tests {
		if got := pred.Match(tt.ws); got != tt.want {
			t.Errorf("%s: needs-attention = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestStalePreset(t *testing.T) {
	t.Parallel()

	now := day(60)
	pred := Stale(now, DefaultStaleAfter)

	tests := []struct {
		name string
		ws   WorktreeStatus
		want bool
	}{
		{"old and clean", WorktreeStatus{Local: LocalClean, LastActivity: day(10)}, true},
		{"old but dirty", WorktreeStatus{Local: LocalDirty, LastActivity: day(10)}, false},
		{"clean but recent", WorktreeStatus{Local: LocalClean, LastActivity: day(55)}, false},
		{"clean unknown age", WorktreeStatus{Local: LocalClean}, true},
	}
	for _, tt := range tests {
		if got := pred.Match(tt.ws); got != tt.want {
			t.Errorf("%s: stale = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFilterDescribe(t *testing.T) {
	t.Parallel()

	var f Filter
	if got := f.Describe(); got != "all" {
		t.Errorf("empty Describe() = %q, want %q", got, "all")
	}
	f.Add(Dirty())
	f.Add(Ahead())
	if got := f.Describe(); got != "dirty+ahead" {
		t.Errorf("Describe() = %q, want %q", got, "dirty+ahead")
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "30", want: 30 * 24 * time.Hour},
		{in: "30d", want: 30 * 24 * time.Hour},
		{in: "2w", want: 14 * 24 * time.Hour},
		{in: "3m", want: 90 * 24 * time.Hour},
		{in: "1d", want: 24 * time.Hour},
		{in: "30days", want: 30 * 24 * time.Hour},
		{in: "2weeks", want: 14 * 24 * time.Hour},
		{in: "3months", want: 90 * 24 * time.Hour},
		{in: " 7 ", want: 7 * 24 * time.Hour},
		{in: "", wantErr: true},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "soon", wantErr: true},
		{in: "3y", wantErr: true},
		{in: "d", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseAge(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAge(%q) succeeded, want error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAge(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseAge(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	t.Parallel()

	in := []WorktreeStatus{
		{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteUpToDate}},
		{Local: LocalClean, Remote: RemoteStatus{Kind: RemoteBehind, Behind: 1}},
		{Local: LocalDirty, Remote: RemoteStatus{Kind: RemoteAhead, Ahead: 2}},
		{Local: LocalStaged, Remote: RemoteStatus{Kind: RemoteNotPushed}},
		{Local: LocalMissing, Remote: RemoteStatus{Kind: RemoteNotTracking}},
		{Local: LocalUnknown, Remote: RemoteStatus{Kind: RemoteDiverged, Ahead: 1, Behind: 1}},
	}
	c := Count(in)

	if c.Total != 6 {
		t.Errorf("Total = %d, want 6", c.Total)
	}
	localSum := c.Clean + c.Dirty + c.Staged + c.Missing + c.LocalUnknown
	if localSum != c.Total {
		t.Errorf("local buckets sum to %d, want %d", localSum, c.Total)
	}
	remoteSum := c.UpToDate + c.Ahead + c.Behind + c.Diverged + c.NotPushed + c.NotTracking + c.RemoteUnknown
	if remoteSum != c.Total {
		t.Errorf("remote buckets sum to %d, want %d", remoteSum, c.Total)
	}
	if c.Clean != 2 || c.Dirty != 1 || c.Staged != 1 || c.Missing != 1 || c.LocalUnknown != 1 {
		t.Errorf("local buckets = %+v", c)
	}
	if got := c.NeedsAttention(); got != 4 {
		t.Errorf("NeedsAttention() = %d, want 4", got)
	}
}

// ParseAge feeding OlderThan must behave identically for "30", "30d"
// and equivalent week spellings.
func TestParseAgeEquivalentSpellings(t *testing.T) {
	t.Parallel()

	a, err := ParseAge("14")
	if err != nil {
		t.Fatal(err)
	}
	b, err := ParseAge("14d")
	if err != nil {
		t.Fatal(err)
	}
	c, err := ParseAge("2w")
	if err != nil {
		t.Fatal(err)
	}
	if a != b || b != c {
		t.Errorf("14 / 14d / 2w parse to %v / %v / %v", a, b, c)
	}
}
