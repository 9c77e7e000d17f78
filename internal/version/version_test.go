package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func resetVars(t *testing.T) {
	t.Helper()
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })
	Version, Commit, Date = "", "", ""
}

func TestFillFromBuildInfo(t *testing.T) {
	tests := []struct {
		name       string
		info       debug.BuildInfo
		preset     string
		wantVer    string
		wantCommit string
		wantDate   string
	}{
		{
			name: "vcs stamps",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "v1.2.0"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "0123456789abcdef"},
					{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
					{Key: "vcs.modified", Value: "false"},
				},
			},
			wantVer:    "v1.2.0",
			wantCommit: "0123456789ab",
			wantDate:   "2024-05-01T10:00:00Z",
		},
		{
			name: "dirty tree",
			info: debug.BuildInfo{
				Main: debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			wantCommit: "abc-dirty",
		},
		{
			name:       "ldflags win",
			info:       debug.BuildInfo{Main: debug.Module{Version: "v9.9.9"}},
			preset:     "1.0.0",
			wantVer:    "1.0.0",
			wantCommit: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetVars(t)
			Version = tt.preset
			fillFromBuildInfo(&tt.info)
			if Version != tt.wantVer {
				t.Errorf("Version = %q, want %q", Version, tt.wantVer)
			}
			if Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", Commit, tt.wantCommit)
			}
			if Date != tt.wantDate {
				t.Errorf("Date = %q, want %q", Date, tt.wantDate)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	got := Info()
	if !strings.HasPrefix(got, Name+" ") {
		t.Errorf("Info() = %q, want prefix %q", got, Name)
	}
	if Version == "" || Commit == "" || Date == "" {
		t.Error("Info() should fill every field")
	}
}

func TestFields(t *testing.T) {
	fields := Fields()
	if len(fields) != 5 {
		t.Fatalf("Fields() returned %d entries, want 5", len(fields))
	}
	if fields[0].Label != "Version" || fields[0].Value == "" {
		t.Errorf("first field = %+v", fields[0])
	}
}
