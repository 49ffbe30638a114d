package domain

import "testing"

func TestGlobalConfigDir(t *testing.T) {
	got := GlobalConfigDir("/home/user/.config")
	want := "/home/user/.config/idraft"
	if got != want {
		t.Errorf("GlobalConfigDir() = %q, want %q", got, want)
	}
}

func TestDataDir(t *testing.T) {
	got := DataDir("/home/user/.local/share")
	want := "/home/user/.local/share/idraft"
	if got != want {
		t.Errorf("DataDir() = %q, want %q", got, want)
	}
}

func TestProjectConfigPath(t *testing.T) {
	got := ProjectConfigPath("/work/project")
	want := "/work/project/.idraft.toml"
	if got != want {
		t.Errorf("ProjectConfigPath() = %q, want %q", got, want)
	}
}

func TestLogPath(t *testing.T) {
	got := LogPath("/data/idraft")
	want := "/data/idraft/logs/idraft.log"
	if got != want {
		t.Errorf("LogPath() = %q, want %q", got, want)
	}
}

func TestStorePath(t *testing.T) {
	tests := []struct {
		backend string
		want    string
	}{
		{StoreBackendJSON, "/data/idraft/drafts.json"},
		{StoreBackendSQLite, "/data/idraft/drafts.db"},
		{"", "/data/idraft/drafts.json"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			if got := StorePath("/data/idraft", tt.backend); got != tt.want {
				t.Errorf("StorePath(%q) = %q, want %q", tt.backend, got, tt.want)
			}
		})
	}
}
