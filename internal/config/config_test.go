package config

import (
	"testing"
)

func TestLoad_DownloadAllowedHostsFromEnv(t *testing.T) {
	t.Setenv("DOWNLOAD_ALLOWED_HOSTS", "cdn.example.com, media.example.org,assets.example.net")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"cdn.example.com", "media.example.org", "assets.example.net"}
	got := cfg.Download.AllowedHosts
	if len(got) != len(want) {
		t.Fatalf("allowed hosts %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("allowed hosts %v, want %v", got, want)
		}
	}
}

func TestLoad_DownloadAllowedHostsDefault(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	hosts := cfg.Download.AllowedHosts
	if len(hosts) != 3 {
		t.Fatalf("expected 3 default hosts, got %v", hosts)
	}
	if hosts[0] != "cdn.creatomate.com" {
		t.Errorf("hosts[0] = %q", hosts[0])
	}
}
