package app

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("NWPLANNER_DB", "")
	t.Setenv("SPREADSHEET_ID", "")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.DatabasePath != "planner.db" {
		t.Errorf("expected default database path 'planner.db', got %q", config.DatabasePath)
	}
	if config.CredentialsFile != "credentials.json" {
		t.Errorf("expected default credentials file 'credentials.json', got %q", config.CredentialsFile)
	}
	if config.SpreadsheetID != "" {
		t.Errorf("expected empty spreadsheet ID, got %q", config.SpreadsheetID)
	}
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("NWPLANNER_DB", "/tmp/guild.db")
	t.Setenv("SPREADSHEET_ID", "sheet-123")
	t.Setenv("GOOGLE_CREDENTIALS_FILE", "svc.json")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if config.DatabasePath != "/tmp/guild.db" {
		t.Errorf("expected database path '/tmp/guild.db', got %q", config.DatabasePath)
	}
	if config.SpreadsheetID != "sheet-123" {
		t.Errorf("expected spreadsheet ID 'sheet-123', got %q", config.SpreadsheetID)
	}
	if config.CredentialsFile != "svc.json" {
		t.Errorf("expected credentials file 'svc.json', got %q", config.CredentialsFile)
	}
}
