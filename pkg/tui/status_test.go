package tui

import (
	"testing"
	"time"
)

func TestStatusManager_ShowFeedback(t *testing.T) {
	sm := NewStatusManager()

	cmd := sm.ShowSuccess("Copied")
	if cmd == nil {
		t.Error("ShowSuccess should return a command")
	}

	if sm.CurrentStatus == nil {
		t.Fatal("CurrentStatus should not be nil after ShowSuccess")
	}
	if sm.CurrentStatus.Message != "Copied" {
		t.Errorf("Expected message 'Copied', got '%s'", sm.CurrentStatus.Message)
	}
	if sm.CurrentStatus.Type != StatusTypeSuccess {
		t.Errorf("Expected type StatusTypeSuccess, got %v", sm.CurrentStatus.Type)
	}

	text, statusType, ok := sm.GetStatus()
	if !ok || text != "✓ Copied" || statusType != StatusTypeSuccess {
		t.Errorf("GetStatus() = %q, %v, %v", text, statusType, ok)
	}
}

func TestStatusManager_Expires(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sm := NewStatusManager()
	sm.now = func() time.Time { return now }

	if sm.IsActive() {
		t.Error("StatusManager should not be active initially")
	}

	sm.ShowInfo("Refreshing")
	if !sm.IsActive() {
		t.Error("StatusManager should be active after ShowInfo")
	}

	now = now.Add(3 * time.Second)
	if sm.IsActive() {
		t.Error("StatusManager should not be active after expiration")
	}
	if sm.CurrentStatus != nil {
		t.Error("Expired status should be dropped")
	}
}

func TestStatusManager_Clear(t *testing.T) {
	sm := NewStatusManager()
	sm.ShowWarning("Nothing selected")
	sm.Clear()

	if _, _, ok := sm.GetStatus(); ok {
		t.Error("GetStatus should report nothing after Clear")
	}
}
