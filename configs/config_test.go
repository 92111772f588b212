package config

import "testing"

func TestCreateUniqueInstance(t *testing.T) {
	first := CreateUniqueInstance("game")
	if first == "" {
		t.Fatal("expected a non-empty instance id")
	}
	if GetInstanceId() != first {
		t.Fatalf("GetInstanceId returned %q, want %q", GetInstanceId(), first)
	}

	second := CreateUniqueInstance("game")
	if second == first {
		t.Fatal("instance ids must differ between calls")
	}
}
