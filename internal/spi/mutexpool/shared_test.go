package mutexpool

import (
	"strconv"
	"testing"
)

func TestCapacityFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		set     bool
		want    int
		wantErr bool
	}{
		{name: "unset", set: false, want: DefaultCapacity},
		{name: "empty", value: "", set: true, want: DefaultCapacity},
		{name: "zero", value: "0", set: true, want: 0},
		{name: "custom", value: "128", set: true, want: 128},
		{name: "max", value: strconv.Itoa(maxTracked), set: true, want: maxTracked},
		{name: "negative", value: "-1", set: true, wantErr: true},
		{name: "too large", value: strconv.Itoa(maxTracked + 1), set: true, wantErr: true},
		{name: "not a number", value: "lots", set: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := func(key string) (string, bool) {
				if key != CapacityEnv {
					t.Errorf("lookup(%q), want %q", key, CapacityEnv)
				}
				return tt.value, tt.set
			}

			got, err := capacityFromEnv(lookup)
			if tt.wantErr {
				if err == nil {
					t.Errorf("capacityFromEnv() = %d, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("capacityFromEnv() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("capacityFromEnv() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestShared_Singleton verifies Shared returns one pool per process.
func TestShared_Singleton(t *testing.T) {
	a, b := Shared(), Shared()
	if a == nil || a != b {
		t.Fatal("Shared() should return the same non-nil pool")
	}
	if a.Stats().Constructed < 0 {
		t.Error("shared pool has negative construction count")
	}
}
