package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDayKey(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2024-03-01 20:00 UTC is already 2024-03-02 in Tokyo.
	ts := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	if got := DayKey(ts, time.UTC); got != "2024-03-01" {
		t.Errorf("DayKey(UTC) = %q, want 2024-03-01", got)
	}
	if got := DayKey(ts, tokyo); got != "2024-03-02" {
		t.Errorf("DayKey(Tokyo) = %q, want 2024-03-02", got)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 5, 10, 0, 0, 1, 0, time.UTC)
	night := time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)
	nextDay := time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)

	if !SameDay(morning, night, time.UTC) {
		t.Error("SameDay() = false for two times on 2024-05-10")
	}
	if SameDay(night, nextDay, time.UTC) {
		t.Error("SameDay() = true across midnight")
	}
}

func TestStartOfDay(t *testing.T) {
	ts := time.Date(2024, 5, 10, 17, 45, 3, 9, time.UTC)
	want := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(ts, time.UTC); !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}

func TestParseDateInLocation(t *testing.T) {
	got, err := ParseDateInLocation("1990-01-01", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if !got.Equal(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDateInLocation() = %v", got)
	}

	if _, err := ParseDateInLocation("01/01/1990", time.UTC); err == nil {
		t.Error("ParseDateInLocation() accepted a non ISO date")
	}
}

func TestValidateDayKey(t *testing.T) {
	if err := ValidateDayKey("2024-02-29"); err != nil {
		t.Errorf("ValidateDayKey(leap day) error = %v", err)
	}
	if err := ValidateDayKey("2023-02-29"); err == nil {
		t.Error("ValidateDayKey() accepted 2023-02-29")
	}
}

func TestValidateTimezone(t *testing.T) {
	if !ValidateTimezone("Local") || !ValidateTimezone("UTC") {
		t.Error("ValidateTimezone() rejected a valid zone")
	}
	if ValidateTimezone("Mars/Olympus") {
		t.Error("ValidateTimezone() accepted an unknown zone")
	}
}
