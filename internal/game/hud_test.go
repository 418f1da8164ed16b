package game

import (
	"testing"
	"time"

	"github.com/hako/durafmt"
)

func TestShortUnits_Decode(t *testing.T) {
	units, err := durafmt.DefaultUnitsCoder.Decode(shortUnitsSpec)
	if err != nil {
		t.Fatalf("decode %q: %v", shortUnitsSpec, err)
	}
	if units != shortUnits {
		t.Fatalf("HUD units %+v differ from decoded %+v", shortUnits, units)
	}
	if shortUnits.Minute.Singular != "m" || shortUnits.Second.Plural != "s" {
		t.Fatalf("unexpected units %+v", shortUnits)
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 s"},
		{-time.Second, "0 s"},
		{4*time.Minute + 10*time.Second + 300*time.Millisecond, "4 m 10 s"},
		{time.Hour + 2*time.Minute + 5*time.Second, "1 h 2 m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.d); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.d, got, c.want)
		}
	}
}
