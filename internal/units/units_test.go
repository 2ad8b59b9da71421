package units

import "testing"

func TestNauticalMilesToMeters(t *testing.T) {
	// 96 NM is the HALO Range control's compiled-in maximum, and its
	// meter equivalent (177792) is asserted directly in scenario S1.
	got := NauticalMilesToMeters(96)
	if got != 177792 {
		t.Fatalf("NauticalMilesToMeters(96) = %v, want 177792", got)
	}
}

func TestMetersToNauticalMilesRoundTrip(t *testing.T) {
	nm := 48.0
	m := NauticalMilesToMeters(nm)
	if got := MetersToNauticalMiles(m); got != nm {
		t.Fatalf("round trip = %v, want %v", got, nm)
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NauticalMiles) || !IsValid(Meters) {
		t.Fatal("expected both units valid")
	}
	if IsValid("furlongs") {
		t.Fatal("expected furlongs invalid")
	}
}

func TestConvertRange(t *testing.T) {
	if got := ConvertRange(1852, NauticalMiles); got != 1 {
		t.Fatalf("ConvertRange(1852, nm) = %v, want 1", got)
	}
	if got := ConvertRange(1852, Meters); got != 1852 {
		t.Fatalf("ConvertRange(1852, m) = %v, want 1852", got)
	}
}
