package metrics

import (
	"context"
	"testing"
)

func TestCounterWithoutProvider(t *testing.T) {
	c := Counter(Meter("test"), "test.events", "Events seen by the test")
	if c == nil {
		t.Fatal("expected counter")
	}
	c.Add(context.Background(), 1)
}

func TestMeterScope(t *testing.T) {
	if Meter("") == nil || Meter("kernel") == nil {
		t.Fatal("expected meters")
	}
}
