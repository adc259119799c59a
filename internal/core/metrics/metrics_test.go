package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(Logins.WithLabelValues("success"))
	Logins.WithLabelValues("success").Inc()
	if got := testutil.ToFloat64(Logins.WithLabelValues("success")); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}

	TokenRejections.WithLabelValues("expired").Inc()
	if testutil.CollectAndCount(TokenRejections) == 0 {
		t.Fatalf("expected collected series")
	}
}
