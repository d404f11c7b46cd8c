package state

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := ContextWithEnv(context.Background())

	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("environment missing from context")
	}
	if env.Log == nil {
		t.Fatal("fresh environment has no logger")
	}
	if env.Uptime() < 0 {
		t.Fatalf("bad uptime: %v", env.Uptime())
	}
}

func TestEnvFromContextPanicsWithoutEnv(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for context without environment")
		}
	}()
	EnvFromContext(context.Background())
}
