package utils

import (
	"context"
	"testing"
	"time"
)

func TestIntakeScriptInitialized(t *testing.T) {
	// Compile-time smoke test: the script should be initialized.
	if intakeRateScript == nil {
		t.Fatalf("expected script to be initialized")
	}
}

func TestAllowIntake_ArgumentValidation(t *testing.T) {
	ctx := context.Background()
	if _, err := AllowIntake(ctx, nil, "k", 1, time.Second); err == nil {
		t.Fatal("expected error for nil client")
	}
}
