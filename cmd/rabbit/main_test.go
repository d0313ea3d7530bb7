package main

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks, rate int
		want        string
	}{
		{0, 60, "0:00"},
		{59, 60, "0:00"},
		{60 * 75, 60, "1:15"},
		{300, 0, "0:05"},
	}
	for _, tt := range tests {
		if got := formatTicks(tt.ticks, tt.rate); got != tt.want {
			t.Errorf("formatTicks(%d, %d) = %q, expected %q", tt.ticks, tt.rate, got, tt.want)
		}
	}
}

func TestPortOf(t *testing.T) {
	if got := portOf(":23234"); got != "23234" {
		t.Errorf("portOf(:23234) = %q", got)
	}
	if got := portOf("0.0.0.0:2222"); got != "2222" {
		t.Errorf("portOf(0.0.0.0:2222) = %q", got)
	}
}

func TestApplyEnvRespectsExplicitFlags(t *testing.T) {
	var db, difficulty string
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&db, "db", "default.db", "")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "")

	t.Setenv("RABBIT_DB", "/tmp/env.db")
	t.Setenv("RABBIT_DIFFICULTY", "hard")
	if err := cmd.Flags().Set("difficulty", "easy"); err != nil {
		t.Fatal(err)
	}

	if err := applyEnv(cmd, nil); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if db != "/tmp/env.db" {
		t.Errorf("db = %q, expected the environment value", db)
	}
	if difficulty != "easy" {
		t.Errorf("difficulty = %q, an explicit flag should win", difficulty)
	}
}

func TestApplyEnvRejectsBadSeed(t *testing.T) {
	var seed int64
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Int64Var(&seed, "seed", 0, "")
	t.Setenv("RABBIT_SEED", "not-a-number")

	if err := applyEnv(cmd, nil); err == nil {
		t.Error("expected an error for a malformed seed")
	}
}

func TestCleanupFatalfReleasesBeforeExit(t *testing.T) {
	var order []string
	code := -1
	exit = func(c int) {
		order = append(order, "exit")
		code = c
	}
	t.Cleanup(func() { exit = os.Exit })

	var done cleanup
	done.add(func() error { order = append(order, "log"); return nil })
	done.add(func() error { order = append(order, "store"); return errors.New("already closed") })
	done.fatalf("Error: %v", errors.New("boom"))

	want := []string{"store", "log", "exit"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, expected %v", order, want)
	}
	if code != 1 {
		t.Errorf("exit code = %d, expected 1", code)
	}
}
