package logging

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), CurrentLevel()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug": LevelDebug, " DEBUG ": LevelDebug,
		"info": LevelInfo, "": LevelInfo, "verbose": LevelInfo,
		"error": LevelError, "Error": LevelError,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelsFilterOutput(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
		skip  []string
	}{
		{LevelDebug, []string{"dbg", "inf", "err"}, nil},
		{LevelInfo, []string{"inf", "err"}, []string{"dbg"}},
		{LevelError, []string{"err"}, []string{"dbg", "inf"}},
	}
	for _, tt := range tests {
		buf := captureLog(t)
		SetLevel(tt.level)

		Debugf("dbg")
		Infof("inf")
		Errorf("err")

		out := buf.String()
		for _, w := range tt.want {
			if !strings.Contains(out, w) {
				t.Errorf("level %d: output %q missing %q", tt.level, out, w)
			}
		}
		for _, s := range tt.skip {
			if strings.Contains(out, s) {
				t.Errorf("level %d: output %q should not contain %q", tt.level, out, s)
			}
		}
	}
}

func TestInitFromEnv(t *testing.T) {
	captureLog(t)
	t.Setenv("LOG_LEVEL", "debug")
	InitFromEnv()
	if CurrentLevel() != LevelDebug {
		t.Fatalf("CurrentLevel() = %v, want debug", CurrentLevel())
	}
}
