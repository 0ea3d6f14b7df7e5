package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	ok := writeFile(t, "ok.txt", "0\n1\n3\nf\n")
	bad := writeFile(t, "bad.txt", "ff\n0xGG\n")
	empty := writeFile(t, "empty.txt", "")
	long := writeFile(t, "long.txt", "ff\n"+strings.Repeat("a", 2<<20)+"\n")

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantLog  string
	}{
		{name: "nothing to do", args: nil, wantCode: exitOK, wantLog: "Nothing to do"},
		{name: "scan", args: []string{"-f", ok, "-d", "1", "-workers", "2", "-adjacency"}, wantCode: exitOK, wantLog: "scan completed"},
		{name: "default distance", args: []string{"-f", ok}, wantCode: exitOK, wantLog: "max_distance=32"},
		{name: "missing file", args: []string{"-f", ok + ".missing"}, wantCode: exitOK, wantLog: "load failed"},
		{name: "parse error", args: []string{"-f", bad}, wantCode: exitError, wantLog: "invalid hexadecimal value"},
		{name: "line too long", args: []string{"-f", long, "-d", "1"}, wantCode: exitError, wantLog: "invalid hexadecimal value"},
		{name: "empty", args: []string{"-f", empty}, wantCode: exitOK, wantLog: "nothing to scan"},
		{name: "within drops", args: []string{"-f", ok, "-workers", "3", "-mode", "within"}, wantCode: exitOK, wantLog: "elements excluded from comparison"},
		{name: "invalid flag", args: []string{"-workers", "0"}, wantCode: exitError, wantLog: "invalid configuration"},
		{name: "invalid source", args: []string{"-f", "s3://bucket"}, wantCode: exitError, wantLog: "invalid source"},
		{name: "memory limit", args: []string{"-f", ok, "-memory-limit", "8"}, wantCode: exitError, wantLog: "memory limit exceeded"},
		{name: "json", args: []string{"-f", ok, "-log-format", "json"}, wantCode: exitOK, wantLog: `"msg":"scan completed"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			code := run(context.Background(), tt.args, &buf)
			assert.Equal(t, tt.wantCode, code, buf.String())
			assert.Contains(t, buf.String(), tt.wantLog)
		})
	}
}
