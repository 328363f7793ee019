package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/letterpack/letterpack/internal/csvimport"
	"github.com/letterpack/letterpack/internal/render/record"
)

func runApp(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := newApp(strings.NewReader(stdin), &stdout, &stderr).run(context.Background(), args)
	return code, stdout.String(), stderr.String()
}

func loadRecord(t *testing.T, path string) record.Document {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	doc, err := record.Load(f)
	require.NoError(t, err)
	return doc
}

var labelFlags = []string{
	"-to-postal", "123-4567",
	"-to-address1", "東京都千代田区千代田1-1",
	"-to-name", "山田 太郎",
	"-to-phone", "03-1234-5678",
	"-from-postal", "987-6543",
	"-from-address1", "大阪府大阪市北区梅田1-1",
	"-from-name", "佐藤 花子",
}

func TestRunCommands(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
		wantErr  string
	}{
		{name: "no args", args: nil, wantCode: 1, wantErr: "使い方"},
		{name: "help", args: []string{"help"}, wantCode: 0, wantErr: "コマンド"},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: 1, wantErr: "不明なコマンド: frobnicate"},
		{name: "bad flag", args: []string{"sample", "-nope"}, wantCode: 2},
		{name: "batch without csv", args: []string{"batch"}, wantCode: 2, wantErr: "-csv"},
		{name: "sample", args: []string{"sample"}, wantCode: 0, wantOut: strings.Join(csvimport.Header, ",")},
		{name: "config template", args: []string{"config"}, wantCode: 0, wantOut: "layout_mode: center"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runApp(t, "", tt.args...)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Contains(t, stdout, tt.wantOut)
			}
			if tt.wantErr != "" {
				assert.Contains(t, stderr, tt.wantErr)
			}
		})
	}
}

func TestConfigToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "layout.yaml")
	code, _, stderr := runApp(t, "", "config", "-output", out)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "layout_mode")
}

func TestLabelFromFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out", "label.json")
	args := append([]string{"label", "-backend", "record", "-output", out}, labelFlags...)

	code, stdout, stderr := runApp(t, "", args...)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "PDFを生成しました: "+out)

	doc := loadRecord(t, out)
	assert.Equal(t, 1, doc.Pages)
	assert.Equal(t, 1, doc.CountText("山田 太郎"))
	assert.Equal(t, 1, doc.CountText("佐藤 花子"))
}

func TestLabelGridMode(t *testing.T) {
	out := filepath.Join(t.TempDir(), "label.json")
	args := append([]string{"label", "-backend", "record", "-mode", "grid_4up", "-output", out}, labelFlags...)

	code, _, stderr := runApp(t, "", args...)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, 4, loadRecord(t, out).CountText("山田 太郎"))
}

func TestLabelPartialFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "label.json")
	code, _, stderr := runApp(t, "", "label", "-backend", "record", "-output", out, "-to-postal", "123-4567")

	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "全て指定するか")
	assert.NoFileExists(t, out)
}

func TestLabelInvalidAddress(t *testing.T) {
	out := filepath.Join(t.TempDir(), "label.json")
	args := append([]string{"label", "-backend", "record", "-output", out}, labelFlags...)
	args = append(args, "-to-name", "   ")

	code, _, stderr := runApp(t, "", args...)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "name")
	assert.NoFileExists(t, out)
}

func TestLabelInteractive(t *testing.T) {
	out := filepath.Join(t.TempDir(), "interactive.json")
	input := strings.Join([]string{
		"123-4567", "東京都千代田区千代田1-1", "", "", "山田 太郎", "", "03-1234-5678",
		"987-6543", "大阪府大阪市北区梅田1-1", "梅田ビル 5F", "", "佐藤 花子", "", "",
		out,
	}, "\n") + "\n"

	code, stdout, stderr := runApp(t, input, "label", "-backend", "record")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "【お届け先情報】")
	assert.Contains(t, stdout, "【ご依頼主情報】")

	doc := loadRecord(t, out)
	assert.Equal(t, 1, doc.CountText("山田 太郎"))
	assert.Equal(t, 1, doc.CountText("梅田ビル 5F"))
	assert.Equal(t, 1, doc.CountText("様"))
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	var rows bytes.Buffer
	rows.WriteString(strings.Join(csvimport.Header, ",") + "\n")
	for i := 0; i < 5; i++ {
		rows.WriteString("123-4567,東京都千代田区1-1,,,山田 太郎,03-1234-5678,様,987-6543,大阪府大阪市1-1,,,佐藤 花子,,\n")
	}
	csvPath := filepath.Join(dir, "labels.csv")
	require.NoError(t, os.WriteFile(csvPath, rows.Bytes(), 0o644))
	out := filepath.Join(dir, "labels.json")

	code, stdout, stderr := runApp(t, "", "batch", "-backend", "record", "-csv", csvPath, "-output", out)
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "5 件のラベル")
	assert.Contains(t, stdout, "2 ページ")

	doc := loadRecord(t, out)
	assert.Equal(t, 2, doc.Pages)
	assert.Equal(t, 5, doc.CountText("山田 太郎"))
}

func TestBatchInvalidCSV(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("to_postal,to_name\n123-4567,山田\n"), 0o644))

	code, _, stderr := runApp(t, "", "batch", "-backend", "record", "-csv", csvPath, "-output", filepath.Join(dir, "x.json"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "エラー:")
}
