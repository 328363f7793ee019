package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/letterpack/letterpack/internal/logger"
	"github.com/letterpack/letterpack/internal/settings"
	"github.com/letterpack/letterpack/internal/storage"
	"github.com/letterpack/letterpack/pkg/api"
)

// timeNow is replaced in tests
var timeNow = time.Now

// commonFlags are shared by every rendering subcommand
type commonFlags struct {
	layout       string
	settingsPath string
	font         string
	boldFont     string
	backend      string
	output       string
	verbose      bool
}

func (f *commonFlags) register(fs *flag.FlagSet, defaultOutput string) {
	fs.StringVar(&f.layout, "layout", "", "レイアウト設定ファイル (.yaml)")
	fs.StringVar(&f.settingsPath, "settings", "", "アプリケーション設定ファイル")
	fs.StringVar(&f.font, "font", "", "日本語フォント (.ttf)")
	fs.StringVar(&f.boldFont, "bold-font", "", "太字フォント (.ttf)")
	fs.StringVar(&f.backend, "backend", "", "描画バックエンド: pdf, gopdf, record")
	fs.StringVar(&f.output, "output", defaultOutput, "出力先（ファイルパスまたは s3://bucket/key）")
	fs.BoolVar(&f.verbose, "verbose", false, "詳細ログを出力する")
}

// env is what a subcommand needs after flags and settings are merged
type env struct {
	settings *settings.Settings
	logger   *zap.Logger
	gen      *api.Generator
}

func (f *commonFlags) setup() (*env, error) {
	s, err := settings.Load(f.settingsPath)
	if err != nil {
		return nil, err
	}
	if f.backend != "" {
		s.Render.Backend = f.backend
	}
	if f.layout != "" {
		s.Render.LayoutPath = f.layout
	}
	if f.font != "" {
		s.Fonts.Regular = f.font
	}
	if f.boldFont != "" {
		s.Fonts.Bold = f.boldFont
	}
	if f.verbose {
		s.Log.Level = "debug"
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(&logger.Config{
		Level:  s.Log.Level,
		Format: s.Log.Format,
		Output: s.Log.Output,
	})
	if err != nil {
		return nil, err
	}

	opts := api.DefaultOptions()
	opts.LayoutPath = s.Render.LayoutPath
	opts.FontPath = s.Fonts.Regular
	opts.BoldFontPath = s.Fonts.Bold
	opts.FontDirectories = append(opts.FontDirectories, s.Fonts.Dirs...)
	opts.Backend = api.Backend(s.Render.Backend)
	opts.Logger = log

	return &env{settings: s, logger: log, gen: api.NewWithOptions(opts)}, nil
}

// ext returns the file extension the configured backend produces
func (e *env) ext() (string, string) {
	if e.gen.Options().Backend == api.BackendRecord {
		return ".json", "application/json"
	}
	return ".pdf", storage.ContentTypePDF
}

// write stores data at target: a local path or s3://bucket/key. An empty key
// gets a generated one. It returns the final location.
func (e *env) write(ctx context.Context, target string, data []byte) (string, error) {
	ext, contentType := e.ext()

	bucket, key, ok := storage.ParseS3URL(target)
	if !ok {
		sink, err := storage.NewLocalSink(filepath.Dir(target))
		if err != nil {
			return "", err
		}
		return sink.Put(ctx, filepath.Base(target), contentType, bytes.NewReader(data))
	}

	cfg := e.settings.Storage
	cfg.Bucket = bucket
	sink, err := storage.NewS3Sink(ctx, &cfg, storage.WithLogger(e.logger))
	if err != nil {
		return "", err
	}
	if key == "" || strings.HasSuffix(key, "/") {
		key = storage.NewObjectKey(key, ext, timeNow())
	}
	loc, err := sink.Put(ctx, key, contentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", target, err)
	}
	return loc, nil
}
