package main

import (
	"flag"
	"os"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/csvimport"
)

func (a *app) cmdSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return csvimport.WriteSample(a.stdout)
}

func (a *app) cmdConfig(args []string) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var layoutPath, output string
	fs.StringVar(&layoutPath, "layout", "", "注釈付きで出力するレイアウト設定（未指定で既定値）")
	fs.StringVar(&output, "output", "", "出力ファイル（未指定で標準出力）")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	cfg, err := config.Load(layoutPath)
	if err != nil {
		return err
	}
	data, err := config.Template(cfg)
	if err != nil {
		return err
	}
	if output == "" {
		_, err = a.stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0o644)
}
