package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/letterpack/letterpack/internal/config"
	"github.com/letterpack/letterpack/internal/csvimport"
	"github.com/letterpack/letterpack/pkg/api"
)

func (a *app) cmdBatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		common  commonFlags
		csvPath string
	)
	common.register(fs, "labels.pdf")
	fs.StringVar(&csvPath, "csv", "", "ラベルデータのCSVファイル")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if csvPath == "" {
		fmt.Fprintln(a.stderr, "エラー: -csv を指定してください")
		fs.Usage()
		return errUsage
	}

	e, err := common.setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	fmt.Fprintf(a.stdout, "CSVファイルを読み込み中: %s\n", csvPath)
	result, err := csvimport.ParseFile(csvPath, csvimport.WithLogger(e.logger))
	if err != nil {
		return err
	}
	if len(result.UnknownColumns) > 0 {
		fmt.Fprintf(a.stderr, "警告: 不明なカラムがあります（無視されます）: %v\n", result.UnknownColumns)
	}
	fmt.Fprintf(a.stdout, "✓ %d 件のラベルを読み込みました\n", len(result.Pairs))

	data, pages, err := e.gen.WithOption(api.WithLayoutMode(config.ModeGrid4Up)).
		GenerateBatchBytes(ctx, result.Pairs)
	if err != nil {
		return err
	}
	loc, err := e.write(ctx, common.output, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✓ PDFを生成しました: %s（%d ページ）\n", loc, pages)
	return nil
}
