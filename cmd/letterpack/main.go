package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "警告: .env を読み込めませんでした: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := newApp(os.Stdin, os.Stdout, os.Stderr).run(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (a *app) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		a.printUsage()
		return 1
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "label":
		err = a.cmdLabel(ctx, rest)
	case "batch":
		err = a.cmdBatch(ctx, rest)
	case "sample":
		err = a.cmdSample(rest)
	case "config":
		err = a.cmdConfig(rest)
	case "serve":
		err = a.cmdServe(ctx, rest)
	case "help", "-h", "--help":
		a.printUsage()
		return 0
	default:
		fmt.Fprintf(a.stderr, "不明なコマンド: %s\n", cmd)
		a.printUsage()
		return 1
	}

	if err != nil {
		if errors.Is(err, errUsage) {
			return 2
		}
		fmt.Fprintf(a.stderr, "エラー: %v\n", err)
		return 1
	}
	return 0
}

// errUsage marks errors already reported together with usage text
var errUsage = errors.New("usage")

func (a *app) printUsage() {
	fmt.Fprint(a.stderr, `レターパック ラベル作成ツール

使い方:
  letterpack <command> [options]

コマンド:
  label    ラベルを1枚作成する（引数がなければ対話形式）
  batch    CSVファイルから4丁付で一括作成する
  sample   サンプルCSVを標準出力に出力する
  config   レイアウト設定のテンプレートを出力する
  serve    Webフォームを起動する
  help     この使い方を表示する

共通オプション:
  -layout string     レイアウト設定ファイル (.yaml)
  -settings string   アプリケーション設定ファイル (letterpack.yaml / .toml)
  -font string       日本語フォント (.ttf)
  -bold-font string  郵便番号用の太字フォント (.ttf)
  -backend string    pdf, gopdf, record
  -output string     出力先（ファイルパスまたは s3://bucket/key）
  -verbose           詳細ログを出力する
`)
}
