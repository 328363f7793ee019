package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/letterpack/letterpack/internal/model"
	"github.com/letterpack/letterpack/pkg/api"
)

// addressFlags are the -to-* or -from-* flags of one party
type addressFlags struct {
	postal, address1, address2, address3, name, phone, honorific string
}

func (f *addressFlags) register(fs *flag.FlagSet, side, caption string) {
	fs.StringVar(&f.postal, side+"-postal", "", caption+"の郵便番号")
	fs.StringVar(&f.address1, side+"-address1", "", caption+"の住所1行目")
	fs.StringVar(&f.address2, side+"-address2", "", caption+"の住所2行目")
	fs.StringVar(&f.address3, side+"-address3", "", caption+"の住所3行目")
	fs.StringVar(&f.name, side+"-name", "", caption+"の氏名")
	fs.StringVar(&f.phone, side+"-phone", "", caption+"の電話番号")
	fs.StringVar(&f.honorific, side+"-honorific", "", caption+"の敬称")
}

func (f *addressFlags) address() model.Address {
	return model.Address{
		PostalCode: f.postal,
		Address1:   f.address1,
		Address2:   f.address2,
		Address3:   f.address3,
		Name:       f.name,
		Phone:      f.phone,
		Honorific:  f.honorific,
	}
}

func (f *addressFlags) required() []string {
	return []string{f.postal, f.address1, f.name}
}

func (a *app) cmdLabel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("label", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	var (
		common   commonFlags
		to, from addressFlags
		mode     string
	)
	common.register(fs, "label.pdf")
	to.register(fs, "to", "お届け先")
	from.register(fs, "from", "ご依頼主")
	fs.StringVar(&mode, "mode", "", "レイアウト: center, grid_4up（設定ファイルの値を上書き）")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	required := append(to.required(), from.required()...)
	given := 0
	for _, v := range required {
		if v != "" {
			given++
		}
	}

	var (
		toAddr, fromAddr = to.address(), from.address()
		output           = common.output
	)
	switch given {
	case len(required):
	case 0:
		var err error
		toAddr, fromAddr, output, err = a.prompt(common.output)
		if err != nil {
			return err
		}
	default:
		fmt.Fprintln(a.stderr, "エラー: 住所情報は全て指定するか、全て未指定にしてください")
		fs.Usage()
		return errUsage
	}

	pair, err := model.NewLabelPair(toAddr, fromAddr, true)
	if err != nil {
		return err
	}

	e, err := common.setup()
	if err != nil {
		return err
	}
	defer e.logger.Sync()

	gen := e.gen
	if mode != "" {
		gen = gen.WithOption(api.WithLayoutMode(mode))
	}
	fmt.Fprintf(a.stdout, "PDFを生成中: %s\n", output)
	data, err := gen.GenerateBytes(ctx, pair)
	if err != nil {
		return err
	}
	loc, err := e.write(ctx, output, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✓ PDFを生成しました: %s\n", loc)
	return nil
}

// prompt reads both parties and the output path interactively
func (a *app) prompt(defaultOutput string) (model.Address, model.Address, string, error) {
	sc := bufio.NewScanner(a.stdin)
	ask := func(q string) string {
		fmt.Fprint(a.stdout, q)
		if !sc.Scan() {
			return ""
		}
		return strings.TrimSpace(sc.Text())
	}

	fmt.Fprintln(a.stdout, "【お届け先情報】")
	to := model.Address{
		PostalCode: ask("郵便番号（例: 123-4567）: "),
		Address1:   ask("住所1行目（必須）: "),
		Address2:   ask("住所2行目（任意）: "),
		Address3:   ask("住所3行目（任意）: "),
		Name:       ask("氏名: "),
		Honorific:  ask("敬称（例: 様、殿、御中）※未入力で「様」: "),
		Phone:      ask("電話番号: "),
	}
	fmt.Fprintln(a.stdout)

	fmt.Fprintln(a.stdout, "【ご依頼主情報】")
	from := model.Address{
		PostalCode: ask("郵便番号（例: 987-6543）: "),
		Address1:   ask("住所1行目（必須）: "),
		Address2:   ask("住所2行目（任意）: "),
		Address3:   ask("住所3行目（任意）: "),
		Name:       ask("氏名: "),
		Honorific:  ask("敬称 ※未入力で敬称なし: "),
		Phone:      ask("電話番号: "),
	}
	fmt.Fprintln(a.stdout)

	output := ask(fmt.Sprintf("出力ファイル名（デフォルト: %s）: ", defaultOutput))
	if output == "" {
		output = defaultOutput
	}
	if err := sc.Err(); err != nil {
		return model.Address{}, model.Address{}, "", err
	}
	return to, from, output, nil
}
