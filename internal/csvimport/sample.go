package csvimport

import (
	"encoding/csv"
	"io"
)

var sampleRows = [][]string{
	{
		"123-4567", "東京都渋谷区XXX 1-2-3", "XXXビル4F", "", "山田 太郎", "03-1234-5678", "",
		"987-6543", "大阪府大阪市YYY 4-5-6", "", "", "田中 花子", "06-9876-5432", "",
	},
	{
		"111-2222", "京都府京都市ZZZ 7-8-9", "", "", "佐藤 次郎", "075-111-2222", "様",
		"555-6666", "福岡県福岡市AAA 10-11-12", "", "", "鈴木 美咲", "092-555-6666", "",
	},
}

// WriteSample writes the header and two example rows
func WriteSample(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	if err := cw.WriteAll(sampleRows); err != nil {
		return err
	}
	return cw.Error()
}
