package web

type indexData struct {
	DefaultLayout string
}

const indexHTML = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>レターパック ラベル作成</title>
<style>
body { font-family: sans-serif; max-width: 44rem; margin: 2rem auto; color: #222; }
fieldset { margin-bottom: 1rem; }
label { display: block; margin: .4rem 0 .1rem; }
input[type=text] { width: 100%; }
</style>
</head>
<body>
<h1>レターパック ラベル作成</h1>
<form method="post" action="/labels">
<fieldset>
<legend>お届け先</legend>
<label>郵便番号 <input type="text" name="to_postal" required></label>
<label>住所1 <input type="text" name="to_address1" required></label>
<label>住所2 <input type="text" name="to_address2"></label>
<label>住所3 <input type="text" name="to_address3"></label>
<label>氏名 <input type="text" name="to_name" required></label>
<label>電話番号 <input type="text" name="to_phone"></label>
<label>敬称 <input type="text" name="to_honorific" placeholder="様"></label>
</fieldset>
<fieldset>
<legend>ご依頼主</legend>
<label>郵便番号 <input type="text" name="from_postal" required></label>
<label>住所1 <input type="text" name="from_address1" required></label>
<label>住所2 <input type="text" name="from_address2"></label>
<label>住所3 <input type="text" name="from_address3"></label>
<label>氏名 <input type="text" name="from_name" required></label>
<label>電話番号 <input type="text" name="from_phone"></label>
<label>敬称 <input type="text" name="from_honorific"></label>
</fieldset>
<fieldset>
<legend>レイアウト</legend>
<label><input type="radio" name="layout" value="center"{{if eq .DefaultLayout "center"}} checked{{end}}> 中央に1枚</label>
<label><input type="radio" name="layout" value="grid_4up"{{if eq .DefaultLayout "grid_4up"}} checked{{end}}> 4丁付</label>
</fieldset>
<button type="submit">PDFを作成</button>
</form>

<h2>CSVから一括作成</h2>
<form method="post" action="/labels/batch" enctype="multipart/form-data">
<input type="file" name="csv" accept=".csv,text/csv" required>
<button type="submit">PDFを作成</button>
</form>
</body>
</html>
`
