package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func TestCellText(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>所在地</th><td>  東京都
			江東区亀戸  </td></tr>
		<tr><th>専有面積</th><td>70.5m²(壁芯)</td></tr>
	</table></body></html>`)

	assert.Equal(t, "東京都 江東区亀戸", CellText(doc, "所在地"))
	assert.Equal(t, "70.5m²(壁芯)", CellText(doc, "専有面積"))
	assert.Equal(t, "", CellText(doc, "価格"), "missing label yields empty")
}

func TestCellTextMatchesLabelSubstring(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>物件価格 <span>ヒント</span></th><td>3,500万円</td></tr>
	</table></body></html>`)

	assert.Equal(t, "3,500万円", CellText(doc, "価格"))
}

func TestCellTextSkipsHeaderWithoutDataCell(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>価格</th></tr>
		<tr><th>価格</th><td>2,000万円</td></tr>
	</table></body></html>`)

	assert.Equal(t, "2,000万円", CellText(doc, "価格"))
}

func TestExtractPriceFromLoanField(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<input type="hidden" id="jsiLoanAmount" value="34800000">
		<table><tr><th>価格</th><td>9,999万円</td></tr></table>
	</body></html>`)

	price := ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, int64(34800000), *price, "the hidden loan field takes priority")
}

func TestExtractPriceFromSimulationTable(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>ローン</th><td>支払シミュレーション</td></tr>
		<tr><td>頭金</td></tr>
		<tr><td>3,480万円</td><td>35年</td></tr>
	</table></body></html>`)

	price := ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, int64(34800000), *price)
}

func TestExtractPriceFromPriceRow(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>価格</th><td>3,500万円</td></tr>
	</table></body></html>`)

	price := ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, int64(35000000), *price)
}

func TestExtractPriceRowWithoutManUnit(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>価格</th><td>35,000,000円</td></tr>
	</table></body></html>`)

	price := ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, int64(35000000), *price)
}

func TestExtractPriceFromDocumentScan(t *testing.T) {
	doc := parseDoc(t, `<html><body>
		<p>この物件は2,980万円で販売中です。</p>
	</body></html>`)

	price := ExtractPrice(doc)
	assert.NotNil(t, price)
	assert.Equal(t, int64(29800000), *price)
}

func TestExtractPriceUnknown(t *testing.T) {
	doc := parseDoc(t, `<html><body><p>価格はお問い合わせください</p></body></html>`)
	assert.Nil(t, ExtractPrice(doc))
}

func TestExtractSize(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>専有面積</th><td>70.5m²(壁芯)</td></tr>
	</table></body></html>`)

	size := ExtractSize(doc)
	assert.NotNil(t, size)
	assert.Equal(t, 70.5, *size)
}

func TestExtractSizeAbsent(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>専有面積</th><td>未定</td></tr>
	</table></body></html>`)
	assert.Nil(t, ExtractSize(doc))

	doc = parseDoc(t, `<html><body></body></html>`)
	assert.Nil(t, ExtractSize(doc))
}

func TestExtractCompletedAndLocation(t *testing.T) {
	doc := parseDoc(t, `<html><body><table>
		<tr><th>築年月</th><td>2005年3月</td></tr>
		<tr><th>所在地</th><td>東京都江東区亀戸1丁目</td></tr>
	</table></body></html>`)

	completed := ExtractCompleted(doc)
	assert.NotNil(t, completed)
	assert.Equal(t, "2005年3月", *completed)

	location := ExtractLocation(doc)
	assert.NotNil(t, location)
	assert.Equal(t, "東京都江東区亀戸1丁目", *location)

	assert.Nil(t, ExtractCompleted(parseDoc(t, `<html><body></body></html>`)))
}
