package crawler

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"estate-crawler/helpers"
)

// Field labels and markers as they appear in detail-page tables.
const (
	labelPrice       = "価格"
	labelSize        = "専有面積"
	labelCompleted   = "築年月"
	labelLocation    = "所在地"
	simulationMarker = "支払シミュレーション"

	loanAmountSelector = "#jsiLoanAmount"
)

var (
	yenDigits     = regexp.MustCompile(`[0-9][0-9,.]*`)
	documentYen   = regexp.MustCompile(`([0-9][0-9,.]*)万円`)
	leadingInt    = regexp.MustCompile(`^[0-9]+`)
	decimalNumber = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// priceStrategy tries to derive the listing price from a parsed document.
// Strategies are pure and evaluated in order; the first success wins. The
// order matters: earlier strategies are more reliable when they apply.
type priceStrategy func(doc *goquery.Document) (int64, bool)

var priceStrategies = []priceStrategy{
	priceFromLoanField,
	priceFromSimulationTable,
	priceFromPriceRow,
	priceFromDocumentScan,
}

// ExtractPrice derives the listing price in yen, or nil when no strategy
// succeeds
func ExtractPrice(doc *goquery.Document) *int64 {
	for _, strategy := range priceStrategies {
		if price, ok := strategy(doc); ok {
			return &price
		}
	}
	return nil
}

// priceFromLoanField reads the hidden numeric loan-amount form field
func priceFromLoanField(doc *goquery.Document) (int64, bool) {
	value, ok := doc.Find(loanAmountSelector).Attr("value")
	if !ok || strings.TrimSpace(value) == "" {
		return 0, false
	}
	digits := leadingInt.FindString(strings.ReplaceAll(strings.TrimSpace(value), ",", ""))
	if digits == "" {
		return 0, false
	}
	price, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// priceFromSimulationTable locates the table holding the payment-simulation
// cell; in that table the price sits on the 3rd row, first cell
func priceFromSimulationTable(doc *goquery.Document) (int64, bool) {
	var marker *goquery.Selection
	doc.Find("td").EachWithBreak(func(_ int, td *goquery.Selection) bool {
		if strings.Contains(helpers.CollapseSpace(td.Text()), simulationMarker) {
			marker = td
			return false
		}
		return true
	})
	if marker == nil {
		return 0, false
	}

	rows := marker.Closest("table").Find("tr")
	if rows.Length() < 3 {
		return 0, false
	}
	cell := rows.Eq(2).Find("td").First()
	if cell.Length() == 0 {
		return 0, false
	}
	return parseYen(helpers.CollapseSpace(cell.Text()))
}

// priceFromPriceRow reads the cell adjacent to the row labeled 価格
func priceFromPriceRow(doc *goquery.Document) (int64, bool) {
	text := CellText(doc, labelPrice)
	if text == "" {
		return 0, false
	}
	return parseYen(text)
}

// priceFromDocumentScan is the last resort: a regex scan of the serialized
// document for an amount followed by 万円
func priceFromDocumentScan(doc *goquery.Document) (int64, bool) {
	html, err := doc.Html()
	if err != nil {
		return 0, false
	}
	match := documentYen.FindStringSubmatch(html)
	if match == nil {
		return 0, false
	}
	digits := leadingInt.FindString(strings.ReplaceAll(match[1], ",", ""))
	if digits == "" {
		return 0, false
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return amount * 10_000, true
}

// parseYen extracts the first number from a cell text, strips thousands
// separators and applies the 万 (10,000) unit when present
func parseYen(text string) (int64, bool) {
	match := yenDigits.FindString(text)
	if match == "" {
		return 0, false
	}
	digits := leadingInt.FindString(strings.ReplaceAll(match, ",", ""))
	if digits == "" {
		return 0, false
	}
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	if strings.Contains(text, "万") {
		amount *= 10_000
	}
	return amount, true
}

// ExtractSize derives the exclusive area in square meters, or nil
func ExtractSize(doc *goquery.Document) *float64 {
	text := CellText(doc, labelSize)
	if text == "" {
		return nil
	}
	match := decimalNumber.FindString(text)
	if match == "" {
		return nil
	}
	size, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &size
}

// ExtractCompleted derives the free-text construction date, or nil
func ExtractCompleted(doc *goquery.Document) *string {
	return optionalCellText(doc, labelCompleted)
}

// ExtractLocation derives the free-text address, or nil
func ExtractLocation(doc *goquery.Document) *string {
	return optionalCellText(doc, labelLocation)
}

func optionalCellText(doc *goquery.Document, label string) *string {
	text := CellText(doc, label)
	if text == "" {
		return nil
	}
	return &text
}

// CellText is the label-lookup primitive: it finds the first header cell
// whose collapsed text contains label and returns the whitespace-collapsed
// text of the first following data cell, or "" when no such header exists.
func CellText(doc *goquery.Document, label string) string {
	var out string
	doc.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
		if !strings.Contains(helpers.CollapseSpace(th.Text()), label) {
			return true
		}
		td := th.NextAllFiltered("td").First()
		if td.Length() == 0 {
			return true
		}
		out = helpers.CollapseSpace(td.Text())
		return false
	})
	return out
}
