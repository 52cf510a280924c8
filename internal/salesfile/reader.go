// =============================================================================
// Sales Analytics - Sales File Reader
// =============================================================================
//
// This module reads and parses the pipe-delimited sales data file exported by
// the legacy point-of-sale system. It handles:
//   - Encoding auto-detection (a fixed ordered list of encodings is tried
//     until one decodes cleanly)
//   - Header row and blank line skipping
//   - Silent dropping of malformed rows (wrong field count, non-numeric
//     quantity or price)
//
// FILE FORMAT (8 pipe-delimited columns, one header row):
//   TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region
//   T001|2024-12-01|P101|Laptop|2|45000|C001|North
//
// Malformed rows are a parsing concern and are dropped without being counted;
// the validator's invalid counter is reserved for business-rule failures.
//
// =============================================================================

package salesfile

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/retailops/sales-analytics/internal/types"
)

// FieldCount is the number of pipe-delimited columns in the input file.
const FieldCount = 8

// =============================================================================
// READING
// =============================================================================

// ReadLines reads the sales data file and returns its non-empty data lines,
// with the header row removed. The encodings are tried in order until one
// decodes the file cleanly.
//
// A missing file or a file no encoding can decode is logged and returned as
// an empty slice, never as an error: the pipeline degrades to zero records
// downstream instead of aborting.
func ReadLines(filename string, encodings []string, logger *slog.Logger) []string {
	data, err := os.ReadFile(filename)
	if err != nil {
		logger.Error("failed to read sales data file", "file", filename, "error", err)
		return nil
	}

	for _, name := range encodings {
		text, err := decode(data, name)
		if err != nil {
			logger.Debug("encoding rejected", "file", filename, "encoding", name, "error", err)
			continue
		}
		logger.Debug("decoded sales data file", "file", filename, "encoding", name)
		return splitDataLines(text)
	}

	logger.Error("unable to decode sales data file with any configured encoding",
		"file", filename, "encodings", encodings)
	return nil
}

// decode converts raw file bytes to a string using the named encoding.
func decode(data []byte, encoding string) (string, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("data is not valid UTF-8")
		}
		return string(data), nil
	case "latin-1", "latin1", "iso-8859-1":
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "cp1252", "windows-1252":
		out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// splitDataLines breaks decoded file content into trimmed data lines,
// dropping blank lines and the header row.
func splitDataLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(strings.ToLower(line), "transactionid") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// =============================================================================
// PARSING
// =============================================================================

// ParseTransactions parses raw pipe-delimited lines into Transaction records.
// Rows with the wrong field count or non-numeric quantity/price are silently
// skipped; they never raise an error and are not counted as invalid.
func ParseTransactions(rawLines []string) []types.Transaction {
	transactions := make([]types.Transaction, 0, len(rawLines))

	for _, line := range rawLines {
		parts := strings.Split(line, "|")
		if len(parts) != FieldCount {
			continue
		}

		// Commas are stripped from the product name so downstream
		// pipe-delimited output stays single-token per field, and from the
		// numeric fields so "45,000" parses.
		productName := strings.TrimSpace(strings.ReplaceAll(parts[3], ",", " "))
		quantityStr := strings.TrimSpace(strings.ReplaceAll(parts[4], ",", ""))
		unitPriceStr := strings.TrimSpace(strings.ReplaceAll(parts[5], ",", ""))

		quantity, err := strconv.Atoi(quantityStr)
		if err != nil {
			continue
		}
		unitPrice, err := strconv.ParseFloat(unitPriceStr, 64)
		if err != nil {
			continue
		}

		transactions = append(transactions, types.Transaction{
			TransactionID: strings.TrimSpace(parts[0]),
			Date:          strings.TrimSpace(parts[1]),
			ProductID:     strings.TrimSpace(parts[2]),
			ProductName:   productName,
			Quantity:      quantity,
			UnitPrice:     unitPrice,
			CustomerID:    strings.TrimSpace(parts[6]),
			Region:        strings.TrimSpace(parts[7]),
		})
	}

	return transactions
}
