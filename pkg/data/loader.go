package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/go-gota/gota/series"
)

// MissingValues are the cell values treated as absent.
var MissingValues = []string{"", "NA", "NaN", "<nil>", "null"}

// indexMarker identifies index columns written by dataframe exports. A blank
// header cell is the same artifact before a reader names it "Unnamed: N".
const indexMarker = "Unnamed"

// Load reads the passenger CSV at path. Index artifact columns are dropped.
// Any failure is a *LoadError.
func Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Kind: KindNotFound, Path: path, Err: err}
		}
		return nil, &LoadError{Kind: KindOther, Path: path, Err: err}
	}
	defer file.Close()

	t, err := Read(file)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Kind: KindOther, Path: path, Err: err}
	}
	return t, nil
}

// Read parses a passenger CSV from r. A header row is required; a header
// with no rows yields an empty table. Short rows are padded with missing
// values, rows longer than the header are a parse error.
func Read(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &LoadError{Kind: KindParse, Err: err}
		}
		return nil, &LoadError{Kind: KindOther, Err: err}
	}
	if len(records) == 0 {
		return nil, &LoadError{Kind: KindEmpty, Err: errors.New("no columns to parse")}
	}

	header, rows := records[0], records[1:]
	for i, row := range rows {
		if len(row) > len(header) {
			return nil, &LoadError{Kind: KindParse, Err: &csv.ParseError{
				StartLine: i + 2, Line: i + 2, Err: csv.ErrFieldCount,
			}}
		}
	}

	seen := make(map[string]int, len(header))
	var cols []series.Series
	for c, name := range header {
		name = strings.TrimSpace(name)
		if name == "" || strings.Contains(name, indexMarker) {
			continue
		}
		name = uniqueName(name, seen)
		typ, ok := columnTypes[name]
		if !ok {
			typ = series.String
		}
		values := make([]string, len(rows))
		for i, row := range rows {
			v := "NaN"
			if c < len(row) {
				v = normalize(strings.TrimSpace(row[c]), name)
			}
			values[i] = v
		}
		cols = append(cols, series.New(values, typ, name))
	}
	if len(cols) == 0 {
		return nil, &LoadError{Kind: KindEmpty, Err: errors.New("no data columns")}
	}

	t, err := newTable(cols)
	if err != nil {
		return nil, &LoadError{Kind: KindOther, Err: err}
	}
	return t, nil
}

// normalize maps missing markers to NaN and boolean outcomes to 0/1.
func normalize(v, col string) string {
	if isMissing(v) {
		return "NaN"
	}
	if col == ColSurvived {
		switch strings.ToLower(v) {
		case "true":
			return "1"
		case "false":
			return "0"
		}
	}
	return v
}

// uniqueName suffixes repeated headers the way pandas does: Ticket, Ticket.1, ...
func uniqueName(name string, seen map[string]int) string {
	n, dup := seen[name]
	seen[name] = n + 1
	if !dup {
		return name
	}
	for {
		candidate := fmt.Sprintf("%s.%d", name, n)
		n++
		if _, taken := seen[candidate]; !taken {
			seen[name] = n
			seen[candidate] = 1
			return candidate
		}
	}
}

// LoadOrReport loads the dataset and logs a message for the failure kind
// instead of returning it. A nil table means the load failed.
func LoadOrReport(path string, logger *slog.Logger) *Table {
	t, err := Load(path)
	if err == nil {
		logger.Debug("dataset loaded", "path", path, "rows", t.Len(), "columns", len(t.Names()))
		return t
	}
	switch {
	case errors.Is(err, ErrNotFound):
		logger.Error("Error: The file at "+path+" was not found.", "path", path)
	case errors.Is(err, ErrEmpty):
		logger.Error("Error: The file is empty.", "path", path)
	case errors.Is(err, ErrParse):
		logger.Error("Error: There was a problem parsing the file.", "path", path, "error", err)
	default:
		logger.Error("An error occurred: "+err.Error(), "path", path)
	}
	return nil
}

func isMissing(v string) bool { return slices.Contains(MissingValues, v) }
