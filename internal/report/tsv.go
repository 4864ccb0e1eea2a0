package report

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Row is the evaluation found in one result archive.
type Row struct {
	File     string
	Measures []Measure
}

// ScanZips reads every *.zip in dir and collects the evaluation.prototext
// entries they contain. Archives without one are skipped.
func ScanZips(dir string) ([]Row, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.zip"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var rows []Row
	for _, file := range files {
		found, err := scanZip(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		rows = append(rows, found...)
	}
	return rows, nil
}

func scanZip(file string) ([]Row, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var rows []Row
	for _, f := range zr.File {
		if !strings.Contains(f.Name, EvaluationFile) {
			continue
		}
		ms, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		rows = append(rows, Row{File: file, Measures: ms})
	}
	return rows, nil
}

func readEntry(f *zip.File) ([]Measure, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return UnmarshalPrototext(data)
}

// WriteTSV writes one line per row, headed by the keys of the first row.
func WriteTSV(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := []string{"file"}
	for _, m := range rows[0].Measures {
		header = append(header, m.Key)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		record := []string{r.File}
		for _, m := range r.Measures {
			record = append(record, m.Value)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
