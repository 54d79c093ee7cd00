package modelcsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/lyndonlyu/tact/internal/apperr"
	"github.com/lyndonlyu/tact/internal/registry"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses a model table. The first record is the header; later records
// may be shorter or longer than it. Leading whitespace in fields is ignored.
func Read(r io.Reader) (registry.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return registry.Table{}, apperr.Wrap(apperr.KindIO, "modelcsv.read", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return registry.Table{}, apperr.New(apperr.KindValidation, "modelcsv.read", "CSV file is empty")
		}
		return registry.Table{}, &apperr.Error{Kind: apperr.KindValidation, Op: "modelcsv.read", Msg: "malformed CSV header", Err: err}
	}

	t := registry.Table{Header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return registry.Table{}, &apperr.Error{Kind: apperr.KindValidation, Op: "modelcsv.read", Msg: "malformed CSV", Err: err}
		}
		t.Rows = append(t.Rows, rec)
	}
	return t, nil
}

// ReadFile opens path and parses it with Read.
func ReadFile(path string) (registry.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return registry.Table{}, &apperr.Error{Kind: apperr.KindIO, Op: "modelcsv.read", Msg: "open " + path, Err: err}
	}
	defer f.Close()
	return Read(f)
}

// Write emits entries as a model table with the two required columns.
func Write(w io.Writer, entries []registry.ModelEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{registry.ColumnModel, registry.ColumnEncoding}); err != nil {
		return apperr.Wrap(apperr.KindIO, "modelcsv.write", err)
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.ModelName, e.EncodingName}); err != nil {
			return apperr.Wrap(apperr.KindIO, "modelcsv.write", err)
		}
	}
	cw.Flush()
	return apperr.Wrap(apperr.KindIO, "modelcsv.write", cw.Error())
}

// WriteFile writes entries to path, replacing any existing file.
func WriteFile(path string, entries []registry.ModelEntry) error {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return &apperr.Error{Kind: apperr.KindIO, Op: "modelcsv.write", Msg: fmt.Sprintf("write %s", path), Err: err}
	}
	return nil
}
