package scanflow

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// WorkbookSource is an opened xlsx stream.
type WorkbookSource io.Reader

// readWorkbookColumn pulls the first column of the first sheet, excluding the
// header row. Blank cells are kept here; the session batch normalization drops
// them together with manually pasted blanks.
func readWorkbookColumn(src WorkbookSource) ([]string, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyBatch
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}

	out := []string{}
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 {
			continue
		}
		out = append(out, row[0])
	}
	return out, nil
}
