package dataset

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// CSVHeader is the header written by WriteCSV.
var CSVHeader = []string{ColPage, ColSeqLen, ColCapacity, ColInMemory, ColRecency, ColFutureFreq, "policy", "fault"}

// WriteCSV writes rows as CSV to w.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}
	for i, r := range rows {
		rec := []string{
			strconv.Itoa(r.Page),
			strconv.Itoa(r.SeqLen),
			strconv.Itoa(r.Capacity),
			strconv.Itoa(r.InMemory),
			strconv.Itoa(r.Recency),
			strconv.Itoa(r.FutureFreq),
			r.Policy,
			strconv.Itoa(r.Fault),
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrapf(err, "writing csv row %d", i)
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}
