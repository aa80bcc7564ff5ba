package rollup

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// columns is the contractual CSV column order.
var columns = []string{
	"zone_id",
	"tierB_required_before",
	"tierB_required_after",
	"tierB_alt_total",
	"tierA_sites",
}

// WriteCSV writes the rollup table as CSV in the contractual column
// order.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return eris.Wrap(err, "rollup: write CSV header")
	}
	for _, r := range rows {
		record := []string{
			r.ZoneID,
			strconv.Itoa(r.RequiredBefore),
			strconv.Itoa(r.RequiredAfter),
			strconv.Itoa(r.AltTotal),
			strconv.Itoa(r.TierASites),
		}
		if err := cw.Write(record); err != nil {
			return eris.Wrapf(err, "rollup: write CSV row %s", r.ZoneID)
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "rollup: flush CSV")
}

// WriteTable writes a fixed-width text table for terminal output.
func WriteTable(w io.Writer, rows []Row) error {
	header := fmt.Sprintf("%-24s %10s %10s %8s %8s\n",
		"Zone", "Req Before", "Req After", "Alt", "Tier A")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "rollup: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 64)); err != nil {
		return eris.Wrap(err, "rollup: write table separator")
	}
	for _, r := range rows {
		line := fmt.Sprintf("%-24s %10d %10d %8d %8d\n",
			r.ZoneID, r.RequiredBefore, r.RequiredAfter, r.AltTotal, r.TierASites)
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrapf(err, "rollup: write table row %s", r.ZoneID)
		}
	}
	return nil
}
