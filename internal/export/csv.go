package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/verte-zerg/onething/internal/model"
)

// WriteCSV writes one row per stored day, oldest first.
// Start times are rendered in loc.
func WriteCSV(w io.Writer, data model.StorageData, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	cw := csv.NewWriter(w)

	// Header
	if err := cw.Write([]string{"Date", "Task", "Started", "Shipped"}); err != nil {
		return err
	}

	keys := make([]string, 0, len(data.Days))
	for key := range data.Days {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		entry := data.Days[key]
		row := []string{
			key,
			entry.Task,
			entry.Started(loc).Format(time.RFC3339),
			strconv.FormatBool(entry.Shipped),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// ToCSV writes data to path as CSV.
func ToCSV(data model.StorageData, loc *time.Location, path string) error {
	return writeFileAtomic(path, "days-*.csv", func(w io.Writer) error {
		return WriteCSV(w, data, loc)
	})
}
