package watcher

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/lemslab/benchpipe/model"
)

// splitRow parses one CSV line into fields. BenchVue quotes channel names
// that contain commas, so this goes through encoding/csv rather than a
// plain split; unparseable lines degrade to a comma split.
func splitRow(line string) []string {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	fields, err := r.Read()
	if err != nil {
		return strings.Split(line, ",")
	}
	return fields
}

// decodeLine converts one complete data row into measurements. Column 0 is
// the timestamp, kept verbatim; column 1 is the scan number, ignored. Each
// bound channel column is evaluated independently: blank or non-numeric
// cells are skipped without failing the rest of the row.
func decodeLine(line string, channels []channelBinding, source, extra string) []*model.Measurement {
	if strings.TrimSpace(line) == "" || len(channels) == 0 {
		return nil
	}
	fields := splitRow(line)
	if len(fields) < 1 {
		return nil
	}
	ts := strings.TrimSpace(fields[0])
	var res []*model.Measurement
	for _, c := range channels {
		if c.col >= len(fields) {
			continue
		}
		raw := strings.TrimSpace(fields[c.col])
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		res = append(res, &model.Measurement{
			Timestamp: ts,
			Source:    source,
			Channel:   c.name,
			Value:     value,
			Extra:     extra,
		})
	}
	return res
}
