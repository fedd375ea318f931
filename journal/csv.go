package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSVJournal struct {
	fills  *csv.Writer
	equity *csv.Writer
	ff, ef *os.File
}

func NewCSV(fillsPath, equityPath string) (*CSVJournal, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		ff.Close()
		return nil, err
	}

	fw := csv.NewWriter(ff)
	ew := csv.NewWriter(ef)

	if err := fw.Write([]string{"fill_id", "time", "kind", "price", "amount", "fee"}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"time", "value"}); err != nil {
		return nil, err
	}

	fw.Flush()
	if err := fw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{fills: fw, equity: ew, ff: ff, ef: ef}, nil
}

func (j *CSVJournal) RecordFill(f FillRecord) error {
	err := j.fills.Write([]string{
		f.ID,
		f.Time.Format(time.RFC3339),
		f.Kind,
		ftoa(f.Price),
		ftoa(f.Amount),
		ftoa(f.Fee),
	})
	if err != nil {
		return err
	}
	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) RecordEquity(e EquityPoint) error {
	err := j.equity.Write([]string{
		e.Time.Format(time.RFC3339),
		ftoa(e.Value),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.fills.Flush()
	if err := j.fills.Error(); err != nil {
		return err
	}
	j.equity.Flush()
	if err := j.equity.Error(); err != nil {
		return err
	}

	if err := j.ff.Close(); err != nil {
		return err
	}
	return j.ef.Close()
}

func ftoa(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
