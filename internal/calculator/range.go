package calculator

import (
	"errors"

	"StockLens/internal/model"
)

// PriceRange returns the highest high and lowest low across the given records.
func PriceRange(records []model.PriceRecord) (high, low float64, err error) {
	if len(records) == 0 {
		return 0, 0, errors.New("no records provided")
	}
	high = records[0].High.InexactFloat64()
	low = records[0].Low.InexactFloat64()
	for _, r := range records[1:] {
		if h := r.High.InexactFloat64(); h > high {
			high = h
		}
		if l := r.Low.InexactFloat64(); l < low {
			low = l
		}
	}
	return high, low, nil
}

// MaxClose returns the highest close price across the given records.
func MaxClose(records []model.PriceRecord) (float64, error) {
	if len(records) == 0 {
		return 0, errors.New("no records provided")
	}
	highest := records[0].Close.InexactFloat64()
	for _, r := range records[1:] {
		if c := r.Close.InexactFloat64(); c > highest {
			highest = c
		}
	}
	return highest, nil
}

// MaxVolume returns the largest volume across the given records.
func MaxVolume(records []model.PriceRecord) (int64, error) {
	if len(records) == 0 {
		return 0, errors.New("no records provided")
	}
	var highest int64
	for _, r := range records {
		if r.Volume > highest {
			highest = r.Volume
		}
	}
	return highest, nil
}
