package reconcile

import (
	"log/slog"

	"github.com/ctc-parts/catalog-importer/constants"
	"github.com/ctc-parts/catalog-importer/internal/catalog"
	"github.com/ctc-parts/catalog-importer/internal/segment"
)

// Reconciler zips a line's field groups into candidate records and
// deduplicates them across a run.
type Reconciler struct {
	logger *slog.Logger
	seen   map[string]struct{}
}

func New(logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		logger: logger,
		seen:   make(map[string]struct{}),
	}
}

// Reconcile builds one record per column index of lf. Field i of every
// class goes to record i; a class with fewer spans contributes an empty
// string, never a value from another column. Records lacking both part
// numbers are discarded.
func (r *Reconciler) Reconcile(lf segment.LineFields) []catalog.Record {
	cols := lf.ColumnCount()
	if cols == 0 {
		return nil
	}

	records := make([]catalog.Record, 0, cols)
	for i := 0; i < cols; i++ {
		priceA, priceB := segment.PairAt(lf.Prices, i)
		rec := catalog.Record{
			PartNo:          lf.PartNos.At(i),
			SecondaryPartNo: lf.SecondaryPartNos.At(i),
			Origin:          segment.StringAt(lf.Origins, i),
			Description:     lf.Descriptions.At(i),
			Application:     segment.StringAt(lf.Applications, i),
			Grade:           segment.StringAt(lf.Grades, i),
			MainCategory:    segment.StringAt(lf.Mains, i),
			SubCategory:     segment.StringAt(lf.Subs, i),
			Size:            segment.StringAt(lf.Sizes, i),
			Brand:           lf.Brands.At(i),
			Remarks:         segment.StringAt(lf.Remarks, i),
			LocationCode:    lf.Locations.At(i),
			Cost:            lf.Costs.At(i),
			PriceA:          priceA,
			PriceB:          priceB,
			Model:           segment.StringAt(lf.Models, i),
			Quantity:        segment.StringAt(lf.Quantities, i),
			Status:          constants.PartStatusActive,
		}
		if !rec.Retained() {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// Keep applies run-level dedup: the first record for a partNo+secondary key
// wins, later duplicates are dropped without being reported as conflicts.
func (r *Reconciler) Keep(rec catalog.Record) bool {
	key := rec.Key()
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Normalize canonicalizes the origin and grade vocabularies on a record.
// It runs once, immediately before serialization; unrecognized values pass
// through lower/upper-cased rather than failing.
func Normalize(rec catalog.Record) catalog.Record {
	if rec.Origin != "" {
		rec.Origin, _ = constants.CanonicalizeOrigin(rec.Origin)
	}
	if rec.Grade != "" {
		rec.Grade, _ = constants.CanonicalizeGrade(rec.Grade)
	}
	return rec
}
