package memory

import (
	"sort"
	"time"
)

func sortRecords[T any](recs []record[T], less func(a, b T) bool) {
	sort.SliceStable(recs, func(i, j int) bool {
		if less != nil {
			if less(recs[i].value, recs[j].value) {
				return true
			}
			if less(recs[j].value, recs[i].value) {
				return false
			}
		}
		return recs[i].seq < recs[j].seq
	})
}

func byTime(a, b time.Time) bool {
	return a.Before(b)
}
