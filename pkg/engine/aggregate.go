package engine

import (
	"github.com/katpally123/attendance-dashboard/pkg/schema"
)

// CountBlock is a headcount split by employment category. Total is always
// AMZN + TEMP; UNKNOWN rows are reported separately and never reach Total.
type CountBlock struct {
	AMZN    int `json:"AMZN"`
	TEMP    int `json:"TEMP"`
	Total   int `json:"TOTAL"`
	Unknown int `json:"UNKNOWN"`
}

// Add returns the element-wise sum of two blocks.
func (c CountBlock) Add(o CountBlock) CountBlock {
	return CountBlock{
		AMZN:    c.AMZN + o.AMZN,
		TEMP:    c.TEMP + o.TEMP,
		Total:   c.Total + o.Total,
		Unknown: c.Unknown + o.Unknown,
	}
}

// Count counts people by category. In presentOnly mode only people flagged
// present are counted.
func Count(people []schema.EnrichedPerson, presentOnly bool) CountBlock {
	var c CountBlock
	for _, p := range people {
		if presentOnly && !p.IsPresent {
			continue
		}
		switch p.EmploymentCategory {
		case schema.CategoryAMZN:
			c.AMZN++
		case schema.CategoryTEMP:
			c.TEMP++
		default:
			c.Unknown++
		}
	}
	c.Total = c.AMZN + c.TEMP
	return c
}

// OnlyPresent returns the people flagged present.
func OnlyPresent(people []schema.EnrichedPerson) []schema.EnrichedPerson {
	out := make([]schema.EnrichedPerson, 0, len(people))
	for _, p := range people {
		if p.IsPresent {
			out = append(out, p)
		}
	}
	return out
}

// BucketCounts is one CountBlock per bucket, keyed by bucket name.
type BucketCounts map[string]CountBlock

// Sum adds up every bucket into a grand total.
func (bc BucketCounts) Sum() CountBlock {
	var total CountBlock
	for _, c := range bc {
		total = total.Add(c)
	}
	return total
}

// CountBuckets counts every group. presentOnly restricts each group to people
// flagged present first.
func CountBuckets(groups map[string][]schema.EnrichedPerson, presentOnly bool) BucketCounts {
	out := make(BucketCounts, len(groups))
	for name, people := range groups {
		out[name] = Count(people, presentOnly)
	}
	return out
}
