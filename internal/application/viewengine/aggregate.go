package viewengine

// GroupKey buckets records by a field value or a derived label.
// Func, when set, takes precedence over Field.
type GroupKey struct {
	Field string
	Func  func(Record) string
}

// GroupByField groups on a field's display string.
func GroupByField(field string) GroupKey { return GroupKey{Field: field} }

// Label returns the bucket label for r. Missing fields label as "".
func (k GroupKey) Label(r Record) string {
	if k.Func != nil {
		return k.Func(r)
	}
	return r.String(k.Field)
}

// Group is the set of records sharing one label.
type Group struct {
	Label   string
	Count   int
	Records []Record
}

// Bucket is a per-label aggregate.
type Bucket struct {
	Label string
	Count int
	Sum   float64
}

// GroupBy partitions records by key.
// PRE: none
// POST: groups appear in first-encounter order; members keep input order
func GroupBy(records []Record, key GroupKey) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, r := range records {
		label := key.Label(r)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, Group{Label: label})
		}
		groups[i].Count++
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// CountBy counts records per label in a single pass.
// PRE: none
// POST: buckets appear in first-encounter order; Sum is zero
func CountBy(records []Record, key GroupKey) []Bucket {
	return bucketize(records, key, "")
}

// SumBy adds up a numeric field. Missing or non-numeric values count as zero.
func SumBy(records []Record, field string) float64 {
	var total float64
	for _, r := range records {
		if n, ok := r.Number(field); ok {
			total += n
		}
	}
	return total
}

// SumByGroup adds up a numeric field per label.
// PRE: none
// POST: buckets appear in first-encounter order; Count counts all members
func SumByGroup(records []Record, field string, key GroupKey) []Bucket {
	return bucketize(records, key, field)
}

// AverageBy returns the mean of the numeric values of field, or 0 if none.
func AverageBy(records []Record, field string) float64 {
	var total float64
	var n int
	for _, r := range records {
		if v, ok := r.Number(field); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// PercentOfTarget returns current as a percentage of target.
// PRE: none
// POST: 0 when target <= 0; never negative; may exceed 100
func PercentOfTarget(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	pct := current * 100 / target
	if pct < 0 {
		return 0
	}
	return pct
}

// BucketCount returns the count for label, or 0.
func BucketCount(buckets []Bucket, label string) int {
	for _, b := range buckets {
		if b.Label == label {
			return b.Count
		}
	}
	return 0
}

func bucketize(records []Record, key GroupKey, sumField string) []Bucket {
	buckets := make([]Bucket, 0)
	index := make(map[string]int)
	for _, r := range records {
		label := key.Label(r)
		i, ok := index[label]
		if !ok {
			i = len(buckets)
			index[label] = i
			buckets = append(buckets, Bucket{Label: label})
		}
		buckets[i].Count++
		if sumField != "" {
			if n, ok := r.Number(sumField); ok {
				buckets[i].Sum += n
			}
		}
	}
	return buckets
}
