package accessor

// Key identifies one reflective call site.
type Key struct {
	Class  string
	Method string
}

// String formats the key as Class#Method, the refName column of a report.
func (k Key) String() string {
	return k.Class + "#" + k.Method
}

// Observation attributes one accessor to the call site it serves.
type Observation struct {
	Key      Key
	Accessor string
}

type Record struct {
	Key           Key
	AccessorNames []string
}

func (r Record) Count() int {
	return len(r.AccessorNames)
}

// Aggregator folds observations into records. It belongs to a single
// analysis run and is not safe for concurrent use.
type Aggregator struct {
	index   map[Key]int
	records []Record
}

func NewAggregator() *Aggregator {
	return &Aggregator{index: make(map[Key]int)}
}

// Observe appends the accessor to the record for its key, creating the
// record on first sight. Duplicate accessor names are kept.
func (a *Aggregator) Observe(obs Observation) {
	if a.index == nil {
		a.index = make(map[Key]int)
	}
	i, ok := a.index[obs.Key]
	if !ok {
		i = len(a.records)
		a.index[obs.Key] = i
		a.records = append(a.records, Record{Key: obs.Key})
	}
	a.records[i].AccessorNames = append(a.records[i].AccessorNames, obs.Accessor)
}

func (a *Aggregator) Len() int {
	return len(a.records)
}

// Records returns a copy of the records in order of first observation.
func (a *Aggregator) Records() []Record {
	out := make([]Record, len(a.records))
	for i, r := range a.records {
		out[i] = Record{Key: r.Key, AccessorNames: append([]string(nil), r.AccessorNames...)}
	}
	return out
}
