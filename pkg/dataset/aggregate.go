package dataset

// Aggregate groups campaign results by (target, fuzzer). Targets and fuzzer
// groups appear in first-seen order; values inside a group keep the order of
// the input slice.
func Aggregate(results []CampaignResult) Dataset {
	var ds Dataset
	targetIdx := map[string]int{}

	for _, r := range results {
		ti, ok := targetIdx[r.Target]
		if !ok {
			ti = len(ds.Targets)
			targetIdx[r.Target] = ti
			ds.Targets = append(ds.Targets, Target{Name: r.Target})
		}
		t := &ds.Targets[ti]

		gi := -1
		for i := range t.Groups {
			if t.Groups[i].Fuzzer == r.Fuzzer {
				gi = i
				break
			}
		}
		if gi < 0 {
			gi = len(t.Groups)
			t.Groups = append(t.Groups, Group{Fuzzer: r.Fuzzer})
		}
		t.Groups[gi].Values = append(t.Groups[gi].Values, r.Coverage)
	}

	return ds
}

// Filter returns a dataset restricted to the named targets, keeping dataset
// order. An empty name list keeps everything.
func (d Dataset) Filter(targets []string) Dataset {
	if len(targets) == 0 {
		return d
	}
	keep := make(map[string]bool, len(targets))
	for _, t := range targets {
		keep[t] = true
	}
	out := Dataset{}
	for _, t := range d.Targets {
		if keep[t.Name] {
			out.Targets = append(out.Targets, t)
		}
	}
	return out
}
