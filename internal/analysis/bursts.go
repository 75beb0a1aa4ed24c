package analysis

import "math"

// DetectSpikes returns the indices where xs crosses threshold upward.
func DetectSpikes(xs []float64, threshold float64) []int {
	var spikes []int
	for i := 1; i < len(xs); i++ {
		if xs[i-1] < threshold && xs[i] >= threshold {
			spikes = append(spikes, i)
		}
	}
	return spikes
}

// Burst is a run of spikes with no quiet interval longer than the gap.
type Burst struct {
	Start, End int // sample indices of first and last spike
	Spikes     int
}

// GroupBursts groups spike indices into bursts. times gives the time of
// every sample; spikes further apart than gap start a new burst.
func GroupBursts(spikes []int, times []float64, gap float64) []Burst {
	var bursts []Burst
	for _, idx := range spikes {
		n := len(bursts)
		if n > 0 && times[idx]-times[bursts[n-1].End] <= gap {
			bursts[n-1].End = idx
			bursts[n-1].Spikes++
			continue
		}
		bursts = append(bursts, Burst{Start: idx, End: idx, Spikes: 1})
	}
	return bursts
}

// BurstStats summarizes the burst structure of a trace.
type BurstStats struct {
	Spikes          int
	Bursts          int
	SpikesPerBurst  float64
	MeanInterval    float64 // between burst onsets
	IntervalCV      float64
	MeanBurstLength float64
}

func SummarizeBursts(xs, times []float64, threshold, gap float64) BurstStats {
	spikes := DetectSpikes(xs, threshold)
	bursts := GroupBursts(spikes, times, gap)

	st := BurstStats{Spikes: len(spikes), Bursts: len(bursts)}
	if len(bursts) == 0 {
		return st
	}
	st.SpikesPerBurst = float64(len(spikes)) / float64(len(bursts))

	length := 0.0
	for _, b := range bursts {
		length += times[b.End] - times[b.Start]
	}
	st.MeanBurstLength = length / float64(len(bursts))

	if len(bursts) < 2 {
		return st
	}
	intervals := make([]float64, len(bursts)-1)
	for i := 1; i < len(bursts); i++ {
		intervals[i-1] = times[bursts[i].Start] - times[bursts[i-1].Start]
	}
	mean, std := meanStd(intervals)
	st.MeanInterval = mean
	if mean > 0 {
		st.IntervalCV = std / mean
	}
	return st
}

func meanStd(v []float64) (float64, float64) {
	mean := 0.0
	for _, x := range v {
		mean += x
	}
	mean /= float64(len(v))

	ss := 0.0
	for _, x := range v {
		ss += (x - mean) * (x - mean)
	}
	return mean, math.Sqrt(ss / float64(len(v)))
}
