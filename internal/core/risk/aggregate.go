package risk

// SegmentResult pairs a scored segment with its geometry slice
type SegmentResult struct {
	StartIdx int     `json:"start_idx"`
	EndIdx   int     `json:"end_idx"`
	Length   float64 `json:"length_m"`

	SegmentScore
}

// Aggregate combines segment scores into the route score:
// MaxWeight picks up worst-point risk, MeanWeight overall exposure.
// The mean is length-weighted; degenerate zero-length routes fall back
// to a plain mean so the result stays defined
func Aggregate(cfg Config, segs []SegmentResult) (float64, Tier) {
	if len(segs) == 0 {
		return 0, cfg.TierFor(0)
	}

	var maxScore, weighted, totalLen float64
	for _, s := range segs {
		if s.Score > maxScore {
			maxScore = s.Score
		}
		weighted += s.Score * s.Length
		totalLen += s.Length
	}

	var mean float64
	if totalLen > 0 {
		mean = weighted / totalLen
	} else {
		for _, s := range segs {
			mean += s.Score
		}
		mean /= float64(len(segs))
	}

	score := cfg.MaxWeight*maxScore + cfg.MeanWeight*mean
	return score, cfg.TierFor(score)
}
