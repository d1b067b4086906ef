package scoring

import (
	"math"

	"github.com/jonathan/skillsense/internal/types"
)

// AcceptanceThreshold is the minimum confidence for a skill to be kept
const AcceptanceThreshold = 0.55

// Aggregation weights. Quality deliberately dominates frequency: one
// strong mention should outweigh several weak incidental ones.
const (
	frequencyWeight = 0.2
	qualityWeight   = 0.7
	diversityWeight = 0.1

	maxQualityShare = 0.65
	avgQualityShare = 0.35
)

// Confidence combines a skill's evidence into a single calibrated value in
// [0,1], rounded to 2 decimals. Empty evidence yields 0.
func Confidence(evidence []types.EvidenceItem) float64 {
	if len(evidence) == 0 {
		return 0
	}

	// One piece of evidence yields 0.4; each additional piece adds 0.2 up
	// to saturation.
	freqScore := 0.4 + float64(len(evidence)-1)*0.2
	if freqScore > 1 {
		freqScore = 1
	}

	maxQuality := 0.0
	sumQuality := 0.0
	for _, item := range evidence {
		if item.Score > maxQuality {
			maxQuality = item.Score
		}
		sumQuality += item.Score
	}
	avgQuality := sumQuality / float64(len(evidence))
	quality := maxQualityShare*maxQuality + avgQualityShare*avgQuality

	sources := make(map[types.EvidenceSource]struct{})
	for _, item := range evidence {
		if item.Source != "" {
			sources[item.Source] = struct{}{}
		}
	}
	diversity := float64(len(sources)) / 3.0
	if diversity > 1 {
		diversity = 1
	}

	confidence := frequencyWeight*freqScore + qualityWeight*quality + diversityWeight*diversity
	return math.Round(clamp01(confidence)*100) / 100
}
