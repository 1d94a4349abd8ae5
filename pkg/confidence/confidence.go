// Package confidence tracks a viewer's 0-5 readiness rating per talking point.
package confidence

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

const (
	MinLevel = 0 // unrated
	MaxLevel = 5
)

var ErrInvalidLevel = errors.New("confidence: level must be between 0 and 5")

type Band string

const (
	BandNone Band = "none"
	BandLow  Band = "low"
	BandMid  Band = "mid"
	BandHigh Band = "high"
)

// Ratings maps a talking-point index (as a string, the cache key format) to its level.
type Ratings map[string]int

// Key is the per-viewer cache key holding a session's ratings.
func Key(sessionId string) string {
	return "confidence-" + sessionId
}

// Decode parses cached ratings. Corrupted content or out-of-range values are
// dropped rather than reported; ok is false when anything had to be discarded.
func Decode(raw string) (r Ratings, ok bool) {
	r = Ratings{}
	if raw == "" {
		return r, true
	}

	var loose map[string]json.Number
	if err := json.Unmarshal([]byte(raw), &loose); err != nil {
		return Ratings{}, false
	}

	ok = true
	for k, v := range loose {
		level, err := v.Int64()
		if err != nil || level < MinLevel || level > MaxLevel {
			ok = false
			continue
		}
		if _, err := strconv.Atoi(k); err != nil {
			ok = false
			continue
		}
		if level > 0 {
			r[k] = int(level)
		}
	}
	return r, ok
}

func (r Ratings) Encode() string {
	b, _ := json.Marshal(r)
	return string(b)
}

// Rate returns a copy with index set to level. Level 0 clears the rating.
func (r Ratings) Rate(index, level int) (Ratings, error) {
	if level < MinLevel || level > MaxLevel {
		return r, ErrInvalidLevel
	}
	if index < 0 {
		return r, errors.New("confidence: index must not be negative")
	}
	next := make(Ratings, len(r)+1)
	for k, v := range r {
		next[k] = v
	}
	key := strconv.Itoa(index)
	if level == MinLevel {
		delete(next, key)
	} else {
		next[key] = level
	}
	return next, nil
}

func (r Ratings) Level(index int) int {
	return r[strconv.Itoa(index)]
}

type Summary struct {
	Rated   int     `json:"rated"`
	Average float64 `json:"average"`
	Band    Band    `json:"band"`
}

// Summarize averages the rated entries only; unrated points count toward neither
// the numerator nor the denominator.
func (r Ratings) Summarize() Summary {
	sum, n := 0, 0
	for _, level := range r {
		if level <= 0 {
			continue
		}
		sum += level
		n++
	}
	if n == 0 {
		return Summary{Band: BandNone}
	}
	avg := math.Round(float64(sum)/float64(n)*100) / 100
	return Summary{Rated: n, Average: avg, Band: BandFor(avg)}
}

// BandFor buckets an average: 4 and above high, 2.5 and above mid, otherwise low.
func BandFor(avg float64) Band {
	switch {
	case avg >= 4:
		return BandHigh
	case avg >= 2.5:
		return BandMid
	default:
		return BandLow
	}
}
