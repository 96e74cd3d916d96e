package stats

import (
	"sort"
	"sync"
	"time"

	"classic-snake/store"
)

// GroupSize is the number of same-level entries folded into one bucket.
const GroupSize = 100

// GameStats aggregates finished games. Old games are compressed into
// buckets so memory stays bounded no matter how many games are played.
type GameStats struct {
	Entries []Entry
	mutex   sync.RWMutex
}

// Entry is either a single game (CompressionIndex 0) or a bucket of games.
type Entry struct {
	StartTime        time.Time `json:"startTime"`
	EndTime          time.Time `json:"endTime"`
	CompressionIndex int       `json:"compressionIndex"`
	GamesCount       int       `json:"gamesCount"`
	AverageScore     float64   `json:"averageScore"`
	MedianScore      float64   `json:"medianScore"`
	MaxScore         int       `json:"maxScore"`
	MinScore         int       `json:"minScore"`
	AverageDuration  float64   `json:"averageDuration"`
	MaxDuration      float64   `json:"maxDuration"`
	MinDuration      float64   `json:"minDuration"`
}

// Summary is the read-only view served to the UI and the scoreboard.
type Summary struct {
	GamesPlayed     int     `json:"gamesPlayed"`
	AverageScore    float64 `json:"averageScore"`
	MedianScore     float64 `json:"medianScore"`
	MaxScore        int     `json:"maxScore"`
	AverageDuration float64 `json:"averageDurationSeconds"`
	MaxDuration     float64 `json:"maxDurationSeconds"`
}

func NewGameStats() *GameStats {
	return &GameStats{
		Entries: make([]Entry, 0),
	}
}

// FromRecords builds stats from persisted history, oldest game first.
func FromRecords(records []store.Record) *GameStats {
	s := NewGameStats()
	for i := len(records) - 1; i >= 0; i-- {
		s.AddRecord(records[i])
	}
	return s
}

func (s *GameStats) AddRecord(r store.Record) {
	s.AddGame(r.Score, r.StartTime, r.EndTime)
}

func (s *GameStats) AddGame(score int, startTime, endTime time.Time) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	seconds := endTime.Sub(startTime).Seconds()
	s.Entries = append(s.Entries, Entry{
		StartTime:       startTime,
		EndTime:         endTime,
		GamesCount:      1,
		AverageScore:    float64(score),
		MedianScore:     float64(score),
		MaxScore:        score,
		MinScore:        score,
		AverageDuration: seconds,
		MaxDuration:     seconds,
		MinDuration:     seconds,
	})

	s.groupGames()
}

// groupGames folds every full run of GroupSize entries at a level into one
// entry of the next level.
func (s *GameStats) groupGames() {
	sort.SliceStable(s.Entries, func(i, j int) bool {
		if s.Entries[i].CompressionIndex != s.Entries[j].CompressionIndex {
			return s.Entries[i].CompressionIndex < s.Entries[j].CompressionIndex
		}
		return s.Entries[i].StartTime.Before(s.Entries[j].StartTime)
	})

	for level := 0; ; level++ {
		var records []Entry
		for _, e := range s.Entries {
			if e.CompressionIndex == level {
				records = append(records, e)
			}
		}
		if len(records) < GroupSize {
			break
		}

		var regrouped []Entry
		for i := 0; i < len(records); i += GroupSize {
			end := i + GroupSize
			if end > len(records) {
				regrouped = append(regrouped, records[i:]...)
				break
			}
			regrouped = append(regrouped, mergeEntries(records[i:end], level+1))
		}

		remaining := make([]Entry, 0, len(s.Entries))
		for _, e := range s.Entries {
			if e.CompressionIndex != level {
				remaining = append(remaining, e)
			}
		}
		s.Entries = append(remaining, regrouped...)
	}
}

func mergeEntries(group []Entry, level int) Entry {
	merged := Entry{
		StartTime:        group[0].StartTime,
		EndTime:          group[0].EndTime,
		CompressionIndex: level,
		MaxScore:         group[0].MaxScore,
		MinScore:         group[0].MinScore,
		MaxDuration:      group[0].MaxDuration,
		MinDuration:      group[0].MinDuration,
	}

	var totalScore, totalDuration float64
	scores := make([]float64, 0)
	for _, e := range group {
		merged.MaxScore = max(merged.MaxScore, e.MaxScore)
		merged.MinScore = min(merged.MinScore, e.MinScore)
		merged.MaxDuration = max(merged.MaxDuration, e.MaxDuration)
		merged.MinDuration = min(merged.MinDuration, e.MinDuration)
		if e.StartTime.Before(merged.StartTime) {
			merged.StartTime = e.StartTime
		}
		if e.EndTime.After(merged.EndTime) {
			merged.EndTime = e.EndTime
		}
		totalScore += e.AverageScore * float64(e.GamesCount)
		totalDuration += e.AverageDuration * float64(e.GamesCount)
		merged.GamesCount += e.GamesCount
		for i := 0; i < e.GamesCount; i++ {
			scores = append(scores, e.MedianScore)
		}
	}

	merged.AverageScore = totalScore / float64(merged.GamesCount)
	merged.AverageDuration = totalDuration / float64(merged.GamesCount)
	merged.MedianScore = median(scores)
	return merged
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		return (values[mid-1] + values[mid]) / 2
	}
	return values[mid]
}

// Summary computes all aggregate figures under a single lock.
func (s *GameStats) Summary() Summary {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var sum Summary
	if len(s.Entries) == 0 {
		return sum
	}

	var totalScore, totalDuration float64
	scores := make([]float64, 0)
	sum.MaxScore = s.Entries[0].MaxScore
	sum.MaxDuration = s.Entries[0].MaxDuration
	for _, e := range s.Entries {
		sum.GamesPlayed += e.GamesCount
		totalScore += e.AverageScore * float64(e.GamesCount)
		totalDuration += e.AverageDuration * float64(e.GamesCount)
		sum.MaxScore = max(sum.MaxScore, e.MaxScore)
		sum.MaxDuration = max(sum.MaxDuration, e.MaxDuration)
		for i := 0; i < e.GamesCount; i++ {
			scores = append(scores, e.MedianScore)
		}
	}

	sum.AverageScore = totalScore / float64(sum.GamesPlayed)
	sum.AverageDuration = totalDuration / float64(sum.GamesPlayed)
	sum.MedianScore = median(scores)
	return sum
}

// RecentScores returns up to n of the most recent uncompressed scores,
// oldest first. Used by the score graph.
func (s *GameStats) RecentScores(n int) []int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	scores := make([]int, 0, n)
	for _, e := range s.Entries {
		if e.CompressionIndex == 0 {
			scores = append(scores, e.MaxScore)
		}
	}
	if len(scores) > n {
		scores = scores[len(scores)-n:]
	}
	return scores
}
