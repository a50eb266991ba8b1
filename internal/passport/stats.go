package passport

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Stats summarizes progress across the whole catalog.
type Stats struct {
	Visited       int           `json:"visited"`
	Total         int           `json:"total"`
	Progress      int           `json:"progress"`
	Stamps        int           `json:"stamps"`
	LatestPark    *EnrichedPark `json:"-"`
	LatestVisit   time.Time     `json:"latest_visit"`
	AverageRating float64       `json:"average_rating"`
}

// AverageRatingText formats the average rating as "4.2 / 5", or "-" when
// nothing has been visited.
func (s Stats) AverageRatingText() string {
	if s.Visited == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f / 5", s.AverageRating)
}

// ComputeStats counts visits and stamps and finds the most recent visit.
// Unrated visited parks count as zero toward the average.
func ComputeStats(parks []*EnrichedPark) Stats {
	s := Stats{Total: len(parks)}
	var ratingSum float64
	for _, p := range parks {
		s.Stamps += len(p.Stamps)
		if !p.Visited {
			continue
		}
		s.Visited++
		ratingSum += float64(p.Rating)
		if t, ok := p.VisitTime(); ok && (s.LatestPark == nil || t.After(s.LatestVisit)) {
			s.LatestPark = p
			s.LatestVisit = t
		}
	}
	if s.Total > 0 {
		s.Progress = int(math.Round(float64(s.Visited) / float64(s.Total) * 100))
	}
	if s.Visited > 0 {
		s.AverageRating = ratingSum / float64(s.Visited)
	}
	return s
}

// CarouselItem is one slide of the home page photo carousel.
type CarouselItem struct {
	Image    string  `json:"image"`
	Caption  string  `json:"caption"`
	ParkID   string  `json:"park_id"`
	ParkName string  `json:"park_name"`
	Type     string  `json:"type"`
	Region   string  `json:"region"`
	Date     string  `json:"date"`
	Note     string  `json:"note"`
	Rating   float64 `json:"rating,omitempty"`
}

// CarouselItems returns one slide per photo with an image, shuffled by rng.
func CarouselItems(parks []*EnrichedPark, rng *rand.Rand) []CarouselItem {
	var items []CarouselItem
	for _, p := range parks {
		note := p.VisitNote
		if note == "" {
			note = p.Notes
		}
		for _, photo := range p.Photos {
			if photo.Image == "" {
				continue
			}
			items = append(items, CarouselItem{
				Image:    photo.Image,
				Caption:  photo.Caption,
				ParkID:   p.ID,
				ParkName: p.Name,
				Type:     p.Type,
				Region:   p.Region,
				Date:     p.VisitDate,
				Note:     note,
				Rating:   float64(p.Rating),
			})
		}
	}
	rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
	return items
}
