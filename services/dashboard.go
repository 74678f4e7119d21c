// Package services file: services/dashboard.go
package services

import (
	"context"
	"sort"
	"sync"

	"catering-admin/apperr"
	"catering-admin/logger"
	"catering-admin/models"

	"github.com/shopspring/decimal"
)

// Lister is the read side of a gateway.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// dashboard read names, reported back when a read fails
const (
	ReadReviews   = "reviews"
	ReadInquiries = "inquiries"
	ReadMenu      = "menu items"
	ReadAdmins    = "admins"
)

// CategoryCount is one bar of the menu category chart.
type CategoryCount struct {
	Name  string
	Count int
}

// Stats is everything the dashboard shows.
type Stats struct {
	TotalReviews       int
	TotalInquiries     int
	TotalMenuItems     int
	AvailableMenuItems int
	TotalAdmins        int
	AverageRating      decimal.Decimal
	// RatingDistribution[i] counts reviews with i+1 stars.
	RatingDistribution [5]int
	Categories         []CategoryCount
	RecentReviews      []models.Review
	RecentInquiries    []models.Inquiry
	// Failed names the reads that fell back to empty.
	Failed []string
}

// MaxRatingCount is the largest bucket of the distribution, for bar widths.
func (s Stats) MaxRatingCount() int {
	m := 0
	for _, n := range s.RatingDistribution {
		if n > m {
			m = n
		}
	}
	return m
}

const recentLimit = 5

// DashboardService loads the four collections concurrently and aggregates them.
type DashboardService struct {
	reviews   Lister[models.Review]
	inquiries Lister[models.Inquiry]
	menu      Lister[models.MenuItem]
	admins    Lister[models.Admin]
	metrics   MetricsPublisher
}

// NewDashboardService creates the service.
func NewDashboardService(reviews Lister[models.Review], inquiries Lister[models.Inquiry],
	menu Lister[models.MenuItem], admins Lister[models.Admin], metrics MetricsPublisher) *DashboardService {
	if metrics == nil {
		metrics = NopPublisher{}
	}
	return &DashboardService{reviews: reviews, inquiries: inquiries, menu: menu, admins: admins, metrics: metrics}
}

// read holds the outcome of one list call.
type read[T any] struct {
	rows []T
	err  error
}

func load[T any](ctx context.Context, wg *sync.WaitGroup, l Lister[T], out *read[T]) {
	defer wg.Done()
	out.rows, out.err = l.List(ctx)
}

// Load issues the four reads at once. A failing read contributes zero/empty
// values and its name is listed in Stats.Failed; the others are unaffected.
func (d *DashboardService) Load(ctx context.Context) Stats {
	var (
		wg        sync.WaitGroup
		reviews   read[models.Review]
		inquiries read[models.Inquiry]
		menu      read[models.MenuItem]
		admins    read[models.Admin]
	)
	wg.Add(4)
	go load(ctx, &wg, d.reviews, &reviews)
	go load(ctx, &wg, d.inquiries, &inquiries)
	go load(ctx, &wg, d.menu, &menu)
	go load(ctx, &wg, d.admins, &admins)
	wg.Wait()

	var stats Stats
	for name, err := range map[string]error{
		ReadReviews: reviews.err, ReadInquiries: inquiries.err, ReadMenu: menu.err, ReadAdmins: admins.err,
	} {
		if err != nil {
			logger.Warn.Printf("[DashboardService.Load] %s read failed: %v", name, err)
			stats.Failed = append(stats.Failed, name)
		}
	}
	sort.Strings(stats.Failed)
	if len(stats.Failed) > 0 {
		d.metrics.Publish(ctx, MetricDashboardFailure, float64(len(stats.Failed)), UnitCount, nil)
	}

	if reviews.err == nil {
		stats.TotalReviews = len(reviews.rows)
		stats.AverageRating, stats.RatingDistribution = ratingStats(reviews.rows)
		stats.RecentReviews = firstN(reviews.rows, recentLimit)
	}
	if inquiries.err == nil || apperr.IsPartial(inquiries.err) {
		stats.TotalInquiries = len(inquiries.rows)
		stats.RecentInquiries = firstN(inquiries.rows, recentLimit)
	}
	if menu.err == nil {
		stats.TotalMenuItems = len(menu.rows)
		stats.AvailableMenuItems = CountAvailable(menu.rows)
		stats.Categories = categoryCounts(menu.rows)
	}
	if admins.err == nil {
		stats.TotalAdmins = len(admins.rows)
	}
	return stats
}

// ratingStats returns the mean rounded to one decimal and the 1..5 star counts.
func ratingStats(reviews []models.Review) (decimal.Decimal, [5]int) {
	var dist [5]int
	if len(reviews) == 0 {
		return decimal.Zero, dist
	}
	sum := int64(0)
	for _, r := range reviews {
		sum += int64(r.Rating)
		if r.Rating >= 1 && r.Rating <= 5 {
			dist[r.Rating-1]++
		}
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(int64(len(reviews)))).Round(1)
	return avg, dist
}

// categoryCounts groups items by category, largest first, ties by name.
func categoryCounts(items []models.MenuItem) []CategoryCount {
	counts := map[string]int{}
	for _, it := range items {
		counts[it.CategoryLabel()]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CountAvailable counts the items currently offered.
func CountAvailable(items []models.MenuItem) int {
	n := 0
	for _, it := range items {
		if it.Available {
			n++
		}
	}
	return n
}

func firstN[T any](rows []T, n int) []T {
	if len(rows) > n {
		return rows[:n]
	}
	return rows
}
