package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"carhive/internal/domain"
)

// CommissionRate is the platform's cut of gross booking revenue.
const CommissionRate = 0.05

type Service struct {
	bookings BookingReportSource
	agencies AgencyReportSource
	cars     CarReportSource
	users    UserReportSource
}

func NewService(bookings BookingReportSource, agencies AgencyReportSource, cars CarReportSource, users UserReportSource) *Service {
	return &Service{bookings: bookings, agencies: agencies, cars: cars, users: users}
}

func revenueCounts(status domain.BookingStatus) bool {
	return status == domain.BookingConfirmed || status == domain.BookingCompleted
}

// Summary computes the headline financial figures for the range. All
// rates come out as 0 when the range holds no bookings.
func (s *Service) Summary(ctx context.Context, from, to time.Time) (*FinancialSummary, error) {
	bookings, err := s.bookings.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := &FinancialSummary{BookingCount: int64(len(bookings))}

	var completed, cancelled int64
	for _, b := range bookings {
		if revenueCounts(b.Status) {
			out.TotalRevenue += b.TotalPrice
		}
		switch b.Status {
		case domain.BookingCompleted:
			completed++
		case domain.BookingCancelled:
			cancelled++
		}
	}

	out.Commission = out.TotalRevenue * CommissionRate
	out.NetPayout = out.TotalRevenue - out.Commission
	if out.BookingCount > 0 {
		out.CompletionRate = float64(completed) / float64(out.BookingCount) * 100
		out.CancellationRate = float64(cancelled) / float64(out.BookingCount) * 100
	}

	if out.ActiveAgencies, err = s.agencies.CountByStatus(ctx, domain.AgencyApproved); err != nil {
		return nil, fmt.Errorf("count agencies: %w", err)
	}
	if out.ActiveCars, err = s.cars.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count cars: %w", err)
	}

	return out, nil
}

// Series folds bookings and agency signups into time buckets. Every
// calendar day in the range gets a bucket up front so quiet days show up
// as zeros instead of gaps.
func (s *Service) Series(ctx context.Context, from, to time.Time, groupBy string) ([]SeriesBucket, error) {
	bookings, err := s.bookings.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	agencies, err := s.agencies.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list agencies: %w", err)
	}

	buckets := map[string]*SeriesBucket{}
	var keys []string
	for day := from.Truncate(24 * time.Hour); day.Before(to); day = day.AddDate(0, 0, 1) {
		key := bucketKey(day, groupBy)
		if _, ok := buckets[key]; !ok {
			buckets[key] = &SeriesBucket{Key: key}
			keys = append(keys, key)
		}
	}

	for _, b := range bookings {
		bucket, ok := buckets[bucketKey(b.CreatedAt, groupBy)]
		if !ok {
			continue
		}
		bucket.Bookings++
		if revenueCounts(b.Status) {
			bucket.Revenue += b.TotalPrice
		}
	}
	for _, a := range agencies {
		if bucket, ok := buckets[bucketKey(a.CreatedAt, groupBy)]; ok {
			bucket.NewAgencies++
		}
	}

	out := make([]SeriesBucket, 0, len(keys))
	for _, key := range keys {
		out = append(out, *buckets[key])
	}
	return out, nil
}

func bucketKey(t time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case "month":
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// TopAgencies ranks agencies by revenue earned inside the range.
func (s *Service) TopAgencies(ctx context.Context, from, to time.Time, limit int) ([]AgencyRevenue, error) {
	bookings, err := s.bookings.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	byAgency := map[int64]*AgencyRevenue{}
	for _, b := range bookings {
		row, ok := byAgency[b.AgencyID]
		if !ok {
			row = &AgencyRevenue{AgencyID: b.AgencyID}
			byAgency[b.AgencyID] = row
		}
		row.Bookings++
		if revenueCounts(b.Status) {
			row.Revenue += b.TotalPrice
		}
	}

	ids := make([]int64, 0, len(byAgency))
	for id := range byAgency {
		ids = append(ids, id)
	}
	names, err := s.agencies.GetNames(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve agency names: %w", err)
	}

	out := make([]AgencyRevenue, 0, len(byAgency))
	for id, row := range byAgency {
		row.Name = names[id]
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RevenueByCity groups range revenue by the owning agency's city.
func (s *Service) RevenueByCity(ctx context.Context, from, to time.Time) ([]CityRevenue, error) {
	bookings, err := s.bookings.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	ids := make([]int64, 0, len(bookings))
	seen := map[int64]bool{}
	for _, b := range bookings {
		if !seen[b.AgencyID] {
			seen[b.AgencyID] = true
			ids = append(ids, b.AgencyID)
		}
	}
	cities, err := s.agencies.GetCities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve agency cities: %w", err)
	}

	byCity := map[string]*CityRevenue{}
	for _, b := range bookings {
		city := cities[b.AgencyID]
		if city == "" {
			city = "unknown"
		}
		row, ok := byCity[city]
		if !ok {
			row = &CityRevenue{City: city}
			byCity[city] = row
		}
		row.Bookings++
		if revenueCounts(b.Status) {
			row.Revenue += b.TotalPrice
		}
	}

	out := make([]CityRevenue, 0, len(byCity))
	for _, row := range byCity {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out, nil
}

// StatusDistribution breaks down the range's bookings by status with a
// percentage share of the total.
func (s *Service) StatusDistribution(ctx context.Context, from, to time.Time) ([]StatusShare, error) {
	bookings, err := s.bookings.ListCreatedBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	counts := map[string]int64{}
	for _, b := range bookings {
		counts[string(b.Status)]++
	}

	total := int64(len(bookings))
	out := make([]StatusShare, 0, len(counts))
	for status, count := range counts {
		share := StatusShare{Status: status, Count: count}
		if total > 0 {
			share.Percentage = float64(count) / float64(total) * 100
		}
		out = append(out, share)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// CategoryPopularity counts the fleet by car category.
func (s *Service) CategoryPopularity(ctx context.Context) ([]CategoryShare, error) {
	rows, err := s.cars.CountByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by category: %w", err)
	}

	out := make([]CategoryShare, 0, len(rows))
	for _, row := range rows {
		out = append(out, CategoryShare{Category: row.Category, Count: row.Count})
	}
	return out, nil
}

// PlatformStats aggregates the admin dashboard totals.
func (s *Service) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	stats := &PlatformStats{}

	var err error
	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalAgencies, err = s.agencies.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count agencies: %w", err)
	}
	if stats.PendingAgencies, err = s.agencies.CountByStatus(ctx, domain.AgencyPending); err != nil {
		return nil, fmt.Errorf("count pending agencies: %w", err)
	}
	if stats.ActiveCars, err = s.cars.CountActive(ctx); err != nil {
		return nil, fmt.Errorf("count cars: %w", err)
	}
	if stats.TotalBookings, err = s.bookings.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}
	if stats.TotalRevenue, err = s.bookings.SumRevenueAll(ctx); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	stats.TotalCommission = stats.TotalRevenue * CommissionRate

	return stats, nil
}
