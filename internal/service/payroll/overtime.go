package payroll

import (
	"fmt"
	"sort"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/utils"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	// WeeklyTier1CapMinutes is the daytime overtime paid at the tier-1 rate per ISO week.
	WeeklyTier1CapMinutes = 8 * 60

	nightStartHour = 22
	nightEndHour   = 6
)

type shiftWindow struct {
	startMin int
	endMin   int
}

func shiftCatalog(shifts []schedule.Shift, w *warnings) map[string]shiftWindow {
	catalog := make(map[string]shiftWindow, len(shifts))
	for _, s := range shifts {
		start, okStart := validator.ParseClock(s.StartTime)
		end, okEnd := validator.ParseClock(s.EndTime)
		if !okStart || !okEnd {
			w.add("shift %s has malformed times %q-%q, night detection disabled for it", s.ID, s.StartTime, s.EndTime)
			continue
		}
		catalog[s.ID] = shiftWindow{startMin: start, endMin: end}
	}
	return catalog
}

// scheduledEnd is the shift end on day, rolled to the next day for shifts crossing midnight.
func (s shiftWindow) scheduledEnd(day time.Time) time.Time {
	end := utils.AtMinutes(day, s.endMin)
	if s.endMin <= s.startMin {
		end = end.Add(24 * time.Hour)
	}
	return end
}

// nightWindow returns the 22:00-06:00 window relevant to an overtime period starting at start.
func nightWindow(start time.Time) (time.Time, time.Time) {
	day := utils.CivilDate(start)
	nightStart := day.Add(nightStartHour * time.Hour)
	if start.Hour() < nightEndHour {
		nightStart = nightStart.Add(-24 * time.Hour)
	}
	return nightStart, nightStart.Add((24 - nightStartHour + nightEndHour) * time.Hour)
}

func overlapMinutes(aStart, aEnd, bStart, bEnd time.Time) int {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return int(end.Sub(start) / time.Minute)
}

// allocateEntry splits one entry's overtime. weeklyTier1Used is the running
// daytime overtime of the entry's week; the new value is returned.
func allocateEntry(e entry, shifts map[string]shiftWindow, weeklyTier1Used int) (payroll.EntryAllocation, int) {
	year, week := e.day.ISOWeek()
	alloc := payroll.EntryAllocation{
		EntryID:         e.ID,
		Date:            e.Date,
		ISOWeek:         fmt.Sprintf("%04d-W%02d", year, week),
		OvertimeMinutes: e.OvertimeDuration,
	}

	remaining := e.OvertimeDuration
	if remaining <= 0 {
		return alloc, weeklyTier1Used
	}

	if e.IsPublicHoliday {
		alloc.Holiday = remaining
		return alloc, weeklyTier1Used
	}
	if e.day.Weekday() == time.Sunday {
		alloc.Sunday = remaining
		return alloc, weeklyTier1Used
	}

	if e.ShiftID != nil {
		if shift, ok := shifts[*e.ShiftID]; ok {
			otStart := shift.scheduledEnd(e.day)
			otEnd := otStart.Add(time.Duration(remaining) * time.Minute)
			nightStart, nightEnd := nightWindow(otStart)
			alloc.Night = overlapMinutes(otStart, otEnd, nightStart, nightEnd)
			remaining -= alloc.Night
		}
	}

	tier1Room := WeeklyTier1CapMinutes - weeklyTier1Used
	if tier1Room < 0 {
		tier1Room = 0
	}
	alloc.Tier1 = min(remaining, tier1Room)
	alloc.Tier2 = remaining - alloc.Tier1

	return alloc, weeklyTier1Used + remaining
}

// bucketOvertime groups entries by ISO week, walks each week chronologically
// and prices the resulting buckets.
func bucketOvertime(entries []entry, shifts map[string]shiftWindow, rates payroll.OvertimeRates, hourlyRate decimal.Decimal) payroll.OvertimeBreakdown {
	weeks := make(map[int][]entry)
	for _, e := range entries {
		year, week := e.day.ISOWeek()
		key := year*100 + week
		weeks[key] = append(weeks[key], e)
	}
	keys := make([]int, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	minutes := make(map[payroll.BucketKind]int, len(payroll.BucketKinds))
	var allocations []payroll.EntryAllocation

	for _, k := range keys {
		week := weeks[k]
		sort.SliceStable(week, func(i, j int) bool {
			if !week[i].day.Equal(week[j].day) {
				return week[i].day.Before(week[j].day)
			}
			return week[i].startMin < week[j].startMin
		})

		used := 0
		for _, e := range week {
			if e.OvertimeDuration <= 0 {
				continue
			}
			var alloc payroll.EntryAllocation
			alloc, used = allocateEntry(e, shifts, used)
			allocations = append(allocations, alloc)

			minutes[payroll.BucketTier1] += alloc.Tier1
			minutes[payroll.BucketTier2] += alloc.Tier2
			minutes[payroll.BucketNight] += alloc.Night
			minutes[payroll.BucketSunday] += alloc.Sunday
			minutes[payroll.BucketHoliday] += alloc.Holiday
		}
	}

	out := payroll.OvertimeBreakdown{
		Buckets:     make([]payroll.Bucket, 0, len(payroll.BucketKinds)),
		Allocations: allocations,
		TotalPayout: decimal.Zero,
	}
	for _, kind := range payroll.BucketKinds {
		rate := rates.For(kind)
		bucket := payroll.Bucket{
			Kind:    kind,
			Minutes: minutes[kind],
			Rate:    rate,
			Payout:  BucketPayout(minutes[kind], hourlyRate, rate),
		}
		out.Buckets = append(out.Buckets, bucket)
		out.TotalMinutes += bucket.Minutes
		out.TotalPayout = out.TotalPayout.Add(bucket.Payout)
	}
	return out
}

// BucketPayout is minutes/60 x hourlyRate x rate, rounded to whole units.
func BucketPayout(minutes int, hourlyRate, rate decimal.Decimal) decimal.Decimal {
	if minutes <= 0 {
		return decimal.Zero
	}
	return roundMoney(decimal.NewFromInt(int64(minutes)).Mul(hourlyRate).Mul(rate).Div(decimal.NewFromInt(60)))
}
