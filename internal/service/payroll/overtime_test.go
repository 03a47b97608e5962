package payroll

import (
	"testing"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/attendance"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/payroll"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/schedule"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(t *testing.T, raw []attendance.TimeEntry) payroll.OvertimeBreakdown {
	t.Helper()
	w := &warnings{logger: NewCalculator(nil, nil).logger}
	entries := parseEntries(raw, march2025, w)
	require.Empty(t, w.list)
	return bucketOvertime(entries, shiftCatalog(testShifts, w), payroll.DefaultSettings().OvertimeRates, decimal.NewFromInt(1731))
}

func single(t *testing.T, e attendance.TimeEntry) payroll.EntryAllocation {
	t.Helper()
	out := bucket(t, []attendance.TimeEntry{e})
	require.Len(t, out.Allocations, 1)
	a := out.Allocations[0]
	assert.Equal(t, e.OvertimeDuration, a.Total())
	return a
}

func TestAllocate_DaytimeOvertimeGoesToTier1(t *testing.T) {
	a := single(t, mkEntry("e1", "2025-03-03", dayShiftID, 240))
	assert.Equal(t, 240, a.Tier1)
	assert.Equal(t, 0, a.Night)
	assert.Equal(t, "2025-W10", a.ISOWeek)
}

func TestAllocate_OvertimeAfterLateShiftIsNight(t *testing.T) {
	// 22:00 -> 00:00
	a := single(t, mkEntry("e1", "2025-03-03", lateShiftID, 120))
	assert.Equal(t, 120, a.Night)
	assert.Equal(t, 0, a.Tier1)
}

func TestAllocate_PartialNightOverlap(t *testing.T) {
	// 16:15 -> 23:15, one hour and a quarter past 22:00
	a := single(t, mkEntry("e1", "2025-03-03", dayShiftID, 420))
	assert.Equal(t, 75, a.Night)
	assert.Equal(t, 345, a.Tier1)
}

func TestAllocate_ShiftCrossingMidnightUsesPreviousNight(t *testing.T) {
	// shift ends 04:00 the next day; overtime 04:00 -> 07:00, night until 06:00
	a := single(t, mkEntry("e1", "2025-03-03", nightShiftID, 180))
	assert.Equal(t, 120, a.Night)
	assert.Equal(t, 60, a.Tier1)
}

func TestAllocate_HolidayShortCircuitsNight(t *testing.T) {
	e := mkEntry("e1", "2025-03-03", lateShiftID, 120)
	e.IsPublicHoliday = true
	a := single(t, e)
	assert.Equal(t, 120, a.Holiday)
	assert.Equal(t, 0, a.Night)
}

func TestAllocate_SundayShortCircuitsNight(t *testing.T) {
	a := single(t, mkEntry("e1", "2025-03-09", lateShiftID, 90))
	assert.Equal(t, 90, a.Sunday)
	assert.Equal(t, 0, a.Night)
}

func TestAllocate_HolidayWinsOverSunday(t *testing.T) {
	e := mkEntry("e1", "2025-03-09", dayShiftID, 60)
	e.IsPublicHoliday = true
	a := single(t, e)
	assert.Equal(t, 60, a.Holiday)
	assert.Equal(t, 0, a.Sunday)
}

func TestAllocate_UnknownShiftSkipsNightLogic(t *testing.T) {
	a := single(t, mkEntry("e1", "2025-03-03", "no-such-shift", 600))
	assert.Equal(t, 0, a.Night)
	assert.Equal(t, 480, a.Tier1)
	assert.Equal(t, 120, a.Tier2)
}

func TestBucket_WeeklyTier1Cap(t *testing.T) {
	out := bucket(t, []attendance.TimeEntry{
		mkEntry("fri", "2025-03-07", dayShiftID, 120),
		mkEntry("mon", "2025-03-03", dayShiftID, 120),
		mkEntry("wed", "2025-03-05", dayShiftID, 120),
		mkEntry("tue", "2025-03-04", dayShiftID, 120),
		mkEntry("thu", "2025-03-06", dayShiftID, 120),
	})

	assert.Equal(t, 480, out.Bucket(payroll.BucketTier1).Minutes)
	assert.Equal(t, 120, out.Bucket(payroll.BucketTier2).Minutes)

	// chronological walk: Friday is the one spilling into tier 2
	require.Len(t, out.Allocations, 5)
	last := out.Allocations[4]
	assert.Equal(t, "fri", last.EntryID)
	assert.Equal(t, 0, last.Tier1)
	assert.Equal(t, 120, last.Tier2)
}

func TestBucket_CounterAdvancesByFullRemaining(t *testing.T) {
	// early shift overtime starts at 14:00 and stays clear of 22:00
	out := bucket(t, []attendance.TimeEntry{
		mkEntry("mon", "2025-03-03", earlyShiftID, 400),
		mkEntry("tue", "2025-03-04", earlyShiftID, 200),
		mkEntry("wed", "2025-03-05", earlyShiftID, 60),
	})

	require.Len(t, out.Allocations, 3)
	assert.Equal(t, 400, out.Allocations[0].Tier1)
	assert.Equal(t, 80, out.Allocations[1].Tier1)
	assert.Equal(t, 120, out.Allocations[1].Tier2)
	assert.Equal(t, 0, out.Allocations[2].Tier1)
	assert.Equal(t, 60, out.Allocations[2].Tier2)
	for _, a := range out.Allocations {
		assert.Equal(t, 0, a.Night)
	}
}

func TestBucket_NightMinutesDoNotConsumeTier1(t *testing.T) {
	out := bucket(t, []attendance.TimeEntry{
		mkEntry("mon", "2025-03-03", lateShiftID, 300),
		mkEntry("tue", "2025-03-04", earlyShiftID, 480),
	})
	assert.Equal(t, 300, out.Bucket(payroll.BucketNight).Minutes)
	assert.Equal(t, 480, out.Bucket(payroll.BucketTier1).Minutes)
	assert.Equal(t, 0, out.Bucket(payroll.BucketTier2).Minutes)
}

func TestBucket_CounterResetsEachISOWeek(t *testing.T) {
	out := bucket(t, []attendance.TimeEntry{
		mkEntry("w10", "2025-03-08", earlyShiftID, 480),
		mkEntry("w11", "2025-03-10", earlyShiftID, 480),
	})
	assert.Equal(t, 960, out.Bucket(payroll.BucketTier1).Minutes)
	assert.Equal(t, 0, out.Bucket(payroll.BucketTier2).Minutes)
	assert.Equal(t, 0, out.Bucket(payroll.BucketNight).Minutes)
}

func TestBucket_SameDayEntriesOrderedByStartTime(t *testing.T) {
	morning := mkEntry("morning", "2025-03-03", "no-such-shift", 300)
	evening := mkEntry("evening", "2025-03-03", "no-such-shift", 300)
	evening.StartTime = "18:00"

	out := bucket(t, []attendance.TimeEntry{evening, morning})
	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "morning", out.Allocations[0].EntryID)
	assert.Equal(t, 300, out.Allocations[0].Tier1)
	assert.Equal(t, 180, out.Allocations[1].Tier1)
	assert.Equal(t, 120, out.Allocations[1].Tier2)
}

func TestBucket_Payouts(t *testing.T) {
	e := mkEntry("hol", "2025-03-03", dayShiftID, 60)
	e.IsPublicHoliday = true
	out := bucket(t, []attendance.TimeEntry{
		mkEntry("mon", "2025-03-03", dayShiftID, 240),
		e,
	})

	// 240/60 x 1731 x 1.2 and 60/60 x 1731 x 1.5
	assertMoney(t, 8309, out.Bucket(payroll.BucketTier1).Payout)
	assertMoney(t, 2597, out.Bucket(payroll.BucketHoliday).Payout)
	assertMoney(t, 10906, out.TotalPayout)
	assert.Equal(t, 300, out.TotalMinutes)
}

func TestBucket_Tier1NeverExceedsWeeklyCap(t *testing.T) {
	var entries []attendance.TimeEntry
	for _, d := range march2025.Days() {
		if !IsWorkableDay(d) {
			continue
		}
		date := d.Format("2006-01-02")
		entries = append(entries, mkEntry("e-"+date, date, dayShiftID, 150))
	}
	out := bucket(t, entries)

	perWeek := map[string]int{}
	for _, a := range out.Allocations {
		perWeek[a.ISOWeek] += a.Tier1
		assert.Equal(t, a.OvertimeMinutes, a.Tier1+a.Tier2+a.Night)
	}
	for week, minutes := range perWeek {
		assert.LessOrEqual(t, minutes, WeeklyTier1CapMinutes, week)
	}
}

func TestParseEntries_CapsOvertimeAtDuration(t *testing.T) {
	w := &warnings{logger: NewCalculator(nil, nil).logger}
	e := mkEntry("e1", "2025-03-03", dayShiftID, 0)
	e.Duration = 100
	e.OvertimeDuration = 150

	entries := parseEntries([]attendance.TimeEntry{e}, march2025, w)
	require.Len(t, entries, 1)
	assert.Equal(t, 100, entries[0].OvertimeDuration)
	assert.Len(t, w.list, 1)
}

func TestShiftCatalog_MalformedShiftWarns(t *testing.T) {
	w := &warnings{logger: NewCalculator(nil, nil).logger}
	catalog := shiftCatalog([]schedule.Shift{{ID: "bad", StartTime: "8h", EndTime: "16:00"}}, w)
	assert.Empty(t, catalog)
	assert.Len(t, w.list, 1)
}
