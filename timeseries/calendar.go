package timeseries

import "time"

// Years returns the calendar year of each observation.
func (s *Series) Years() ([]int, error) {
	if !s.HasTimestamps() {
		return nil, ErrNoTimestamps
	}
	years := make([]int, len(s.Timestamps))
	for i, ts := range s.Timestamps {
		years[i] = ts.Year()
	}
	return years, nil
}

// Months returns the calendar month of each observation.
func (s *Series) Months() ([]time.Month, error) {
	if !s.HasTimestamps() {
		return nil, ErrNoTimestamps
	}
	months := make([]time.Month, len(s.Timestamps))
	for i, ts := range s.Timestamps {
		months[i] = ts.Month()
	}
	return months, nil
}

// Weekdays returns the day of week of each observation.
func (s *Series) Weekdays() ([]time.Weekday, error) {
	if !s.HasTimestamps() {
		return nil, ErrNoTimestamps
	}
	days := make([]time.Weekday, len(s.Timestamps))
	for i, ts := range s.Timestamps {
		days[i] = ts.Weekday()
	}
	return days, nil
}

// GroupBy partitions the values by a key derived from each timestamp.
// Keys are returned in order of first appearance.
func GroupBy[K comparable](s *Series, key func(time.Time) K) ([]K, map[K][]float64, error) {
	if !s.HasTimestamps() {
		return nil, nil, ErrNoTimestamps
	}
	var order []K
	groups := make(map[K][]float64)
	for i, ts := range s.Timestamps {
		k := key(ts)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], s.Values[i])
	}
	return order, groups, nil
}
