package models

// DashaPeriod is one Mahadasha or Antardasha span.
type DashaPeriod struct {
	Lord      Body    `json:"lord"`
	Start     Moment  `json:"start_jd"`
	End       Moment  `json:"end_jd"`
	StartDate string  `json:"start"`
	EndDate   string  `json:"end"`
	Years     float64 `json:"years"`
}

// Contains reports whether m falls inside [Start, End).
func (p DashaPeriod) Contains(m Moment) bool {
	return m >= p.Start && m < p.End
}

// DashaTimeline is the Vimshottari Mahadasha sequence from birth.
type DashaTimeline struct {
	MoonLongitude   float64              `json:"moon_longitude"`
	Nakshatra       string               `json:"nakshatra"`
	NakshatraIndex  int                  `json:"nakshatra_index"`
	Pada            int                  `json:"pada"`
	Ruler           Body                 `json:"ruler"`
	BalanceYears    float64              `json:"balance_years"`
	ElapsedFraction float64              `json:"elapsed_fraction"`
	Periods         []DashaPeriod        `json:"table"`
	Antardashas     []AntardashaTimeline `json:"antardasha,omitempty"`
}

// TotalYears sums the years of all Mahadasha periods.
func (t *DashaTimeline) TotalYears() float64 {
	var sum float64
	for _, p := range t.Periods {
		sum += p.Years
	}
	return sum
}

// ActivePeriods returns the Mahadasha and, when computed, Antardasha running at m.
func (t *DashaTimeline) ActivePeriods(m Moment) (maha DashaPeriod, antar DashaPeriod, ok bool) {
	for i, p := range t.Periods {
		if !p.Contains(m) {
			continue
		}
		maha, ok = p, true
		if i < len(t.Antardashas) {
			for _, sub := range t.Antardashas[i].Periods {
				if sub.Contains(m) {
					antar = sub
					break
				}
			}
		}
		return maha, antar, ok
	}
	return DashaPeriod{}, DashaPeriod{}, false
}

// AntardashaTimeline is the nine sub-periods of one Mahadasha.
type AntardashaTimeline struct {
	Mahadasha Body          `json:"maha"`
	Years     float64       `json:"years"`
	Periods   []DashaPeriod `json:"periods"`
}

// TotalYears sums the sub-period years.
func (t *AntardashaTimeline) TotalYears() float64 {
	var sum float64
	for _, p := range t.Periods {
		sum += p.Years
	}
	return sum
}
