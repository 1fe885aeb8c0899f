package jyotisa

import (
	"strings"

	"Jyotisa/internal/domain/models"
)

// CycleYears is the length of the Vimshottari cycle.
const CycleYears = 120.0

type dashaLord struct {
	body  models.Body
	years float64
}

// vimshottari is the fixed cyclic ruler order with each ruler's allotment.
var vimshottari = [9]dashaLord{
	{models.Ketu, 7},
	{models.Venus, 20},
	{models.Sun, 6},
	{models.Moon, 10},
	{models.Mars, 7},
	{models.Rahu, 18},
	{models.Jupiter, 16},
	{models.Saturn, 19},
	{models.Mercury, 17},
}

var nakshatras = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
	"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
	"Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
	"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// lordIndex returns the position of b in the Vimshottari order.
func lordIndex(b models.Body) (int, bool) {
	for i, l := range vimshottari {
		if l.body == b {
			return i, true
		}
	}
	return 0, false
}

// DashaYears returns a ruler's full allotment.
func DashaYears(b models.Body) (float64, bool) {
	i, ok := lordIndex(b)
	if !ok {
		return 0, false
	}
	return vimshottari[i].years, true
}

// NakshatraRuler returns the ruler of nakshatra idx (0..26).
func NakshatraRuler(idx int) models.Body {
	return vimshottari[idx%9].body
}

// classical are the seven planets scored by the strength estimator.
var classical = [7]models.Body{
	models.Sun, models.Moon, models.Mercury, models.Venus,
	models.Mars, models.Jupiter, models.Saturn,
}

var naisargika = map[models.Body]float64{
	models.Sun:     60,
	models.Moon:    51.43,
	models.Mercury: 25.71,
	models.Venus:   42.85,
	models.Mars:    17.14,
	models.Jupiter: 34.28,
	models.Saturn:  8.57,
}

// vedicOffsets are the whole-sign offsets each body aspects from its own sign.
var vedicOffsets = map[models.Body][]int{
	models.Sun:     {6},
	models.Moon:    {6},
	models.Mercury: {6},
	models.Venus:   {6},
	models.Mars:    {3, 6, 7},
	models.Jupiter: {4, 6, 8},
	models.Saturn:  {2, 6, 9},
	models.Rahu:    {2, 6, 9},
}

type westernAngle struct {
	angle float64
	kind  models.AspectKind
}

var westernAngles = [5]westernAngle{
	{0, models.Conjunction},
	{60, models.Sextile},
	{90, models.Square},
	{120, models.Trine},
	{180, models.Opposition},
}

type eventHouses struct {
	event  string
	houses []int
}

var eventTable = [15]eventHouses{
	{"education", []int{2, 4, 5, 9}},
	{"career", []int{2, 6, 10, 11}},
	{"profession", []int{6, 10, 11}},
	{"marriage", []int{2, 7, 8}},
	{"relationships", []int{5, 7, 11}},
	{"health", []int{1, 6, 8, 12}},
	{"wealth", []int{2, 5, 9, 11}},
	{"property", []int{4, 11}},
	{"children", []int{5, 9}},
	{"spiritual", []int{1, 5, 9, 12}},
	{"foreign_travel", []int{3, 9, 12}},
	{"legal_matters", []int{6, 7, 9}},
	{"creativity", []int{3, 5}},
	{"communication", []int{2, 3}},
	{"family", []int{2, 4}},
}

// EventCategories lists the supported life-event categories in table order.
func EventCategories() []string {
	out := make([]string, len(eventTable))
	for i, e := range eventTable {
		out[i] = e.event
	}
	return out
}

// RelevantHouses returns the governing houses of an event category,
// matched case-insensitively. The returned slice is a copy.
func RelevantHouses(event string) ([]int, bool) {
	key := strings.ToLower(event)
	for _, e := range eventTable {
		if e.event == key {
			return append([]int(nil), e.houses...), true
		}
	}
	return nil, false
}
