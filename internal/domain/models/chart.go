package models

import (
	"fmt"
	"math"
	"strings"
)

// Body identifies a point in a chart or a dasha lord.
type Body string

const (
	Sun       Body = "Sun"
	Moon      Body = "Moon"
	Mercury   Body = "Mercury"
	Venus     Body = "Venus"
	Mars      Body = "Mars"
	Jupiter   Body = "Jupiter"
	Saturn    Body = "Saturn"
	Rahu      Body = "Rahu" // mean lunar node
	Ketu      Body = "Ketu" // dasha lord only, never queried
	Ascendant Body = "Ascendant"
)

// Planets are the bodies queried from the ephemeris, in chart order.
var Planets = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu}

// ChartOrder is Planets followed by the Ascendant.
var ChartOrder = [...]Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Rahu, Ascendant}

// Sign is a zodiac sign index, 0 = Aries ... 11 = Pisces.
type Sign int

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// NormalizeLongitude maps any longitude into [0,360).
func NormalizeLongitude(lon float64) float64 {
	l := math.Mod(lon, 360)
	if l < 0 {
		l += 360
	}
	if l >= 360 {
		l = 0
	}
	return l
}

// SignOf returns floor(lon/30) for a longitude normalized into [0,360).
func SignOf(lon float64) Sign {
	return Sign(int(NormalizeLongitude(lon)/30) % 12)
}

// Mod12 wraps any integer onto a sign.
func Mod12(n int) Sign {
	return Sign(((n % 12) + 12) % 12)
}

// Add offsets a sign by n signs.
func (s Sign) Add(n int) Sign { return Mod12(int(s) + n) }

// HouseFrom returns the 0-based whole-sign distance of s counted from ref.
func (s Sign) HouseFrom(ref Sign) int { return int(Mod12(int(s) - int(ref))) }

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

func (s Sign) MarshalText() ([]byte, error) {
	if s < 0 || s > 11 {
		return nil, fmt.Errorf("sign index out of range: %d", int(s))
	}
	return []byte(signNames[s]), nil
}

func (s *Sign) UnmarshalText(b []byte) error {
	name := string(b)
	for i, n := range signNames {
		if strings.EqualFold(n, name) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", name)
}

// BodyPosition is a sidereal position of one chart body.
type BodyPosition struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"`
	Sign       Sign    `json:"sign"`
	Retrograde bool    `json:"retrograde"`
	Speed      float64 `json:"speed"`
}

// NewBodyPosition normalizes lon and derives sign and retrograde flag.
func NewBodyPosition(body Body, lon, speed float64) BodyPosition {
	lon = NormalizeLongitude(lon)
	return BodyPosition{
		Body:       body,
		Longitude:  lon,
		Sign:       SignOf(lon),
		Retrograde: speed < 0,
		Speed:      speed,
	}
}

// DegreeInSign is the longitude within the body's sign, in [0,30).
func (p BodyPosition) DegreeInSign() float64 {
	return math.Mod(p.Longitude, 30)
}

// HouseCusps holds the twelve cusp longitudes and the Ascendant.
type HouseCusps struct {
	Cusps         [12]float64 `json:"cusps"`
	Ascendant     float64     `json:"ascendant"`
	AscendantSign Sign        `json:"ascendant_sign"`
}

// Chart is the natal chart for one moment. It is read-only once built.
type Chart struct {
	Moment    Moment                `json:"jd"`
	Ayanamsa  Ayanamsa              `json:"ayanamsa"`
	Latitude  float64               `json:"lat"`
	Longitude float64               `json:"lon"`
	Bodies    map[Body]BodyPosition `json:"planets"`
	Houses    HouseCusps            `json:"houses"`
	Warnings  []string              `json:"warnings,omitempty"`
}

// Position looks up a body, including the Ascendant.
func (c *Chart) Position(b Body) (BodyPosition, bool) {
	p, ok := c.Bodies[b]
	return p, ok
}

// AscendantSign returns the sign of the Ascendant.
func (c *Chart) AscendantSign() Sign { return c.Houses.AscendantSign }

// Ordered returns the chart bodies in ChartOrder, skipping absent ones.
func (c *Chart) Ordered() []BodyPosition {
	return orderedPositions(c.Bodies)
}

// Transits is the set of present-moment positions, without houses.
type Transits struct {
	Moment   Moment                `json:"jd"`
	Ayanamsa Ayanamsa              `json:"ayanamsa"`
	Bodies   map[Body]BodyPosition `json:"transit"`
}

// Ordered returns the transiting bodies in chart order.
func (t *Transits) Ordered() []BodyPosition {
	return orderedPositions(t.Bodies)
}

func orderedPositions(m map[Body]BodyPosition) []BodyPosition {
	out := make([]BodyPosition, 0, len(m))
	for _, b := range ChartOrder {
		if p, ok := m[b]; ok {
			out = append(out, p)
		}
	}
	return out
}
